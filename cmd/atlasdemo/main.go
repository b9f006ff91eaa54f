// Command atlasdemo shapes a line of text, caches its glyphs in a texture
// atlas and composites the result on the CPU.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/backend"
	"github.com/gogpu/atlas/backend/software"
	_ "github.com/gogpu/atlas/backend/wgpu"
)

func main() {
	var (
		text    = flag.String("text", "Hello, atlas!", "text to render")
		size    = flag.Float64("size", 32, "font size in logical pixels")
		scale   = flag.Float64("scale", 1, "display scale factor")
		frames  = flag.Int("frames", 4, "frames to render")
		name    = flag.String("backend", backend.BackendSoftware, "texture backend")
		output  = flag.String("output", "atlas.png", "composited text output")
		page    = flag.String("page", "", "write the first monochrome atlas page to this file")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	atlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	window := gpucontext.NullWindowProvider{SF: *scale}
	if err := run(*name, *text, *size, window, *frames, *output, *page); err != nil {
		log.Fatalf("atlasdemo: %v", err)
	}
}

func run(name, text string, size float64, window gpucontext.WindowProvider, frames int, output, page string) error {
	b := backend.Get(name)
	if b == nil {
		return fmt.Errorf("unknown backend %q (available: %v)", name, backend.Available())
	}
	if err := b.Init(); err != nil {
		return fmt.Errorf("init %s backend: %w", name, err)
	}
	defer b.Close()

	a, err := atlas.New(b.Device(), atlas.WithLabel("atlasdemo"), atlas.WithInitialTextureSize(256))
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := newScene(text, size, window)
	if err != nil {
		return err
	}
	for i := range frames {
		if err := s.frame(a, b.Encoder(), i); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	st := a.Stats()
	log.Printf("rendered %d frames: %d tiles, %d hits, %d misses, %d monochrome and %d polychrome pages",
		frames, st.Tiles, st.Hits, st.Misses, st.Textures[atlas.Monochrome], st.Textures[atlas.Polychrome])

	if _, ok := b.(*backend.SoftwareBackend); !ok {
		log.Printf("%s backend has no readback; skipping %s", name, output)
		return s.drain(a, b.Encoder())
	}
	if err := writePNG(output, s.canvas); err != nil {
		return err
	}
	log.Printf("text saved to %s (%v)", output, s.canvas.Bounds().Size())

	if page != "" {
		if ids := a.TextureIDs(atlas.Monochrome); len(ids) > 0 {
			tex := software.TextureFromView(a.TextureInfo(ids[0]).View)
			if err := writePNG(page, tex.Image()); err != nil {
				return err
			}
			log.Printf("atlas page %v saved to %s", ids[0], page)
		}
	}
	return s.drain(a, b.Encoder())
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
