package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/backend"
	"github.com/gogpu/atlas/backend/software"
	"github.com/gogpu/atlas/shader"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "text.png")
	page := filepath.Join(dir, "page.png")

	err := run(backend.BackendSoftware, "Hi atlas", 16, gpucontext.NullWindowProvider{SF: 2}, 4, output, page)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	var dark, tinted int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r < 0x4000 && g < 0x4000 && bl < 0x4000 {
				dark++
			}
			if bl != r || bl != g {
				tinted++
			}
		}
	}
	if dark == 0 {
		t.Error("no text drawn")
	}
	if tinted == 0 {
		t.Error("polychrome icon not drawn")
	}
	if _, err := os.Stat(page); err != nil {
		t.Errorf("page not written: %v", err)
	}
}

func TestRunUnknownBackend(t *testing.T) {
	if err := run("nope", "x", 16, nil, 1, filepath.Join(t.TempDir(), "x.png"), ""); err == nil {
		t.Error("run() accepted an unknown backend")
	}
}

func TestSceneEncodesSprites(t *testing.T) {
	s, err := newScene("ab", 16, gpucontext.NullWindowProvider{})
	if err != nil {
		t.Fatal(err)
	}
	a, err := atlas.New(software.NewDevice(), atlas.WithInitialTextureSize(256))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if err := s.frame(a, software.NewEncoder(), 0); err != nil {
		t.Fatalf("frame() error = %v", err)
	}
	// image icon, two glyphs, path icon
	if len(s.placed) != 4 {
		t.Fatalf("placed = %d, want 4", len(s.placed))
	}
	if len(s.instances) != len(s.placed)*shader.SpriteStride {
		t.Errorf("instance bytes = %d, want %d", len(s.instances), len(s.placed)*shader.SpriteStride)
	}
}

func TestScenePlacesGlyphs(t *testing.T) {
	s, err := newScene("a b", 20, gpucontext.NullWindowProvider{})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.glyphs) != 3 {
		t.Fatalf("glyphs = %d, want 3", len(s.glyphs))
	}
	if s.canvas.Bounds().Dx() <= 2*s.icon {
		t.Errorf("canvas %v too narrow", s.canvas.Bounds())
	}
	if p := circle(4); p.Empty() || p.Bounds(1).Dx() != 8 {
		t.Errorf("circle bounds = %v", p.Bounds(1))
	}
}
