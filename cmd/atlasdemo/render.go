package main

import (
	"image"
	"image/color"
	"log"

	"golang.org/x/image/draw"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/backend/software"
	"github.com/gogpu/atlas/raster"
	"github.com/gogpu/atlas/shader"
)

// Draw encodes the sprite instances for the placed tiles and composites
// them from the atlas pages. Only software pages can be read back; other
// encoders get the instance buffer only.
func (s *scene) Draw(enc atlas.Encoder, a *atlas.Atlas) error {
	s.instances = s.instances[:0]
	for _, p := range s.placed {
		page := a.TextureInfo(p.tile.TextureID).Size
		sprite := shader.SpriteFor(p.tile, page, float32(p.at.X), float32(p.at.Y), [4]float32{0, 0, 0, 1})
		s.instances = shader.AppendSprite(s.instances, sprite)
	}
	atlas.Logger().Debug("atlasdemo: sprites encoded", "count", len(s.placed), "bytes", len(s.instances))

	if _, ok := enc.(*software.Encoder); !ok {
		return nil
	}
	draw.Draw(s.canvas, s.canvas.Bounds(), image.White, image.Point{}, draw.Src)
	for _, p := range s.placed {
		tex := software.TextureFromView(a.TextureInfo(p.tile.TextureID).View)
		src := image.Point{X: int(p.tile.Bounds.Origin.X), Y: int(p.tile.Bounds.Origin.Y)}
		dst := image.Rectangle{Min: p.at, Max: p.at.Add(image.Point{
			X: int(p.tile.Bounds.Size.Width),
			Y: int(p.tile.Bounds.Size.Height),
		})}
		if p.tile.TextureID.Kind == atlas.Monochrome {
			draw.DrawMask(s.canvas, dst, image.Black, image.Point{}, tex.Alpha(), src, draw.Over)
		} else {
			draw.Draw(s.canvas, dst, tex.Image(), src, draw.Over)
		}
	}
	return nil
}

func (s *scene) Submit(atlas.Encoder) error { return nil }

func (s *scene) Present() error { return nil }

// drain removes every tile and runs enough empty frames for the pages to
// be released.
func (s *scene) drain(a *atlas.Atlas, enc atlas.Encoder) error {
	for key := range s.keys {
		a.Remove(key)
	}
	s.placed = nil
	for range atlas.DefaultFramesInFlight + 1 {
		if err := atlas.RenderFrame(a, enc, s); err != nil {
			return err
		}
	}
	st := a.Stats()
	log.Printf("drained: %d tiles, %d pages retired, %d pages live",
		st.Tiles, st.RetiredTextures, st.Textures[atlas.Monochrome]+st.Textures[atlas.Polychrome])
	return nil
}

// gradient returns an n x n opaque swatch.
func gradient(n int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := range n {
		for x := range n {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * x / max(n-1, 1)),
				G: uint8(255 * y / max(n-1, 1)),
				B: 160,
				A: 255,
			})
		}
	}
	return img
}

// circle approximates a circle of radius r with four cubic arcs.
func circle(r float32) *raster.Path {
	const k = 0.5522847
	c := r * k
	var p raster.Path
	p.MoveTo(2*r, r)
	p.CubeTo(2*r, r+c, r+c, 2*r, r, 2*r)
	p.CubeTo(r-c, 2*r, 0, r+c, 0, r)
	p.CubeTo(0, r-c, r-c, 0, r, 0)
	p.CubeTo(r+c, 0, 2*r, r-c, 2*r, r)
	p.Close()
	return &p
}
