package raster

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/atlas"
)

// ErrNilFont is returned when rasterizing without a font.
var ErrNilFont = errors.New("raster: nil font")

// Subpixel is a fractional pen offset in pixels. Each axis is in [0, 1).
type Subpixel struct {
	X, Y float32
}

// SubpixelFromBin converts a quantized offset bin, as stored in
// atlas.GlyphParams, back into a pen offset.
func SubpixelFromBin(x, y, bins uint8) Subpixel {
	if bins == 0 {
		return Subpixel{}
	}
	return Subpixel{X: float32(x) / float32(bins), Y: float32(y) / float32(bins)}
}

// Mask is an 8-bit coverage mask.
type Mask struct {
	// Rect places the mask relative to the pen position on the baseline.
	// Y grows downward.
	Rect image.Rectangle

	// Pix holds Rect.Dx() bytes per row.
	Pix []byte
}

// Content returns the mask as atlas tile content.
func (m *Mask) Content() *atlas.Content {
	return &atlas.Content{
		Size:  atlas.Size{Width: int32(m.Rect.Dx()), Height: int32(m.Rect.Dy())}, //nolint:gosec // mask sides are bounded by ppem
		Bytes: m.Pix,
	}
}

// RasterizeGlyph renders glyph gid of f at ppem pixels per em, shifted by
// offset. It returns a nil mask for glyphs without an outline such as
// spaces.
func RasterizeGlyph(f *sfnt.Font, gid sfnt.GlyphIndex, ppem float64, offset Subpixel) (*Mask, error) {
	if f == nil {
		return nil, ErrNilFont
	}
	var buf sfnt.Buffer
	segments, err := f.LoadGlyph(&buf, gid, fixed.Int26_6(ppem*64+0.5), nil)
	if err != nil {
		return nil, fmt.Errorf("raster: load glyph %d: %w", gid, err)
	}
	if len(segments) == 0 {
		return nil, nil
	}

	dx := fixed.Int26_6(offset.X * 64)
	dy := fixed.Int26_6(offset.Y * 64)
	b := segments.Bounds()
	rect := image.Rect(
		(b.Min.X + dx).Floor(), (b.Min.Y + dy).Floor(),
		(b.Max.X + dx).Ceil(), (b.Max.Y + dy).Ceil(),
	)
	if rect.Empty() {
		return nil, nil
	}

	z := vector.NewRasterizer(rect.Dx(), rect.Dy())
	ox := float32(rect.Min.X)
	oy := float32(rect.Min.Y)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X+dx)/64 - ox, float32(p.Y+dy)/64 - oy
	}
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			x, y := pt(seg.Args[0])
			z.MoveTo(x, y)
		case sfnt.SegmentOpLineTo:
			x, y := pt(seg.Args[0])
			z.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			x, y := pt(seg.Args[2])
			z.CubeTo(bx, by, cx, cy, x, y)
		}
	}
	z.ClosePath()

	return &Mask{Rect: rect, Pix: coverage(z)}, nil
}

// Glyph returns a builder for a Monochrome glyph tile.
func Glyph(f *sfnt.Font, gid sfnt.GlyphIndex, ppem float64, offset Subpixel) atlas.BuildFunc {
	return func() (*atlas.Content, error) {
		m, err := RasterizeGlyph(f, gid, ppem, offset)
		if err != nil || m == nil {
			return nil, err
		}
		return m.Content(), nil
	}
}

func coverage(z *vector.Rasterizer) []byte {
	size := z.Size()
	dst := image.NewAlpha(image.Rectangle{Max: size})
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst.Pix
}
