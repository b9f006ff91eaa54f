package raster

import (
	"errors"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/atlas"
)

// ErrNilImage is returned by Image builders given a nil image.
var ErrNilImage = errors.New("raster: nil image")

// RGBA converts img to premultiplied RGBA8 at width x height. A zero
// width or height keeps the source size. Scaling uses Catmull-Rom.
func RGBA(img image.Image, width, height int) (*image.RGBA, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	src := img.Bounds()
	if width <= 0 || height <= 0 {
		width, height = src.Dx(), src.Dy()
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if width == src.Dx() && height == src.Dy() {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	}
	return dst, nil
}

// Image returns a builder for a Polychrome tile holding img scaled to
// width x height. Empty images produce no tile.
func Image(img image.Image, width, height int) atlas.BuildFunc {
	return func() (*atlas.Content, error) {
		rgba, err := RGBA(img, width, height)
		if err != nil {
			return nil, err
		}
		b := rgba.Bounds()
		if b.Empty() {
			return nil, nil
		}
		return &atlas.Content{
			Size:  atlas.Size{Width: int32(b.Dx()), Height: int32(b.Dy())}, //nolint:gosec // image sides fit int32
			Bytes: rgba.Pix,
		}, nil
	}
}
