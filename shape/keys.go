package shape

import (
	"math"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/atlas"
)

// SubpixelBins is the number of horizontal subpixel phases per pixel.
// Glyphs whose pen positions fall in the same bin share a tile.
const SubpixelBins = 4

// ScaleFactor returns the window's DPI scale, or 1 when w is nil or
// reports a non-positive scale.
func ScaleFactor(w gpucontext.WindowProvider) float32 {
	if w == nil {
		return 1
	}
	if s := w.ScaleFactor(); s > 0 {
		return float32(s)
	}
	return 1
}

// SubpixelBin returns the subpixel bin of a device-pixel position.
func SubpixelBin(x float64) uint8 {
	frac := x - math.Floor(x)
	bin := int(frac*SubpixelBins + 0.5)
	if bin >= SubpixelBins {
		bin = 0
	}
	return uint8(bin) //nolint:gosec // bin < SubpixelBins
}

// GlyphKeys returns the atlas parameters for each glyph of a line shaped at
// size logical pixels and drawn at scale device pixels per logical pixel.
// The line origin is assumed to lie on a whole device pixel.
func GlyphKeys(glyphs []Glyph, fontID uint64, size, scale float32) []atlas.GlyphParams {
	if scale <= 0 {
		scale = 1
	}
	params := make([]atlas.GlyphParams, len(glyphs))
	for i, g := range glyphs {
		params[i] = atlas.GlyphParams{
			FontID:      fontID,
			GlyphID:     g.ID,
			FontSize:    size,
			SubpixelX:   SubpixelBin(g.X * float64(scale)),
			ScaleFactor: scale,
		}
	}
	return params
}
