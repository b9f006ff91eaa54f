// Package shape turns text into positioned glyphs and atlas glyph keys.
//
// Text is split into directional runs with golang.org/x/text/unicode/bidi
// and each run is shaped with the HarfBuzz port in
// github.com/go-text/typesetting. The resulting glyph positions carry the
// subpixel phase needed for atlas.GlyphParams:
//
//	s, _ := shape.NewShaper(goregular.TTF)
//	glyphs := s.Shape("Hello", 16)
//	params := shape.GlyphKeys(glyphs, fontID, 16, window.ScaleFactor())
package shape
