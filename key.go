package atlas

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"math"
)

// Source identifies what produced a tile's content. It is part of the key
// so that equal fingerprints from different sources never collide.
type Source uint8

const (
	// SourceCustom is content identified by caller-supplied bytes.
	SourceCustom Source = iota
	// SourceGlyph is a rasterized font glyph.
	SourceGlyph
	// SourceSVG is a rasterized vector icon.
	SourceSVG
	// SourceImage is a decoded raster image.
	SourceImage
	// SourcePath is a rasterized path.
	SourcePath
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceCustom:
		return "Custom"
	case SourceGlyph:
		return "Glyph"
	case SourceSVG:
		return "SVG"
	case SourceImage:
		return "Image"
	case SourcePath:
		return "Path"
	default:
		return fmt.Sprintf("Source(%d)", s)
	}
}

// Key identifies the semantic content of a tile. Keys are comparable and
// can be used directly as map keys. Two keys are equal exactly when their
// kind, source and fingerprint are equal.
type Key struct {
	Kind        Kind
	Source      Source
	Fingerprint [16]byte
}

// NewKey fingerprints the given parts with 128-bit FNV-1a. Each part is
// length-prefixed, so ("ab", "c") and ("a", "bc") produce different keys.
func NewKey(kind Kind, source Source, parts ...[]byte) Key {
	h := fnv.New128a()
	var n [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write(p)
	}
	k := Key{Kind: kind, Source: source}
	h.Sum(k.Fingerprint[:0])
	return k
}

// String returns a short representation of the key.
func (k Key) String() string {
	return fmt.Sprintf("%v/%v/%s", k.Kind, k.Source, hex.EncodeToString(k.Fingerprint[:6]))
}

// keyEncoder appends fixed-width little-endian fields.
type keyEncoder struct {
	buf []byte
}

func (e *keyEncoder) u8(v uint8) *keyEncoder {
	e.buf = append(e.buf, v)
	return e
}

func (e *keyEncoder) u32(v uint32) *keyEncoder {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
	return e
}

func (e *keyEncoder) u64(v uint64) *keyEncoder {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
	return e
}

// f32 encodes the bit pattern, folding -0 into +0.
func (e *keyEncoder) f32(v float32) *keyEncoder {
	if v == 0 {
		v = 0
	}
	return e.u32(math.Float32bits(v))
}

func (e *keyEncoder) bool(v bool) *keyEncoder {
	if v {
		return e.u8(1)
	}
	return e.u8(0)
}

// GlyphParams describes one rasterized glyph.
type GlyphParams struct {
	// FontID identifies the font face. Callers assign ids.
	FontID uint64

	// GlyphID is the glyph index within the font.
	GlyphID uint32

	// FontSize is the size in points.
	FontSize float32

	// SubpixelX and SubpixelY select the subpixel bin of the glyph origin.
	SubpixelX uint8
	SubpixelY uint8

	// ScaleFactor is the display scale (device pixels per point).
	ScaleFactor float32

	// Emoji marks color glyphs, which are stored as Polychrome tiles.
	Emoji bool
}

// Kind returns Polychrome for emoji glyphs and Monochrome otherwise.
func (p GlyphParams) Kind() Kind {
	if p.Emoji {
		return Polychrome
	}
	return Monochrome
}

// Key returns the atlas key for the glyph.
func (p GlyphParams) Key() Key {
	var e keyEncoder
	e.u64(p.FontID).u32(p.GlyphID).f32(p.FontSize).
		u8(p.SubpixelX).u8(p.SubpixelY).f32(p.ScaleFactor).bool(p.Emoji)
	return NewKey(p.Kind(), SourceGlyph, e.buf)
}

// SVGParams describes a vector icon rasterized at a fixed pixel size.
type SVGParams struct {
	PathID uint64
	Width  int32
	Height int32
}

// Key returns the Monochrome atlas key for the icon.
func (p SVGParams) Key() Key {
	var e keyEncoder
	e.u64(p.PathID).u32(uint32(p.Width)).u32(uint32(p.Height)) //nolint:gosec // bit pattern only
	return NewKey(Monochrome, SourceSVG, e.buf)
}

// ImageParams describes one frame of a raster image.
type ImageParams struct {
	ImageID    uint64
	FrameIndex uint32
}

// Key returns the Polychrome atlas key for the image frame.
func (p ImageParams) Key() Key {
	var e keyEncoder
	e.u64(p.ImageID).u32(p.FrameIndex)
	return NewKey(Polychrome, SourceImage, e.buf)
}

// PathParams describes a filled path rasterized at a scale.
type PathParams struct {
	PathID uint64
	Scale  float32
}

// Key returns the Monochrome atlas key for the path.
func (p PathParams) Key() Key {
	var e keyEncoder
	e.u64(p.PathID).f32(p.Scale)
	return NewKey(Monochrome, SourcePath, e.buf)
}
