package shape

import (
	"bytes"
	"fmt"
	"slices"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/atlas/internal/lru"
)

// LineCacheSize is the number of shaped lines a Shaper keeps.
const LineCacheSize = 512

// Glyph is a shaped glyph positioned relative to the start of the line.
type Glyph struct {
	// ID is the glyph index in the font.
	ID uint32

	// Cluster is the rune index of the first character mapped to this glyph.
	Cluster int

	// X and Y are the pen position in pixels. Y grows downward.
	X, Y float64

	// Advance is the horizontal advance in pixels.
	Advance float64

	// RTL reports whether the glyph belongs to a right-to-left run.
	RTL bool
}

// Shaper shapes text with a single font. It is safe for concurrent use.
type Shaper struct {
	font  *font.Font
	pool  sync.Pool
	lines *lru.Cache[lineKey, []Glyph]
}

type lineKey struct {
	text string
	size float64
}

// NewShaper parses a TrueType or OpenType font.
func NewShaper(ttf []byte) (*Shaper, error) {
	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("shape: parse font: %w", err)
	}
	return &Shaper{
		font:  face.Font,
		pool:  sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
		lines: lru.New[lineKey, []Glyph](LineCacheSize),
	}, nil
}

// Shape shapes text at size pixels per em. Runs are laid out left to
// right in visual order on a single line. Results are cached per line; the
// returned slice belongs to the caller.
func (s *Shaper) Shape(text string, size float64) []Glyph {
	if text == "" || size <= 0 {
		return nil
	}
	glyphs := s.lines.GetOrAdd(lineKey{text, size}, func() []Glyph {
		return s.shape(text, size)
	})
	return slices.Clone(glyphs)
}

// CacheStats reports shaped-line cache counters.
type CacheStats struct {
	Lines        int
	Hits, Misses uint64
}

// CacheStats returns the shaped-line cache counters.
func (s *Shaper) CacheStats() CacheStats {
	st := s.lines.Stats()
	return CacheStats{Lines: st.Len, Hits: st.Hits, Misses: st.Misses}
}

func (s *Shaper) shape(text string, size float64) []Glyph {
	runes := []rune(text)
	face := font.NewFace(s.font)
	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	defer s.pool.Put(hb)

	var (
		out []Glyph
		pen fixed.Int26_6
	)
	for _, r := range Runs(text) {
		dir := di.DirectionLTR
		if r.RTL {
			dir = di.DirectionRTL
		}
		output := hb.Shape(shaping.Input{
			Text:      runes,
			RunStart:  r.Start,
			RunEnd:    r.End,
			Direction: dir,
			Face:      face,
			Size:      fixed.Int26_6(size * 64),
			Script:    detectScript(runes[r.Start:r.End]),
			Language:  language.NewLanguage("en"),
		})
		for _, g := range output.Glyphs {
			out = append(out, Glyph{
				ID:      uint32(g.GlyphID),
				Cluster: g.TextIndex(),
				X:       toFloat(pen + g.XOffset),
				Y:       -toFloat(g.YOffset),
				Advance: toFloat(g.Advance),
				RTL:     r.RTL,
			})
			pen += g.Advance
		}
	}
	return out
}

// Width returns the advance of the shaped line.
func Width(glyphs []Glyph) float64 {
	var w float64
	for _, g := range glyphs {
		w += g.Advance
	}
	return w
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
