package main

import (
	"image"
	"math"

	"github.com/gogpu/gpucontext"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/raster"
	"github.com/gogpu/atlas/shape"
)

const (
	fontID = 1
	margin = 8
)

type placed struct {
	tile atlas.Tile
	at   image.Point
}

// scene draws an image icon, the shaped text and a path icon on one line.
type scene struct {
	font    *sfnt.Font
	glyphs  []shape.Glyph
	size    float32
	scale   float32
	icon    int
	canvas  *image.RGBA
	origins map[atlas.Key]image.Point
	keys    map[atlas.Key]struct{}
	placed  []placed

	// instances holds the shader.Sprite encoding of placed, rebuilt in Draw.
	instances []byte
}

func newScene(text string, size float64, window gpucontext.WindowProvider) (*scene, error) {
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	shaper, err := shape.NewShaper(goregular.TTF)
	if err != nil {
		return nil, err
	}
	scale := shape.ScaleFactor(window)
	glyphs := shaper.Shape(text, size)
	icon := int(math.Ceil(size * float64(scale)))
	width := int(math.Ceil(shape.Width(glyphs)*float64(scale))) + 2*icon + 5*margin
	height := int(math.Ceil(size*float64(scale)*1.5)) + 2*margin

	return &scene{
		font:    f,
		glyphs:  glyphs,
		size:    float32(size),
		scale:   scale,
		icon:    icon,
		canvas:  image.NewRGBA(image.Rect(0, 0, width, height)),
		origins: make(map[atlas.Key]image.Point),
		keys:    make(map[atlas.Key]struct{}),
	}, nil
}

// frame lays out the line shifted by a quarter pixel per frame, so later
// frames use tiles built for other subpixel phases.
func (s *scene) frame(a *atlas.Atlas, enc atlas.Encoder, n int) error {
	s.placed = s.placed[:0]
	baseline := margin + s.icon

	icon := atlas.ImageParams{ImageID: 1}.Key()
	if err := s.insert(a, icon, raster.Image(gradient(s.icon), 0, 0), image.Point{X: margin, Y: baseline - s.icon}); err != nil {
		return err
	}

	shift := float64(n%shape.SubpixelBins) / shape.SubpixelBins
	origin := float64(2*margin + s.icon)
	line := make([]shape.Glyph, len(s.glyphs))
	for i, g := range s.glyphs {
		g.X += shift / float64(s.scale)
		line[i] = g
	}
	for i, p := range shape.GlyphKeys(line, fontID, s.size, s.scale) {
		pen := image.Point{
			X: int(math.Floor(origin + line[i].X*float64(s.scale))),
			Y: baseline + int(math.Round(line[i].Y*float64(s.scale))),
		}
		if err := s.insertGlyph(a, p, pen); err != nil {
			return err
		}
	}

	dot := atlas.PathParams{PathID: 1, Scale: 1}.Key()
	at := image.Point{X: s.canvas.Bounds().Dx() - margin - s.icon, Y: baseline - s.icon}
	if err := s.insert(a, dot, circle(float32(s.icon)/2).Builder(1), at); err != nil {
		return err
	}

	return atlas.RenderFrame(a, enc, s)
}

func (s *scene) insert(a *atlas.Atlas, key atlas.Key, build atlas.BuildFunc, at image.Point) error {
	tile, ok, err := s.lookup(a, key, build)
	if ok {
		s.placed = append(s.placed, placed{tile: tile, at: at})
	}
	return err
}

func (s *scene) lookup(a *atlas.Atlas, key atlas.Key, build atlas.BuildFunc) (atlas.Tile, bool, error) {
	s.keys[key] = struct{}{}
	return a.GetOrInsertWith(key, build)
}

// insertGlyph records the mask placement on a miss so hits can reuse it.
func (s *scene) insertGlyph(a *atlas.Atlas, p atlas.GlyphParams, pen image.Point) error {
	key := p.Key()
	ppem := float64(p.FontSize * p.ScaleFactor)
	offset := raster.SubpixelFromBin(p.SubpixelX, p.SubpixelY, shape.SubpixelBins)
	build := func() (*atlas.Content, error) {
		m, err := raster.RasterizeGlyph(s.font, sfnt.GlyphIndex(p.GlyphID), ppem, offset)
		if err != nil || m == nil {
			return nil, err
		}
		s.origins[key] = m.Rect.Min
		return m.Content(), nil
	}
	tile, ok, err := s.lookup(a, key, build)
	if ok {
		s.placed = append(s.placed, placed{tile: tile, at: pen.Add(s.origins[key])})
	}
	return err
}
