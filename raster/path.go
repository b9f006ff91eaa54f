package raster

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/atlas"
)

// ErrInvalidScale is returned by Path builders for non-positive scales.
var ErrInvalidScale = errors.New("raster: scale must be positive")

type pathOp uint8

const (
	opMove pathOp = iota
	opLine
	opQuad
	opCube
	opClose
)

type pathCmd struct {
	op  pathOp
	pts [3][2]float32
}

// Path is a vector outline in user units with Y pointing down.
// Subpaths are closed implicitly when filled.
type Path struct {
	cmds []pathCmd
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float32) {
	p.cmds = append(p.cmds, pathCmd{op: opMove, pts: [3][2]float32{{x, y}}})
}

// LineTo adds a line segment.
func (p *Path) LineTo(x, y float32) {
	p.cmds = append(p.cmds, pathCmd{op: opLine, pts: [3][2]float32{{x, y}}})
}

// QuadTo adds a quadratic Bézier segment.
func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.cmds = append(p.cmds, pathCmd{op: opQuad, pts: [3][2]float32{{cx, cy}, {x, y}}})
}

// CubeTo adds a cubic Bézier segment.
func (p *Path) CubeTo(c1x, c1y, c2x, c2y, x, y float32) {
	p.cmds = append(p.cmds, pathCmd{op: opCube, pts: [3][2]float32{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.cmds = append(p.cmds, pathCmd{op: opClose})
}

// Empty reports whether the path has no drawing commands.
func (p *Path) Empty() bool {
	for _, c := range p.cmds {
		if c.op != opMove && c.op != opClose {
			return false
		}
	}
	return true
}

func (c pathCmd) points() int {
	switch c.op {
	case opMove, opLine:
		return 1
	case opQuad:
		return 2
	case opCube:
		return 3
	}
	return 0
}

// Bounds returns the pixel rectangle covering the path at scale. Control
// points are included so the result may be slightly larger than the
// filled area.
func (p *Path) Bounds(scale float32) image.Rectangle {
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := -minX, -minY
	for _, c := range p.cmds {
		for i := range c.points() {
			x, y := c.pts[i][0]*scale, c.pts[i][1]*scale
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if minX > maxX {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	)
}

// Rasterize fills the path at scale with the nonzero winding rule.
// It returns a nil mask when nothing would be drawn.
func (p *Path) Rasterize(scale float32) (*Mask, error) {
	if !(scale > 0) {
		return nil, ErrInvalidScale
	}
	if p.Empty() {
		return nil, nil
	}
	rect := p.Bounds(scale)
	if rect.Empty() {
		return nil, nil
	}

	z := vector.NewRasterizer(rect.Dx(), rect.Dy())
	ox, oy := float32(rect.Min.X), float32(rect.Min.Y)
	pt := func(v [2]float32) (float32, float32) {
		return v[0]*scale - ox, v[1]*scale - oy
	}
	for _, c := range p.cmds {
		switch c.op {
		case opMove:
			z.MoveTo(pt(c.pts[0]))
		case opLine:
			z.LineTo(pt(c.pts[0]))
		case opQuad:
			bx, by := pt(c.pts[0])
			x, y := pt(c.pts[1])
			z.QuadTo(bx, by, x, y)
		case opCube:
			bx, by := pt(c.pts[0])
			cx, cy := pt(c.pts[1])
			x, y := pt(c.pts[2])
			z.CubeTo(bx, by, cx, cy, x, y)
		case opClose:
			z.ClosePath()
		}
	}
	z.ClosePath()

	return &Mask{Rect: rect, Pix: coverage(z)}, nil
}

// Builder returns a builder for a Monochrome tile holding the path
// rasterized at scale. Pair it with atlas.PathParams using the same scale.
func (p *Path) Builder(scale float32) atlas.BuildFunc {
	return func() (*atlas.Content, error) {
		m, err := p.Rasterize(scale)
		if err != nil || m == nil {
			return nil, err
		}
		return m.Content(), nil
	}
}
