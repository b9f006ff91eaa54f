package atlas

import (
	"math"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewKeyDistinguishesParts(t *testing.T) {
	ab := NewKey(Monochrome, SourceCustom, []byte("ab"), []byte("c"))
	a := NewKey(Monochrome, SourceCustom, []byte("a"), []byte("bc"))
	if ab == a {
		t.Error("length prefixing failed: keys collide")
	}
	if NewKey(Monochrome, SourceCustom, []byte("x")) != NewKey(Monochrome, SourceCustom, []byte("x")) {
		t.Error("equal inputs produced different keys")
	}
	if NewKey(Monochrome, SourceCustom, []byte("x")) == NewKey(Polychrome, SourceCustom, []byte("x")) {
		t.Error("kind not part of the key")
	}
}

func TestGlyphParamsKey(t *testing.T) {
	base := GlyphParams{FontID: 1, GlyphID: 42, FontSize: 16, ScaleFactor: 2}
	if base.Key().Kind != Monochrome || base.Key().Source != SourceGlyph {
		t.Errorf("key = %v", base.Key())
	}
	emoji := base
	emoji.Emoji = true
	if emoji.Key().Kind != Polychrome {
		t.Error("emoji glyph is not Polychrome")
	}

	variants := []GlyphParams{
		{FontID: 2, GlyphID: 42, FontSize: 16, ScaleFactor: 2},
		{FontID: 1, GlyphID: 43, FontSize: 16, ScaleFactor: 2},
		{FontID: 1, GlyphID: 42, FontSize: 17, ScaleFactor: 2},
		{FontID: 1, GlyphID: 42, FontSize: 16, ScaleFactor: 1},
		{FontID: 1, GlyphID: 42, FontSize: 16, ScaleFactor: 2, SubpixelX: 1},
		{FontID: 1, GlyphID: 42, FontSize: 16, ScaleFactor: 2, SubpixelY: 1},
	}
	seen := map[Key]int{base.Key(): -1}
	for i, v := range variants {
		k := v.Key()
		if j, dup := seen[k]; dup {
			t.Errorf("variant %d collides with %d", i, j)
		}
		seen[k] = i
	}
}

func TestGlyphParamsNegativeZero(t *testing.T) {
	p := GlyphParams{FontSize: 0}
	q := GlyphParams{FontSize: float32(math.Copysign(0, -1))}
	if p.Key() != q.Key() {
		t.Error("-0 and +0 font sizes produce different keys")
	}
}

func TestParamsKinds(t *testing.T) {
	tests := []struct {
		name   string
		key    Key
		kind   Kind
		source Source
	}{
		{"svg", SVGParams{PathID: 1, Width: 24, Height: 24}.Key(), Monochrome, SourceSVG},
		{"image", ImageParams{ImageID: 1}.Key(), Polychrome, SourceImage},
		{"path", PathParams{PathID: 1, Scale: 1.5}.Key(), Monochrome, SourcePath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key.Kind != tt.kind || tt.key.Source != tt.source {
				t.Errorf("key = %v, want %v/%v", tt.key, tt.kind, tt.source)
			}
		})
	}
	if (ImageParams{ImageID: 1, FrameIndex: 0}).Key() == (ImageParams{ImageID: 1, FrameIndex: 1}).Key() {
		t.Error("animation frames share a key")
	}
}

func TestKindFormat(t *testing.T) {
	if Monochrome.Format() != gputypes.TextureFormatR8Unorm || Monochrome.BytesPerPixel() != 1 {
		t.Error("Monochrome format")
	}
	if Polychrome.Format() != gputypes.TextureFormatRGBA8Unorm || Polychrome.BytesPerPixel() != 4 {
		t.Error("Polychrome format")
	}
	if Kind(5).Valid() || Kind(5).String() != "Kind(5)" {
		t.Error("unknown kind handling")
	}
}

func TestBoundsGeometry(t *testing.T) {
	b := Bounds{Origin: Point{X: 2, Y: 3}, Size: Size{Width: 4, Height: 5}}
	if !b.Contains(Point{X: 2, Y: 3}) || b.Contains(Point{X: 6, Y: 3}) {
		t.Error("Contains edges")
	}
	if b.Intersects(Bounds{Origin: Point{X: 6, Y: 3}, Size: Size{Width: 1, Height: 1}}) {
		t.Error("touching bounds intersect")
	}
	if !b.Intersects(Bounds{Origin: Point{X: 5, Y: 7}, Size: Size{Width: 3, Height: 3}}) {
		t.Error("overlapping bounds do not intersect")
	}
	if b.String() != "(2,3 4x5)" {
		t.Errorf("String() = %q", b.String())
	}

	tile := Tile{Bounds: Bounds{Origin: Point{X: 32, Y: 0}, Size: Size{Width: 32, Height: 64}}}
	u0, v0, u1, v1 := tile.UV(Size{Width: 128, Height: 128})
	if u0 != 0.25 || v0 != 0 || u1 != 0.5 || v1 != 0.5 {
		t.Errorf("UV = %v %v %v %v", u0, v0, u1, v1)
	}
}
