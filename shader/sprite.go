package shader

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/atlas"
)

// SpriteStride is the byte size of one Sprite instance.
const SpriteStride = 48

// Sprite is the per-instance vertex data of the sprite shader.
type Sprite struct {
	Rect  [4]float32 // x, y, width, height
	UV    [4]float32 // u0, v0, u1, v1
	Color [4]float32 // straight alpha
}

// SpriteFor places tile with its top-left corner at (x, y). The page size
// comes from the atlas TextureInfo of the tile's texture.
func SpriteFor(tile atlas.Tile, page atlas.Size, x, y float32, color [4]float32) Sprite {
	u0, v0, u1, v1 := tile.UV(page)
	return Sprite{
		Rect:  [4]float32{x, y, float32(tile.Bounds.Size.Width), float32(tile.Bounds.Size.Height)},
		UV:    [4]float32{u0, v0, u1, v1},
		Color: color,
	}
}

// AppendSprite appends the little-endian encoding of s to buf.
func AppendSprite(buf []byte, s Sprite) []byte {
	for _, group := range [3][4]float32{s.Rect, s.UV, s.Color} {
		for _, v := range group {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
	}
	return buf
}
