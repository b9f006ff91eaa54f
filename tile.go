package atlas

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// TextureID identifies one backing texture within one kind. The index may
// be reused after the texture is released.
type TextureID struct {
	Kind  Kind
	Index uint32
}

// String returns a string representation of the id.
func (id TextureID) String() string {
	return fmt.Sprintf("%v#%d", id.Kind, id.Index)
}

// Tile locates a key's content inside a backing texture. It is plain data
// and owns no GPU resources; a Tile held after its key is removed refers
// to space that may be handed to other content.
type Tile struct {
	TextureID TextureID

	// TileID is unique per inserted tile within one Atlas.
	TileID uint32

	// Bounds is the tile's rectangle within the texture, in pixels.
	Bounds Bounds
}

// UV returns the tile's normalized texture coordinates for a texture of
// the given size.
func (t Tile) UV(texture Size) (u0, v0, u1, v1 float32) {
	w, h := float32(texture.Width), float32(texture.Height)
	m := t.Bounds.Max()
	return float32(t.Bounds.Origin.X) / w, float32(t.Bounds.Origin.Y) / h,
		float32(m.X) / w, float32(m.Y) / h
}

// TextureInfo describes a backing texture for binding.
type TextureInfo struct {
	ID     TextureID
	Size   Size
	Format gputypes.TextureFormat

	// View is the sampling view. View.IsNil reports true until the first
	// BeforeFrame after the texture was allocated.
	View gpucontext.TextureView
}
