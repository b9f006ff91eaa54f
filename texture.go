package atlas

import (
	"fmt"

	"github.com/gogpu/atlas/internal/alloc"
	"github.com/gogpu/gputypes"
)

// backingTexture is one atlas page: a GPU texture, the allocator packing
// its area and the number of live keys stored in it.
//
// State: pending (gpu == nil, queued for initialization) -> allocated
// (live > 0) -> unreferenced (live == 0, released from its slot) ->
// destroyed (gpu.Release called, possibly frames later).
type backingTexture struct {
	id        TextureID
	size      Size
	format    gputypes.TextureFormat
	allocator *alloc.Allocator

	// gpu is nil until BeforeFrame creates the texture.
	gpu Texture

	// live is the number of keys whose tiles are in this texture.
	live int
}

func newBackingTexture(id TextureID, side int32) *backingTexture {
	return &backingTexture{
		id:        id,
		size:      Size{Width: side, Height: side},
		format:    id.Kind.Format(),
		allocator: alloc.New(int(side), int(side)),
	}
}

// allocate reserves space for a tile of the given size.
func (t *backingTexture) allocate(size Size) (Bounds, bool) {
	r, err := t.allocator.Allocate(int(size.Width), int(size.Height))
	if err != nil {
		return Bounds{}, false
	}
	return regionBounds(r), true
}

// free returns a tile's space to the allocator.
func (t *backingTexture) free(b Bounds) {
	t.allocator.Free(alloc.Region{
		X:      int(b.Origin.X),
		Y:      int(b.Origin.Y),
		Width:  int(b.Size.Width),
		Height: int(b.Size.Height),
	})
}

func (t *backingTexture) descriptor(label string) TextureDescriptor {
	return TextureDescriptor{
		Label:  fmt.Sprintf("%s %v", label, t.id),
		Size:   t.size,
		Format: t.format,
	}
}

//nolint:gosec // regions lie within an int32-sized texture
func regionBounds(r alloc.Region) Bounds {
	return Bounds{
		Origin: Point{X: int32(r.X), Y: int32(r.Y)},
		Size:   Size{Width: int32(r.Width), Height: int32(r.Height)},
	}
}

// textureSide returns the side of a new texture able to hold a tile of
// the given size: initial doubled until it covers the tile, capped at max.
func textureSide(tile Size, initial, maxSide int32) int32 {
	need := max(tile.Width, tile.Height)
	side := initial
	for side < need && side < maxSide {
		side *= 2
	}
	return min(side, maxSide)
}
