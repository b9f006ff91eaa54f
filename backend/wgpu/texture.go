package wgpu

import (
	"unsafe"

	"github.com/gogpu/atlas"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// Texture is an atlas page on the GPU.
type Texture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	size    atlas.Size
	format  gputypes.TextureFormat
}

// View implements atlas.Texture. The handle points at a *wgpu.TextureView;
// use TextureViewFrom to recover it.
func (t *Texture) View() gpucontext.TextureView {
	return gpucontext.NewTextureView(unsafe.Pointer(t.view))
}

// Release implements atlas.Texture.
func (t *Texture) Release() {
	t.view.Release()
	t.texture.Release()
}

// WGPUTexture returns the underlying texture.
func (t *Texture) WGPUTexture() *wgpu.Texture { return t.texture }

// Size returns the texture dimensions.
func (t *Texture) Size() atlas.Size { return t.size }

// Format returns the texel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// TextureViewFrom converts a view handle returned by Atlas.TextureInfo
// into the *wgpu.TextureView to bind. It returns nil for a nil handle.
func TextureViewFrom(v gpucontext.TextureView) *wgpu.TextureView {
	if v.IsNil() {
		return nil
	}
	return (*wgpu.TextureView)(v.Pointer())
}
