package wgpu

import (
	"fmt"

	"github.com/gogpu/atlas"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// Encoder uploads tile pixels with Queue.WriteTexture.
type Encoder struct {
	queue *wgpu.Queue
}

// WriteTexture implements atlas.Encoder.
func (e *Encoder) WriteTexture(dst atlas.Texture, origin atlas.Point, size atlas.Size, bytesPerRow uint32, data []byte) error {
	t, ok := dst.(*Texture)
	if !ok {
		return ErrForeignTexture
	}
	copyDst, layout, extent := writeArgs(t, origin, size, bytesPerRow)
	if err := e.queue.WriteTexture(copyDst, data, layout, extent); err != nil {
		return fmt.Errorf("wgpu: write %v at (%d,%d): %w", size, origin.X, origin.Y, err)
	}
	return nil
}

//nolint:gosec // coordinates are non-negative and within the texture
func writeArgs(t *Texture, origin atlas.Point, size atlas.Size, bytesPerRow uint32) (*wgpu.ImageCopyTexture, *wgpu.ImageDataLayout, *wgpu.Extent3D) {
	return &wgpu.ImageCopyTexture{
			Texture: t.texture,
			Origin:  wgpu.Origin3D{X: uint32(origin.X), Y: uint32(origin.Y)},
			Aspect:  gputypes.TextureAspectAll,
		},
		&wgpu.ImageDataLayout{
			BytesPerRow:  bytesPerRow,
			RowsPerImage: uint32(size.Height),
		},
		&wgpu.Extent3D{
			Width:              uint32(size.Width),
			Height:             uint32(size.Height),
			DepthOrArrayLayers: 1,
		}
}
