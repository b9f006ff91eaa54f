package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/atlas"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// Errors returned by the wgpu backend.
var (
	// ErrNilDevice is returned when no device or queue is given.
	ErrNilDevice = errors.New("wgpu: nil device or queue")

	// ErrUnsupportedProvider is returned by FromProvider when the provider
	// does not hand out gogpu/wgpu handles.
	ErrUnsupportedProvider = errors.New("wgpu: provider does not expose *wgpu.Device and *wgpu.Queue")

	// ErrForeignTexture is returned when an Encoder is given a texture
	// that was not created by this package.
	ErrForeignTexture = errors.New("wgpu: texture not created by wgpu device")
)

// Device creates atlas textures on a wgpu device.
type Device struct {
	device *wgpu.Device
	queue  *wgpu.Queue
}

// New wraps a wgpu device and its queue.
func New(device *wgpu.Device, queue *wgpu.Queue) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &Device{device: device, queue: queue}, nil
}

// FromProvider wraps the device and queue of a gpucontext.DeviceProvider,
// such as a gogpu application.
func FromProvider(p gpucontext.DeviceProvider) (*Device, error) {
	if p == nil {
		return nil, ErrNilDevice
	}
	device, ok := p.Device().(*wgpu.Device)
	if !ok {
		return nil, fmt.Errorf("%w: device is %T", ErrUnsupportedProvider, p.Device())
	}
	queue, ok := p.Queue().(*wgpu.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: queue is %T", ErrUnsupportedProvider, p.Queue())
	}
	atlas.Logger().Debug("wgpu: atlas device from provider", "adapter", p.AdapterInfo().Name)
	return New(device, queue)
}

// MaxTextureDimension2D implements atlas.Limiter.
func (d *Device) MaxTextureDimension2D() uint32 {
	return d.device.Limits().MaxTextureDimension2D
}

// CreateTexture implements atlas.Device.
func (d *Device) CreateTexture(desc atlas.TextureDescriptor) (atlas.Texture, error) {
	tex, err := d.device.CreateTexture(textureDescriptor(desc))
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %q: %w", desc.Label, err)
	}
	view, err := d.device.CreateTextureView(tex, viewDescriptor(desc))
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("wgpu: create view %q: %w", desc.Label, err)
	}
	return &Texture{texture: tex, view: view, size: desc.Size, format: desc.Format}, nil
}

// Encoder returns an encoder writing through the device's queue.
func (d *Device) Encoder() *Encoder {
	return &Encoder{queue: d.queue}
}

// Queue returns the wrapped queue.
func (d *Device) Queue() *wgpu.Queue {
	return d.queue
}

func textureDescriptor(desc atlas.TextureDescriptor) *wgpu.TextureDescriptor {
	return &wgpu.TextureDescriptor{
		Label: desc.Label,
		Size: wgpu.Extent3D{
			Width:              uint32(desc.Size.Width),  //nolint:gosec // positive
			Height:             uint32(desc.Size.Height), //nolint:gosec // positive
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
}

func viewDescriptor(desc atlas.TextureDescriptor) *wgpu.TextureViewDescriptor {
	return &wgpu.TextureViewDescriptor{
		Label:           desc.Label + " view",
		Format:          desc.Format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	}
}
