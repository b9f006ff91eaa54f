package wgpu

import (
	"fmt"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/backend"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	_ "github.com/gogpu/wgpu/hal/allbackends" // register all HAL backends
)

// Backend is a standalone GPU backend that owns its adapter and device.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	atlasDev *Device
	encoder  *Encoder
}

// init registers the wgpu backend on package import.
func init() {
	backend.Register(backend.BackendWGPU, func() backend.TextureBackend {
		return &Backend{}
	})
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWGPU
}

// Init opens a high-performance adapter and a device with default limits.
func (b *Backend) Init() error {
	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return fmt.Errorf("wgpu: request adapter: %w", err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "atlas",
		RequiredLimits: gputypes.DefaultLimits(),
	})
	if err != nil {
		adapter.Release()
		instance.Release()
		return fmt.Errorf("wgpu: request device: %w", err)
	}

	dev, err := New(device, device.Queue())
	if err != nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return err
	}
	b.instance, b.adapter, b.device = instance, adapter, device
	b.atlasDev, b.encoder = dev, dev.Encoder()
	atlas.Logger().Info("wgpu: atlas backend initialized", "adapter", adapter.Info().Name)
	return nil
}

// Close releases the device, adapter and instance.
func (b *Backend) Close() {
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
	*b = Backend{}
}

// Device returns the atlas device, or nil before Init.
func (b *Backend) Device() atlas.Device {
	if b.atlasDev == nil {
		return nil
	}
	return b.atlasDev
}

// Encoder returns the queue-backed encoder, or nil before Init.
func (b *Backend) Encoder() atlas.Encoder {
	if b.encoder == nil {
		return nil
	}
	return b.encoder
}
