package backend

import (
	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/backend/software"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the host-memory backend.
	BackendSoftware = "software"
	// BackendWGPU is the name of the Pure Go GPU backend (gogpu/wgpu).
	BackendWGPU = "wgpu"
)

// SoftwareBackend keeps atlas textures in host memory.
type SoftwareBackend struct {
	device  *software.Device
	encoder *software.Encoder
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() TextureBackend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init creates the software device and encoder.
func (b *SoftwareBackend) Init() error {
	b.device = software.NewDevice()
	b.encoder = software.NewEncoder()
	return nil
}

// Close releases all backend resources.
func (b *SoftwareBackend) Close() {
	if b.device != nil {
		for _, t := range b.device.Textures() {
			t.Release()
		}
	}
	b.device = nil
	b.encoder = nil
}

// Device returns the software device, or nil before Init.
func (b *SoftwareBackend) Device() atlas.Device {
	if b.device == nil {
		return nil
	}
	return b.device
}

// Encoder returns the software encoder, or nil before Init.
func (b *SoftwareBackend) Encoder() atlas.Encoder {
	if b.encoder == nil {
		return nil
	}
	return b.encoder
}

// SoftwareDevice returns the concrete device for readback, or nil before
// Init.
func (b *SoftwareBackend) SoftwareDevice() *software.Device {
	return b.device
}
