package backend

import (
	"errors"

	"github.com/gogpu/atlas"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when no registered backend can be
	// initialized.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// TextureBackend is the interface for atlas texture backends.
//
// Backends must be registered via Register() and are selected via
// Get() or InitDefault().
type TextureBackend interface {
	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// Init acquires the backend's device. It must be called before
	// Device or Encoder.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Device returns the device atlas textures are created on, or nil
	// before Init.
	Device() atlas.Device

	// Encoder returns the encoder passed to Atlas.BeforeFrame, or nil
	// before Init.
	Encoder() atlas.Encoder
}
