package atlas

import (
	"github.com/gogpu/gputypes"
)

// Default option values.
const (
	DefaultInitialTextureSize = 1024
	DefaultFramesInFlight     = 2
	DefaultStagingChunkSize   = 1 << 20
	DefaultLabel              = "atlas"

	// minTextureSize is the smallest backing texture the atlas creates.
	minTextureSize = 16
)

// Option configures an Atlas during creation.
//
// Example:
//
//	a, err := atlas.New(dev,
//	    atlas.WithInitialTextureSize(512),
//	    atlas.WithFramesInFlight(3),
//	)
type Option func(*config)

type config struct {
	initialSize    int32
	maxSize        int32
	framesInFlight int
	chunkSize      int
	label          string

	initialSet bool
}

func defaultConfig() config {
	return config{
		initialSize:    DefaultInitialTextureSize,
		framesInFlight: DefaultFramesInFlight,
		chunkSize:      DefaultStagingChunkSize,
		label:          DefaultLabel,
	}
}

// WithInitialTextureSize sets the side length of the first texture created
// for each kind. Larger tiles get a texture with the side doubled until
// the tile fits.
func WithInitialTextureSize(size int32) Option {
	return func(c *config) {
		c.initialSize = size
		c.initialSet = true
	}
}

// WithMaxTextureSize caps the side length of backing textures. Tiles
// larger than this fail with an AllocationError. When unset, the device's
// MaxTextureDimension2D is used if it implements Limiter, otherwise the
// WebGPU default limit.
func WithMaxTextureSize(size int32) Option {
	return func(c *config) {
		c.maxSize = size
	}
}

// WithFramesInFlight sets how many frames a released texture is kept alive
// before it is destroyed. Zero destroys textures immediately in Remove.
func WithFramesInFlight(n int) Option {
	return func(c *config) {
		c.framesInFlight = n
	}
}

// WithStagingChunkSize sets the size of pooled staging chunks.
func WithStagingChunkSize(size int) Option {
	return func(c *config) {
		c.chunkSize = size
	}
}

// WithLabel sets the prefix of backing texture labels.
func WithLabel(label string) Option {
	return func(c *config) {
		c.label = label
	}
}

// resolve fills values that depend on the device.
func (c *config) resolve(device Device) {
	if c.maxSize == 0 {
		limit := gputypes.DefaultLimits().MaxTextureDimension2D
		if l, ok := device.(Limiter); ok && l.MaxTextureDimension2D() > 0 {
			limit = l.MaxTextureDimension2D()
		}
		c.maxSize = int32(min(limit, 1<<15)) //nolint:gosec // clamped
	}
	if !c.initialSet && c.initialSize > c.maxSize {
		c.initialSize = c.maxSize
	}
}

func (c *config) validate() error {
	if c.maxSize < minTextureSize {
		return &ConfigError{Field: "MaxTextureSize", Reason: "must be at least 16"}
	}
	if c.initialSize < minTextureSize {
		return &ConfigError{Field: "InitialTextureSize", Reason: "must be at least 16"}
	}
	if c.initialSize > c.maxSize {
		return &ConfigError{Field: "InitialTextureSize", Reason: "must be at most MaxTextureSize"}
	}
	if c.framesInFlight < 0 {
		return &ConfigError{Field: "FramesInFlight", Reason: "must be non-negative"}
	}
	if c.chunkSize <= 0 {
		return &ConfigError{Field: "StagingChunkSize", Reason: "must be positive"}
	}
	return nil
}
