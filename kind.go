package atlas

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Kind partitions tiles by pixel format. Each kind owns its own backing
// textures.
type Kind uint8

const (
	// Monochrome tiles are single-channel coverage masks (R8Unorm).
	Monochrome Kind = iota

	// Polychrome tiles carry full color (RGBA8Unorm).
	Polychrome
)

// kindCount is the number of tile kinds.
const kindCount = 2

// Kinds lists every tile kind in table order.
var Kinds = [kindCount]Kind{Monochrome, Polychrome}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Monochrome:
		return "Monochrome"
	case Polychrome:
		return "Polychrome"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k < kindCount
}

// Format returns the texture format used by textures of this kind.
func (k Kind) Format() gputypes.TextureFormat {
	switch k {
	case Polychrome:
		return gputypes.TextureFormatRGBA8Unorm
	default:
		return gputypes.TextureFormatR8Unorm
	}
}

// BytesPerPixel returns the number of bytes per pixel for the kind.
func (k Kind) BytesPerPixel() int {
	return BytesPerPixel(k.Format())
}

// BytesPerPixel returns the texel size of the formats atlas textures use.
// It panics on any other format.
func BytesPerPixel(f gputypes.TextureFormat) int {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatRGBA8Unorm:
		return 4
	default:
		panic(fmt.Sprintf("atlas: unsupported texture format %v", f))
	}
}
