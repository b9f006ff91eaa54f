package atlas

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// TextureDescriptor describes a backing texture to create. Textures are
// always 2D, single-mip, sampled and copy destinations.
type TextureDescriptor struct {
	Label  string
	Size   Size
	Format gputypes.TextureFormat
}

// Device creates backing textures. It is called only from BeforeFrame.
type Device interface {
	CreateTexture(desc TextureDescriptor) (Texture, error)
}

// Texture is a GPU texture owned by the atlas.
type Texture interface {
	// View returns the view used for sampling.
	View() gpucontext.TextureView

	// Release destroys the texture. The atlas calls it once, after the
	// frames that may still reference the texture have completed.
	Release()
}

// Encoder records pixel uploads for the current frame.
type Encoder interface {
	// WriteTexture copies data into the rectangle (origin, size) of dst.
	// Rows of data are bytesPerRow apart.
	WriteTexture(dst Texture, origin Point, size Size, bytesPerRow uint32, data []byte) error
}

// Limiter is implemented by devices that report a maximum 2D texture
// dimension. New uses it as the default maximum texture size.
type Limiter interface {
	MaxTextureDimension2D() uint32
}
