// Package software implements atlas textures in host memory.
//
// It backs tests and headless tools: textures are byte slices, uploads are
// row copies and the resulting pages can be read back as images.
package software

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/atlas"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Errors returned by the software backend.
var (
	// ErrForeignTexture is returned when an Encoder is given a texture
	// that was not created by this package.
	ErrForeignTexture = errors.New("software: texture not created by software device")

	// ErrReleased is returned when writing to a released texture.
	ErrReleased = errors.New("software: texture released")

	// ErrOutOfBounds is returned for writes outside the texture or with
	// too little data.
	ErrOutOfBounds = errors.New("software: write out of bounds")
)

// DefaultMaxDimension is the texture size limit reported by NewDevice.
var DefaultMaxDimension = gputypes.DefaultLimits().MaxTextureDimension2D

// Device creates host-memory textures.
type Device struct {
	mu       sync.Mutex
	maxDim   uint32
	textures []*Texture
}

// NewDevice creates a device with the default WebGPU texture limit.
func NewDevice() *Device {
	return &Device{maxDim: DefaultMaxDimension}
}

// NewDeviceWithLimit creates a device reporting maxDim as its 2D texture
// limit.
func NewDeviceWithLimit(maxDim uint32) *Device {
	return &Device{maxDim: maxDim}
}

// MaxTextureDimension2D implements atlas.Limiter.
func (d *Device) MaxTextureDimension2D() uint32 {
	return d.maxDim
}

// CreateTexture implements atlas.Device.
func (d *Device) CreateTexture(desc atlas.TextureDescriptor) (atlas.Texture, error) {
	if desc.Size.IsEmpty() {
		return nil, fmt.Errorf("software: invalid texture size %v", desc.Size)
	}
	if uint32(desc.Size.Width) > d.maxDim || uint32(desc.Size.Height) > d.maxDim { //nolint:gosec // positive
		return nil, fmt.Errorf("software: texture size %v exceeds limit %d", desc.Size, d.maxDim)
	}
	bpp := atlas.BytesPerPixel(desc.Format)
	t := &Texture{
		label:  desc.Label,
		size:   desc.Size,
		format: desc.Format,
		bpp:    bpp,
		pix:    make([]byte, desc.Size.Area()*bpp),
	}

	d.mu.Lock()
	d.textures = append(d.textures, t)
	d.mu.Unlock()
	return t, nil
}

// Textures returns every texture created so far, released or not.
func (d *Device) Textures() []*Texture {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Texture(nil), d.textures...)
}

// Texture is a host-memory texture.
type Texture struct {
	label    string
	size     atlas.Size
	format   gputypes.TextureFormat
	bpp      int
	pix      []byte
	released atomic.Bool
}

// TextureFromView returns the texture behind a view created by View, or
// nil for a nil view.
func TextureFromView(v gpucontext.TextureView) *Texture {
	if v.IsNil() {
		return nil
	}
	return (*Texture)(v.Pointer())
}

// View implements atlas.Texture.
func (t *Texture) View() gpucontext.TextureView {
	return gpucontext.NewTextureView(unsafe.Pointer(t))
}

// Release implements atlas.Texture.
func (t *Texture) Release() {
	t.released.Store(true)
}

// Released reports whether Release was called.
func (t *Texture) Released() bool {
	return t.released.Load()
}

// Label returns the label the texture was created with.
func (t *Texture) Label() string { return t.label }

// Size returns the texture dimensions.
func (t *Texture) Size() atlas.Size { return t.size }

// Format returns the texel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Pixels returns the texture's texel storage, tightly packed row-major.
func (t *Texture) Pixels() []byte { return t.pix }

// Image returns the texture as an *image.Gray (R8) or *image.RGBA (RGBA8)
// sharing its storage.
func (t *Texture) Image() image.Image {
	r := image.Rect(0, 0, int(t.size.Width), int(t.size.Height))
	if t.bpp == 1 {
		return &image.Gray{Pix: t.pix, Stride: int(t.size.Width), Rect: r}
	}
	return &image.RGBA{Pix: t.pix, Stride: int(t.size.Width) * 4, Rect: r}
}

// Alpha returns an R8 texture as an *image.Alpha sharing its storage, for
// use as a draw mask. It returns nil for RGBA8 textures.
func (t *Texture) Alpha() *image.Alpha {
	if t.bpp != 1 {
		return nil
	}
	r := image.Rect(0, 0, int(t.size.Width), int(t.size.Height))
	return &image.Alpha{Pix: t.pix, Stride: int(t.size.Width), Rect: r}
}

// Encoder copies uploads into software textures immediately.
type Encoder struct {
	writes atomic.Int64
	bytes  atomic.Int64
}

// NewEncoder creates an encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// WriteTexture implements atlas.Encoder.
func (e *Encoder) WriteTexture(dst atlas.Texture, origin atlas.Point, size atlas.Size, bytesPerRow uint32, data []byte) error {
	t, ok := dst.(*Texture)
	if !ok {
		return ErrForeignTexture
	}
	if t.Released() {
		return ErrReleased
	}
	b := atlas.Bounds{Origin: origin, Size: size}
	if size.IsEmpty() || !(atlas.Bounds{Size: t.size}).ContainsBounds(b) {
		return fmt.Errorf("%w: %v in %v", ErrOutOfBounds, b, t.size)
	}
	row := int(size.Width) * t.bpp
	stride := int(bytesPerRow)
	if stride < row || len(data) < stride*(int(size.Height)-1)+row {
		return fmt.Errorf("%w: %d bytes for %v", ErrOutOfBounds, len(data), size)
	}

	dstStride := int(t.size.Width) * t.bpp
	for y := range int(size.Height) {
		d := (int(origin.Y)+y)*dstStride + int(origin.X)*t.bpp
		copy(t.pix[d:d+row], data[y*stride:y*stride+row])
	}
	e.writes.Add(1)
	e.bytes.Add(int64(row) * int64(size.Height))
	return nil
}

// Writes returns the number of successful WriteTexture calls.
func (e *Encoder) Writes() int {
	return int(e.writes.Load())
}

// BytesWritten returns the number of texel bytes copied.
func (e *Encoder) BytesWritten() int64 {
	return e.bytes.Load()
}
