package atlas

import (
	"slices"
	"sync"
	"unsafe"

	"github.com/gogpu/gpucontext"
)

// fakeDevice records texture creation and can be told to fail.
type fakeDevice struct {
	mu       sync.Mutex
	textures []*fakeTexture
	err      error
	limit    uint32
}

func (d *fakeDevice) CreateTexture(desc TextureDescriptor) (Texture, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	t := &fakeTexture{desc: desc}
	d.textures = append(d.textures, t)
	return t, nil
}

func (d *fakeDevice) created() []*fakeTexture {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.textures)
}

type limitedDevice struct {
	fakeDevice
}

func (d *limitedDevice) MaxTextureDimension2D() uint32 { return d.limit }

type fakeTexture struct {
	desc     TextureDescriptor
	released int
}

func (t *fakeTexture) View() gpucontext.TextureView {
	return gpucontext.NewTextureView(unsafe.Pointer(t))
}

func (t *fakeTexture) Release() { t.released++ }

type fakeWrite struct {
	dst         *fakeTexture
	origin      Point
	size        Size
	bytesPerRow uint32
	data        []byte
}

// fakeEncoder records writes. When failAfter is >= 0 the write with that
// index fails with err.
type fakeEncoder struct {
	writes    []fakeWrite
	failAfter int
	err       error
}

func newFakeEncoder() *fakeEncoder {
	return &fakeEncoder{failAfter: -1}
}

func (e *fakeEncoder) WriteTexture(dst Texture, origin Point, size Size, bytesPerRow uint32, data []byte) error {
	if e.failAfter >= 0 && len(e.writes) == e.failAfter {
		e.failAfter = -1
		return e.err
	}
	e.writes = append(e.writes, fakeWrite{
		dst:         dst.(*fakeTexture),
		origin:      origin,
		size:        size,
		bytesPerRow: bytesPerRow,
		data:        slices.Clone(data),
	})
	return nil
}

// solid returns a builder for a w x h tile of kind filled with v.
func solid(kind Kind, w, h int32, v byte) BuildFunc {
	return func() (*Content, error) {
		b := make([]byte, int(w)*int(h)*kind.BytesPerPixel())
		for i := range b {
			b[i] = v
		}
		return &Content{Size: Size{Width: w, Height: h}, Bytes: b}, nil
	}
}

func testKey(kind Kind, name string) Key {
	return NewKey(kind, SourceCustom, []byte(name))
}
