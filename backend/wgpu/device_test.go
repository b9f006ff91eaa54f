package wgpu

import (
	"errors"
	"os"
	"testing"

	"github.com/gogpu/atlas"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func TestNewNil(t *testing.T) {
	if _, err := New(nil, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("New(nil, nil) error = %v, want ErrNilDevice", err)
	}
	if _, err := FromProvider(nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("FromProvider(nil) error = %v, want ErrNilDevice", err)
	}
}

type foreignProvider struct{}

func (foreignProvider) Device() gpucontext.Device             { return struct{}{} }
func (foreignProvider) Queue() gpucontext.Queue               { return struct{}{} }
func (foreignProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }
func (foreignProvider) Adapter() gpucontext.Adapter           { return nil }
func (foreignProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

func TestFromProviderForeignHandles(t *testing.T) {
	_, err := FromProvider(foreignProvider{})
	if !errors.Is(err, ErrUnsupportedProvider) {
		t.Errorf("FromProvider() error = %v, want ErrUnsupportedProvider", err)
	}
}

func TestTextureDescriptor(t *testing.T) {
	desc := atlas.TextureDescriptor{
		Label:  "atlas Monochrome#0",
		Size:   atlas.Size{Width: 1024, Height: 512},
		Format: atlas.Monochrome.Format(),
	}
	td := textureDescriptor(desc)
	if td.Size.Width != 1024 || td.Size.Height != 512 || td.Size.DepthOrArrayLayers != 1 {
		t.Errorf("Size = %+v", td.Size)
	}
	if td.Format != gputypes.TextureFormatR8Unorm || td.Dimension != gputypes.TextureDimension2D {
		t.Errorf("Format/Dimension = %v/%v", td.Format, td.Dimension)
	}
	if td.Usage&gputypes.TextureUsageCopyDst == 0 || td.Usage&gputypes.TextureUsageTextureBinding == 0 {
		t.Errorf("Usage = %v, want CopyDst|TextureBinding", td.Usage)
	}
	if td.MipLevelCount != 1 || td.SampleCount != 1 || td.Label != desc.Label {
		t.Errorf("descriptor = %+v", td)
	}

	vd := viewDescriptor(desc)
	if vd.Dimension != gputypes.TextureViewDimension2D || vd.Format != desc.Format {
		t.Errorf("view descriptor = %+v", vd)
	}
}

func TestWriteArgs(t *testing.T) {
	tex := &Texture{size: atlas.Size{Width: 256, Height: 256}}
	dst, layout, extent := writeArgs(tex, atlas.Point{X: 16, Y: 32}, atlas.Size{Width: 10, Height: 7}, 40)
	if dst.Origin.X != 16 || dst.Origin.Y != 32 || dst.Aspect != gputypes.TextureAspectAll {
		t.Errorf("dst = %+v", dst)
	}
	if layout.BytesPerRow != 40 || layout.RowsPerImage != 7 || layout.Offset != 0 {
		t.Errorf("layout = %+v", layout)
	}
	if extent.Width != 10 || extent.Height != 7 || extent.DepthOrArrayLayers != 1 {
		t.Errorf("extent = %+v", extent)
	}
}

type otherTexture struct{ atlas.Texture }

func TestEncoderForeignTexture(t *testing.T) {
	enc := &Encoder{}
	err := enc.WriteTexture(otherTexture{}, atlas.Point{}, atlas.Size{Width: 1, Height: 1}, 1, []byte{0})
	if !errors.Is(err, ErrForeignTexture) {
		t.Errorf("WriteTexture() error = %v, want ErrForeignTexture", err)
	}
}

func TestTextureViewFromNil(t *testing.T) {
	if TextureViewFrom(gpucontext.TextureView{}) != nil {
		t.Error("TextureViewFrom(nil handle) should be nil")
	}
}

func TestBackendBeforeInit(t *testing.T) {
	b := &Backend{}
	if b.Name() != "wgpu" {
		t.Errorf("Name() = %q", b.Name())
	}
	if b.Device() != nil || b.Encoder() != nil {
		t.Error("Device/Encoder should be nil before Init")
	}
	b.Close()
}

// TestBackendAtlas needs a GPU adapter; set ATLAS_GPU_TESTS=1 to run it.
func TestBackendAtlas(t *testing.T) {
	if os.Getenv("ATLAS_GPU_TESTS") != "1" {
		t.Skip("set ATLAS_GPU_TESTS=1 to run GPU tests")
	}
	b := &Backend{}
	if err := b.Init(); err != nil {
		t.Skipf("no GPU available: %v", err)
	}
	defer b.Close()

	a, err := atlas.New(b.Device(), atlas.WithInitialTextureSize(256))
	if err != nil {
		t.Fatalf("atlas.New() error = %v", err)
	}
	defer a.Close()

	key := atlas.NewKey(atlas.Monochrome, atlas.SourceCustom, []byte("gpu"))
	tile, ok, err := a.GetOrInsertWith(key, func() (*atlas.Content, error) {
		return &atlas.Content{Size: atlas.Size{Width: 4, Height: 4}, Bytes: make([]byte, 16)}, nil
	})
	if err != nil || !ok {
		t.Fatalf("GetOrInsertWith() = %v, %v", ok, err)
	}
	if err := a.BeforeFrame(b.Encoder()); err != nil {
		t.Fatalf("BeforeFrame() error = %v", err)
	}
	a.AfterFrame()
	if TextureViewFrom(a.TextureInfo(tile.TextureID).View) == nil {
		t.Error("no view after BeforeFrame")
	}
}
