package atlas

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Content is the pixel data of one tile. Rows are tightly packed: Bytes
// holds Size.Width * Size.Height * BytesPerPixel bytes for the key's kind.
type Content struct {
	Size  Size
	Bytes []byte
}

func (c *Content) validate(kind Kind) error {
	if c.Size.IsEmpty() {
		return fmt.Errorf("%w: size %v", ErrInvalidContent, c.Size)
	}
	if want := c.Size.Area() * kind.BytesPerPixel(); len(c.Bytes) != want {
		return fmt.Errorf("%w: %v %v tile has %d bytes, want %d",
			ErrInvalidContent, kind, c.Size, len(c.Bytes), want)
	}
	return nil
}

// BuildFunc produces the content of a tile on a cache miss. Returning nil
// content means there is nothing to draw (for example a space glyph) and
// nothing is stored.
//
// BuildFunc runs while the Atlas lock is held. It must not call methods of
// the same Atlas.
type BuildFunc func() (*Content, error)

// Stats reports atlas counters.
type Stats struct {
	Hits   uint64
	Misses uint64

	// Tiles is the number of live keys.
	Tiles int

	// Textures is the number of live backing textures per kind.
	Textures [kindCount]int

	PendingTextures int
	PendingUploads  int

	// RetiredTextures counts released textures awaiting destruction.
	RetiredTextures int

	// StagedBytes is the staging memory used by pending uploads.
	StagedBytes int

	// Frame is the number of successful BeforeFrame calls so far.
	Frame uint64
}

// Atlas packs tiles into backing textures and stages their uploads.
//
// Atlas is safe for concurrent use. Every method runs under one mutex, so
// concurrent GetOrInsertWith calls for the same key build once.
type Atlas struct {
	mu     sync.Mutex
	state  atlasState
	closed bool

	// Statistics (atomic for lock-free reads)
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates an atlas that creates its textures on device.
func New(device Device, opts ...Option) (*Atlas, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.resolve(device)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Atlas{state: newAtlasState(device, cfg)}, nil
}

// GetOrInsertWith returns the tile stored for key. On a miss it calls
// build, places the content and stages its upload for the next
// BeforeFrame; the returned tile is usable immediately.
//
// It returns false with no error when build returns nil content. Errors
// from build are wrapped in a *BuildError. Oversized content fails with an
// *AllocationError. The atlas is unchanged whenever an error is returned.
func (a *Atlas) GetOrInsertWith(key Key, build BuildFunc) (Tile, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return Tile{}, false, ErrClosed
	}
	if tile, ok := a.state.tiles[key]; ok {
		a.hits.Add(1)
		return tile, true, nil
	}
	if !key.Kind.Valid() {
		return Tile{}, false, fmt.Errorf("%w: %v", ErrInvalidKind, key.Kind)
	}
	if build == nil {
		return Tile{}, false, ErrNilBuilder
	}
	a.misses.Add(1)

	content, err := build()
	if err != nil {
		return Tile{}, false, &BuildError{Key: key, Err: err}
	}
	if content == nil {
		return Tile{}, false, nil
	}
	if err := content.validate(key.Kind); err != nil {
		return Tile{}, false, err
	}
	if maxSide := a.state.cfg.maxSize; content.Size.Width > maxSide || content.Size.Height > maxSide {
		return Tile{}, false, &AllocationError{Kind: key.Kind, Size: content.Size, Max: maxSide}
	}

	return a.state.insert(key, content), true, nil
}

// Get returns the tile stored for key without building.
func (a *Atlas) Get(key Key) (Tile, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tile, ok := a.state.tiles[key]
	return tile, ok
}

// Contains reports whether key has a tile.
func (a *Atlas) Contains(key Key) bool {
	_, ok := a.Get(key)
	return ok
}

// Remove drops key. When the last key of a backing texture is removed the
// texture's slot is freed for reuse and the texture is destroyed once the
// configured number of frames has passed. Removing an absent key is a
// no-op. It reports whether key was present.
func (a *Atlas) Remove(key Key) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return false
	}
	return a.state.remove(key)
}

// BeforeFrame creates textures allocated since the last frame and writes
// every pending upload through enc. Call it once per frame before
// submitting draws that sample new tiles.
//
// When texture creation or an upload fails, the error is returned and the
// remaining work stays queued for the next call.
func (a *Atlas) BeforeFrame(enc Encoder) error {
	if enc == nil {
		return ErrNilEncoder
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	n, err := a.state.flush(enc)
	if err != nil {
		return err
	}
	if n > 0 {
		Logger().Debug("atlas: uploads written", "count", n, "frame", a.state.frame)
	}
	return nil
}

// AfterFrame recycles staging memory used by the last BeforeFrame and
// destroys released textures no longer in flight. Call it after the frame's
// commands are submitted.
func (a *Atlas) AfterFrame() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.state.afterFrame()
}

// TextureInfo describes the backing texture id. It panics if id does not
// refer to a live texture; ids are only valid while a tile in them is.
func (a *Atlas) TextureInfo(id TextureID) TextureInfo {
	a.mu.Lock()
	defer a.mu.Unlock()

	tex := a.state.texture(id)
	info := TextureInfo{ID: id, Size: tex.size, Format: tex.format}
	if tex.gpu != nil {
		info.View = tex.gpu.View()
	}
	return info
}

// TextureIDs returns the ids of the live textures of kind in index order.
func (a *Atlas) TextureIDs(kind Kind) []TextureID {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !kind.Valid() {
		return nil
	}
	var ids []TextureID
	a.state.storage[kind].Each(func(_ uint32, t *backingTexture) bool {
		ids = append(ids, t.id)
		return true
	})
	return ids
}

// TextureCount returns the number of live textures of kind.
func (a *Atlas) TextureCount(kind Kind) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !kind.Valid() {
		return 0
	}
	return a.state.storage[kind].Live()
}

// Len returns the number of live keys.
func (a *Atlas) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.state.tiles)
}

// Stats returns a snapshot of the atlas counters.
func (a *Atlas) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	st := Stats{
		Hits:            a.hits.Load(),
		Misses:          a.misses.Load(),
		Tiles:           len(a.state.tiles),
		PendingTextures: len(a.state.initializations),
		PendingUploads:  len(a.state.uploads),
		RetiredTextures: len(a.state.retired),
		StagedBytes:     a.state.staging.stagedBytes(),
		Frame:           a.state.frame,
	}
	for _, k := range Kinds {
		st.Textures[k] = a.state.storage[k].Live()
	}
	return st
}

// Close destroys every texture, including retired ones, and drops all
// tiles. Close must not be called while the GPU may still use the
// textures. Further calls to GetOrInsertWith and BeforeFrame return
// ErrClosed. Close is idempotent.
func (a *Atlas) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	a.state.close()
	return nil
}
