package atlas

import (
	"fmt"

	"github.com/gogpu/atlas/internal/slot"
)

// pendingUpload is a tile's pixel data waiting for the next BeforeFrame.
type pendingUpload struct {
	texture     TextureID
	tileID      uint32
	bounds      Bounds
	bytesPerRow uint32
	chunk       *stagingChunk
	offset      int
	length      int
}

func (u *pendingUpload) data() []byte {
	return u.chunk.buf[u.offset : u.offset+u.length]
}

// retiredTexture is a released GPU texture waiting for its frame fence.
type retiredTexture struct {
	id    TextureID
	gpu   Texture
	frame uint64
}

// atlasState is the data guarded by Atlas.mu.
type atlasState struct {
	cfg    config
	device Device

	tiles   map[Key]Tile
	storage [kindCount]slot.Table[backingTexture]

	// initializations lists textures to create in the next BeforeFrame,
	// in creation order. Uploads always target textures that are either
	// initialized or listed here.
	initializations []TextureID
	uploads         []pendingUpload
	staging         stagingBelt

	retired []retiredTexture

	// frame counts successful BeforeFrame calls.
	frame      uint64
	nextTileID uint32
}

func newAtlasState(device Device, cfg config) atlasState {
	return atlasState{
		cfg:     cfg,
		device:  device,
		tiles:   make(map[Key]Tile),
		staging: newStagingBelt(cfg.chunkSize),
	}
}

// insert places content for key and stages its upload. The content must
// be valid for key.Kind and fit within the maximum texture size.
func (s *atlasState) insert(key Key, c *Content) Tile {
	tex, bounds := s.allocate(key.Kind, c.Size)
	tex.live++

	s.nextTileID++
	tile := Tile{TextureID: tex.id, TileID: s.nextTileID, Bounds: bounds}
	s.tiles[key] = tile

	chunk, off := s.staging.write(c.Bytes)
	s.uploads = append(s.uploads, pendingUpload{
		texture:     tex.id,
		tileID:      tile.TileID,
		bounds:      bounds,
		bytesPerRow: uint32(int(c.Size.Width) * key.Kind.BytesPerPixel()), //nolint:gosec // bounded by texture size
		chunk:       chunk,
		offset:      off,
		length:      len(c.Bytes),
	})
	return tile
}

// allocate finds room for a tile, newest texture first, and creates a new
// texture when none has space.
func (s *atlasState) allocate(kind Kind, size Size) (*backingTexture, Bounds) {
	var (
		found  *backingTexture
		bounds Bounds
	)
	s.storage[kind].Reverse(func(_ uint32, t *backingTexture) bool {
		if b, ok := t.allocate(size); ok {
			found, bounds = t, b
			return false
		}
		return true
	})
	if found != nil {
		return found, bounds
	}

	tex := s.pushTexture(kind, size)
	b, ok := tex.allocate(size)
	if !ok {
		panic(fmt.Sprintf("atlas: fresh texture %v cannot hold %v", tex.id, size))
	}
	return tex, b
}

// pushTexture adds a texture able to hold size, reusing the lowest freed
// slot, and queues it for initialization.
func (s *atlasState) pushTexture(kind Kind, size Size) *backingTexture {
	side := textureSide(size, s.cfg.initialSize, s.cfg.maxSize)
	_, tex := s.storage[kind].Push(func(index uint32) *backingTexture {
		return newBackingTexture(TextureID{Kind: kind, Index: index}, side)
	})
	s.initializations = append(s.initializations, tex.id)
	Logger().Debug("atlas: texture allocated", "id", tex.id, "size", tex.size)
	return tex
}

// texture returns the live texture for id and panics on a stale id.
func (s *atlasState) texture(id TextureID) *backingTexture {
	if !id.Kind.Valid() {
		panic(fmt.Sprintf("atlas: invalid texture id %v", id))
	}
	return s.storage[id.Kind].Get(id.Index)
}

// remove drops key and releases its texture once no key references it.
func (s *atlasState) remove(key Key) bool {
	tile, ok := s.tiles[key]
	if !ok {
		return false
	}
	delete(s.tiles, key)

	tex := s.texture(tile.TextureID)
	tex.free(tile.Bounds)
	s.uploads = deleteUploads(s.uploads, func(u *pendingUpload) bool {
		return u.tileID == tile.TileID
	})

	tex.live--
	if tex.live < 0 {
		panic(fmt.Sprintf("atlas: negative reference count on %v", tex.id))
	}
	if tex.live == 0 {
		s.release(tex.id)
	}
	return true
}

// release frees a texture's slot, drops pending work targeting it and
// retires its GPU texture.
func (s *atlasState) release(id TextureID) {
	tex := s.storage[id.Kind].Release(id.Index)

	s.initializations = deleteIDs(s.initializations, id)
	s.uploads = deleteUploads(s.uploads, func(u *pendingUpload) bool {
		return u.texture == id
	})

	if tex.gpu == nil {
		Logger().Debug("atlas: texture released before initialization", "id", id)
		return
	}
	if s.cfg.framesInFlight == 0 {
		tex.gpu.Release()
		Logger().Debug("atlas: texture destroyed", "id", id)
		return
	}
	s.retired = append(s.retired, retiredTexture{id: id, gpu: tex.gpu, frame: s.frame})
	Logger().Debug("atlas: texture retired", "id", id, "frame", s.frame)
}

// flush creates pending textures and writes pending uploads through enc.
// On failure the work not yet done stays queued and the frame is not
// counted, since it will not be submitted.
func (s *atlasState) flush(enc Encoder) (int, error) {
	for i, id := range s.initializations {
		tex := s.texture(id)
		gpu, err := s.device.CreateTexture(tex.descriptor(s.cfg.label))
		if err != nil {
			s.initializations = s.initializations[i:]
			Logger().Warn("atlas: texture creation failed", "id", id, "err", err)
			return 0, fmt.Errorf("atlas: create texture %v: %w", id, err)
		}
		tex.gpu = gpu
		Logger().Debug("atlas: texture created", "id", id, "size", tex.size, "format", tex.format)
	}
	s.initializations = s.initializations[:0]

	for i := range s.uploads {
		u := &s.uploads[i]
		tex := s.texture(u.texture)
		if err := enc.WriteTexture(tex.gpu, u.bounds.Origin, u.bounds.Size, u.bytesPerRow, u.data()); err != nil {
			id := u.texture
			Logger().Warn("atlas: upload failed", "texture", id, "bounds", u.bounds, "err", err)
			s.uploads = append(s.uploads[:0], s.uploads[i:]...)
			return i, fmt.Errorf("atlas: upload to %v: %w", id, err)
		}
	}
	n := len(s.uploads)
	clear(s.uploads)
	s.uploads = s.uploads[:0]
	s.staging.finish()
	s.frame++
	return n, nil
}

// afterFrame recycles staging memory and destroys textures whose frame
// fence has passed.
func (s *atlasState) afterFrame() {
	s.staging.recycle()

	kept := s.retired[:0]
	for _, r := range s.retired {
		if s.frame >= r.frame+uint64(s.cfg.framesInFlight) { //nolint:gosec // validated non-negative
			r.gpu.Release()
			Logger().Debug("atlas: texture destroyed", "id", r.id, "frame", s.frame)
			continue
		}
		kept = append(kept, r)
	}
	clear(s.retired[len(kept):])
	s.retired = kept
}

// close destroys every GPU texture and drops all state.
func (s *atlasState) close() {
	for k := range s.storage {
		s.storage[k].Each(func(_ uint32, t *backingTexture) bool {
			if t.gpu != nil {
				t.gpu.Release()
			}
			return true
		})
		s.storage[k].Clear()
	}
	for _, r := range s.retired {
		r.gpu.Release()
	}
	s.retired = nil
	s.tiles = make(map[Key]Tile)
	s.initializations = nil
	s.uploads = nil
	s.staging.reset()
}

func deleteUploads(uploads []pendingUpload, match func(*pendingUpload) bool) []pendingUpload {
	kept := uploads[:0]
	for i := range uploads {
		if !match(&uploads[i]) {
			kept = append(kept, uploads[i])
		}
	}
	clear(uploads[len(kept):])
	return kept
}

func deleteIDs(ids []TextureID, id TextureID) []TextureID {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}
