package atlas

// maxFreeChunks bounds the number of idle staging chunks kept for reuse.
const maxFreeChunks = 4

// stagingChunk is a block of host memory holding upload bytes.
type stagingChunk struct {
	buf  []byte
	used int
}

func (c *stagingChunk) remaining() int {
	return len(c.buf) - c.used
}

// stagingBelt hands out staging memory for pending uploads.
//
// Chunks move through three lists: active chunks receive bytes for the
// next flush, submitted chunks were handed to an encoder by BeforeFrame
// and must stay untouched until AfterFrame, and free chunks are ready for
// reuse. Uploads larger than the chunk size get a dedicated chunk that is
// dropped instead of pooled.
type stagingBelt struct {
	chunkSize int

	active    []*stagingChunk
	submitted []*stagingChunk
	free      []*stagingChunk

	// allocated counts chunks created over the belt's lifetime.
	allocated int
}

func newStagingBelt(chunkSize int) stagingBelt {
	return stagingBelt{chunkSize: chunkSize}
}

// write copies data into staging memory and returns its location.
func (b *stagingBelt) write(data []byte) (*stagingChunk, int) {
	c := b.chunkFor(len(data))
	off := c.used
	copy(c.buf[off:], data)
	c.used += len(data)
	return c, off
}

func (b *stagingBelt) chunkFor(n int) *stagingChunk {
	for _, c := range b.active {
		if c.remaining() >= n {
			return c
		}
	}
	if n <= b.chunkSize && len(b.free) > 0 {
		c := b.free[len(b.free)-1]
		b.free = b.free[:len(b.free)-1]
		b.active = append(b.active, c)
		return c
	}
	c := &stagingChunk{buf: make([]byte, max(n, b.chunkSize))}
	b.allocated++
	b.active = append(b.active, c)
	return c
}

// finish marks every active chunk as handed to the encoder.
func (b *stagingBelt) finish() {
	b.submitted = append(b.submitted, b.active...)
	clear(b.active)
	b.active = b.active[:0]
}

// recycle returns submitted chunks to the free pool.
func (b *stagingBelt) recycle() {
	for _, c := range b.submitted {
		if len(c.buf) != b.chunkSize || len(b.free) >= maxFreeChunks {
			continue
		}
		c.used = 0
		b.free = append(b.free, c)
	}
	clear(b.submitted)
	b.submitted = b.submitted[:0]
}

// stagedBytes returns the bytes held by active chunks.
func (b *stagingBelt) stagedBytes() int {
	n := 0
	for _, c := range b.active {
		n += c.used
	}
	return n
}

func (b *stagingBelt) reset() {
	b.active = nil
	b.submitted = nil
	b.free = nil
}
