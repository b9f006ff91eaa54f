// Package alloc implements the 2-D region allocator used by atlas textures.
//
// The allocator is a bucketed shelf packer. Requested heights are rounded up
// to a size class and every class keeps its own list of shelves, so an
// allocation only scans shelves that can actually hold it. Within a shelf,
// free space is tracked as sorted x-intervals that coalesce when regions are
// freed. A shelf whose last region is freed becomes an empty shelf; empty
// neighbours merge, may be re-split for any class, and trailing empty
// shelves return to the untouched area at the bottom of the surface.
//
// Allocator is not safe for concurrent use; the atlas serializes access.
package alloc

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrFull is returned when no free rectangle can hold the request.
	ErrFull = errors.New("alloc: no space for region")

	// ErrInvalidSize is returned for non-positive region dimensions.
	ErrInvalidSize = errors.New("alloc: region size must be positive")
)

// Region is a rectangle handed out by an Allocator.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects reports whether two regions share at least one pixel.
func (r Region) Intersects(o Region) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// String returns a string representation of the region.
func (r Region) String() string {
	return fmt.Sprintf("Region(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// span is a free horizontal interval on a shelf.
type span struct {
	x     int
	width int
}

// shelf is a horizontal strip of the surface.
type shelf struct {
	y      int
	height int

	// class is the size class served by this shelf, or -1 when empty.
	class int

	// free holds the free intervals sorted by x.
	free []span

	// live counts regions currently allocated on the shelf.
	live int
}

func (s *shelf) empty() bool { return s.class < 0 }

// fit returns the index of the first free interval at least w wide.
func (s *shelf) fit(w int) int {
	for i, sp := range s.free {
		if sp.width >= w {
			return i
		}
	}
	return -1
}

// Allocator packs rectangles into a fixed width x height surface.
type Allocator struct {
	width  int
	height int

	// shelves are sorted by y and tile the range [0, top).
	shelves []*shelf
	top     int

	// classes indexes non-empty shelves by size class.
	classes map[int][]*shelf

	allocCount int
	usedArea   int
}

// New creates an allocator for a width x height surface.
func New(width, height int) *Allocator {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Allocator{
		width:   width,
		height:  height,
		shelves: make([]*shelf, 0, 16),
		classes: make(map[int][]*shelf),
	}
}

// Size returns the surface dimensions.
func (a *Allocator) Size() (width, height int) {
	return a.width, a.height
}

// sizeClass rounds h up to its bucket height.
func (a *Allocator) sizeClass(h int) int {
	var c int
	switch {
	case h <= 32:
		c = alignUp(h, 8)
	case h <= 128:
		c = alignUp(h, 16)
	default:
		c = alignUp(h, 32)
	}
	if c > a.height {
		c = a.height
	}
	return c
}

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}

// Allocate reserves a width x height rectangle.
// It returns ErrFull when the surface has no room for it.
func (a *Allocator) Allocate(width, height int) (Region, error) {
	if width <= 0 || height <= 0 {
		return Region{}, ErrInvalidSize
	}
	if width > a.width || height > a.height {
		return Region{}, ErrFull
	}

	class := a.sizeClass(height)

	for _, s := range a.classes[class] {
		if i := s.fit(width); i >= 0 {
			return a.take(s, i, width, height), nil
		}
	}

	s := a.newShelf(class)
	if s == nil {
		return Region{}, ErrFull
	}
	return a.take(s, 0, width, height), nil
}

// newShelf finds room for a shelf of the given class, reusing an empty
// shelf before growing into the untouched area.
func (a *Allocator) newShelf(class int) *shelf {
	for i, s := range a.shelves {
		if !s.empty() || s.height < class {
			continue
		}
		if rest := s.height - class; rest > 0 {
			tail := &shelf{y: s.y + class, height: rest, class: -1}
			a.shelves = append(a.shelves, nil)
			copy(a.shelves[i+2:], a.shelves[i+1:])
			a.shelves[i+1] = tail
		}
		s.height = class
		a.activate(s, class)
		return s
	}

	if a.top+class > a.height {
		return nil
	}
	s := &shelf{y: a.top, height: class}
	a.top += class
	a.shelves = append(a.shelves, s)
	a.activate(s, class)
	return s
}

func (a *Allocator) activate(s *shelf, class int) {
	s.class = class
	s.free = append(s.free[:0], span{x: 0, width: a.width})
	a.classes[class] = append(a.classes[class], s)
}

// take carves a region from the i-th free interval of s.
func (a *Allocator) take(s *shelf, i, width, height int) Region {
	sp := &s.free[i]
	r := Region{X: sp.x, Y: s.y, Width: width, Height: height}
	sp.x += width
	sp.width -= width
	if sp.width == 0 {
		s.free = append(s.free[:i], s.free[i+1:]...)
	}
	s.live++
	a.allocCount++
	a.usedArea += width * height
	return r
}

// Free returns a region previously produced by Allocate.
// Freeing an unknown or already freed region corrupts the allocator and
// panics.
func (a *Allocator) Free(r Region) {
	idx := a.shelfAt(r.Y)
	if idx < 0 {
		panic(fmt.Sprintf("alloc: free of unknown %v", r))
	}
	s := a.shelves[idx]
	if s.empty() || r.Height > s.height || r.X < 0 || r.X+r.Width > a.width {
		panic(fmt.Sprintf("alloc: free of unknown %v", r))
	}

	// Insert the interval, keeping free sorted, then coalesce.
	i := sort.Search(len(s.free), func(i int) bool { return s.free[i].x >= r.X })
	if i < len(s.free) && r.X+r.Width > s.free[i].x {
		panic(fmt.Sprintf("alloc: double free of %v", r))
	}
	if i > 0 && s.free[i-1].x+s.free[i-1].width > r.X {
		panic(fmt.Sprintf("alloc: double free of %v", r))
	}
	s.free = append(s.free, span{})
	copy(s.free[i+1:], s.free[i:])
	s.free[i] = span{x: r.X, width: r.Width}

	if i+1 < len(s.free) && s.free[i].x+s.free[i].width == s.free[i+1].x {
		s.free[i].width += s.free[i+1].width
		s.free = append(s.free[:i+1], s.free[i+2:]...)
	}
	if i > 0 && s.free[i-1].x+s.free[i-1].width == s.free[i].x {
		s.free[i-1].width += s.free[i].width
		s.free = append(s.free[:i], s.free[i+1:]...)
	}

	s.live--
	a.allocCount--
	a.usedArea -= r.Width * r.Height

	if s.live == 0 {
		a.retire(idx)
	}
}

// shelfAt returns the index of the shelf starting at y, or -1.
func (a *Allocator) shelfAt(y int) int {
	i := sort.Search(len(a.shelves), func(i int) bool { return a.shelves[i].y >= y })
	if i < len(a.shelves) && a.shelves[i].y == y {
		return i
	}
	return -1
}

// retire turns the shelf at idx into an empty shelf and merges it with
// empty neighbours.
func (a *Allocator) retire(idx int) {
	s := a.shelves[idx]
	list := a.classes[s.class]
	for i, c := range list {
		if c == s {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(a.classes, s.class)
	} else {
		a.classes[s.class] = list
	}
	s.class = -1
	s.free = s.free[:0]

	if idx+1 < len(a.shelves) && a.shelves[idx+1].empty() {
		s.height += a.shelves[idx+1].height
		a.shelves = append(a.shelves[:idx+1], a.shelves[idx+2:]...)
	}
	if idx > 0 && a.shelves[idx-1].empty() {
		a.shelves[idx-1].height += s.height
		a.shelves = append(a.shelves[:idx], a.shelves[idx+1:]...)
	}

	for n := len(a.shelves); n > 0 && a.shelves[n-1].empty(); n = len(a.shelves) {
		a.top -= a.shelves[n-1].height
		a.shelves = a.shelves[:n-1]
	}
}

// Reset clears all allocations.
func (a *Allocator) Reset() {
	a.shelves = a.shelves[:0]
	a.top = 0
	a.classes = make(map[int][]*shelf)
	a.allocCount = 0
	a.usedArea = 0
}

// IsEmpty reports whether no regions are allocated.
func (a *Allocator) IsEmpty() bool {
	return a.allocCount == 0
}

// AllocCount returns the number of live regions.
func (a *Allocator) AllocCount() int {
	return a.allocCount
}

// UsedArea returns the total area of live regions.
func (a *Allocator) UsedArea() int {
	return a.usedArea
}

// Utilization returns the fraction of the surface covered by live regions.
func (a *Allocator) Utilization() float64 {
	total := a.width * a.height
	if total == 0 {
		return 0
	}
	return float64(a.usedArea) / float64(total)
}

// ShelfCount returns the number of shelves, empty ones included.
func (a *Allocator) ShelfCount() int {
	return len(a.shelves)
}
