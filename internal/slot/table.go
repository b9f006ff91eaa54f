// Package slot provides an index-stable table with reusable free slots.
package slot

import (
	"fmt"
	"slices"
)

// Table is an ordered list of optional entries. Released entries leave a
// nil hole whose index goes to the free set; Push fills the lowest hole
// before appending.
//
// An index is in the free set if and only if its entry is nil.
type Table[T any] struct {
	entries []*T
	free    []uint32 // sorted ascending
}

// Push stores the entry produced by create at the lowest free index, or at
// the end of the table when no index is free. create receives the index
// the entry will occupy.
func (t *Table[T]) Push(create func(index uint32) *T) (uint32, *T) {
	var index uint32
	if len(t.free) > 0 {
		index = t.free[0]
		t.free = t.free[1:]
	} else {
		index = uint32(len(t.entries)) //nolint:gosec // table size stays far below 2^32
		t.entries = append(t.entries, nil)
	}
	e := create(index)
	if e == nil {
		panic("slot: create returned nil")
	}
	t.entries[index] = e
	return index, e
}

// Get returns the live entry at index. It panics if the index is out of
// range or has been released; holders of an index must know it is live.
func (t *Table[T]) Get(index uint32) *T {
	e, ok := t.Lookup(index)
	if !ok {
		panic(fmt.Sprintf("slot: index %d is not live", index))
	}
	return e
}

// Lookup returns the entry at index and whether it is live.
func (t *Table[T]) Lookup(index uint32) (*T, bool) {
	if int(index) >= len(t.entries) || t.entries[index] == nil {
		return nil, false
	}
	return t.entries[index], true
}

// Release empties the slot at index and returns its previous entry.
// Releasing a slot that is not live panics.
func (t *Table[T]) Release(index uint32) *T {
	e := t.Get(index)
	t.entries[index] = nil
	i, _ := slices.BinarySearch(t.free, index)
	t.free = slices.Insert(t.free, i, index)
	return e
}

// Len returns the number of slots, live or free.
func (t *Table[T]) Len() int {
	return len(t.entries)
}

// Live returns the number of live entries.
func (t *Table[T]) Live() int {
	return len(t.entries) - len(t.free)
}

// Free returns a copy of the free index set in ascending order.
func (t *Table[T]) Free() []uint32 {
	return slices.Clone(t.free)
}

// IsFree reports whether index is in the free set.
func (t *Table[T]) IsFree(index uint32) bool {
	_, found := slices.BinarySearch(t.free, index)
	return found
}

// Each calls fn for every live entry in index order until fn returns false.
func (t *Table[T]) Each(fn func(index uint32, e *T) bool) {
	for i, e := range t.entries {
		if e == nil {
			continue
		}
		if !fn(uint32(i), e) { //nolint:gosec // bounded by Len
			return
		}
	}
}

// Reverse calls fn for every live entry from the newest index to the
// oldest until fn returns false.
func (t *Table[T]) Reverse(fn func(index uint32, e *T) bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		if e == nil {
			continue
		}
		if !fn(uint32(i), e) { //nolint:gosec // bounded by Len
			return
		}
	}
}

// Clear drops every entry and the free set.
func (t *Table[T]) Clear() {
	t.entries = nil
	t.free = nil
}
