package slot

import (
	"slices"
	"testing"
)

type entry struct{ index uint32 }

func push(t *Table[entry]) uint32 {
	i, _ := t.Push(func(index uint32) *entry { return &entry{index: index} })
	return i
}

func TestTable_PushAppends(t *testing.T) {
	var tbl Table[entry]
	for want := uint32(0); want < 3; want++ {
		if got := push(&tbl); got != want {
			t.Errorf("Push() index = %d, want %d", got, want)
		}
	}
	if tbl.Len() != 3 || tbl.Live() != 3 {
		t.Errorf("Len=%d Live=%d, want 3/3", tbl.Len(), tbl.Live())
	}
	if e := tbl.Get(1); e.index != 1 {
		t.Errorf("Get(1).index = %d, want 1", e.index)
	}
}

func TestTable_ReleaseReusesLowestIndex(t *testing.T) {
	var tbl Table[entry]
	for i := 0; i < 4; i++ {
		push(&tbl)
	}

	tbl.Release(3)
	tbl.Release(1)

	if got := tbl.Free(); !slices.Equal(got, []uint32{1, 3}) {
		t.Errorf("Free() = %v, want [1 3]", got)
	}
	if !tbl.IsFree(1) || tbl.IsFree(0) {
		t.Error("IsFree mismatch")
	}
	if _, ok := tbl.Lookup(1); ok {
		t.Error("released slot should not be live")
	}

	if got := push(&tbl); got != 1 {
		t.Errorf("Push() after release = %d, want lowest free index 1", got)
	}
	if got := push(&tbl); got != 3 {
		t.Errorf("Push() = %d, want 3", got)
	}
	if got := push(&tbl); got != 4 {
		t.Errorf("Push() with empty free set = %d, want append at 4", got)
	}
	if len(tbl.Free()) != 0 {
		t.Errorf("free set should be empty, got %v", tbl.Free())
	}
}

func TestTable_FreeSetMatchesNilEntries(t *testing.T) {
	var tbl Table[entry]
	for i := 0; i < 8; i++ {
		push(&tbl)
	}
	for _, i := range []uint32{6, 0, 3} {
		tbl.Release(i)
	}
	for i := uint32(0); i < uint32(tbl.Len()); i++ {
		_, live := tbl.Lookup(i)
		if live == tbl.IsFree(i) {
			t.Errorf("index %d: live=%v free=%v", i, live, tbl.IsFree(i))
		}
	}
	if tbl.Live() != 5 {
		t.Errorf("Live() = %d, want 5", tbl.Live())
	}
}

func TestTable_GetPanicsOnStaleIndex(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Table[entry])
		index uint32
	}{
		{"released", func(tbl *Table[entry]) { push(tbl); tbl.Release(0) }, 0},
		{"out of range", func(tbl *Table[entry]) { push(tbl) }, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tbl Table[entry]
			tt.setup(&tbl)
			defer func() {
				if recover() == nil {
					t.Error("Get on stale index did not panic")
				}
			}()
			tbl.Get(tt.index)
		})
	}
}

func TestTable_EachAndReverse(t *testing.T) {
	var tbl Table[entry]
	for i := 0; i < 4; i++ {
		push(&tbl)
	}
	tbl.Release(2)

	var forward, backward []uint32
	tbl.Each(func(i uint32, _ *entry) bool { forward = append(forward, i); return true })
	tbl.Reverse(func(i uint32, _ *entry) bool { backward = append(backward, i); return true })

	if !slices.Equal(forward, []uint32{0, 1, 3}) {
		t.Errorf("Each visited %v", forward)
	}
	if !slices.Equal(backward, []uint32{3, 1, 0}) {
		t.Errorf("Reverse visited %v", backward)
	}

	var first []uint32
	tbl.Each(func(i uint32, _ *entry) bool { first = append(first, i); return false })
	if len(first) != 1 {
		t.Errorf("Each should stop early, visited %v", first)
	}
}
