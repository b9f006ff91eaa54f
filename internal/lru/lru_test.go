package lru

import (
	"strconv"
	"sync"
	"testing"
)

func TestNewDefaultCapacity(t *testing.T) {
	c := New[string, int](0)
	if c.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", c.capacity, DefaultCapacity)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d", c.Len())
	}
}

func TestGetAdd(t *testing.T) {
	c := New[string, int](4)
	c.Add("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) found a missing key")
	}
	c.Add("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("updated value = %d", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d after update", c.Len())
	}
	st := c.Stats()
	if st.Hits != 2 || st.Misses != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](3)
	c.Add(1, 1)
	c.Add(2, 2)
	c.Add(3, 3)
	c.Get(1)
	c.Add(4, 4)

	if _, ok := c.Get(2); ok {
		t.Error("least recently used entry survived")
	}
	for _, k := range []int{1, 3, 4} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("entry %d evicted", k)
		}
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("Evictions = %d", c.Stats().Evictions)
	}
}

func TestCapacityOne(t *testing.T) {
	c := New[int, string](1)
	c.Add(1, "a")
	c.Add(2, "b")
	if _, ok := c.Get(1); ok {
		t.Error("old entry kept")
	}
	if v, ok := c.Get(2); !ok || v != "b" {
		t.Errorf("Get(2) = %q, %v", v, ok)
	}
}

func TestRemovePurge(t *testing.T) {
	c := New[int, int](8)
	for i := range 5 {
		c.Add(i, i)
	}
	if !c.Remove(2) || c.Remove(2) {
		t.Error("Remove reported wrong presence")
	}
	if c.Len() != 4 {
		t.Errorf("Len() = %d", c.Len())
	}
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d", c.Len())
	}
	c.Add(9, 9)
	if v, ok := c.Get(9); !ok || v != 9 {
		t.Error("cache unusable after Purge")
	}
}

func TestGetOrAdd(t *testing.T) {
	c := New[string, int](4)
	calls := 0
	create := func() int { calls++; return 7 }
	if c.GetOrAdd("x", create) != 7 || c.GetOrAdd("x", create) != 7 {
		t.Error("GetOrAdd value")
	}
	if calls != 1 {
		t.Errorf("create called %d times", calls)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[string, int](64)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 500 {
				k := strconv.Itoa((g*31 + i) % 100)
				c.GetOrAdd(k, func() int { return i })
				if i%7 == 0 {
					c.Remove(k)
				}
			}
		}()
	}
	wg.Wait()
	if c.Len() > 64 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}

func BenchmarkGetHit(b *testing.B) {
	c := New[int, int](1024)
	for i := range 1024 {
		c.Add(i, i)
	}
	b.ResetTimer()
	for i := range b.N {
		c.Get(i & 1023)
	}
}
