// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLRU_BasicOperations(t *testing.T) {
	c := NewLRU[int](3, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, ok := c.Get(key)
		if !ok {
			t.Errorf("Get(%q) not found", key)
			continue
		}
		if got != want {
			t.Errorf("Get(%q) = %d, want %d", key, got, want)
		}
	}

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU[string](3, time.Minute)

	c.Add("a", "A")
	c.Add("b", "B")
	c.Add("c", "C")

	// 'a' becomes most recently used, so 'b' is evicted next.
	c.Get("a")
	c.Add("d", "D")

	if _, ok := c.Get("b"); ok {
		t.Error("expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("expected %q to be present", key)
		}
	}

	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestLRU_UpdateExisting(t *testing.T) {
	c := NewLRU[int](2, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("a", 10)
	c.Add("c", 3)

	if got, ok := c.Get("a"); !ok || got != 10 {
		t.Errorf("Get(a) = %d, %v, want 10, true", got, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("expected 'b' to be evicted after 'a' was refreshed")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	c := NewLRU[int](10, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Add("a", 1)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected 'a' before expiry")
	}

	now = now.Add(2 * time.Minute)

	if c.Contains("a") {
		t.Error("Contains(a) = true after expiry")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) found an expired entry")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after expired Get", c.Len())
	}
}

func TestLRU_CleanupExpired(t *testing.T) {
	c := NewLRU[int](10, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Add("old1", 1)
	c.Add("old2", 2)
	now = now.Add(30 * time.Second)
	c.Add("fresh", 3)
	now = now.Add(45 * time.Second)

	if removed := c.CleanupExpired(); removed != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", removed)
	}
	if !c.Contains("fresh") {
		t.Error("expected 'fresh' to survive cleanup")
	}
}

func TestLRU_RemoveAndClear(t *testing.T) {
	c := NewLRU[int](10, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("Remove(a) twice = true, want false")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}

	// The list must still be usable after Clear.
	c.Add("c", 3)
	if got, ok := c.Get("c"); !ok || got != 3 {
		t.Errorf("Get(c) after Clear = %d, %v, want 3, true", got, ok)
	}
}

func TestLRU_Stats(t *testing.T) {
	c := NewLRU[int](5, time.Minute)
	c.Add("a", 1)

	c.Get("a")
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Stats() hits=%d misses=%d, want 2 and 1", s.Hits, s.Misses)
	}
	if s.Size != 1 || s.Capacity != 5 {
		t.Errorf("Stats() size=%d capacity=%d, want 1 and 5", s.Size, s.Capacity)
	}
	if got, want := s.HitRate(), 2.0/3.0; got != want {
		t.Errorf("HitRate() = %v, want %v", got, want)
	}
	if got := (Stats{}).HitRate(); got != 0 {
		t.Errorf("empty HitRate() = %v, want 0", got)
	}
}

func TestLRU_Defaults(t *testing.T) {
	c := NewLRU[int](0, 0)
	if c.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", c.capacity, DefaultCapacity)
	}
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int](100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("k%d", (g*500+i)%150)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d, exceeds capacity 100", c.Len())
	}
}
