package tensor

import (
	"sync"
	"testing"
)

func TestArenaReuse(t *testing.T) {
	a := NewArena()

	first := a.get(64)
	first[0] = 42
	a.put(first)

	second := a.get(64)
	if &second[0] != &first[0] {
		t.Error("expected the pooled block to be reused")
	}
	// Uninitialized reuse keeps old contents.
	if second[0] != 42 {
		t.Errorf("reused block contents = %v, want 42", second[0])
	}
}

func TestArenaSizeClasses(t *testing.T) {
	a := NewArena()

	a.put(make([]float32, 32))
	got := a.get(64)
	if len(got) != 64 {
		t.Fatalf("get(64) length = %d, want 64", len(got))
	}
	if a.free(32) != 1 {
		t.Error("block of a different class should stay pooled")
	}
}

func TestArenaBoundedFreeList(t *testing.T) {
	a := NewArena()

	for i := 0; i < maxFreePerClass+10; i++ {
		a.put(make([]float32, 8))
	}
	if got := a.free(8); got != maxFreePerClass {
		t.Errorf("free(8) = %d, want %d", got, maxFreePerClass)
	}
}

func TestArenaConcurrent(t *testing.T) {
	a := NewArena()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				b := a.get(128)
				b[0] = 1
				a.put(b)
			}
		}()
	}
	wg.Wait()

	if a.free(128) == 0 {
		t.Error("expected pooled blocks after concurrent get/put")
	}
}
