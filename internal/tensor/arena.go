package tensor

import (
	"sync"

	"github.com/eapache/queue"
)

// maxFreePerClass bounds how many free blocks one size class retains.
// Blocks evicted past the bound are left to the garbage collector.
const maxFreePerClass = 256

// Arena recycles float32 blocks by size class so training loops reuse
// batch storage instead of reallocating it every epoch. All methods
// are safe for concurrent use.
type Arena struct {
	mu      sync.Mutex
	classes map[int]*queue.Queue
}

// Default is the process-wide arena used by the package-level
// constructors.
var Default = NewArena()

// NewArena creates an empty arena. Isolated arenas are mostly useful
// in tests; production code shares Default.
func NewArena() *Arena {
	return &Arena{classes: make(map[int]*queue.Queue)}
}

// get returns a block of length n, reusing a pooled one when the size
// class has any. Reused blocks keep their previous contents.
func (a *Arena) get(n int) []float32 {
	a.mu.Lock()
	if q, ok := a.classes[n]; ok && q.Length() > 0 {
		block := q.Remove().([]float32)
		a.mu.Unlock()
		return block
	}
	a.mu.Unlock()
	return make([]float32, n)
}

// put returns a block to its size class for reuse.
func (a *Arena) put(block []float32) {
	n := len(block)
	if n == 0 {
		return
	}
	a.mu.Lock()
	q, ok := a.classes[n]
	if !ok {
		q = queue.New()
		a.classes[n] = q
	}
	if q.Length() < maxFreePerClass {
		q.Add(block)
	}
	a.mu.Unlock()
}

// free reports how many blocks of length n are pooled.
func (a *Arena) free(n int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if q, ok := a.classes[n]; ok {
		return q.Length()
	}
	return 0
}
