// Package random provides the shared random source used by shuffle
// and partitioning code.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source is a mutex-guarded pseudo-random stream, safe for use from
// many workers at once. A single synchronized stream is used instead
// of per-worker streams: kernel draw counts are data-dependent, so
// independent streams would not buy reproducibility, and one stream
// keeps seeding trivial for tests.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a source seeded with seed. Equal seeds give equal draw
// sequences when the caller serializes its draws.
func New(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // G404: statistical shuffling, not crypto
}

// NewTime returns a source seeded from the wall clock.
func NewTime() *Source {
	return New(time.Now().UnixNano())
}

// Intn returns a uniform int in [0, n). Panics if n <= 0, like
// rand.Intn.
func (s *Source) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Coin returns a fair coin flip.
func (s *Source) Coin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(2) == 0
}
