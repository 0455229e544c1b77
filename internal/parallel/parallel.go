// Package parallel provides fork-join execution for the minibatch
// pipeline's statically partitioned work: batch construction,
// re-partitioning, and cross-shuffle pair kernels.
package parallel

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
	MinUnits   int  // Minimum work units before forking is worth it.
}

// DefaultConfig sizes the worker count to physical cores. The work
// units here are row-copy loops, which are memory-bound, so SMT
// siblings add no throughput.
func DefaultConfig() Config {
	n := cpuid.CPU.PhysicalCores
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinUnits:   2, // A unit is a whole batch or pair, already coarse.
	}
}

// Sequential returns a config that disables forking entirely.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinUnits: 1}
}

// ForErr executes f(i) for i in [0, n), forking across workers when
// the config allows. Every unit runs before ForErr returns, so a call
// doubles as the barrier between parallel phases; on failure the
// first error is returned after all workers have stopped.
func ForErr(n int, f func(i int) error, cfg Config) error {
	if !cfg.Enabled || n < cfg.MinUnits {
		for i := 0; i < n; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, 1)

	for start := 0; start < n; start += chunkSize {
		s, e := start, min(start+chunkSize, n)
		g.Go(func() error {
			for i := s; i < e; i++ {
				if err := f(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
