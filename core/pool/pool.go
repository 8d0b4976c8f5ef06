// Package pool provides a bounded parallel for-loop used by the
// portable multi-scalar multiplication. Callers
// own all state; the pool never retains anything between calls.
package pool

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Parallelize splits [0, n) into contiguous chunks and runs fn on each
// chunk concurrently. fn must not touch indices outside its chunk.
func Parallelize(n int, fn func(start, end int) error) error {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return fn(0, n)
	}
	var g errgroup.Group
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		start := start
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error { return fn(start, end) })
	}
	return g.Wait()
}
