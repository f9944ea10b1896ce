package engine

import (
	"github.com/exascience/pargo/parallel"

	"github.com/seantiz/offload/internal/partition"
)

// triadParallel computes c[i] = a[i] + alpha*b[i] over r, dividing the range
// into up to workers batches executed as a parallel fork-join. Every iteration
// is independent, so any chunking and ordering is safe. The call blocks until
// all batches complete; parallelism is internal to the call.
func triadParallel(r partition.Range, bufs *Buffers, alpha float64, workers int) {
	if r.Empty() {
		return
	}
	if workers < 0 {
		workers = 0 // let the scheduler pick a GOMAXPROCS-based default
	}

	a, b, c := bufs.A, bufs.B, bufs.C
	// The kernel is pure arithmetic; there is no error path.
	parallel.Range(r.Start, r.End, workers, func(low, high int) {
		for i := low; i < high; i++ {
			c[i] = a[i] + alpha*b[i]
		}
	})
}
