package engine

import "gonum.org/v1/gonum/floats"

// Buffers owns the three arrays for one run. A and B are read by both compute
// paths; C is written by both, over invariant-disjoint ranges, so the kernel
// phase needs no locking.
type Buffers struct {
	A, B, C []float64
}

// NewBuffers allocates and seeds the arrays with the deterministic pattern
// a[i] = b[i] = i.
func NewBuffers(n int) *Buffers {
	b := &Buffers{
		A: make([]float64, n),
		B: make([]float64, n),
		C: make([]float64, n),
	}
	if n >= 2 {
		floats.Span(b.A, 0, float64(n-1))
		floats.Span(b.B, 0, float64(n-1))
	}
	return b
}

// Len returns the element count N.
func (b *Buffers) Len() int { return len(b.C) }
