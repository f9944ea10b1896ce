// Package verify recomputes the triad serially and checks the merged
// heterogeneous result against it.
package verify

import "gonum.org/v1/gonum/floats"

// Tolerance for elementwise comparison. Both paths compute in float64, so the
// results should match bit-for-bit; the tolerance only absorbs backends that
// reassociate the arithmetic.
const tolerance = 1e-12

// Gold computes the serial reference c[i] = a[i] + alpha*b[i].
func Gold(a, b []float64, alpha float64) []float64 {
	gold := make([]float64, len(a))
	for i := range a {
		gold[i] = a[i] + alpha*b[i]
	}
	return gold
}

// Equal reports whether the heterogeneous result matches the reference
// elementwise within tolerance.
func Equal(c, gold []float64) bool {
	if len(c) != len(gold) {
		return false
	}
	if len(c) == 0 {
		return true
	}
	return floats.EqualApprox(c, gold, tolerance)
}
