package verify

import "testing"

func TestGold(t *testing.T) {
	a := []float64{0, 1, 2, 3}
	b := []float64{0, 1, 2, 3}

	gold := Gold(a, b, 0.5)

	want := []float64{0, 1.5, 3, 4.5}
	for i := range want {
		if gold[i] != want[i] {
			t.Errorf("gold[%d] = %v, want %v", i, gold[i], want[i])
		}
	}
}

func TestEqual(t *testing.T) {
	gold := []float64{0, 1.5, 3, 4.5}

	if !Equal([]float64{0, 1.5, 3, 4.5}, gold) {
		t.Error("Equal = false for identical slices")
	}
	if Equal([]float64{0, 1.5, 3, 5}, gold) {
		t.Error("Equal = true for mismatched element")
	}
	if Equal([]float64{0, 1.5, 3}, gold) {
		t.Error("Equal = true for length mismatch")
	}
	if !Equal(nil, nil) {
		t.Error("Equal = false for two empty slices")
	}
}
