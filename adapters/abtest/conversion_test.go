package abtest

import (
	"math"
	"testing"

	"absim/internal/errors"
)

func binarySample(successes, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < successes; i++ {
		out[i] = 1
	}
	return out
}

func TestConversionDiffKnownValue(t *testing.T) {
	// 10/100 vs 20/100: pooled z = -1.980, two-sided p = 0.0477
	a := binarySample(10, 100)
	b := binarySample(20, 100)

	p, err := NewConversionDiffTest().PValue(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p-0.0477) > 1e-3 {
		t.Errorf("expected p near 0.0477, got %v", p)
	}
}

func TestConversionDiffEqualRates(t *testing.T) {
	a := binarySample(15, 100)

	p, err := NewConversionDiffTest().PValue(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p-1.0) > 1e-9 {
		t.Errorf("expected p = 1 for equal rates, got %v", p)
	}
}

func TestConversionDiffDegenerateSamples(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
	}{
		{"all zeros both groups", binarySample(0, 50), binarySample(0, 50)},
		{"all ones both groups", binarySample(50, 50), binarySample(50, 50)},
		{"empty sample", []float64{}, binarySample(5, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConversionDiffTest().PValue(tt.a, tt.b)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if errors.GetCode(err) != errors.CodeComputationFailed {
				t.Errorf("expected COMPUTATION_FAILED, got %s", errors.GetCode(err))
			}
		})
	}
}

func TestConversionDiffRejectsNonBinaryData(t *testing.T) {
	a := []float64{0, 1, 0.5}
	b := binarySample(5, 10)

	_, err := NewConversionDiffTest().PValue(a, b)
	if err == nil {
		t.Fatal("expected error for non-binary observations")
	}
	if errors.GetCode(err) != errors.CodeComputationFailed {
		t.Errorf("expected COMPUTATION_FAILED, got %s", errors.GetCode(err))
	}
}
