package abtest

import (
	"math"
	"testing"

	"absim/internal/errors"
)

func TestRatioDiffIdenticalSamples(t *testing.T) {
	a := []float64{0, 0, 120, 0, 80, 0, 0, 200}

	p, err := NewRatioDiffTest().PValue(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p-1.0) > 1e-9 {
		t.Errorf("expected p = 1 for identical samples, got %v", p)
	}
}

func TestRatioDiffSeparatedSamples(t *testing.T) {
	// Group A mostly zeros, group B consistently high revenue
	a := make([]float64, 100)
	a[0] = 50
	b := make([]float64, 100)
	for i := range b {
		b[i] = 100 + float64(i%7)
	}

	p, err := NewRatioDiffTest().PValue(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p > 1e-6 {
		t.Errorf("expected tiny p for separated samples, got %v", p)
	}
}

func TestRatioDiffIsSymmetric(t *testing.T) {
	a := []float64{0, 0, 120, 0, 80}
	b := []float64{0, 60, 0, 0, 150}

	pAB, err := NewRatioDiffTest().PValue(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pBA, err := NewRatioDiffTest().PValue(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(pAB-pBA) > 1e-12 {
		t.Errorf("p-value not symmetric: %v vs %v", pAB, pBA)
	}
}

func TestRatioDiffDegenerateSamples(t *testing.T) {
	allZero := make([]float64, 50)

	_, err := NewRatioDiffTest().PValue(allZero, allZero)
	if err == nil {
		t.Fatal("expected error for zero-variance samples")
	}
	if errors.GetCode(err) != errors.CodeComputationFailed {
		t.Errorf("expected COMPUTATION_FAILED, got %s", errors.GetCode(err))
	}
}
