package sim

import (
	"math"
	"testing"

	"absim/internal/errors"
)

func TestWilsonIntervalBasicProperties(t *testing.T) {
	iv, err := WilsonInterval(50, 100, 0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv.Estimate != 0.5 {
		t.Errorf("expected estimate 0.5, got %v", iv.Estimate)
	}
	if !(0.0 <= iv.Low && iv.Low <= iv.Estimate && iv.Estimate <= iv.High && iv.High <= 1.0) {
		t.Errorf("interval ordering violated: low=%v estimate=%v high=%v", iv.Low, iv.Estimate, iv.High)
	}
	// Known values for p=0.5, n=100 at 95%
	if math.Abs(iv.Low-0.4038) > 1e-3 {
		t.Errorf("expected low near 0.4038, got %v", iv.Low)
	}
	if math.Abs(iv.High-0.5962) > 1e-3 {
		t.Errorf("expected high near 0.5962, got %v", iv.High)
	}
}

func TestWilsonIntervalContainment(t *testing.T) {
	for _, successes := range []int{0, 1, 5, 50, 95, 99, 100} {
		iv, err := WilsonInterval(successes, 100, 0.95)
		if err != nil {
			t.Fatalf("successes=%d: unexpected error: %v", successes, err)
		}
		if iv.Low < 0.0 || iv.High > 1.0 {
			t.Errorf("successes=%d: bounds outside [0,1]: low=%v high=%v", successes, iv.Low, iv.High)
		}
		if iv.Low > iv.Estimate || iv.Estimate > iv.High {
			t.Errorf("successes=%d: estimate %v outside interval [%v, %v]", successes, iv.Estimate, iv.Low, iv.High)
		}
	}
}

func TestWilsonIntervalExtremes(t *testing.T) {
	iv0, err := WilsonInterval(0, 100, 0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv0.Low < 0.0 || iv0.Low > 1e-12 {
		t.Errorf("expected low at 0 for k=0, got %v", iv0.Low)
	}
	if iv0.High <= 0.0 {
		t.Errorf("expected positive high for k=0, got %v", iv0.High)
	}

	iv1, err := WilsonInterval(100, 100, 0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv1.High > 1.0 || iv1.High < 1.0-1e-12 {
		t.Errorf("expected high at 1 for k=n, got %v", iv1.High)
	}
	if iv1.Low >= 1.0 {
		t.Errorf("expected low below 1 for k=n, got %v", iv1.Low)
	}
}

func TestWilsonIntervalInvalidInputs(t *testing.T) {
	tests := []struct {
		name       string
		successes  int
		trials     int
		confidence float64
	}{
		{"zero trials", 0, 0, 0.95},
		{"negative trials", 0, -5, 0.95},
		{"negative successes", -1, 100, 0.95},
		{"successes above trials", 101, 100, 0.95},
		{"confidence zero", 50, 100, 0.0},
		{"confidence one", 50, 100, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WilsonInterval(tt.successes, tt.trials, tt.confidence)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if errors.GetCode(err) != errors.CodeConfigInvalid {
				t.Errorf("expected CONFIG_INVALID, got %s", errors.GetCode(err))
			}
		})
	}
}

func TestWilsonIntervalNarrowsWithTrials(t *testing.T) {
	small, err := WilsonInterval(5, 100, 0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	large, err := WilsonInterval(500, 10000, 0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if large.High-large.Low >= small.High-small.Low {
		t.Errorf("expected narrower interval at higher n: small width %v, large width %v",
			small.High-small.Low, large.High-large.Low)
	}
}
