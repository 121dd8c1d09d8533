package sim

import (
	"fmt"
	"math/rand"

	"absim/internal/errors"
)

// NormalModel draws continuous observations from Normal(Mean, StdDev)
type NormalModel struct {
	Mean   float64
	StdDev float64
}

func (m NormalModel) Kind() Metric { return MetricMean }

func (m NormalModel) Validate() error {
	if m.StdDev <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("StdDev must be > 0, got %g", m.StdDev))
	}
	return nil
}

func (m NormalModel) Sample(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = m.Mean + m.StdDev*rng.NormFloat64()
	}
	return out
}

// BernoulliModel draws binary conversion outcomes with probability Rate
type BernoulliModel struct {
	Rate float64
}

func (m BernoulliModel) Kind() Metric { return MetricConversion }

func (m BernoulliModel) Validate() error {
	if m.Rate < 0 || m.Rate > 1 {
		return errors.ConfigInvalid(fmt.Sprintf("Rate must be in [0, 1], got %g", m.Rate))
	}
	return nil
}

func (m BernoulliModel) Sample(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if rng.Float64() < m.Rate {
			out[i] = 1
		}
	}
	return out
}

// RatioModel draws zero-inflated revenue per visitor: with probability
// PurchaseProb the visitor buys and revenue is an exponential draw scaled by
// PurchaseAmount, otherwise revenue is zero.
type RatioModel struct {
	PurchaseProb   float64
	PurchaseAmount float64
}

func (m RatioModel) Kind() Metric { return MetricRatio }

func (m RatioModel) Validate() error {
	if m.PurchaseProb < 0 || m.PurchaseProb > 1 {
		return errors.ConfigInvalid(fmt.Sprintf("PurchaseProb must be in [0, 1], got %g", m.PurchaseProb))
	}
	if m.PurchaseAmount <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("PurchaseAmount must be > 0, got %g", m.PurchaseAmount))
	}
	return nil
}

func (m RatioModel) Sample(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		// Order matters for reproducibility: the purchase draw always
		// happens, the revenue draw only on purchase.
		if rng.Float64() < m.PurchaseProb {
			out[i] = m.PurchaseAmount * rng.ExpFloat64()
		}
	}
	return out
}
