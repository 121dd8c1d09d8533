package sim

import (
	"fmt"
	"math"

	"absim/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// Interval is a confidence interval for a binomial proportion
type Interval struct {
	Estimate float64 `json:"estimate"`
	Low      float64 `json:"low"`
	High     float64 `json:"high"`
	// Clamped records that a raw bound fell outside [0, 1] and was pulled
	// back in. Diagnostic only, never a failure.
	Clamped bool `json:"clamped,omitempty"`
}

// WilsonInterval computes the Wilson score interval for successes out of
// trials at the given confidence level.
//
// In the simulation setting trials is the number of simulated experiments and
// successes the number with p_value < alpha. The rejection rate is a
// proportion, so a binomial model of the Monte Carlo uncertainty applies.
// Wilson behaves well when the estimate sits near 0 or 1 (routine for Type I
// error runs where the true rate is around alpha), unlike the naive
// p +/- z*sqrt(p(1-p)/n) interval.
func WilsonInterval(successes, trials int, confidence float64) (Interval, error) {
	if trials <= 0 {
		return Interval{}, errors.ConfigInvalid(fmt.Sprintf("trials must be positive, got %d", trials))
	}
	if successes < 0 || successes > trials {
		return Interval{}, errors.ConfigInvalid(fmt.Sprintf("successes must be in [0, %d], got %d", trials, successes))
	}
	if confidence <= 0.0 || confidence >= 1.0 {
		return Interval{}, errors.ConfigInvalid(fmt.Sprintf("confidence must be in (0, 1), got %g", confidence))
	}

	z := distuv.UnitNormal.Quantile(0.5 + confidence/2.0)
	n := float64(trials)
	phat := float64(successes) / n

	denom := 1.0 + z*z/n
	center := (phat + z*z/(2.0*n)) / denom
	halfWidth := (z / denom) * math.Sqrt(phat*(1.0-phat)/n+z*z/(4.0*n*n))

	iv := Interval{
		Estimate: phat,
		Low:      center - halfWidth,
		High:     center + halfWidth,
	}
	if iv.Low < 0.0 {
		iv.Low = 0.0
		iv.Clamped = true
	}
	if iv.High > 1.0 {
		iv.High = 1.0
		iv.Clamped = true
	}
	return iv, nil
}
