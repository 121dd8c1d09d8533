// Package abtest implements the two-sample statistical tests consumed by the
// simulation engine through ports.PValuePort. Every test is stateless and
// returns a two-sided p-value in [0, 1], or an error when the statistic is
// undefined for the given samples.
package abtest

import (
	"fmt"

	"absim/internal/errors"

	"github.com/montanaflynn/stats"
)

// sampleMoments returns the mean and unbiased sample variance of xs
func sampleMoments(xs []float64, label string) (mean, variance float64, err error) {
	if len(xs) < 2 {
		return 0, 0, errors.ComputationFailed(fmt.Sprintf("%s needs at least 2 observations, got %d", label, len(xs)))
	}
	mean, err = stats.Mean(xs)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "computing mean of %s", label)
	}
	variance, err = stats.SampleVariance(xs)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "computing variance of %s", label)
	}
	return mean, variance, nil
}

// countSuccesses validates a binary sample and returns its success count
func countSuccesses(xs []float64, label string) (int, error) {
	if len(xs) == 0 {
		return 0, errors.ComputationFailed(fmt.Sprintf("%s is empty", label))
	}
	successes := 0
	for _, x := range xs {
		switch x {
		case 0:
		case 1:
			successes++
		default:
			return 0, errors.ComputationFailed(fmt.Sprintf("%s contains non-binary observation %g", label, x))
		}
	}
	return successes, nil
}
