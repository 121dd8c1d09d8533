package abtest

import (
	"math"
	"math/rand"

	"absim/internal/errors"
	"absim/ports"

	"github.com/montanaflynn/stats"
)

const defaultShuffles = 1000

// PermutationMeanTest estimates the mean-difference p-value by shuffling
// group labels. It implements ports.RandomizedPValuePort: all draws come
// from the caller's stream, so simulation runs stay reproducible.
type PermutationMeanTest struct {
	shuffles int
}

var _ ports.RandomizedPValuePort = PermutationMeanTest{}

// NewPermutationMeanTest creates a permutation test with the default shuffle count
func NewPermutationMeanTest() PermutationMeanTest {
	return PermutationMeanTest{shuffles: defaultShuffles}
}

// WithShuffles returns a copy using the given shuffle count (minimum 100)
func (t PermutationMeanTest) WithShuffles(n int) PermutationMeanTest {
	if n < 100 {
		n = 100
	}
	return PermutationMeanTest{shuffles: n}
}

func (PermutationMeanTest) Name() string { return "mean_permutation" }

// PValue rejects plain calls: this test needs the run's random stream
func (t PermutationMeanTest) PValue(a, b []float64) (float64, error) {
	return 0, errors.ComputationFailed("permutation test requires a random stream, use PValueRand")
}

// PValueRand computes the permutation p-value for the absolute difference in
// means, using the add-one estimate (k+1)/(m+1) so the result is never zero.
func (t PermutationMeanTest) PValueRand(a, b []float64, rng *rand.Rand) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, errors.ComputationFailed("permutation test needs non-empty samples")
	}

	observed, err := absMeanDiff(a, b)
	if err != nil {
		return 0, err
	}

	combined := make([]float64, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)

	atLeastAsExtreme := 0
	for i := 0; i < t.shuffles; i++ {
		rng.Shuffle(len(combined), func(x, y int) {
			combined[x], combined[y] = combined[y], combined[x]
		})
		shuffled, err := absMeanDiff(combined[:len(a)], combined[len(a):])
		if err != nil {
			return 0, err
		}
		if shuffled >= observed {
			atLeastAsExtreme++
		}
	}

	return float64(atLeastAsExtreme+1) / float64(t.shuffles+1), nil
}

func absMeanDiff(a, b []float64) (float64, error) {
	meanA, err := stats.Mean(a)
	if err != nil {
		return 0, errors.Wrap(err, "computing mean of sample A")
	}
	meanB, err := stats.Mean(b)
	if err != nil {
		return 0, errors.Wrap(err, "computing mean of sample B")
	}
	return math.Abs(meanA - meanB), nil
}
