package abtest

import (
	"math"

	"absim/internal/errors"
	"absim/ports"

	"gonum.org/v1/gonum/stat/distuv"
)

// ConversionDiffTest compares conversion rates with the pooled two-proportion z-test
type ConversionDiffTest struct{}

var _ ports.PValuePort = ConversionDiffTest{}

// NewConversionDiffTest creates the conversion-difference test
func NewConversionDiffTest() ConversionDiffTest { return ConversionDiffTest{} }

func (ConversionDiffTest) Name() string { return "conversion_diff" }

// PValue computes the two-sided p-value for the difference in conversion
// rates. Samples must be binary (0/1 observations).
func (t ConversionDiffTest) PValue(a, b []float64) (float64, error) {
	successesA, err := countSuccesses(a, "sample A")
	if err != nil {
		return 0, err
	}
	successesB, err := countSuccesses(b, "sample B")
	if err != nil {
		return 0, err
	}

	na := float64(len(a))
	nb := float64(len(b))
	rateA := float64(successesA) / na
	rateB := float64(successesB) / nb

	pooled := float64(successesA+successesB) / (na + nb)
	se := math.Sqrt(pooled * (1 - pooled) * (1/na + 1/nb))
	if se == 0 {
		// Every observation identical across both groups
		return 0, errors.ComputationFailed("pooled conversion rate is degenerate, z statistic undefined")
	}

	z := (rateA - rateB) / se
	return 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z))), nil
}
