package abtest

import (
	"math"

	"absim/internal/errors"
	"absim/ports"

	"gonum.org/v1/gonum/stat/distuv"
)

// RatioDiffTest compares revenue-per-visitor between groups. With one
// observation per visitor the ratio of sums (total revenue / total visitors)
// is the per-visitor mean, and the delta-method variance of the ratio reduces
// to the usual variance of the mean, so the test is an unpooled large-sample
// z-test on zero-inflated data.
type RatioDiffTest struct{}

var _ ports.PValuePort = RatioDiffTest{}

// NewRatioDiffTest creates the ratio-difference test
func NewRatioDiffTest() RatioDiffTest { return RatioDiffTest{} }

func (RatioDiffTest) Name() string { return "ratio_diff" }

// PValue computes the two-sided delta-method z-test p-value for the
// difference in revenue per visitor.
func (t RatioDiffTest) PValue(a, b []float64) (float64, error) {
	meanA, varA, err := sampleMoments(a, "sample A")
	if err != nil {
		return 0, err
	}
	meanB, varB, err := sampleMoments(b, "sample B")
	if err != nil {
		return 0, err
	}

	se := math.Sqrt(varA/float64(len(a)) + varB/float64(len(b)))
	if se == 0 {
		return 0, errors.ComputationFailed("both samples have zero variance, z statistic undefined")
	}

	z := (meanA - meanB) / se
	return 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z))), nil
}
