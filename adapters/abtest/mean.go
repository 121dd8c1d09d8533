package abtest

import (
	"math"

	"absim/internal/errors"
	"absim/ports"

	"gonum.org/v1/gonum/stat/distuv"
)

// MeanDiffTest compares group means with Welch's unequal-variance t-test
type MeanDiffTest struct{}

var _ ports.PValuePort = MeanDiffTest{}

// NewMeanDiffTest creates the mean-difference test
func NewMeanDiffTest() MeanDiffTest { return MeanDiffTest{} }

func (MeanDiffTest) Name() string { return "mean_diff" }

// PValue computes the two-sided Welch t-test p-value for the difference in
// means. Degrees of freedom follow Welch-Satterthwaite.
func (t MeanDiffTest) PValue(a, b []float64) (float64, error) {
	meanA, varA, err := sampleMoments(a, "sample A")
	if err != nil {
		return 0, err
	}
	meanB, varB, err := sampleMoments(b, "sample B")
	if err != nil {
		return 0, err
	}

	na := float64(len(a))
	nb := float64(len(b))
	seSquared := varA/na + varB/nb
	if seSquared == 0 {
		return 0, errors.ComputationFailed("both samples have zero variance, t statistic undefined")
	}

	tStat := (meanA - meanB) / math.Sqrt(seSquared)
	df := seSquared * seSquared /
		((varA/na)*(varA/na)/(na-1) + (varB/nb)*(varB/nb)/(nb-1))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * (1 - tDist.CDF(math.Abs(tStat))), nil
}
