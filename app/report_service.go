package app

import (
	"context"

	"absim/domain/sim"
	"absim/internal/errors"
	"absim/ports"
)

// Fixed settings for the quick calibration report, one pair of runs per
// metric kind with consecutive seeds.
const (
	reportMeanN       = 200
	reportConversionN = 500
	reportRatioN      = 500
)

// MetricReport pairs the null-scenario and effect-scenario estimates for one metric
type MetricReport struct {
	NPerGroup int                  `json:"n_per_group"`
	Type1     sim.EstimationResult `json:"type1"`
	Power     sim.EstimationResult `json:"power"`
}

// ReportSummary is the quick three-metric calibration report
type ReportSummary struct {
	Trials     int          `json:"trials"`
	Alpha      float64      `json:"alpha"`
	Mean       MetricReport `json:"mean"`
	Conversion MetricReport `json:"conversion"`
	Ratio      MetricReport `json:"ratio"`
}

// Report runs the canonical sanity-check scenarios and collects their
// estimates. Under no effect the rejection rate approximates Type I error;
// under a real effect it approximates power.
func (s *SweepService) Report(ctx context.Context, trials int, alpha float64, seedBase int64) (*ReportSummary, error) {
	if trials < 1 {
		return nil, errors.ConfigInvalid("trials must be >= 1")
	}
	if alpha <= 0.0 || alpha >= 1.0 {
		return nil, errors.ConfigInvalid("alpha must be in (0, 1)")
	}
	req := SweepRequest{Trials: trials, Alpha: alpha}

	summary := &ReportSummary{
		Trials:     trials,
		Alpha:      alpha,
		Mean:       MetricReport{NPerGroup: reportMeanN},
		Conversion: MetricReport{NPerGroup: reportConversionN},
		Ratio:      MetricReport{NPerGroup: reportRatioN},
	}

	type scenario struct {
		test ports.PValuePort
		cfg  sim.SimulationConfig
		dest *sim.EstimationResult
	}
	scenarios := []scenario{
		{s.meanTest, sim.MeanType1Config(reportMeanN, meanNull, meanStdDev, trials, alpha, seedBase), &summary.Mean.Type1},
		{s.meanTest, sim.MeanPowerConfig(reportMeanN, meanNull, meanEffect, meanStdDev, trials, alpha, seedBase+1), &summary.Mean.Power},
		{s.conversionTest, sim.ConversionType1Config(reportConversionN, conversionRate, trials, alpha, seedBase+2), &summary.Conversion.Type1},
		{s.conversionTest, sim.ConversionPowerConfig(reportConversionN, conversionRate, conversionLift, trials, alpha, seedBase+3), &summary.Conversion.Power},
		{s.ratioTest, sim.RatioType1Config(reportRatioN, purchaseProb, purchaseAmount, trials, alpha, seedBase+4), &summary.Ratio.Type1},
		{s.ratioTest, sim.RatioPowerConfig(reportRatioN, purchaseProb, purchaseLift, purchaseAmount, trials, alpha, seedBase+5), &summary.Ratio.Power},
	}

	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "report cancelled")
		}
		result, err := s.estimate(sc.test, req, sc.cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "report scenario %s (seed=%d) failed", sc.test.Name(), sc.cfg.Seed)
		}
		*sc.dest = *result
	}
	return summary, nil
}
