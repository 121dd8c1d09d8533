package app

import (
	"context"
	"testing"

	"absim/adapters/abtest"
	"absim/adapters/rng"
	"absim/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *SweepService {
	return NewSweepService(
		rng.NewStreamProvider(),
		abtest.NewMeanDiffTest(),
		abtest.NewConversionDiffTest(),
		abtest.NewRatioDiffTest(),
	)
}

func smallRequest(sizes ...int) SweepRequest {
	return SweepRequest{
		SampleSizes: sizes,
		Trials:      60,
		Alpha:       0.05,
		SeedBase:    0,
	}
}

func TestRunPreservesRowOrder(t *testing.T) {
	result, err := newTestService().Run(context.Background(), smallRequest(180, 150, 240))
	require.NoError(t, err)

	require.Len(t, result.Rows, 3)
	assert.Equal(t, 180, result.Rows[0].NPerGroup)
	assert.Equal(t, 150, result.Rows[1].NPerGroup)
	assert.Equal(t, 240, result.Rows[2].NPerGroup)
	assert.Zero(t, result.FailedRows)

	for _, row := range result.Rows {
		for _, est := range []float64{
			row.Type1Mean.RejectionRate, row.PowerMean.RejectionRate,
			row.Type1Conversion.RejectionRate, row.PowerConversion.RejectionRate,
			row.Type1Ratio.RejectionRate, row.PowerRatio.RejectionRate,
		} {
			assert.GreaterOrEqual(t, est, 0.0)
			assert.LessOrEqual(t, est, 1.0)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	service := newTestService()
	req := smallRequest(150, 200)

	first, err := service.Run(context.Background(), req)
	require.NoError(t, err)
	second, err := service.Run(context.Background(), req)
	require.NoError(t, err)

	// Identity and timing metadata differ; the estimates must not
	assert.Equal(t, first.Rows, second.Rows)
}

func TestRunParallelMatchesSequential(t *testing.T) {
	service := newTestService()
	sequential, err := service.Run(context.Background(), smallRequest(150, 200, 250, 300))
	require.NoError(t, err)

	parallelReq := smallRequest(150, 200, 250, 300)
	parallelReq.Parallelism = 4
	parallel, err := service.Run(context.Background(), parallelReq)
	require.NoError(t, err)

	assert.Equal(t, sequential.Rows, parallel.Rows)
}

func TestRunRecordsFailedRowAndContinues(t *testing.T) {
	result, err := newTestService().Run(context.Background(), smallRequest(0, 150))
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.True(t, result.Rows[0].Failed())
	assert.Contains(t, result.Rows[0].Err, "NPerGroup")
	assert.False(t, result.Rows[1].Failed())
	assert.Equal(t, 1, result.FailedRows)
}

func TestRunFailFastAborts(t *testing.T) {
	req := smallRequest(0, 150)
	req.FailFast = true

	_, err := newTestService().Run(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, errors.CodeComputationFailed, errors.GetCode(err))
}

func TestRunValidatesRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SweepRequest)
	}{
		{"no sample sizes", func(r *SweepRequest) { r.SampleSizes = nil }},
		{"zero trials", func(r *SweepRequest) { r.Trials = 0 }},
		{"alpha out of range", func(r *SweepRequest) { r.Alpha = 1.0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := smallRequest(100)
			tt.mutate(&req)

			_, err := newTestService().Run(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService().Run(ctx, smallRequest(150, 200))
	require.Error(t, err)
}

func TestReportProducesAllEstimates(t *testing.T) {
	summary, err := newTestService().Report(context.Background(), 200, 0.05, 0)
	require.NoError(t, err)

	assert.Equal(t, 200, summary.Trials)
	assert.Equal(t, 200, summary.Mean.NPerGroup)
	assert.Equal(t, 500, summary.Conversion.NPerGroup)
	assert.Equal(t, 500, summary.Ratio.NPerGroup)

	for _, metric := range []MetricReport{summary.Mean, summary.Conversion, summary.Ratio} {
		for _, est := range []struct {
			rate      float64
			low, high float64
		}{
			{metric.Type1.RejectionRate, metric.Type1.Interval.Low, metric.Type1.Interval.High},
			{metric.Power.RejectionRate, metric.Power.Interval.Low, metric.Power.Interval.High},
		} {
			assert.GreaterOrEqual(t, est.rate, est.low)
			assert.LessOrEqual(t, est.rate, est.high)
			assert.GreaterOrEqual(t, est.low, 0.0)
			assert.LessOrEqual(t, est.high, 1.0)
		}
	}

	// Null scenarios should sit near alpha even at modest trial counts
	assert.InDelta(t, 0.05, summary.Mean.Type1.RejectionRate, 0.05)
	// A real lift should reject more often under the larger effects
	assert.Greater(t, summary.Mean.Power.RejectionRate, summary.Mean.Type1.RejectionRate)
}

func TestReportValidatesInputs(t *testing.T) {
	service := newTestService()

	_, err := service.Report(context.Background(), 0, 0.05, 0)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))

	_, err = service.Report(context.Background(), 100, 1.5, 0)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
