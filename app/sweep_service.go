package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"absim/domain/core"
	"absim/domain/sim"
	"absim/internal/errors"
	"absim/ports"

	"golang.org/x/sync/semaphore"
)

// Canonical study parameters. These mirror the reference calibration study:
// a null arm and a modest-lift arm per metric kind.
const (
	meanNull       = 0.0
	meanEffect     = 0.3
	meanStdDev     = 1.0
	conversionRate = 0.08
	conversionLift = 0.095
	purchaseProb   = 0.05
	purchaseLift   = 0.06
	purchaseAmount = 120.0
)

// Seed blocks keep every estimate of every row on its own derived seed:
// row seed = SeedBase + block + row index. Rows therefore reproduce
// independently of execution order or parallelism.
const (
	seedBlockMeanType1       int64 = 10_000
	seedBlockMeanPower       int64 = 20_000
	seedBlockConversionType1 int64 = 30_000
	seedBlockConversionPower int64 = 40_000
	seedBlockRatioType1      int64 = 50_000
	seedBlockRatioPower      int64 = 60_000
)

// SweepService drives Monte Carlo estimation across an ordered list of
// sample sizes, producing one SweepRow per size in input order.
type SweepService struct {
	rngPort        ports.RNGPort
	meanTest       ports.PValuePort
	conversionTest ports.PValuePort
	ratioTest      ports.PValuePort
}

// NewSweepService creates a sweep service wired to one test per metric kind
func NewSweepService(rngPort ports.RNGPort, meanTest, conversionTest, ratioTest ports.PValuePort) *SweepService {
	return &SweepService{
		rngPort:        rngPort,
		meanTest:       meanTest,
		conversionTest: conversionTest,
		ratioTest:      ratioTest,
	}
}

// SweepRequest defines the inputs for a deterministic calibration sweep
type SweepRequest struct {
	SampleSizes []int   // Ordered; one output row per entry
	Trials      int     // Simulated experiments per estimate
	Alpha       float64 // Significance threshold
	SeedBase    int64   // Base seed; per-row seeds derive from it
	Confidence  float64 // Wilson interval level, 0 means the default
	Parallelism int     // Max rows in flight; <= 1 runs sequentially
	FailFast    bool    // Abort the sweep on the first failed row
}

func (r SweepRequest) validate() error {
	if len(r.SampleSizes) == 0 {
		return errors.ConfigInvalid("SampleSizes must contain at least one entry")
	}
	if r.Trials < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("Trials must be >= 1, got %d", r.Trials))
	}
	if r.Alpha <= 0.0 || r.Alpha >= 1.0 {
		return errors.ConfigInvalid(fmt.Sprintf("Alpha must be in (0, 1), got %g", r.Alpha))
	}
	return nil
}

// Run executes the sweep. Failed rows carry their error and the sweep
// continues unless FailFast is set; row order always matches SampleSizes.
func (s *SweepService) Run(ctx context.Context, req SweepRequest) (*sim.SweepResult, error) {
	startTime := time.Now()
	if err := req.validate(); err != nil {
		return nil, err
	}

	rows := make([]sim.SweepRow, len(req.SampleSizes))
	if req.Parallelism > 1 {
		if err := s.runRowsParallel(ctx, req, rows); err != nil {
			return nil, err
		}
	} else {
		for i, n := range req.SampleSizes {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(err, "sweep cancelled")
			}
			rows[i] = s.runRow(i, n, req)
		}
	}

	failedRows := 0
	for i := range rows {
		if rows[i].Failed() {
			failedRows++
			log.Printf("sweep row %d (n=%d) failed: %s", i, rows[i].NPerGroup, rows[i].Err)
			if req.FailFast {
				return nil, errors.ComputationFailed(fmt.Sprintf("row %d (n=%d) failed: %s", i, rows[i].NPerGroup, rows[i].Err))
			}
		}
	}

	return &sim.SweepResult{
		SweepID:    core.SweepID(core.NewID()),
		SeedBase:   req.SeedBase,
		Trials:     req.Trials,
		Alpha:      req.Alpha,
		Rows:       rows,
		FailedRows: failedRows,
		RuntimeMs:  time.Since(startTime).Milliseconds(),
		CreatedAt:  core.Now(),
	}, nil
}

// runRowsParallel computes rows under a bounded semaphore. Each row's seeds
// derive from its index, so results are identical to a sequential run.
func (s *SweepService) runRowsParallel(ctx context.Context, req SweepRequest, rows []sim.SweepRow) error {
	sem := semaphore.NewWeighted(int64(req.Parallelism))
	var wg sync.WaitGroup

	for i, n := range req.SampleSizes {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return errors.Wrap(err, "sweep cancelled")
		}
		wg.Add(1)
		go func(index, nPerGroup int) {
			defer wg.Done()
			defer sem.Release(1)
			rows[index] = s.runRow(index, nPerGroup, req)
		}(i, n)
	}

	wg.Wait()
	return nil
}

// runRow computes the six canonical estimates for one sample size. Any
// failure marks the whole row failed; partial rows are never emitted.
func (s *SweepService) runRow(index, nPerGroup int, req SweepRequest) sim.SweepRow {
	row := sim.SweepRow{NPerGroup: nPerGroup, Alpha: req.Alpha, Trials: req.Trials}
	rowSeed := func(block int64) int64 { return req.SeedBase + block + int64(index) }

	fail := func(err error) sim.SweepRow {
		return sim.SweepRow{NPerGroup: nPerGroup, Alpha: req.Alpha, Trials: req.Trials, Err: err.Error()}
	}

	type1Mean, err := s.estimate(s.meanTest, req,
		sim.MeanType1Config(nPerGroup, meanNull, meanStdDev, req.Trials, req.Alpha, rowSeed(seedBlockMeanType1)))
	if err != nil {
		return fail(err)
	}
	powerMean, err := s.estimate(s.meanTest, req,
		sim.MeanPowerConfig(nPerGroup, meanNull, meanEffect, meanStdDev, req.Trials, req.Alpha, rowSeed(seedBlockMeanPower)))
	if err != nil {
		return fail(err)
	}
	type1Conversion, err := s.estimate(s.conversionTest, req,
		sim.ConversionType1Config(nPerGroup, conversionRate, req.Trials, req.Alpha, rowSeed(seedBlockConversionType1)))
	if err != nil {
		return fail(err)
	}
	powerConversion, err := s.estimate(s.conversionTest, req,
		sim.ConversionPowerConfig(nPerGroup, conversionRate, conversionLift, req.Trials, req.Alpha, rowSeed(seedBlockConversionPower)))
	if err != nil {
		return fail(err)
	}
	type1Ratio, err := s.estimate(s.ratioTest, req,
		sim.RatioType1Config(nPerGroup, purchaseProb, purchaseAmount, req.Trials, req.Alpha, rowSeed(seedBlockRatioType1)))
	if err != nil {
		return fail(err)
	}
	powerRatio, err := s.estimate(s.ratioTest, req,
		sim.RatioPowerConfig(nPerGroup, purchaseProb, purchaseLift, purchaseAmount, req.Trials, req.Alpha, rowSeed(seedBlockRatioPower)))
	if err != nil {
		return fail(err)
	}

	row.Type1Mean = *type1Mean
	row.PowerMean = *powerMean
	row.Type1Conversion = *type1Conversion
	row.PowerConversion = *powerConversion
	row.Type1Ratio = *type1Ratio
	row.PowerRatio = *powerRatio
	return row
}

func (s *SweepService) estimate(test ports.PValuePort, req SweepRequest, cfg sim.SimulationConfig) (*sim.EstimationResult, error) {
	cfg.Confidence = req.Confidence
	result, err := sim.NewEstimator(test, s.rngPort).Estimate(cfg)
	if err != nil {
		return nil, err
	}
	if result.Interval.Clamped {
		log.Printf("interval clamped for %s (n=%d seed=%d): estimate=%g", test.Name(), cfg.NPerGroup, cfg.Seed, result.RejectionRate)
	}
	return result, nil
}
