package sim

import (
	"fmt"
	"math"
	"math/rand"

	"absim/internal/errors"
)

// TrialFailurePolicy decides what a run does when a trial cannot produce a
// valid p-value.
type TrialFailurePolicy int

const (
	// AbortOnFailure stops the whole run on the first failed trial. Partial
	// estimates from a degraded run are more dangerous than a hard failure,
	// so this is the default.
	AbortOnFailure TrialFailurePolicy = iota

	// SkipFailedTrials drops failed trials from the tally; the result's
	// Trials field reflects completed trials only.
	SkipFailedTrials
)

// Estimator runs repeated simulated experiments against one statistical test
// and estimates the test's rejection rate with Monte Carlo uncertainty.
type Estimator struct {
	test   PValuePort
	rng    RNGPort
	policy TrialFailurePolicy
}

// NewEstimator creates an estimator with the abort-on-failure policy
func NewEstimator(test PValuePort, rng RNGPort) *Estimator {
	return &Estimator{test: test, rng: rng, policy: AbortOnFailure}
}

// WithFailurePolicy returns a copy of the estimator using the given policy
func (e *Estimator) WithFailurePolicy(policy TrialFailurePolicy) *Estimator {
	clone := *e
	clone.policy = policy
	return &clone
}

// Estimate runs cfg.Trials independent trials on a single seeded stream and
// returns the rejection rate with its Wilson interval. Identical configs
// (seed included) produce bit-identical results.
func (e *Estimator) Estimate(cfg SimulationConfig) (*EstimationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// One stream for the whole run, advanced trial by trial. Never re-seeded
	// per trial: reproducibility comes from the seed plus the call sequence.
	stream, err := e.rng.SeededStream(e.test.Name(), cfg.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "creating simulation stream")
	}

	rejections := 0
	completed := 0
	for i := 0; i < cfg.Trials; i++ {
		rejected, err := e.runTrial(cfg, stream)
		if err != nil {
			if e.policy == SkipFailedTrials {
				continue
			}
			return nil, errors.Wrapf(err, "trial %d of %d failed (metric=%s seed=%d)",
				i, cfg.Trials, cfg.Metric(), cfg.Seed)
		}
		completed++
		if rejected {
			rejections++
		}
	}
	if completed == 0 {
		return nil, errors.ComputationFailed(fmt.Sprintf("no trial produced a valid p-value (metric=%s seed=%d)",
			cfg.Metric(), cfg.Seed))
	}

	interval, err := WilsonInterval(rejections, completed, cfg.ConfidenceLevel())
	if err != nil {
		return nil, errors.Wrap(err, "computing rejection rate interval")
	}

	return &EstimationResult{
		Trials:        completed,
		Alpha:         cfg.Alpha,
		Rejections:    rejections,
		RejectionRate: float64(rejections) / float64(completed),
		Interval:      interval,
		Seed:          cfg.Seed,
		TestName:      e.test.Name(),
	}, nil
}

// runTrial executes one simulated experiment: draw both groups, compute the
// p-value, compare against alpha.
func (e *Estimator) runTrial(cfg SimulationConfig, stream *rand.Rand) (bool, error) {
	a := cfg.GroupA.Sample(stream, cfg.NPerGroup)
	b := cfg.GroupB.Sample(stream, cfg.NPerGroup)

	var p float64
	var err error
	if randomized, ok := e.test.(RandomizedPValuePort); ok {
		p, err = randomized.PValueRand(a, b, stream)
	} else {
		p, err = e.test.PValue(a, b)
	}
	if err != nil {
		return false, err
	}
	if math.IsNaN(p) || p < 0.0 || p > 1.0 {
		return false, errors.ComputationFailed(fmt.Sprintf("test %s returned invalid p-value %g", e.test.Name(), p))
	}

	// Strict inequality: p == alpha is not a rejection
	return p < cfg.Alpha, nil
}
