package sim

import (
	"fmt"
	"math/rand"

	"absim/internal/errors"
)

// Metric defines the kind of experiment metric being simulated
type Metric string

const (
	MetricMean       Metric = "mean"       // Continuous metric, normal data
	MetricConversion Metric = "conversion" // Binary metric, Bernoulli data
	MetricRatio      Metric = "ratio"      // Revenue per visitor, zero-inflated data
)

// DefaultConfidence is the Wilson interval level used when none is configured
const DefaultConfidence = 0.95

// Model generates one group's synthetic sample under a named distributional
// assumption. Implementations draw only from the generator they are handed.
type Model interface {
	Kind() Metric
	Validate() error

	// Sample draws n observations for one group
	Sample(rng *rand.Rand, n int) []float64
}

// SimulationConfig is the immutable description of one Monte Carlo run:
// the data-generating process for both groups, the decision threshold and
// the repetition count.
type SimulationConfig struct {
	NPerGroup  int     // Observations per group in each simulated experiment
	Trials     int     // Number of simulated experiments
	Alpha      float64 // Significance threshold, p < alpha counts as a rejection
	Seed       int64   // Seed for the run's random stream
	Confidence float64 // Wilson interval level, 0 means DefaultConfidence
	GroupA     Model
	GroupB     Model
}

// ConfidenceLevel returns the configured interval level or the default
func (c SimulationConfig) ConfidenceLevel() float64 {
	if c.Confidence == 0 {
		return DefaultConfidence
	}
	return c.Confidence
}

// Validate checks config invariants before any trial runs
func (c SimulationConfig) Validate() error {
	if c.NPerGroup < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("NPerGroup must be >= 1, got %d", c.NPerGroup))
	}
	if c.Trials < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("Trials must be >= 1, got %d", c.Trials))
	}
	if c.Alpha <= 0.0 || c.Alpha >= 1.0 {
		return errors.ConfigInvalid(fmt.Sprintf("Alpha must be in (0, 1), got %g", c.Alpha))
	}
	if c.Confidence != 0 && (c.Confidence <= 0.0 || c.Confidence >= 1.0) {
		return errors.ConfigInvalid(fmt.Sprintf("Confidence must be in (0, 1), got %g", c.Confidence))
	}
	if c.GroupA == nil || c.GroupB == nil {
		return errors.ConfigInvalid("GroupA and GroupB models must be set")
	}
	if c.GroupA.Kind() != c.GroupB.Kind() {
		return errors.ConfigInvalid(fmt.Sprintf("group models must share a metric kind, got %s and %s",
			c.GroupA.Kind(), c.GroupB.Kind()))
	}
	if err := c.GroupA.Validate(); err != nil {
		return errors.Wrap(err, "GroupA model invalid")
	}
	if err := c.GroupB.Validate(); err != nil {
		return errors.Wrap(err, "GroupB model invalid")
	}
	return nil
}

// Metric returns the metric kind shared by both group models
func (c SimulationConfig) Metric() Metric {
	if c.GroupA == nil {
		return ""
	}
	return c.GroupA.Kind()
}
