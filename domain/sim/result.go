package sim

import (
	"absim/domain/core"
)

// EstimationResult summarizes one Monte Carlo run.
//
// Under the null hypothesis (no real effect) the rejection rate estimates the
// Type I error; under a real effect it estimates the power.
// Invariant: 0 <= Interval.Low <= RejectionRate <= Interval.High <= 1 and
// RejectionRate == Rejections/Trials exactly.
type EstimationResult struct {
	Trials        int      `json:"trials"`
	Alpha         float64  `json:"alpha"`
	Rejections    int      `json:"rejections"`
	RejectionRate float64  `json:"rejection_rate"`
	Interval      Interval `json:"interval"`
	Seed          int64    `json:"seed"`
	TestName      string   `json:"test_name"`
}

// SweepRow pairs one sample size's input parameters with the six canonical
// estimates: Type I error and power for each metric kind. Rows keep the
// order of the input sample size list.
type SweepRow struct {
	NPerGroup int     `json:"n_per_group"`
	Alpha     float64 `json:"alpha"`
	Trials    int     `json:"trials"`

	Type1Mean       EstimationResult `json:"type1_mean"`
	PowerMean       EstimationResult `json:"power_mean"`
	Type1Conversion EstimationResult `json:"type1_conversion"`
	PowerConversion EstimationResult `json:"power_conversion"`
	Type1Ratio      EstimationResult `json:"type1_ratio"`
	PowerRatio      EstimationResult `json:"power_ratio"`

	// Err is set when this row failed; its estimates are zero-valued
	Err string `json:"err,omitempty"`
}

// Failed reports whether the row carries a failure instead of estimates
func (r SweepRow) Failed() bool { return r.Err != "" }

// SweepResult contains the ordered rows of a sweep plus audit metadata,
// mirroring what reporting collaborators need: every field present, no NaN
// or negative counts.
type SweepResult struct {
	SweepID    core.SweepID   `json:"sweep_id"`
	SeedBase   int64          `json:"seed_base"`
	Trials     int            `json:"trials"`
	Alpha      float64        `json:"alpha"`
	Rows       []SweepRow     `json:"rows"`
	FailedRows int            `json:"failed_rows"`
	RuntimeMs  int64          `json:"runtime_ms"`
	CreatedAt  core.Timestamp `json:"created_at"`
}
