// Package ports collects the capability interfaces adapters implement.
// The simulation capabilities are declared next to the engine that consumes
// them and re-exported here, so the domain stays free of upward imports.
package ports

import (
	"absim/domain/sim"
)

// Capability interfaces consumed by the simulation engine
type (
	RNGPort              = sim.RNGPort
	PValuePort           = sim.PValuePort
	RandomizedPValuePort = sim.RandomizedPValuePort
)

// ReportPort renders sweep output for human or file consumption.
// The core guarantees field presence and numeric validity; formatting,
// file layout and destinations belong to the adapter.
type ReportPort interface {
	WriteSweep(result *sim.SweepResult) error
}
