package csp

import (
	"time"

	"github.com/rs/zerolog"
)

// StepCallback is invoked once per search step with read-only snapshots of
// the current assigned and unassigned variable maps. Implementations must
// not mutate either map.
type StepCallback func(assigned, unassigned map[string]Domain)

// SolverConfig holds configuration for both the systematic solver and the
// min-conflicts engine: the optional step-visualization callback and its
// presentation delay, the min-conflicts step cap, and the seed for
// min-conflicts' randomized choices. The systematic solver itself takes no
// randomness; only min-conflicts consumes the seed.
type SolverConfig struct {
	// MinConflictsSteps bounds the number of repair iterations
	// min-conflicts performs before reporting failure.
	MinConflictsSteps int
	// RandomSeed seeds the min-conflicts RNG for reproducible runs.
	RandomSeed int64
	// TimeStepMillis, if nonzero, inserts a cumulative delay between search
	// steps purely as a presentation aid.
	TimeStepMillis int
	// Callback, if non-nil, is invoked once per search step.
	Callback StepCallback
	// Logger receives structured trace events for the search. The zero
	// value (zerolog.Logger{}) is a valid no-op logger; DefaultSolverConfig
	// sets it to zerolog.Nop() explicitly. Both disable logging, so "unset"
	// and "disabled on purpose" behave the same.
	Logger zerolog.Logger
}

// DefaultSolverConfig returns the default solver configuration: a 1000-step
// min-conflicts cap, a fixed RNG seed for reproducible examples, and a
// disabled logger.
func DefaultSolverConfig() *SolverConfig {
	return &SolverConfig{
		MinConflictsSteps: 1000,
		RandomSeed:        42,
		Logger:            zerolog.Nop(),
	}
}

// SetOptions sets the step-visualization delay and callback in place.
func (c *SolverConfig) SetOptions(timeStepMillis int, callback StepCallback) {
	c.TimeStepMillis = timeStepMillis
	c.Callback = callback
}

func (c *SolverConfig) delay() {
	if c.TimeStepMillis > 0 {
		time.Sleep(time.Duration(c.TimeStepMillis) * time.Millisecond)
	}
}
