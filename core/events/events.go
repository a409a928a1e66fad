// Package events defines the typed events published on the internal bus
// while an experiment runs.
package events

import "github.com/kilianp07/fleetsim/core/sim"

// Event is the union of all bus events.
type Event interface{ isEvent() }

// TrialCompleted is emitted after each trial with its outcome.
type TrialCompleted struct {
	RunID   string
	Trial   int
	Outcome sim.Outcome
}

func (TrialCompleted) isEvent() {}

// ExperimentFinished is emitted once after the last trial.
type ExperimentFinished struct {
	RunID  string
	Trials int
}

func (ExperimentFinished) isEvent() {}
