package metrics

import (
	"io"
	"time"
)

// TrialResult is the per-trial observation recorded by sinks.
type TrialResult struct {
	RunID       string
	Trial       int
	GreedyTotal float64
	RandomTotal float64
	Time        time.Time
}

// Diff returns the greedy strategy's advantage for this trial.
func (r TrialResult) Diff() float64 { return r.GreedyTotal - r.RandomTotal }

// ExperimentSummary aggregates a finished run for observability backends.
type ExperimentSummary struct {
	RunID      string
	Trials     int
	GreedyMean float64
	RandomMean float64
	GreedyStd  float64
	RandomStd  float64
	WinRate    float64
	UpliftPct  float64
	Time       time.Time
}

// Sink records experiment observations. Implementations must tolerate being
// called from multiple goroutines when the runner executes trials in
// parallel.
type Sink interface {
	RecordTrial(TrialResult) error
	RecordSummary(ExperimentSummary) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordTrial(TrialResult) error         { return nil }
func (NopSink) RecordSummary(ExperimentSummary) error { return nil }

// MultiSink fans records out to several sinks, returning the first error.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink combines sinks into one.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordTrial(r TrialResult) error {
	for _, s := range m.sinks {
		if err := s.RecordTrial(r); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiSink) RecordSummary(sum ExperimentSummary) error {
	for _, s := range m.sinks {
		if err := s.RecordSummary(sum); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every member sink that holds a resource. The first error is
// returned after all members were attempted.
func (m *MultiSink) Close() error {
	var first error
	for _, s := range m.sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}
