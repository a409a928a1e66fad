package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/fleetsim/core/metrics"
)

func TestPromSink_RecordTrial(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	now := time.Now()
	if err := sink.RecordTrial(coremetrics.TrialResult{
		RunID: "r", Trial: 0, GreedyTotal: 12, RandomTotal: 8, Time: now,
	}); err != nil {
		t.Fatalf("record trial: %v", err)
	}
	if err := sink.RecordTrial(coremetrics.TrialResult{
		RunID: "r", Trial: 1, GreedyTotal: 5, RandomTotal: 9, Time: now,
	}); err != nil {
		t.Fatalf("record trial: %v", err)
	}

	ps := sink.(*PromSink)
	if got := testutil.ToFloat64(ps.trials.WithLabelValues("greedy")); got != 1 {
		t.Fatalf("expected 1 greedy win, got %v", got)
	}
	if got := testutil.ToFloat64(ps.trials.WithLabelValues("random")); got != 1 {
		t.Fatalf("expected 1 random win, got %v", got)
	}
}

func TestPromSink_RecordSummary(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	if err := sink.RecordSummary(coremetrics.ExperimentSummary{
		RunID: "r", Trials: 10, WinRate: 0.7, UpliftPct: 12.5, Time: time.Now(),
	}); err != nil {
		t.Fatalf("record summary: %v", err)
	}
	ps := sink.(*PromSink)
	if got := testutil.ToFloat64(ps.winRate); got != 0.7 {
		t.Fatalf("win rate gauge %v", got)
	}
	if got := testutil.ToFloat64(ps.uplift); got != 12.5 {
		t.Fatalf("uplift gauge %v", got)
	}
}

func TestPromSink_ReusesExistingCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration must reuse collectors: %v", err)
	}
}
