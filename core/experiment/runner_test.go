package experiment

import (
	"context"
	"sync"
	"testing"

	"github.com/kilianp07/fleetsim/core/congestion"
	"github.com/kilianp07/fleetsim/core/events"
	"github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/core/revenue"
	"github.com/kilianp07/fleetsim/core/sim"
	"github.com/kilianp07/fleetsim/internal/eventbus"
)

// skewedOracle builds a table where zone 0 dwarfs every other zone, so the
// allocator has an obvious edge over random placement.
func skewedOracle(zones int) *revenue.Oracle {
	rows := make([]revenue.Row, 0, 7*zones)
	for day := 0; day < 7; day++ {
		for k := 0; k < zones; k++ {
			rev := 1.0
			if k == 0 {
				rev = 100
			}
			rows = append(rows, revenue.Row{Day: day, Time: 12, Weather: "clear", Cluster: k, Revenue: rev})
		}
	}
	return revenue.NewOracle(revenue.NewTable(rows))
}

func testRunner(t *testing.T, trials, workers int) *Runner {
	t.Helper()
	m, err := congestion.NewSaturation(0.6)
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	return &Runner{
		Sim: &sim.Simulation{
			Oracle:    skewedOracle(6),
			Model:     m,
			Zones:     6,
			Drivers:   20,
			Horizon:   6,
			StartDay:  -1,
			StartTime: -1,
		},
		Trials:  trials,
		Seed:    12345,
		Workers: workers,
	}
}

func TestRunner_Validate(t *testing.T) {
	r := testRunner(t, 0, 1)
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for zero trials")
	}
	r = testRunner(t, 10, 1)
	r.Sim = nil
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for missing simulation")
	}
}

func TestRunner_Reproducible(t *testing.T) {
	a, err := testRunner(t, 20, 1).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := testRunner(t, 20, 1).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i := range a.Outcomes {
		if a.Outcomes[i] != b.Outcomes[i] {
			t.Fatalf("trial %d differs across identical runs: %+v vs %+v", i, a.Outcomes[i], b.Outcomes[i])
		}
	}
}

func TestRunner_WorkersMatchSequential(t *testing.T) {
	seq, err := testRunner(t, 30, 1).Run(context.Background())
	if err != nil {
		t.Fatalf("sequential run: %v", err)
	}
	par, err := testRunner(t, 30, 4).Run(context.Background())
	if err != nil {
		t.Fatalf("parallel run: %v", err)
	}
	for i := range seq.Outcomes {
		if seq.Outcomes[i] != par.Outcomes[i] {
			t.Fatalf("trial %d differs between sequential and parallel: %+v vs %+v",
				i, seq.Outcomes[i], par.Outcomes[i])
		}
	}
}

// With a revenue table heavily favoring one zone the allocator must beat the
// baseline in well over half the trials.
func TestRunner_GreedyBeatsRandomOnSkewedTable(t *testing.T) {
	res, err := testRunner(t, 200, 4).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	sum := res.Summary()
	if sum.WinRate <= 0.5 {
		t.Fatalf("expected win rate above 0.5, got %v", sum.WinRate)
	}
	if sum.UpliftPct <= 0 {
		t.Fatalf("expected positive uplift, got %v", sum.UpliftPct)
	}
}

func TestRunner_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := testRunner(t, 10, 1).Run(ctx); err == nil {
		t.Fatal("expected cancellation error")
	}
}

type countingSink struct {
	mu        sync.Mutex
	trials    int
	summaries int
}

func (c *countingSink) RecordTrial(metrics.TrialResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trials++
	return nil
}

func (c *countingSink) RecordSummary(metrics.ExperimentSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summaries++
	return nil
}

func TestRunner_SinkAndBus(t *testing.T) {
	r := testRunner(t, 5, 1)
	sink := &countingSink{}
	bus := eventbus.New[events.Event](16)
	sub := bus.Subscribe()
	r.Sink = sink
	r.Bus = bus

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if sink.trials != 5 || sink.summaries != 1 {
		t.Fatalf("expected 5 trial records and 1 summary, got %d/%d", sink.trials, sink.summaries)
	}

	var completed, finished int
	for i := 0; i < 6; i++ {
		switch (<-sub).(type) {
		case events.TrialCompleted:
			completed++
		case events.ExperimentFinished:
			finished++
		}
	}
	if completed != 5 || finished != 1 {
		t.Fatalf("expected 5 trial events and 1 finish event, got %d/%d", completed, finished)
	}
}

func TestSummary_Statistics(t *testing.T) {
	res := &Result{
		RunID: "test",
		Outcomes: []sim.Outcome{
			{GreedyTotal: 10, RandomTotal: 8},
			{GreedyTotal: 14, RandomTotal: 12},
			{GreedyTotal: 12, RandomTotal: 13},
		},
	}
	sum := res.Summary()
	if sum.GreedyMean != 12 {
		t.Fatalf("expected greedy mean 12, got %v", sum.GreedyMean)
	}
	if sum.RandomMean != 11 {
		t.Fatalf("expected random mean 11, got %v", sum.RandomMean)
	}
	// Sample std of {10,14,12} is 2.
	if sum.GreedyStd != 2 {
		t.Fatalf("expected greedy std 2, got %v", sum.GreedyStd)
	}
	if sum.WinRate != 2.0/3.0 {
		t.Fatalf("expected win rate 2/3, got %v", sum.WinRate)
	}
	wantUplift := (12.0/11.0 - 1) * 100
	if diff := sum.UpliftPct - wantUplift; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected uplift %v, got %v", wantUplift, sum.UpliftPct)
	}
}
