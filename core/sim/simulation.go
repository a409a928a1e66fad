package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/kilianp07/fleetsim/core/congestion"
	"github.com/kilianp07/fleetsim/core/logger"
	"github.com/kilianp07/fleetsim/core/model"
	"github.com/kilianp07/fleetsim/core/revenue"
)

// Outcome is the total revenue of both strategies over one full trial.
type Outcome struct {
	GreedyTotal float64 `json:"greedy_total"`
	RandomTotal float64 `json:"random_total"`
}

// Diff returns the greedy strategy's revenue advantage over the baseline.
func (o Outcome) Diff() float64 { return o.GreedyTotal - o.RandomTotal }

// Simulation runs the allocator-driven strategy and the uniform-random
// baseline over identical initial fleets and an identical context sequence.
// Only the allocation decisions differ between the two.
type Simulation struct {
	Oracle  *revenue.Oracle
	Model   congestion.Model
	Zones   int
	Drivers int
	// Horizon is the simulated duration in hours; the trial runs
	// ceil(Horizon/DT) slots.
	Horizon float64
	// StartDay fixes the starting day of week; negative draws it uniformly
	// per trial.
	StartDay int
	// StartTime fixes the starting hour of day; negative draws it uniformly
	// per trial.
	StartTime float64
	// Weather is the scenario weather, "clear" when empty.
	Weather string
	Log     logger.Logger
	// OnSlot, when set, observes every slot record of both strategies as it
	// is produced (live streaming, progress displays).
	OnSlot func(rec SlotRecord)
}

// Validate reports configuration errors. Data sparsity is not an error; it
// is absorbed by the oracle's fallback chain.
func (s *Simulation) Validate() error {
	if s.Oracle == nil {
		return fmt.Errorf("simulation requires a revenue oracle")
	}
	if s.Model == nil {
		return fmt.Errorf("simulation requires a congestion model")
	}
	if s.Zones <= 0 {
		return fmt.Errorf("zone count must be positive, got %d", s.Zones)
	}
	if s.Drivers <= 0 {
		return fmt.Errorf("driver count must be positive, got %d", s.Drivers)
	}
	if s.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %v", s.Horizon)
	}
	return nil
}

// Run executes one trial using the provided random source and returns the
// totals of both strategies.
func (s *Simulation) Run(rng *rand.Rand) Outcome {
	out, _ := s.run(rng, false)
	return out
}

// RunTraced executes one trial and additionally collects the full per-slot
// record sequences for external visualization.
func (s *Simulation) RunTraced(rng *rand.Rand) (Outcome, *TrialTrace) {
	return s.run(rng, true)
}

func (s *Simulation) run(rng *rand.Rand, traced bool) (Outcome, *TrialTrace) {
	log := s.Log
	if log == nil {
		log = logger.NopLogger{}
	}

	day := s.StartDay
	if day < 0 {
		day = rng.Intn(7)
	} else {
		day %= 7
	}
	start := s.StartTime
	if start < 0 {
		start = rng.Float64() * 24
	} else {
		start = math.Mod(start, 24)
	}
	weather := s.Weather
	if weather == "" {
		weather = "clear"
	}
	ctx := model.Context{Day: day, Time: start, Weather: weather}.Normalize()

	// Both strategies start from the same population draw.
	initial := make([]*model.Driver, s.Drivers)
	for i := range initial {
		initial[i] = &model.Driver{
			Cluster:   rng.Intn(s.Zones),
			HoursLeft: float64(1 + rng.Intn(8)),
		}
	}

	greedy := NewFleet(initial, GreedyPolicy{Model: s.Model}, s.Model)
	random := NewFleet(model.CloneFleet(initial), RandomPolicy{Zones: s.Zones, Rand: rng}, s.Model)

	slots := int(math.Ceil(s.Horizon / DT))
	var trace *TrialTrace
	if traced {
		trace = &TrialTrace{DT: DT, Slots: slots}
	}

	log.Debugw("trial start", map[string]any{
		"day": ctx.Day, "time": ctx.Time, "weather": ctx.Weather, "slots": slots,
	})

	for slot := 0; slot < slots; slot++ {
		revenues := s.Oracle.Vector(ctx, s.Zones)

		recG := greedy.Step(ctx, revenues)
		recR := random.Step(ctx, revenues)
		if traced {
			trace.Greedy = append(trace.Greedy, recG)
			trace.Random = append(trace.Random, recR)
		}
		if s.OnSlot != nil {
			s.OnSlot(recG)
			s.OnSlot(recR)
		}

		ctx = ctx.Advance(DT)
	}

	out := Outcome{GreedyTotal: greedy.Total(), RandomTotal: random.Total()}
	log.Debugw("trial done", map[string]any{
		"greedy_total": out.GreedyTotal, "random_total": out.RandomTotal,
	})
	return out, trace
}
