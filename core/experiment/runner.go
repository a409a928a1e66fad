// Package experiment repeats the two-strategy simulation across independent
// trials and aggregates the outcomes.
package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/fleetsim/core/events"
	"github.com/kilianp07/fleetsim/core/logger"
	"github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/core/sim"
	"github.com/kilianp07/fleetsim/internal/eventbus"
)

// Runner executes Trials independent trials of Sim. Each trial derives its
// own random source from Seed and the trial index, so trials never share
// state and the whole run reproduces from the seed alone regardless of the
// worker count.
type Runner struct {
	Sim    *sim.Simulation
	Trials int
	Seed   int64
	// Workers bounds the number of trials running concurrently. Zero or one
	// runs sequentially.
	Workers int
	Log     logger.Logger
	// Sink receives per-trial results and the final summary. Nil disables
	// recording.
	Sink metrics.Sink
	// Bus, when set, receives TrialCompleted and ExperimentFinished events.
	Bus *eventbus.Bus[events.Event]
}

// Result holds the per-trial outcomes of one experiment run in trial order.
type Result struct {
	RunID    string
	Outcomes []sim.Outcome
}

// Validate reports configuration errors.
func (r *Runner) Validate() error {
	if r.Sim == nil {
		return fmt.Errorf("runner requires a simulation")
	}
	if err := r.Sim.Validate(); err != nil {
		return err
	}
	if r.Trials <= 0 {
		return fmt.Errorf("trial count must be positive, got %d", r.Trials)
	}
	return nil
}

// Run executes all trials. Cancellation is coarse-grained: a canceled
// context stops new trials from starting, trials already running finish.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	log := r.Log
	if log == nil {
		log = logger.NopLogger{}
	}

	res := &Result{
		RunID:    uuid.NewString(),
		Outcomes: make([]sim.Outcome, r.Trials),
	}
	log.Infof("experiment %s: %d trials, seed %d", res.RunID, r.Trials, r.Seed)

	runTrial := func(i int) {
		rng := rand.New(rand.NewSource(r.Seed + int64(i)))
		out := r.Sim.Run(rng)
		res.Outcomes[i] = out
		r.record(log, res.RunID, i, out)
	}

	if r.Workers <= 1 {
		for i := 0; i < r.Trials; i++ {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("experiment canceled after %d trials: %w", i, err)
			}
			runTrial(i)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < r.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					runTrial(i)
				}
			}()
		}
		var canceled error
		for i := 0; i < r.Trials; i++ {
			if err := ctx.Err(); err != nil {
				canceled = fmt.Errorf("experiment canceled after %d trials: %w", i, err)
				break
			}
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		if canceled != nil {
			return nil, canceled
		}
	}

	if r.Bus != nil {
		r.Bus.Publish(events.ExperimentFinished{RunID: res.RunID, Trials: r.Trials})
	}
	if r.Sink != nil {
		sum := res.Summary()
		if err := r.Sink.RecordSummary(metrics.ExperimentSummary{
			RunID:      sum.RunID,
			Trials:     sum.Trials,
			GreedyMean: sum.GreedyMean,
			RandomMean: sum.RandomMean,
			GreedyStd:  sum.GreedyStd,
			RandomStd:  sum.RandomStd,
			WinRate:    sum.WinRate,
			UpliftPct:  sum.UpliftPct,
			Time:       time.Now(),
		}); err != nil {
			log.Warnf("record summary: %v", err)
		}
	}
	return res, nil
}

func (r *Runner) record(log logger.Logger, runID string, trial int, out sim.Outcome) {
	if r.Sink != nil {
		if err := r.Sink.RecordTrial(metrics.TrialResult{
			RunID:       runID,
			Trial:       trial,
			GreedyTotal: out.GreedyTotal,
			RandomTotal: out.RandomTotal,
			Time:        time.Now(),
		}); err != nil {
			log.Warnf("record trial %d: %v", trial, err)
		}
	}
	if r.Bus != nil {
		r.Bus.Publish(events.TrialCompleted{RunID: runID, Trial: trial, Outcome: out})
	}
}
