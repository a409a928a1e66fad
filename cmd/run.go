package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetsim/config"
	"github.com/kilianp07/fleetsim/core/events"
	"github.com/kilianp07/fleetsim/core/experiment"
	coremetrics "github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/core/sim"
	corestream "github.com/kilianp07/fleetsim/core/stream"
	"github.com/kilianp07/fleetsim/infra/logger"
	"github.com/kilianp07/fleetsim/infra/stream"
	"github.com/kilianp07/fleetsim/internal/eventbus"
	"github.com/kilianp07/fleetsim/pkg/export"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Monte-Carlo experiment",
	RunE:  runExperiment,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runExperiment(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New("run")

	simu, err := buildSimulation(cfg)
	if err != nil {
		return err
	}

	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return fmt.Errorf("metrics sinks: %w", err)
	}
	defer func() {
		if c, ok := sink.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logg.Warnf("close sinks: %v", err)
			}
		}
	}()

	var pub corestream.Publisher = corestream.NopPublisher{}
	if cfg.Stream.Enabled {
		mp, err := stream.NewMQTTPublisher(cfg.Stream.MQTT)
		if err != nil {
			return fmt.Errorf("stream publisher: %w", err)
		}
		pub = mp
	}
	defer pub.Close()
	simu.OnSlot = func(rec sim.SlotRecord) {
		if err := pub.PublishSlot(rec); err != nil {
			logg.Warnf("publish slot: %v", err)
		}
	}

	bus := eventbus.New[events.Event](64)
	defer bus.Close()
	sub := bus.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range sub {
			switch e := ev.(type) {
			case events.TrialCompleted:
				logg.Debugf("trial %d: greedy %.2f random %.2f",
					e.Trial, e.Outcome.GreedyTotal, e.Outcome.RandomTotal)
			case events.ExperimentFinished:
				logg.Infof("experiment %s finished: %d trials", e.RunID, e.Trials)
			}
		}
	}()

	runner := &experiment.Runner{
		Sim:     simu,
		Trials:  cfg.Experiment.Trials,
		Seed:    cfg.Experiment.Seed,
		Workers: cfg.Experiment.Workers,
		Log:     logg,
		Sink:    sink,
		Bus:     bus,
	}
	res, err := runner.Run(ctx)
	bus.Close()
	<-done
	if err != nil {
		return err
	}

	sum := res.Summary()
	logg.Infof("greedy mean %.2f (std %.2f), random mean %.2f (std %.2f)",
		sum.GreedyMean, sum.GreedyStd, sum.RandomMean, sum.RandomStd)
	logg.Infof("win rate %.1f%%, uplift %.2f%%", sum.WinRate*100, sum.UpliftPct)

	return writeExports(cfg.Export, res, logg)
}

func writeExports(cfg config.ExportConfig, res *experiment.Result, logg logger.Logger) error {
	if cfg.ResultsCSV != "" {
		if err := writeFile(cfg.ResultsCSV, func(f *os.File) error {
			return export.WriteResultsCSV(f, res)
		}); err != nil {
			return err
		}
		logg.Infof("wrote %s", cfg.ResultsCSV)
	}
	if cfg.ResultsJSON != "" {
		if err := writeFile(cfg.ResultsJSON, func(f *os.File) error {
			return export.WriteResultsJSON(f, res)
		}); err != nil {
			return err
		}
		logg.Infof("wrote %s", cfg.ResultsJSON)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
