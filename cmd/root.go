// Package cmd wires the CLI around the experiment runner.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetsim/config"
	"github.com/kilianp07/fleetsim/core/congestion"
	"github.com/kilianp07/fleetsim/core/dataset"
	"github.com/kilianp07/fleetsim/core/revenue"
	"github.com/kilianp07/fleetsim/core/sim"
	"github.com/kilianp07/fleetsim/infra/logger"

	// Register the built-in metrics sinks.
	_ "github.com/kilianp07/fleetsim/infra/metrics"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "fleetsim",
	Short: "Fleet allocation simulator",
	Long: "fleetsim compares a capacity-aware greedy driver allocation against a " +
		"uniform-random baseline over Monte-Carlo trials.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// buildSimulation assembles the per-trial simulation from configuration:
// revenue table (file or synthetic), oracle and congestion model.
func buildSimulation(cfg *config.Config) (*sim.Simulation, error) {
	var (
		table *revenue.Table
		err   error
	)
	if cfg.Dataset.Path != "" {
		table, err = dataset.Load(cfg.Dataset.Path)
		if err != nil {
			return nil, err
		}
	} else {
		table = dataset.Synthetic(cfg.Dataset.Zones, cfg.Dataset.Seed)
	}

	mdl, err := congestion.New(cfg.Simulation.Model)
	if err != nil {
		return nil, fmt.Errorf("congestion model: %w", err)
	}

	return &sim.Simulation{
		Oracle:    revenue.NewOracle(table),
		Model:     mdl,
		Zones:     table.Zones(),
		Drivers:   cfg.Simulation.Drivers,
		Horizon:   cfg.Simulation.HorizonHours,
		StartDay:  cfg.Simulation.StartDay,
		StartTime: cfg.Simulation.StartTime,
		Weather:   cfg.Simulation.Weather,
		Log:       logger.New("sim"),
	}, nil
}
