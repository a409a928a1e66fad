package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetsim/config"
	"github.com/kilianp07/fleetsim/infra/logger"
	"github.com/kilianp07/fleetsim/pkg/export"
)

var (
	traceOut  string
	traceSeed int64
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Run one trial and dump its per-slot records as JSON",
	RunE:  runTrace,
}

func init() {
	traceCmd.Flags().StringVar(&traceOut, "out", "trace.json", "output file")
	traceCmd.Flags().Int64Var(&traceSeed, "seed", 1, "trial seed")
	rootCmd.AddCommand(traceCmd)
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New("trace")

	simu, err := buildSimulation(cfg)
	if err != nil {
		return err
	}
	if err := simu.Validate(); err != nil {
		return err
	}

	out, trace := simu.RunTraced(rand.New(rand.NewSource(traceSeed)))
	if err := writeFile(traceOut, func(f *os.File) error {
		return export.WriteTraceJSON(f, trace)
	}); err != nil {
		return err
	}
	logg.Infof("greedy %.2f, random %.2f, trace written to %s",
		out.GreedyTotal, out.RandomTotal, traceOut)
	return nil
}
