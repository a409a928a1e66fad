package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	data := `dataset:
  path: "revenue.csv"
simulation:
  drivers: 120
  horizon_hours: 6
  start_day: 2
  weather: "rain"
  model:
    type: "saturation"
    conf:
      alpha: 0.4
experiment:
  trials: 500
  seed: 99
  workers: 4
metrics:
  sinks:
    - type: "nop"
stream:
  enabled: true
  mqtt:
    broker: "tcp://localhost:1883"
    topic: "fleetsim/slots"
export:
  results_csv: "results.csv"
`
	cfg, err := Load(writeConfig(t, data))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"dataset.path", cfg.Dataset.Path, "revenue.csv"},
		{"drivers", cfg.Simulation.Drivers, 120},
		{"horizon_hours", cfg.Simulation.HorizonHours, 6.0},
		{"start_day", cfg.Simulation.StartDay, 2},
		{"weather", cfg.Simulation.Weather, "rain"},
		{"model.type", cfg.Simulation.Model.Type, "saturation"},
		{"trials", cfg.Experiment.Trials, 500},
		{"seed", cfg.Experiment.Seed, int64(99)},
		{"workers", cfg.Experiment.Workers, 4},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"stream.enabled", cfg.Stream.Enabled, true},
		{"stream.broker", cfg.Stream.MQTT.Broker, "tcp://localhost:1883"},
		{"export.results_csv", cfg.Export.ResultsCSV, "results.csv"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Simulation.Drivers != 50 || cfg.Simulation.HorizonHours != 8 {
		t.Fatalf("unexpected simulation defaults: %+v", cfg.Simulation)
	}
	if cfg.Simulation.StartDay != -1 || cfg.Simulation.StartTime != -1 {
		t.Fatalf("start defaults must draw randomly: %+v", cfg.Simulation)
	}
	if cfg.Simulation.Model.Type != "saturation" {
		t.Fatalf("unexpected model default %+v", cfg.Simulation.Model)
	}
	if cfg.Experiment.Trials != 200 || cfg.Experiment.Seed != 42 {
		t.Fatalf("unexpected experiment defaults: %+v", cfg.Experiment)
	}
	if cfg.Dataset.Zones != 6 {
		t.Fatalf("unexpected dataset defaults: %+v", cfg.Dataset)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FS_EXPERIMENT__TRIALS", "33")
	cfg, err := Load(writeConfig(t, "experiment:\n  trials: 10\n"))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Experiment.Trials != 33 {
		t.Fatalf("env override not applied: %d", cfg.Experiment.Trials)
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("x = 1"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestLoad_InvalidSection(t *testing.T) {
	if _, err := Load(writeConfig(t, "simulation:\n  drivers: -5\n")); err == nil {
		t.Fatal("expected validation error for negative drivers")
	}
	if _, err := Load(writeConfig(t, "stream:\n  enabled: true\n")); err == nil {
		t.Fatal("expected validation error for enabled stream without broker")
	}
}
