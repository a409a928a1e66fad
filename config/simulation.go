package config

import (
	"fmt"

	"github.com/kilianp07/fleetsim/core/factory"
)

// SimulationConfig shapes a single trial.
type SimulationConfig struct {
	// Drivers is the fleet size at trial start.
	Drivers int `json:"drivers"`
	// HorizonHours is the simulated span per trial.
	HorizonHours float64 `json:"horizon_hours"`
	// StartDay fixes the weekday (0..6); -1 draws one per trial.
	StartDay int `json:"start_day"`
	// StartTime fixes the clock time; a negative value draws one per trial.
	StartTime float64 `json:"start_time"`
	// Weather is the scenario used for revenue lookups.
	Weather string `json:"weather"`
	// Model selects the congestion model, e.g. {type: saturation, conf: {alpha: 0.6}}.
	Model factory.ModuleConfig `json:"model"`
}

// ExperimentConfig shapes the Monte-Carlo run around the trials.
type ExperimentConfig struct {
	Trials int   `json:"trials"`
	Seed   int64 `json:"seed"`
	// Workers bounds trial parallelism; 0 or 1 runs sequentially.
	Workers int `json:"workers"`
}

// SetDefaults applies sane defaults.
func (c *SimulationConfig) SetDefaults() {
	if c.Drivers == 0 {
		c.Drivers = 50
	}
	if c.HorizonHours == 0 {
		c.HorizonHours = 8
	}
	if c.StartDay == 0 {
		c.StartDay = -1
	}
	if c.StartTime == 0 {
		c.StartTime = -1
	}
	if c.Weather == "" {
		c.Weather = "clear"
	}
	if c.Model.Type == "" {
		c.Model = factory.ModuleConfig{Type: "saturation", Conf: map[string]any{"alpha": 0.6}}
	}
}

// Validate checks the section.
func (c SimulationConfig) Validate() error {
	if c.Drivers <= 0 {
		return fmt.Errorf("simulation: drivers must be positive")
	}
	if c.HorizonHours <= 0 {
		return fmt.Errorf("simulation: horizon_hours must be positive")
	}
	if c.StartDay > 6 {
		return fmt.Errorf("simulation: start_day must be -1 or 0..6")
	}
	if c.StartTime >= 24 {
		return fmt.Errorf("simulation: start_time must be negative or below 24")
	}
	return nil
}

// SetDefaults applies sane defaults.
func (c *ExperimentConfig) SetDefaults() {
	if c.Trials == 0 {
		c.Trials = 200
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
}

// Validate checks the section.
func (c ExperimentConfig) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("experiment: trials must be positive")
	}
	if c.Workers < 0 {
		return fmt.Errorf("experiment: workers must not be negative")
	}
	return nil
}
