package config

import (
	"fmt"

	"github.com/kilianp07/fleetsim/infra/stream"
)

// StreamConfig enables live slot publication over MQTT.
type StreamConfig struct {
	Enabled bool          `json:"enabled"`
	MQTT    stream.Config `json:"mqtt"`
}

// Validate checks the section.
func (c StreamConfig) Validate() error {
	if c.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("stream: mqtt.broker is required when enabled")
	}
	return nil
}

// ExportConfig selects result files to write after a run. Empty paths
// disable the corresponding export.
type ExportConfig struct {
	ResultsCSV  string `json:"results_csv"`
	ResultsJSON string `json:"results_json"`
}
