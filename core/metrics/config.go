package metrics

import "github.com/kilianp07/fleetsim/core/factory"

// Config lists the sinks to record experiment observations to. An empty list
// means no recording.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
}
