// Package congestion models how the revenue of a zone degrades as more
// drivers are placed in it. Models are pure functions from an occupancy count
// and a base revenue to the realized revenue, and are selected by name
// through the factory registry.
package congestion

import (
	"fmt"
	"math"

	"github.com/kilianp07/fleetsim/core/factory"
)

// Model maps an occupancy count and a zone's base revenue to the revenue
// actually realized by that zone.
type Model interface {
	// Name returns the registry name of the model.
	Name() string
	// Realized returns the revenue captured by a zone holding n drivers
	// whose base expected revenue is base. Zero when n <= 0.
	Realized(n int, base float64) float64
}

// Saturation implements the concave diminishing-returns model
// R*(1-exp(-alpha*n)). Revenue is strictly increasing in n and bounded above
// by the base revenue; alpha controls how quickly extra drivers saturate the
// zone's demand.
type Saturation struct {
	Alpha float64 `json:"alpha"`
}

// NewSaturation validates the curvature parameter and returns the model.
func NewSaturation(alpha float64) (Saturation, error) {
	if alpha <= 0 {
		return Saturation{}, fmt.Errorf("saturation model requires alpha > 0, got %v", alpha)
	}
	return Saturation{Alpha: alpha}, nil
}

func (Saturation) Name() string { return "saturation" }

func (s Saturation) Realized(n int, base float64) float64 {
	if n <= 0 {
		return 0
	}
	return base * (1 - math.Exp(-s.Alpha*float64(n)))
}

// Split implements a coverage model: any positive occupancy captures the full
// zone revenue, extra drivers add nothing.
type Split struct{}

func (Split) Name() string { return "split" }

func (Split) Realized(n int, base float64) float64 {
	if n <= 0 {
		return 0
	}
	return base
}

// Macro aggregates realized revenue across all zones for a given occupancy
// count vector. The counts and revenue vectors must have the same length.
func Macro(counts []int, revenues []float64, m Model) (float64, error) {
	if len(counts) != len(revenues) {
		return 0, fmt.Errorf("counts length %d does not match revenue vector length %d", len(counts), len(revenues))
	}
	total := 0.0
	for k, n := range counts {
		total += m.Realized(n, revenues[k])
	}
	return total, nil
}

var registry = factory.NewRegistry[Model]()

func init() {
	_ = registry.Register("saturation", func(conf map[string]any) (Model, error) {
		var c struct {
			Alpha float64 `json:"alpha"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewSaturation(c.Alpha)
	})
	_ = registry.Register("split", func(map[string]any) (Model, error) {
		return Split{}, nil
	})
}

// New instantiates a congestion model from its module configuration. An
// unknown model name is a configuration error.
func New(cfg factory.ModuleConfig) (Model, error) {
	return registry.Create(cfg)
}
