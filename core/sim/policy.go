// Package sim advances strategy-specific driver populations through
// fixed-duration time slots and runs the two-strategy comparison over a full
// horizon.
package sim

import (
	"math/rand"

	"github.com/kilianp07/fleetsim/core/allocation"
	"github.com/kilianp07/fleetsim/core/congestion"
	"github.com/kilianp07/fleetsim/core/model"
)

// TargetPolicy decides, for one slot, the target zone of every active driver.
// The returned slice is indexed like active.
type TargetPolicy interface {
	Name() string
	Targets(active []*model.Driver, revenues []float64) []int
}

// GreedyPolicy places drivers on the macro-optimal occupancy counts computed
// by the greedy allocator, assigning concrete drivers by remaining-hours
// priority.
type GreedyPolicy struct {
	Model congestion.Model
}

func (GreedyPolicy) Name() string { return "greedy" }

func (p GreedyPolicy) Targets(active []*model.Driver, revenues []float64) []int {
	counts := allocation.Greedy(len(active), revenues, p.Model)
	return allocation.AssignSlots(active, counts)
}

// RandomPolicy draws an independent uniform zone for every active driver. It
// is the baseline the allocator-driven strategy is measured against.
type RandomPolicy struct {
	Zones int
	Rand  *rand.Rand
}

func (RandomPolicy) Name() string { return "random" }

func (p RandomPolicy) Targets(active []*model.Driver, _ []float64) []int {
	targets := make([]int, len(active))
	for i := range targets {
		targets[i] = p.Rand.Intn(p.Zones)
	}
	return targets
}
