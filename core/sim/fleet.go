package sim

import (
	"github.com/kilianp07/fleetsim/core/congestion"
	"github.com/kilianp07/fleetsim/core/model"
)

// DT is the slot duration in simulated hours. Moving between zones consumes
// exactly one slot.
const DT = 0.5

// Fleet is one strategy's driver population. It exclusively owns its drivers
// for the duration of a trial and is advanced slot by slot.
type Fleet struct {
	drivers []*model.Driver
	policy  TargetPolicy
	model   congestion.Model
	total   float64
}

// NewFleet wraps a driver population with the policy that steers it.
func NewFleet(drivers []*model.Driver, policy TargetPolicy, m congestion.Model) *Fleet {
	return &Fleet{drivers: drivers, policy: policy, model: m}
}

// Total returns the revenue accumulated so far.
func (f *Fleet) Total() float64 { return f.total }

// Drivers exposes the underlying population. Callers must not mutate it.
func (f *Fleet) Drivers() []*model.Driver { return f.drivers }

// Step advances the fleet by one slot.
//
// Active drivers receive a target zone from the policy. Drivers whose target
// equals their current zone stay and earn; the rest move, earn nothing this
// slot and occupy the target zone from the next slot on. Every active
// driver's remaining hours shrink by DT, floored at zero. With no active
// drivers the slot earns nothing and only the snapshots are taken.
func (f *Fleet) Step(ctx model.Context, revenues []float64) SlotRecord {
	rec := SlotRecord{
		Strategy: f.policy.Name(),
		Day:      ctx.Day,
		Time:     ctx.Time,
		Before:   f.snapshot(),
	}

	var active []*model.Driver
	for _, d := range f.drivers {
		if d.Active() {
			active = append(active, d)
		}
	}

	if len(active) > 0 {
		targets := f.policy.Targets(active, revenues)
		stayCounts := make([]int, len(revenues))
		for i, d := range active {
			if targets[i] == d.Cluster {
				stayCounts[d.Cluster]++
				rec.Stayers++
			} else {
				rec.Movers++
			}
		}
		rec.Revenue = realizedTotal(stayCounts, revenues, f.model)

		for i, d := range active {
			if targets[i] != d.Cluster {
				d.Cluster = targets[i]
			}
			d.Tick(DT)
		}
	}

	rec.After = f.snapshot()
	f.total += rec.Revenue
	return rec
}

// realizedTotal sums the realized revenue across zones. Unlike
// congestion.Macro it takes equal-length inputs for granted, which Step
// guarantees by sizing the count vector from the revenue vector.
func realizedTotal(counts []int, revenues []float64, m congestion.Model) float64 {
	total := 0.0
	for k, n := range counts {
		total += m.Realized(n, revenues[k])
	}
	return total
}

func (f *Fleet) snapshot() []int {
	zones := make([]int, len(f.drivers))
	for i, d := range f.drivers {
		zones[i] = d.Cluster
	}
	return zones
}
