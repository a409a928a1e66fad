package revenue

import (
	"math"

	"github.com/kilianp07/fleetsim/core/model"
)

// Oracle answers per-zone expected-revenue queries for a given context.
//
// Resolution order: rows matching the exact day and weather, then rows
// matching the day only, then the whole table. Within the selected subset
// each zone independently takes the row whose time is closest on a circular
// 24-hour clock, first row winning on ties. Zones that resolve to zero are
// refilled with the zone's mean over the whole table, falling back to the
// mean of the zone means. Data gaps never produce an error.
//
// Zero resolved revenue is indistinguishable from missing data here: a zone
// whose nearest row genuinely holds 0 is refilled from the means as well.
// Kept for compatibility with the historical behavior.
type Oracle struct {
	table      *Table
	zoneMeans  map[int]float64
	globalMean float64
}

// NewOracle precomputes the per-zone and global fallback means for the table.
func NewOracle(t *Table) *Oracle {
	o := &Oracle{table: t, zoneMeans: make(map[int]float64)}
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, r := range t.Rows() {
		sums[r.Cluster] += r.Revenue
		counts[r.Cluster]++
	}
	var meanSum float64
	for k, s := range sums {
		m := s / float64(counts[k])
		if m < 0 {
			m = 0
		}
		o.zoneMeans[k] = m
		meanSum += m
	}
	if len(o.zoneMeans) > 0 {
		o.globalMean = meanSum / float64(len(o.zoneMeans))
	}
	return o
}

// Zones returns the zone count of the backing table.
func (o *Oracle) Zones() int { return o.table.Zones() }

// Vector returns the expected revenue per zone for the given context. The
// result always has exactly zones entries, all non-negative.
func (o *Oracle) Vector(ctx model.Context, zones int) []float64 {
	ctx = ctx.Normalize()
	rows := o.table.Rows()

	subset := selectRows(rows, func(r Row) bool { return r.Day == ctx.Day && r.Weather == ctx.Weather })
	if len(subset) == 0 {
		subset = selectRows(rows, func(r Row) bool { return r.Day == ctx.Day })
	}
	if len(subset) == 0 {
		subset = rows
	}

	rev := make([]float64, zones)
	bestDist := make([]float64, zones)
	for k := range bestDist {
		bestDist[k] = math.Inf(1)
	}
	for _, r := range subset {
		if r.Cluster < 0 || r.Cluster >= zones {
			continue
		}
		// Strict less keeps the first row encountered on equal distance.
		if d := model.ClockDistance(r.Time, ctx.Time); d < bestDist[r.Cluster] {
			bestDist[r.Cluster] = d
			rev[r.Cluster] = r.Revenue
		}
	}

	for k := range rev {
		if rev[k] < 0 {
			rev[k] = 0
		}
		if rev[k] == 0 {
			if m, ok := o.zoneMeans[k]; ok {
				rev[k] = m
			} else {
				rev[k] = o.globalMean
			}
		}
	}
	return rev
}

func selectRows(rows []Row, keep func(Row) bool) []Row {
	var out []Row
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
