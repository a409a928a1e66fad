// Package allocation computes zone occupancy targets for a set of drivers
// and turns them into concrete per-driver assignments.
package allocation

import (
	"math"

	"github.com/kilianp07/fleetsim/core/congestion"
)

// Greedy returns the occupancy counts per zone that maximize aggregate macro
// revenue under the given congestion model, placing n drivers one by one on
// the zone with the largest marginal gain.
//
// Ties resolve to the lowest-indexed zone, so the result is deterministic for
// identical inputs. For the saturation model the per-zone marginal gains are
// non-increasing, which makes this greedy placement optimal; for the split
// model it is a heuristic. Complexity O(n * K).
func Greedy(n int, revenues []float64, m congestion.Model) []int {
	counts := make([]int, len(revenues))
	if n <= 0 || len(revenues) == 0 {
		return counts
	}
	for placed := 0; placed < n; placed++ {
		bestZone := 0
		bestGain := math.Inf(-1)
		for k, base := range revenues {
			gain := m.Realized(counts[k]+1, base) - m.Realized(counts[k], base)
			if gain > bestGain {
				bestGain = gain
				bestZone = k
			}
		}
		counts[bestZone]++
	}
	return counts
}
