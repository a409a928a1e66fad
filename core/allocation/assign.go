package allocation

import (
	"sort"

	"github.com/kilianp07/fleetsim/core/model"
)

// AssignSlots maps occupancy counts to one target zone per active driver.
//
// A flat slot list repeats each zone id counts[k] times in zone index order.
// Drivers are ranked by remaining hours descending, stable on ties, and the
// i-th ranked driver claims the i-th slot.
//
// The returned slice is indexed like active; sum(counts) must equal
// len(active).
func AssignSlots(active []*model.Driver, counts []int) []int {
	slots := make([]int, 0, len(active))
	for k, c := range counts {
		for i := 0; i < c; i++ {
			slots = append(slots, k)
		}
	}

	order := make([]int, len(active))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return active[order[a]].HoursLeft > active[order[b]].HoursLeft
	})

	targets := make([]int, len(active))
	for rank, idx := range order {
		targets[idx] = slots[rank]
	}
	return targets
}
