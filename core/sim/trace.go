package sim

// SlotRecord captures what happened to one strategy's fleet during one slot.
// Before and After hold every driver's zone (inactive drivers included) at
// the start of the slot and after the slot's moves took effect. Revenue is
// the macro revenue earned by the stayers.
type SlotRecord struct {
	Strategy string  `json:"strategy"`
	Day      int     `json:"day"`
	Time     float64 `json:"time"`
	Before   []int   `json:"before"`
	After    []int   `json:"after"`
	Revenue  float64 `json:"revenue"`
	Stayers  int     `json:"stayers"`
	Movers   int     `json:"movers"`
}

// TrialTrace is the full per-slot record of one traced trial, one record
// sequence per strategy. It is the data contract for external animation and
// inspection consumers.
type TrialTrace struct {
	DT     float64      `json:"dt"`
	Slots  int          `json:"slots"`
	Greedy []SlotRecord `json:"greedy"`
	Random []SlotRecord `json:"random"`
}
