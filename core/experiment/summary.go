package experiment

import "gonum.org/v1/gonum/stat"

// Summary condenses a run into the headline comparison numbers. Standard
// deviations are sample deviations (Bessel-corrected).
type Summary struct {
	RunID      string  `json:"run_id"`
	Trials     int     `json:"trials"`
	GreedyMean float64 `json:"greedy_mean"`
	GreedyStd  float64 `json:"greedy_std"`
	RandomMean float64 `json:"random_mean"`
	RandomStd  float64 `json:"random_std"`
	// WinRate is the fraction of trials the greedy strategy out-earned the
	// baseline.
	WinRate float64 `json:"win_rate"`
	// UpliftPct is the mean percentage revenue advantage of the greedy
	// strategy over the baseline.
	UpliftPct float64 `json:"uplift_pct"`
}

// GreedyTotals returns the greedy strategy's per-trial totals in trial order.
func (r *Result) GreedyTotals() []float64 {
	out := make([]float64, len(r.Outcomes))
	for i, o := range r.Outcomes {
		out[i] = o.GreedyTotal
	}
	return out
}

// RandomTotals returns the baseline's per-trial totals in trial order.
func (r *Result) RandomTotals() []float64 {
	out := make([]float64, len(r.Outcomes))
	for i, o := range r.Outcomes {
		out[i] = o.RandomTotal
	}
	return out
}

// Summary computes the aggregate statistics of the run.
func (r *Result) Summary() Summary {
	greedy := r.GreedyTotals()
	random := r.RandomTotals()

	s := Summary{
		RunID:      r.RunID,
		Trials:     len(r.Outcomes),
		GreedyMean: stat.Mean(greedy, nil),
		RandomMean: stat.Mean(random, nil),
	}
	if len(r.Outcomes) > 1 {
		s.GreedyStd = stat.StdDev(greedy, nil)
		s.RandomStd = stat.StdDev(random, nil)
	}

	wins := 0
	for _, o := range r.Outcomes {
		if o.Diff() > 0 {
			wins++
		}
	}
	if len(r.Outcomes) > 0 {
		s.WinRate = float64(wins) / float64(len(r.Outcomes))
	}
	if s.RandomMean != 0 {
		s.UpliftPct = (s.GreedyMean/s.RandomMean - 1) * 100
	}
	return s
}
