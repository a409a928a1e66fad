// Package export serializes experiment results for downstream reporting and
// visualization tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/fleetsim/core/experiment"
	"github.com/kilianp07/fleetsim/core/sim"
)

// WriteResultsCSV writes the per-trial totals to w with one row per trial.
func WriteResultsCSV(w io.Writer, res *experiment.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"greedy_total", "random_total", "diff"}); err != nil {
		return err
	}
	for _, o := range res.Outcomes {
		rec := []string{
			formatFloat(o.GreedyTotal),
			formatFloat(o.RandomTotal),
			formatFloat(o.Diff()),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// resultsDoc is the JSON shape of a full run: outcomes plus the derived
// summary in one document.
type resultsDoc struct {
	Summary  experiment.Summary `json:"summary"`
	Outcomes []sim.Outcome      `json:"outcomes"`
}

// WriteResultsJSON writes the outcomes and summary of a run to w.
func WriteResultsJSON(w io.Writer, res *experiment.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resultsDoc{Summary: res.Summary(), Outcomes: res.Outcomes})
}

// WriteSummaryJSON writes only the derived summary to w.
func WriteSummaryJSON(w io.Writer, sum experiment.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sum)
}

// WriteTraceJSON writes a traced trial's per-slot records to w for the
// animation consumer.
func WriteTraceJSON(w io.Writer, trace *sim.TrialTrace) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(trace)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
