// Package dataset loads revenue tables from CSV exports and generates
// synthetic tables for demo runs. Loading is deliberately forgiving: column
// aliases are normalized, wide exports with one column per zone are melted
// to long form and unparseable revenue cells become zero. Only structurally
// unusable input (missing required columns) is an error.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/kilianp07/fleetsim/core/revenue"
)

// aliases maps common export column names to the canonical ones.
var aliases = map[string]string{
	"cluster_id":       "cluster",
	"zone":             "cluster",
	"zone_id":          "cluster",
	"rev":              "expected_revenue",
	"expected revenue": "expected_revenue",
	"revenue":          "expected_revenue",
	"weekday":          "day",
	"hour":             "time",
	"tod":              "time",
}

// Load reads a revenue table from a CSV file.
func Load(path string) (*revenue.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return t, nil
}

// Read parses a revenue table from CSV content. Both the long format
// (day, time, weather, cluster, expected_revenue) and the wide format with
// digit-named zone columns are accepted.
func Read(r io.Reader) (*revenue.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // tolerate ragged exports, short rows are skipped
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("dataset is empty")
	}

	header := normalizeHeader(records[0])
	rows := records[1:]

	if digits := digitColumns(header); len(digits) > 0 {
		return melt(header, rows, digits)
	}
	return long(header, rows)
}

// normalizeHeader trims, lowercases and de-aliases column names. Spreadsheet
// index artifacts ("unnamed: 0") are blanked out and ignored afterwards.
func normalizeHeader(raw []string) []string {
	header := make([]string, len(raw))
	for i, c := range raw {
		name := strings.ToLower(strings.TrimSpace(c))
		if strings.HasPrefix(name, "unnamed:") {
			name = ""
		}
		if canon, ok := aliases[name]; ok {
			name = canon
		}
		header[i] = name
	}
	return header
}

func columnIndex(header []string, name string) int {
	for i, c := range header {
		if c == name {
			return i
		}
	}
	return -1
}

func digitColumns(header []string) []int {
	var out []int
	for i, c := range header {
		if c == "" {
			continue
		}
		if _, err := strconv.Atoi(c); err == nil {
			out = append(out, i)
		}
	}
	return out
}

// rawRow is a parsed observation before cluster ids are remapped.
type rawRow struct {
	day     int
	time    float64
	weather string
	cluster string
	rev     float64
}

// long parses the already-long format.
func long(header []string, rows [][]string) (*revenue.Table, error) {
	var missing []string
	for _, need := range []string{"day", "time", "cluster", "expected_revenue"} {
		if columnIndex(header, need) < 0 {
			missing = append(missing, need)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	dayIdx := columnIndex(header, "day")
	timeIdx := columnIndex(header, "time")
	weatherIdx := columnIndex(header, "weather")
	clusterIdx := columnIndex(header, "cluster")
	revIdx := columnIndex(header, "expected_revenue")

	raw := make([]rawRow, 0, len(rows))
	for _, rec := range rows {
		if len(rec) != len(header) {
			continue
		}
		day, err := parseInt(rec[dayIdx])
		if err != nil {
			continue
		}
		tm, err := strconv.ParseFloat(strings.TrimSpace(rec[timeIdx]), 64)
		if err != nil {
			continue
		}
		raw = append(raw, rawRow{
			day:     day,
			time:    math.Mod(math.Mod(tm, 24)+24, 24),
			weather: weatherOf(rec, weatherIdx),
			cluster: strings.TrimSpace(rec[clusterIdx]),
			rev:     parseRevenue(rec[revIdx]),
		})
	}
	return build(raw)
}

// melt reshapes a wide export (one digit-named column per zone) to long form.
func melt(header []string, rows [][]string, digits []int) (*revenue.Table, error) {
	for _, need := range []string{"day", "time"} {
		if columnIndex(header, need) < 0 {
			return nil, fmt.Errorf("column %q is required to melt wide data", need)
		}
	}
	dayIdx := columnIndex(header, "day")
	timeIdx := columnIndex(header, "time")
	weatherIdx := columnIndex(header, "weather")

	raw := make([]rawRow, 0, len(rows)*len(digits))
	for _, rec := range rows {
		if len(rec) != len(header) {
			continue
		}
		day, err := parseInt(rec[dayIdx])
		if err != nil {
			continue
		}
		tm, err := strconv.ParseFloat(strings.TrimSpace(rec[timeIdx]), 64)
		if err != nil {
			continue
		}
		for _, ci := range digits {
			raw = append(raw, rawRow{
				day:     day,
				time:    math.Mod(math.Mod(tm, 24)+24, 24),
				weather: weatherOf(rec, weatherIdx),
				cluster: header[ci],
				rev:     parseRevenue(rec[ci]),
			})
		}
	}
	return build(raw)
}

// build remaps cluster labels to contiguous ids 0..K-1 and assembles the
// table. Fully numeric labels sort by value; otherwise ids follow first
// appearance.
func build(raw []rawRow) (*revenue.Table, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("dataset has no usable rows")
	}

	numeric := true
	values := make(map[string]float64)
	var order []string
	for _, r := range raw {
		if _, seen := values[r.cluster]; !seen {
			v, err := strconv.ParseFloat(r.cluster, 64)
			if err != nil {
				numeric = false
			}
			values[r.cluster] = v
			order = append(order, r.cluster)
		}
	}
	if numeric {
		sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })
	}
	ids := make(map[string]int, len(order))
	for i, label := range order {
		ids[label] = i
	}

	rows := make([]revenue.Row, len(raw))
	for i, r := range raw {
		rows[i] = revenue.Row{
			Day:     ((r.day % 7) + 7) % 7,
			Time:    r.time,
			Weather: r.weather,
			Cluster: ids[r.cluster],
			Revenue: r.rev,
		}
	}
	return revenue.NewTable(rows), nil
}

func weatherOf(rec []string, idx int) string {
	if idx < 0 {
		return "clear"
	}
	w := strings.ToLower(strings.TrimSpace(rec[idx]))
	if w == "" {
		return "clear"
	}
	return w
}

func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// parseRevenue coerces unparseable or missing cells to zero.
func parseRevenue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}
