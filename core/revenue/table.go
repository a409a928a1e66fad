// Package revenue holds the expected-revenue dataset and the oracle that
// resolves a context to a per-zone revenue vector.
package revenue

// Row is one observed (context, zone) revenue sample.
type Row struct {
	// Day of week, 0=Monday .. 6=Sunday.
	Day int
	// Time is the hour of day with fractions, in [0, 24).
	Time float64
	// Weather is a lowercase condition string.
	Weather string
	// Cluster is the zone id, contiguous from 0.
	Cluster int
	// Revenue is the expected revenue observed for this context and zone.
	Revenue float64
}

// Table is an immutable, ordered collection of revenue rows. Row order is
// significant: nearest-time ties resolve to the first row encountered.
type Table struct {
	rows  []Row
	zones int
}

// NewTable builds a table from rows. The zone count is max cluster id + 1.
func NewTable(rows []Row) *Table {
	zones := 0
	for _, r := range rows {
		if r.Cluster+1 > zones {
			zones = r.Cluster + 1
		}
	}
	return &Table{rows: rows, zones: zones}
}

// NewTableWithZones builds a table with an explicit zone count, which may
// exceed the highest cluster id present in the rows.
func NewTableWithZones(rows []Row, zones int) *Table {
	t := NewTable(rows)
	if zones > t.zones {
		t.zones = zones
	}
	return t
}

// Zones returns the number of zones covered by the table.
func (t *Table) Zones() int { return t.zones }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns the underlying rows in their natural order. The slice must
// not be mutated.
func (t *Table) Rows() []Row { return t.rows }
