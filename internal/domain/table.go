package domain

import (
	"slices"
	"time"
)

// SourceStatus describes how one yearly source fared during loading.
type SourceStatus struct {
	Location string `json:"location"`
	Year     int    `json:"year,omitempty"`
	Records  int    `json:"records"`
	Error    string `json:"error,omitempty"`
}

// Loaded reports whether the source contributed to the table.
func (s SourceStatus) Loaded() bool { return s.Error == "" }

// Table is the in-memory set of raw records every view is derived from.
// It is built once and never mutated afterwards, so it can be shared by
// concurrent readers.
type Table struct {
	records  []Record
	sources  []SourceStatus
	loadedAt time.Time
}

// NewTable takes ownership of records.
func NewTable(records []Record, sources []SourceStatus, loadedAt time.Time) *Table {
	return &Table{
		records:  records,
		sources:  sources,
		loadedAt: loadedAt,
	}
}

// Records returns a copy of the loaded records.
func (t *Table) Records() []Record {
	return slices.Clone(t.records)
}

// Len returns the number of loaded records.
func (t *Table) Len() int { return len(t.records) }

// Sources returns the per-source load outcome, in load order.
func (t *Table) Sources() []SourceStatus {
	return slices.Clone(t.sources)
}

// LoadedAt returns when the table finished loading.
func (t *Table) LoadedAt() time.Time { return t.loadedAt }

// Years returns the distinct known years, ascending.
func (t *Table) Years() []int {
	seen := make(map[int]struct{})
	for i := range t.records {
		if y := t.records[i].Year; y != YearUnknown {
			seen[y] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// YearSpan returns the first and last known year. ok is false when no
// record has a known year.
func (t *Table) YearSpan() (first, last int, ok bool) {
	years := t.Years()
	if len(years) == 0 {
		return 0, 0, false
	}
	return years[0], years[len(years)-1], true
}

// Aggregates returns the county aggregates over every record of a known
// year.
func (t *Table) Aggregates() []CountyAggregate {
	first, last, ok := t.YearSpan()
	if !ok {
		return []CountyAggregate{}
	}
	return AggregateCounties(FilterYears(t.records, first, last))
}
