// Package dataset holds the in-memory snapshot of every table's records.
package dataset

import (
	"github.com/dbsmedya/gorelate/internal/types"
)

// Dataset maps table id -> full record set for that table.
// It is populated once by a loader and read-only afterwards.
type Dataset struct {
	tables map[string][]types.Record
	order  []string
}

// New creates an empty dataset.
func New() *Dataset {
	return &Dataset{tables: make(map[string][]types.Record)}
}

// FromMap builds a dataset from a table -> records mapping.
// Table order follows the iteration order of ids when given, otherwise the map.
func FromMap(tables map[string][]types.Record, ids ...string) *Dataset {
	d := New()
	for _, id := range ids {
		if records, ok := tables[id]; ok {
			d.Put(id, records)
		}
	}
	for id, records := range tables {
		if !d.Has(id) {
			d.Put(id, records)
		}
	}
	return d
}

// Put stores (or replaces) the records of a table.
func (d *Dataset) Put(table string, records []types.Record) {
	if _, exists := d.tables[table]; !exists {
		d.order = append(d.order, table)
	}
	if records == nil {
		records = []types.Record{}
	}
	d.tables[table] = records
}

// Records returns every record of a table. Absent tables yield nil.
func (d *Dataset) Records(table string) []types.Record {
	return d.tables[table]
}

// Has reports whether the table was loaded, even if it is empty.
func (d *Dataset) Has(table string) bool {
	_, ok := d.tables[table]
	return ok
}

// TableIDs returns loaded tables in load order.
func (d *Dataset) TableIDs() []string {
	return append([]string(nil), d.order...)
}

// Len returns the number of records in a table.
func (d *Dataset) Len(table string) int {
	return len(d.tables[table])
}

// Total returns the number of records across all tables.
func (d *Dataset) Total() int {
	total := 0
	for _, records := range d.tables {
		total += len(records)
	}
	return total
}
