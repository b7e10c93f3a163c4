// Package index builds per-column value indexes over a dataset.
//
// An Index lives for one analysis pass (a trace or an orphan run). Each
// (table, field) column is scanned at most once; later probes hit the memo.
package index

import (
	"github.com/dbsmedya/gorelate/internal/dataset"
	"github.com/dbsmedya/gorelate/internal/types"
)

// ValueSet is a set of lower-cased, non-blank column values.
type ValueSet map[string]struct{}

// Has reports whether the lower-cased value is in the set.
func (v ValueSet) Has(value string) bool {
	_, ok := v[value]
	return ok
}

type column struct {
	table string
	field string
}

// columnIndex maps a lower-cased value to the rows holding it, in table order.
type columnIndex struct {
	values ValueSet
	rows   map[string][]types.Record
}

// Index memoizes column scans over a read-only dataset.
type Index struct {
	ds      *dataset.Dataset
	columns map[column]*columnIndex
}

// New creates an empty index over ds.
func New(ds *dataset.Dataset) *Index {
	return &Index{
		ds:      ds,
		columns: make(map[column]*columnIndex),
	}
}

// ValuesOf returns the distinct lower-cased values of table.field.
// Nil values and values blank after trimming are excluded.
// Tables absent from the dataset yield an empty set.
func (ix *Index) ValuesOf(table, field string) ValueSet {
	return ix.column(table, field).values
}

// RowsMatching returns the rows of table whose field equals key
// case-insensitively. key must already be a lower-cased match key.
func (ix *Index) RowsMatching(table, field, key string) []types.Record {
	return ix.column(table, field).rows[key]
}

// Columns returns how many distinct columns have been scanned so far.
func (ix *Index) Columns() int {
	return len(ix.columns)
}

func (ix *Index) column(table, field string) *columnIndex {
	c := column{table: table, field: field}
	if idx, ok := ix.columns[c]; ok {
		return idx
	}

	idx := &columnIndex{
		values: make(ValueSet),
		rows:   make(map[string][]types.Record),
	}
	for _, record := range ix.ds.Records(table) {
		key, ok := types.MatchKey(record[field])
		if !ok {
			continue
		}
		idx.values[key] = struct{}{}
		idx.rows[key] = append(idx.rows[key], record)
	}
	ix.columns[c] = idx
	return idx
}
