package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dbsmedya/gorelate/internal/dataset"
	"github.com/dbsmedya/gorelate/internal/schema"
	"github.com/dbsmedya/gorelate/internal/types"
)

// ErrUnknownTable is returned when a seed names a table the schema does not declare.
var ErrUnknownTable = errors.New("unknown table")

// ParseSeed parses "TABLE=KEY".
func ParseSeed(s string) (table, key string, err error) {
	table, key, ok := strings.Cut(s, "=")
	table = strings.TrimSpace(table)
	key = strings.TrimSpace(key)
	if !ok || table == "" || key == "" {
		return "", "", fmt.Errorf("invalid seed %q: expected TABLE=KEY", s)
	}
	return table, key, nil
}

// ByKey returns the records of table whose primary key is key.
func ByKey(ds *dataset.Dataset, sch *schema.Schema, table, key string) ([]types.Selection, error) {
	if !sch.HasTable(table) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	pk := sch.PrimaryKey(table)

	var out []types.Selection
	for _, record := range ds.Records(table) {
		if k, ok := record.Key(pk); ok && k == key {
			out = append(out, types.Selection{Record: record, TableID: table})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no record in %s with %s=%s", table, pk, key)
	}
	return out, nil
}

// ByFilter returns the records of table left after applying conds. With no
// conditions the whole table is selected.
func ByFilter(ds *dataset.Dataset, sch *schema.Schema, table string, conds []Condition) ([]types.Selection, error) {
	if !sch.HasTable(table) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return Selections(table, Filter(ds.Records(table), conds)), nil
}
