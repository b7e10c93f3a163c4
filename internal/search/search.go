// Package search selects seed records, either by keyword search across the
// searchable fields of every table or by exact field filters on one table.
package search

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/gorelate/internal/dataset"
	"github.com/dbsmedya/gorelate/internal/schema"
	"github.com/dbsmedya/gorelate/internal/types"
)

// Match is one record found by a keyword search.
type Match struct {
	types.Selection `yaml:",inline"`
	Field           string      `json:"field" yaml:"field"`
	Value           interface{} `json:"value" yaml:"value"`
}

// Keywords splits a query into lower-cased whitespace separated words.
func Keywords(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Find returns every record whose table declares a searchable field that
// contains all keywords of query. Only the first matching field of a record
// is reported. Tables are visited in enumeration order; an empty query
// matches nothing.
func Find(ds *dataset.Dataset, sch *schema.Schema, query string) []Match {
	keywords := Keywords(query)
	if len(keywords) == 0 {
		return nil
	}

	var matches []Match
	for _, id := range sch.TableIDs() {
		table, _ := sch.Table(id)
		if len(table.SearchableFields) == 0 {
			continue
		}

		seen := make(map[string]bool)
		for _, record := range ds.Records(id) {
			field, ok := firstMatchingField(record, table.SearchableFields, keywords)
			if !ok {
				continue
			}
			if key, ok := record.Key(table.PrimaryKey); ok {
				if seen[key] {
					continue
				}
				seen[key] = true
			}
			matches = append(matches, Match{
				Selection: types.Selection{Record: record, TableID: id},
				Field:     field,
				Value:     record[field],
			})
		}
	}
	return matches
}

func firstMatchingField(record types.Record, fields, keywords []string) (string, bool) {
	for _, field := range fields {
		s, ok := types.ValueString(record[field])
		if !ok || s == "" {
			continue
		}
		lower := strings.ToLower(s)
		if containsAll(lower, keywords) {
			return field, true
		}
	}
	return "", false
}

func containsAll(s string, keywords []string) bool {
	for _, k := range keywords {
		if !strings.Contains(s, k) {
			return false
		}
	}
	return true
}

// Condition narrows a table to rows whose field has exactly Value.
type Condition struct {
	Field string
	Value string
}

func (c Condition) String() string {
	return c.Field + "=" + c.Value
}

// ParseCondition parses "field=value". The value may be empty but the field
// may not.
func ParseCondition(s string) (Condition, error) {
	field, value, ok := strings.Cut(s, "=")
	field = strings.TrimSpace(field)
	if !ok || field == "" {
		return Condition{}, fmt.Errorf("invalid filter %q: expected FIELD=VALUE", s)
	}
	return Condition{Field: field, Value: value}, nil
}

// Filter applies conditions in turn. Comparison is exact on the string form.
func Filter(records []types.Record, conds []Condition) []types.Record {
	out := records
	for _, c := range conds {
		var next []types.Record
		for _, record := range out {
			if s, ok := types.ValueString(record[c.Field]); ok && s == c.Value {
				next = append(next, record)
			}
		}
		out = next
	}
	return out
}

// Selections wraps records of one table as seeds.
func Selections(table string, records []types.Record) []types.Selection {
	out := make([]types.Selection, 0, len(records))
	for _, record := range records {
		out = append(out, types.Selection{Record: record, TableID: table})
	}
	return out
}

// Seeds returns the selections behind matches.
func Seeds(matches []Match) []types.Selection {
	out := make([]types.Selection, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Selection)
	}
	return out
}
