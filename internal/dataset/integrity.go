package dataset

import (
	"fmt"
)

// Integrity problem kinds.
const (
	DuplicateKey = "duplicate_key"
	MissingKey   = "missing_key"
)

// KeyResolver tells which field identifies records of a table.
type KeyResolver interface {
	PrimaryKey(table string) string
}

// IntegrityWarning reports records whose identity cannot be trusted.
// Traces de-duplicate by primary key, so colliding records collapse into the
// first one seen.
type IntegrityWarning struct {
	Table      string
	PrimaryKey string
	Kind       string
	Key        string // colliding key value, empty for MissingKey
	Rows       []int  // positions of the affected records in the table
}

func (w IntegrityWarning) String() string {
	switch w.Kind {
	case DuplicateKey:
		return fmt.Sprintf("table %s: %s %q shared by %d records (rows %v)", w.Table, w.PrimaryKey, w.Key, len(w.Rows), w.Rows)
	case MissingKey:
		return fmt.Sprintf("table %s: %d records without %s (rows %v)", w.Table, len(w.Rows), w.PrimaryKey, w.Rows)
	default:
		return fmt.Sprintf("table %s: %s", w.Table, w.Kind)
	}
}

// CheckIntegrity scans every table for primary key collisions and records
// without a primary key. It never modifies the dataset.
func (d *Dataset) CheckIntegrity(keys KeyResolver) []IntegrityWarning {
	var warnings []IntegrityWarning

	for _, table := range d.order {
		pk := keys.PrimaryKey(table)
		positions := make(map[string][]int)
		var keyOrder []string
		var missing []int

		for i, record := range d.tables[table] {
			key, ok := record.Key(pk)
			if !ok {
				missing = append(missing, i)
				continue
			}
			if _, seen := positions[key]; !seen {
				keyOrder = append(keyOrder, key)
			}
			positions[key] = append(positions[key], i)
		}

		for _, key := range keyOrder {
			if rows := positions[key]; len(rows) > 1 {
				warnings = append(warnings, IntegrityWarning{
					Table:      table,
					PrimaryKey: pk,
					Kind:       DuplicateKey,
					Key:        key,
					Rows:       rows,
				})
			}
		}
		if len(missing) > 0 {
			warnings = append(warnings, IntegrityWarning{
				Table:      table,
				PrimaryKey: pk,
				Kind:       MissingKey,
				Rows:       missing,
			})
		}
	}

	return warnings
}
