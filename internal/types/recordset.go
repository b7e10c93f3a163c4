// Package types contains shared types used across multiple packages to avoid import cycles.
package types

import "time"

// RecordSet is the result of one trace: every record reached from the seeds,
// organized by table.
type RecordSet struct {
	TraceID    string              // Identifies the trace in logs and output
	Seeds      []Selection         // Seeds the trace started from
	SeedTables map[string]bool     // Tables the seeds were taken from
	Records    map[string][]Record // table id -> records in discovery order
	Stats      TraceStats
}

// TraceStats contains statistics about the trace process.
type TraceStats struct {
	TablesReached  int           // Number of tables with at least one record
	RecordsFound   int64         // Total records across all tables, seeds included
	LinksProcessed int           // Distinct link keys evaluated
	BFSLevels      int           // Depth of BFS traversal
	Duration       time.Duration // Time taken for the trace
}

// Has reports whether the table is present in the result.
func (rs *RecordSet) Has(table string) bool {
	_, ok := rs.Records[table]
	return ok
}

// Count returns the number of records found for a table.
func (rs *RecordSet) Count(table string) int {
	return len(rs.Records[table])
}
