// Package orphan finds records that take part in no declared relationship.
package orphan

import (
	"context"
	"fmt"
	"time"

	"github.com/dbsmedya/gorelate/internal/dataset"
	"github.com/dbsmedya/gorelate/internal/index"
	"github.com/dbsmedya/gorelate/internal/logger"
	"github.com/dbsmedya/gorelate/internal/schema"
	"github.com/dbsmedya/gorelate/internal/types"
)

// Report holds the orphan records of every table that has any.
type Report struct {
	Tables   map[string][]types.Record // table id -> orphan records in table order
	Ordered  []string                  // tables with orphans, enumeration order
	Total    int
	Duration time.Duration
}

// TableCount returns the number of tables with at least one orphan.
func (r *Report) TableCount() int {
	return len(r.Tables)
}

// Analyzer evaluates orphan status over a whole dataset.
type Analyzer struct {
	ds     *dataset.Dataset
	schema *schema.Schema
	logger *logger.Logger
}

// NewAnalyzer creates an orphan analyzer.
func NewAnalyzer(ds *dataset.Dataset, sch *schema.Schema) (*Analyzer, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}
	if sch == nil {
		return nil, fmt.Errorf("schema is nil")
	}
	return &Analyzer{
		ds:     ds,
		schema: sch,
		logger: logger.NewDefault(),
	}, nil
}

// SetLogger sets a custom logger for the analyzer.
func (a *Analyzer) SetLogger(log *logger.Logger) {
	a.logger = log
}

// Find returns, for every table with records, the records that no touching
// relationship connects to a value in the opposite table. Tables without
// orphans are left out.
func (a *Analyzer) Find(ctx context.Context) (*Report, error) {
	startTime := time.Now()

	// Scan both sides of every relationship up front.
	ix := index.New(a.ds)
	for _, rel := range a.schema.Relationships() {
		ix.ValuesOf(rel.From, rel.FromField)
		ix.ValuesOf(rel.To, rel.ToField)
	}
	a.logger.Debugf("Indexed %d column(s) for orphan analysis", ix.Columns())

	report := &Report{Tables: make(map[string][]types.Record)}

	for _, table := range a.ds.TableIDs() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("orphan analysis interrupted: %w", err)
		}

		records := a.ds.Records(table)
		if len(records) == 0 {
			continue
		}

		touching := a.schema.Touching(table)
		var orphans []types.Record
		for _, record := range records {
			if !connected(ix, table, record, touching) {
				orphans = append(orphans, record)
			}
		}
		if len(orphans) == 0 {
			continue
		}

		report.Tables[table] = orphans
		report.Total += len(orphans)
		a.logger.WithTable(table).Debugf("%d of %d record(s) are orphans (%d relationship(s) touch the table)",
			len(orphans), len(records), len(touching))
	}

	ids := make([]string, 0, len(report.Tables))
	for id := range report.Tables {
		ids = append(ids, id)
	}
	report.Ordered = a.schema.SortTables(ids)
	report.Duration = time.Since(startTime)

	a.logger.Infof("Orphan analysis complete: %d orphan(s) across %d table(s), duration: %s",
		report.Total, report.TableCount(), report.Duration)

	return report, nil
}

// connected reports whether any relationship touching table links the record
// to the opposite side. Each relationship is evaluated once, forward when the
// table is its source.
func connected(ix *index.Index, table string, record types.Record, touching []schema.Relationship) bool {
	for _, rel := range touching {
		link, ok := rel.LinkFrom(table, true)
		if !ok {
			continue
		}
		key, ok := types.MatchKey(record[link.SourceField])
		if !ok {
			continue
		}
		if ix.ValuesOf(link.TargetTable, link.TargetField).Has(key) {
			return true
		}
	}
	return false
}
