// Package loader fills a Dataset from the configured source before any trace
// runs.
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/dbsmedya/gorelate/internal/config"
	"github.com/dbsmedya/gorelate/internal/dataset"
	"github.com/dbsmedya/gorelate/internal/logger"
	"github.com/dbsmedya/gorelate/internal/types"
)

// Source reads the full record set of one configured table.
type Source interface {
	Fetch(ctx context.Context, table config.TableConfig) ([]types.Record, error)
}

// Stats summarizes one load.
type Stats struct {
	TablesLoaded int
	TablesFailed int
	Records      int
	Warnings     []dataset.IntegrityWarning
	Duration     time.Duration
}

// Loader reads every configured table, in configuration order, into a Dataset.
type Loader struct {
	source Source
	tables []config.TableConfig
	logger *logger.Logger

	// Strict aborts the load on the first table that fails. Otherwise a
	// failed table is logged and loaded empty.
	Strict bool
}

// New creates a loader for the given tables.
func New(source Source, tables []config.TableConfig, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Loader{
		source: source,
		tables: tables,
		logger: log,
	}
}

// Load reads every table. Primary key collisions and missing keys are
// reported as warnings, never as errors.
func (l *Loader) Load(ctx context.Context) (*dataset.Dataset, *Stats, error) {
	startTime := time.Now()
	tables := make(map[string][]types.Record, len(l.tables))
	ids := make([]string, 0, len(l.tables))
	stats := &Stats{}

	for _, table := range l.tables {
		if err := ctx.Err(); err != nil {
			return nil, stats, fmt.Errorf("load interrupted: %w", err)
		}

		log := l.logger.WithTable(table.ID)
		records, err := l.source.Fetch(ctx, table)
		if err != nil {
			if l.Strict || ctx.Err() != nil {
				return nil, stats, fmt.Errorf("failed to load table %s: %w", table.ID, err)
			}
			log.Errorf("Failed to load table, continuing with no records: %v", err)
			stats.TablesFailed++
			tables[table.ID] = nil
			ids = append(ids, table.ID)
			continue
		}

		tables[table.ID] = records
		ids = append(ids, table.ID)
		stats.TablesLoaded++
		log.Debugf("Loaded %d record(s) from %s", len(records), table.SourceName())
	}

	ds := dataset.FromMap(tables, ids...)
	stats.Warnings = ds.CheckIntegrity(primaryKeys(l.tables))
	for _, w := range stats.Warnings {
		l.logger.WithTable(w.Table).Warn(w.String())
	}

	stats.Records = ds.Total()
	stats.Duration = time.Since(startTime)
	l.logger.WithFields(map[string]interface{}{
		"tables":   stats.TablesLoaded,
		"failed":   stats.TablesFailed,
		"records":  stats.Records,
		"warnings": len(stats.Warnings),
	}).Infof("Dataset loaded, duration: %s", stats.Duration)

	return ds, stats, nil
}

// primaryKeys resolves configured primary key fields by table id.
type primaryKeys []config.TableConfig

func (p primaryKeys) PrimaryKey(table string) string {
	for _, t := range p {
		if t.ID == table && t.PrimaryKey != "" {
			return t.PrimaryKey
		}
	}
	return types.DefaultPrimaryKey
}
