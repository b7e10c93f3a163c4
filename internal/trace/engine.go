// Package trace expands seed records across relationship definitions into a
// multi-table result and reports which relationships fired.
package trace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dbsmedya/gorelate/internal/dataset"
	"github.com/dbsmedya/gorelate/internal/index"
	"github.com/dbsmedya/gorelate/internal/logger"
	"github.com/dbsmedya/gorelate/internal/schema"
	"github.com/dbsmedya/gorelate/internal/types"
)

// ErrNoSeeds is returned when a trace is requested without any seed.
var ErrNoSeeds = errors.New("no records selected to trace")

// missingKey stands in for the identity of records without a primary key,
// so they collapse into one the same way equal keys do.
const missingKey = "\x00missing"

// Policy controls traversal direction and loop prevention.
type Policy struct {
	AllowLoopback bool `json:"allow_loopback" yaml:"allow_loopback"` // allow re-entering seed tables through other tables
	Bidirectional bool `json:"bidirectional" yaml:"bidirectional"`   // follow relationships to -> from as well
}

// Request is everything one trace needs. Re-running with a different Active
// set must reuse the same Seeds and SeedTables.
type Request struct {
	Seeds      []types.Selection
	Active     []schema.Relationship // relationships in schema order
	Policy     Policy
	SeedTables map[string]bool // derived from Seeds when nil
}

// Engine performs breadth-first traces over a read-only dataset.
type Engine struct {
	ds     *dataset.Dataset
	schema *schema.Schema
	logger *logger.Logger
}

// NewEngine creates a trace engine over the given dataset and schema.
func NewEngine(ds *dataset.Dataset, sch *schema.Schema) (*Engine, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}
	if sch == nil {
		return nil, fmt.Errorf("schema is nil")
	}
	return &Engine{
		ds:     ds,
		schema: sch,
		logger: logger.NewDefault(),
	}, nil
}

// SetLogger sets a custom logger for the engine.
func (e *Engine) SetLogger(log *logger.Logger) {
	e.logger = log
}

// workItem is one queue entry: records newly found in a table.
type workItem struct {
	table   string
	records []types.Record
	level   int
}

// accumulator collects records per table, de-duplicated by primary key,
// in discovery order.
type accumulator struct {
	schema  *schema.Schema
	records map[string][]types.Record
	seen    map[string]map[string]bool
}

func newAccumulator(sch *schema.Schema) *accumulator {
	return &accumulator{
		schema:  sch,
		records: make(map[string][]types.Record),
		seen:    make(map[string]map[string]bool),
	}
}

// add stores the record unless its table already holds its primary key.
func (a *accumulator) add(table string, record types.Record) bool {
	key, ok := record.Key(a.schema.PrimaryKey(table))
	if !ok {
		key = missingKey
	}
	seen := a.seen[table]
	if seen == nil {
		seen = make(map[string]bool)
		a.seen[table] = seen
	}
	if seen[key] {
		return false
	}
	seen[key] = true
	a.records[table] = append(a.records[table], record)
	return true
}

// Trace finds every record reachable from the seeds through the active
// relationships. The returned set is fresh; callers never patch it.
func (e *Engine) Trace(ctx context.Context, req Request) (*types.RecordSet, error) {
	startTime := time.Now()

	if len(req.Seeds) == 0 {
		return nil, ErrNoSeeds
	}

	seedTables := req.SeedTables
	if seedTables == nil {
		seedTables = types.SeedTables(req.Seeds)
	}

	result := &types.RecordSet{
		TraceID:    uuid.NewString(),
		Seeds:      req.Seeds,
		SeedTables: seedTables,
	}
	log := e.logger.WithTrace(result.TraceID)

	acc := newAccumulator(e.schema)
	ix := index.New(e.ds)
	processed := make(map[string]bool)
	var queue []workItem

	for _, seed := range req.Seeds {
		if acc.add(seed.TableID, seed.Record) {
			queue = append(queue, workItem{table: seed.TableID, records: []types.Record{seed.Record}})
		}
	}

	log.Infof("Starting trace from %d seed(s) in %d table(s) with %d active relationship(s)",
		len(queue), len(seedTables), len(req.Active))

	maxLevel := 0
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			result.Records = acc.records
			result.Stats.Duration = time.Since(startTime)
			log.Warnf("Trace interrupted: %v", err)
			return result, err
		}

		item := queue[0]
		queue = queue[1:]
		if item.level > maxLevel {
			maxLevel = item.level
		}

		for _, rel := range req.Active {
			link, ok := rel.LinkFrom(item.table, req.Policy.Bidirectional)
			if !ok {
				continue
			}
			if !req.Policy.AllowLoopback && seedTables[link.TargetTable] {
				continue
			}

			for _, value := range distinctValues(item.records, link.SourceField) {
				linkKey := fmt.Sprintf("%s:%s:%s->%s:%s",
					link.SourceTable, link.SourceField, value, link.TargetTable, link.TargetField)
				if processed[linkKey] {
					continue
				}
				processed[linkKey] = true

				found := 0
				for _, match := range ix.RowsMatching(link.TargetTable, link.TargetField, value) {
					if acc.add(link.TargetTable, match) {
						found++
						queue = append(queue, workItem{
							table:   link.TargetTable,
							records: []types.Record{match},
							level:   item.level + 1,
						})
					}
				}
				if found > 0 {
					log.WithRelationship(rel.Index).Debugf("%s value %q reached %d new %s record(s)",
						link.SourceField, value, found, link.TargetTable)
				}
			}
		}
	}

	result.Records = acc.records
	result.Stats.TablesReached = len(acc.records)
	for _, records := range acc.records {
		result.Stats.RecordsFound += int64(len(records))
	}
	result.Stats.LinksProcessed = len(processed)
	result.Stats.BFSLevels = maxLevel + 1
	result.Stats.Duration = time.Since(startTime)

	log.Infof("Trace complete: %d tables, %d records, %d links, %d levels, duration: %s",
		result.Stats.TablesReached,
		result.Stats.RecordsFound,
		result.Stats.LinksProcessed,
		result.Stats.BFSLevels,
		result.Stats.Duration,
	)

	return result, nil
}

// Retrace runs req again from its original seeds with the given relationship
// indices switched off. The seed table set is carried over unchanged.
func (e *Engine) Retrace(ctx context.Context, req Request, disabled []int) (*types.RecordSet, error) {
	skip := make(map[int]bool, len(disabled))
	for _, i := range disabled {
		skip[i] = true
	}

	next := req
	next.Active = make([]schema.Relationship, 0, len(req.Active))
	for _, rel := range req.Active {
		if !skip[rel.Index] {
			next.Active = append(next.Active, rel)
		}
	}
	if next.SeedTables == nil {
		next.SeedTables = types.SeedTables(req.Seeds)
	}

	return e.Trace(ctx, next)
}

// distinctValues returns the participating match keys of field across
// records, in first-seen order.
func distinctValues(records []types.Record, field string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, record := range records {
		key, ok := types.MatchKey(record[field])
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		values = append(values, key)
	}
	return values
}
