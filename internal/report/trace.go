package report

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/gorelate/internal/schema"
	"github.com/dbsmedya/gorelate/internal/trace"
	"github.com/dbsmedya/gorelate/internal/types"
)

// SeedView identifies one seed record.
type SeedView struct {
	Table string `json:"table" yaml:"table"`
	Key   string `json:"key" yaml:"key"`
}

// TableView is the records a trace reached in one table.
type TableView struct {
	ID      string         `json:"id" yaml:"id"`
	Name    string         `json:"name" yaml:"name"`
	Seed    bool           `json:"seed" yaml:"seed"`
	Count   int            `json:"count" yaml:"count"`
	Records []types.Record `json:"records" yaml:"records"`
}

// LinkView is a relationship discovered by the full trace and whether it
// took part in the rendered one.
type LinkView struct {
	Index     int    `json:"index" yaml:"index"`
	From      string `json:"from" yaml:"from"`
	FromField string `json:"from_field" yaml:"from_field"`
	To        string `json:"to" yaml:"to"`
	ToField   string `json:"to_field" yaml:"to_field"`
	Active    bool   `json:"active" yaml:"active"`
}

// StatsView mirrors types.TraceStats with a printable duration.
type StatsView struct {
	TablesReached  int    `json:"tables_reached" yaml:"tables_reached"`
	RecordsFound   int64  `json:"records_found" yaml:"records_found"`
	LinksProcessed int    `json:"links_processed" yaml:"links_processed"`
	BFSLevels      int    `json:"bfs_levels" yaml:"bfs_levels"`
	Duration       string `json:"duration" yaml:"duration"`
}

// TraceView is the renderable form of one trace.
type TraceView struct {
	TraceID       string       `json:"trace_id" yaml:"trace_id"`
	Policy        trace.Policy `json:"policy" yaml:"policy"`
	Seeds         []SeedView   `json:"seeds" yaml:"seeds"`
	Relationships []LinkView   `json:"relationships" yaml:"relationships"`
	Tables        []TableView  `json:"tables" yaml:"tables"`
	Stats         StatsView    `json:"stats" yaml:"stats"`
}

// NewTraceView assembles a view of rs. discovered lists the relationships
// that fired in the trace with every relationship enabled; disabled marks
// those switched off for rs.
func NewTraceView(rs *types.RecordSet, sch *schema.Schema, policy trace.Policy, discovered, disabled []int) *TraceView {
	off := make(map[int]bool, len(disabled))
	for _, i := range disabled {
		off[i] = true
	}

	v := &TraceView{
		TraceID: rs.TraceID,
		Policy:  policy,
		Stats: StatsView{
			TablesReached:  rs.Stats.TablesReached,
			RecordsFound:   rs.Stats.RecordsFound,
			LinksProcessed: rs.Stats.LinksProcessed,
			BFSLevels:      rs.Stats.BFSLevels,
			Duration:       rs.Stats.Duration.String(),
		},
	}

	for _, s := range rs.Seeds {
		key, _ := s.Record.Key(sch.PrimaryKey(s.TableID))
		v.Seeds = append(v.Seeds, SeedView{Table: s.TableID, Key: key})
	}

	for _, rel := range sch.Select(discovered) {
		v.Relationships = append(v.Relationships, LinkView{
			Index:     rel.Index,
			From:      rel.From,
			FromField: rel.FromField,
			To:        rel.To,
			ToField:   rel.ToField,
			Active:    !off[rel.Index],
		})
	}

	ids := make([]string, 0, len(rs.Records))
	for id := range rs.Records {
		ids = append(ids, id)
	}
	for _, id := range sch.SortTables(ids) {
		v.Tables = append(v.Tables, TableView{
			ID:      id,
			Name:    sch.Name(id),
			Seed:    rs.SeedTables[id],
			Count:   rs.Count(id),
			Records: rs.Records[id],
		})
	}

	return v
}

// Trace writes a trace view in the requested format.
func (r *Renderer) Trace(v *TraceView, sch *schema.Schema, format Format) error {
	if done, err := r.encode(format, v); done {
		return err
	}
	if format == FormatMermaid {
		_, err := fmt.Fprint(r.w, TraceMermaid(v))
		return err
	}

	r.printHeader(fmt.Sprintf("Relationship Trace %s", v.TraceID))
	r.printf("  Seeds:         %s\n", describeSeeds(v.Seeds, sch))
	r.printf("  Loopback:      %s\n", onOff(v.Policy.AllowLoopback))
	r.printf("  Bidirectional: %s\n", onOff(v.Policy.Bidirectional))

	r.printf("\n")
	r.printSection("Discovered Relationships")
	if len(v.Relationships) == 0 {
		r.printf("  %s\n", r.paint(mutedStyle, "none"))
	}
	for _, link := range v.Relationships {
		mark := "[x]"
		if !link.Active {
			mark = "[ ]"
		}
		r.printf("  %s #%d %s.%s -> %s.%s\n", mark, link.Index,
			sch.Name(link.From), link.FromField, sch.Name(link.To), link.ToField)
	}

	for _, table := range v.Tables {
		r.printf("\n")
		title := fmt.Sprintf("%s: %d record(s)", table.Name, table.Count)
		if table.Seed {
			r.printf("%s\n", r.paint(seedStyle, title+" (seed)"))
		} else {
			r.printf("%s\n", r.paint(headingStyle, title))
		}
		r.printRecords(table.Records, sch.PrimaryKey(table.ID))
	}

	r.printf("\n")
	r.printf("Summary: %d table(s), %d record(s), %d link(s), %d level(s), %s\n",
		v.Stats.TablesReached, v.Stats.RecordsFound, v.Stats.LinksProcessed, v.Stats.BFSLevels, v.Stats.Duration)
	return nil
}

func describeSeeds(seeds []SeedView, sch *schema.Schema) string {
	counts := make(map[string]int)
	var order []string
	for _, s := range seeds {
		if counts[s.Table] == 0 {
			order = append(order, s.Table)
		}
		counts[s.Table]++
	}
	parts := make([]string, 0, len(order))
	for _, id := range sch.SortTables(order) {
		parts = append(parts, fmt.Sprintf("%d from %s", counts[id], sch.Name(id)))
	}
	return strings.Join(parts, ", ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
