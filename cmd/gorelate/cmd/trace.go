package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gorelate/internal/dataset"
	"github.com/dbsmedya/gorelate/internal/report"
	"github.com/dbsmedya/gorelate/internal/schema"
	"github.com/dbsmedya/gorelate/internal/search"
	"github.com/dbsmedya/gorelate/internal/trace"
	"github.com/dbsmedya/gorelate/internal/types"
)

var (
	traceSeeds   []string
	traceSearch  string
	traceTable   string
	traceWhere   []string
	traceDisable []int
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Trace every record connected to the selected seeds",
	Long: `Trace starts from one or more seed records and follows every relationship
breadth-first until no new records are found.

Seeds can be combined from:
  - --seed TABLE=KEY      a record by primary key (repeatable)
  - --search "words"      every global search hit
  - --table T --where F=V a table narrowed by exact field filters

The trace first runs with every relationship enabled and lists the
relationships it discovered. --disable switches some of them off by index
and traces again from the same seeds.

Example:
  gorelate trace --config gorelate.yaml --seed AGS_DATA=12 --disable 6,7 -o mermaid`,
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().StringArrayVarP(&traceSeeds, "seed", "s", nil,
		"Seed record as TABLE=KEY (repeatable)")
	traceCmd.Flags().StringVar(&traceSearch, "search", "",
		"Use every global search hit as a seed")
	traceCmd.Flags().StringVarP(&traceTable, "table", "t", "",
		"Use the records of this table as seeds (narrow with --where)")
	traceCmd.Flags().StringArrayVarP(&traceWhere, "where", "w", nil,
		"Exact filter FIELD=VALUE on --table (repeatable)")
	traceCmd.Flags().IntSliceVarP(&traceDisable, "disable", "d", nil,
		"Relationship indices to switch off for the re-trace")
	traceCmd.Flags().BoolVar(&allowLoopback, "loopback", false,
		"Allow the trace to re-enter seed tables")
	traceCmd.Flags().BoolVar(&bidirectional, "bidirectional", false,
		"Follow relationships in both directions")
	rootCmd.AddCommand(traceCmd)
}

func runTrace(cmd *cobra.Command, args []string) error {
	renderer, format, err := newRenderer()
	if err != nil {
		return err
	}

	ctx, stop := commandContext()
	defer stop()

	s, err := openSession(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()

	seeds, err := resolveSeeds(s.data, s.schema)
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		return trace.ErrNoSeeds
	}
	for _, i := range traceDisable {
		if _, ok := s.schema.Relationship(i); !ok {
			return fmt.Errorf("relationship index %d out of range (0-%d)", i, s.schema.RelationshipCount()-1)
		}
	}

	engine, err := trace.NewEngine(s.data, s.schema)
	if err != nil {
		return err
	}
	engine.SetLogger(s.log)

	policy := trace.Policy{
		AllowLoopback: s.cfg.Trace.AllowLoopback,
		Bidirectional: s.cfg.Trace.Bidirectional,
	}
	req := trace.Request{
		Seeds:      seeds,
		Active:     s.schema.Relationships(),
		Policy:     policy,
		SeedTables: types.SeedTables(seeds),
	}

	result, err := engine.Trace(ctx, req)
	if err != nil {
		return fmt.Errorf("trace failed: %w", err)
	}
	discovered := trace.ActiveLinks(result, s.schema)
	s.log.Infof("Discovered %d of %d relationship(s)", len(discovered), s.schema.RelationshipCount())

	if len(traceDisable) > 0 {
		result, err = engine.Retrace(ctx, req, traceDisable)
		if err != nil {
			return fmt.Errorf("re-trace failed: %w", err)
		}
	}

	view := report.NewTraceView(result, s.schema, policy, discovered, traceDisable)
	return renderer.Trace(view, s.schema, format)
}

// resolveSeeds collects seeds from every selection flag.
func resolveSeeds(ds *dataset.Dataset, sch *schema.Schema) ([]types.Selection, error) {
	var seeds []types.Selection

	for _, arg := range traceSeeds {
		table, key, err := search.ParseSeed(arg)
		if err != nil {
			return nil, err
		}
		found, err := search.ByKey(ds, sch, table, key)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, found...)
	}

	if traceSearch != "" {
		seeds = append(seeds, search.Seeds(search.Find(ds, sch, traceSearch))...)
	}

	if traceTable != "" {
		conds := make([]search.Condition, 0, len(traceWhere))
		for _, w := range traceWhere {
			c, err := search.ParseCondition(w)
			if err != nil {
				return nil, err
			}
			conds = append(conds, c)
		}
		found, err := search.ByFilter(ds, sch, traceTable, conds)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, found...)
	} else if len(traceWhere) > 0 {
		return nil, fmt.Errorf("--where requires --table")
	}

	return seeds, nil
}
