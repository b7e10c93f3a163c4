package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gorelate/internal/orphan"
	"github.com/dbsmedya/gorelate/internal/report"
)

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "Report records that no relationship connects",
	Long: `Orphans checks every record of every table against each relationship
touching its table. A record is an orphan when none of them finds a
matching, non-empty value on the other side.

Example:
  gorelate orphans --config gorelate.yaml -o json`,
	RunE: runOrphans,
}

func init() {
	rootCmd.AddCommand(orphansCmd)
}

func runOrphans(cmd *cobra.Command, args []string) error {
	renderer, format, err := newRenderer()
	if err != nil {
		return err
	}
	if format == report.FormatMermaid {
		return fmt.Errorf("mermaid output is not available for orphan reports")
	}

	ctx, stop := commandContext()
	defer stop()

	s, err := openSession(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()

	analyzer, err := orphan.NewAnalyzer(s.data, s.schema)
	if err != nil {
		return err
	}
	analyzer.SetLogger(s.log)

	rep, err := analyzer.Find(ctx)
	if err != nil {
		return err
	}
	return renderer.Orphans(report.NewOrphanView(rep, s.schema), s.schema, format)
}
