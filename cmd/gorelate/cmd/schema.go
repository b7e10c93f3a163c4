package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dbsmedya/gorelate/internal/report"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show tables, relationships and their structure",
	Long: `Schema prints the configured table enumeration and the numbered
relationship definitions used by --disable.

The schema shows:
  - Tables with primary key and searchable fields
  - Relationships by index
  - Connected components of the table graph
  - Tables on or behind relationship cycles

Example:
  gorelate schema --config gorelate.yaml -o mermaid`,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	renderer, format, err := newRenderer()
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer s.Close()

	return renderer.Schema(report.NewSchemaView(s.schema), s.schema, format)
}
