package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gorelate/internal/report"
	"github.com/dbsmedya/gorelate/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search WORDS...",
	Short: "Search the searchable fields of every table",
	Long: `Search finds records whose configured searchable fields contain every
word of the query, case-insensitively. The hits can be traced with
'gorelate trace --search'.

Example:
  gorelate search --config gorelate.yaml parcels public`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	renderer, format, err := newRenderer()
	if err != nil {
		return err
	}
	if format == report.FormatMermaid {
		return fmt.Errorf("mermaid output is not available for search results")
	}

	ctx, stop := commandContext()
	defer stop()

	s, err := openSession(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()

	query := strings.Join(args, " ")
	matches := search.Find(s.data, s.schema, query)
	s.log.Debugf("Search %q matched %d record(s)", query, len(matches))

	return renderer.Search(report.NewSearchView(query, matches, s.schema), s.schema, format)
}
