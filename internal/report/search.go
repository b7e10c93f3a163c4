package report

import (
	"fmt"

	"github.com/dbsmedya/gorelate/internal/schema"
	"github.com/dbsmedya/gorelate/internal/search"
	"github.com/dbsmedya/gorelate/internal/types"
)

// MatchView is one keyword search hit.
type MatchView struct {
	Table  string       `json:"table" yaml:"table"`
	Key    string       `json:"key" yaml:"key"`
	Field  string       `json:"field" yaml:"field"`
	Value  interface{}  `json:"value" yaml:"value"`
	Record types.Record `json:"record" yaml:"record"`
}

// SearchView is the renderable form of a keyword search.
type SearchView struct {
	Query   string      `json:"query" yaml:"query"`
	Matches []MatchView `json:"matches" yaml:"matches"`
}

// NewSearchView builds a view of matches for query.
func NewSearchView(query string, matches []search.Match, sch *schema.Schema) *SearchView {
	v := &SearchView{Query: query, Matches: []MatchView{}}
	for _, m := range matches {
		key, _ := m.Record.Key(sch.PrimaryKey(m.TableID))
		v.Matches = append(v.Matches, MatchView{
			Table:  m.TableID,
			Key:    key,
			Field:  m.Field,
			Value:  m.Value,
			Record: m.Record,
		})
	}
	return v
}

// Search writes search results. Text output lists one hit per line followed
// by the matching records grouped by table.
func (r *Renderer) Search(v *SearchView, sch *schema.Schema, format Format) error {
	if done, err := r.encode(format, v); done {
		return err
	}
	if format == FormatMermaid {
		return fmt.Errorf("mermaid output is not available for search results")
	}

	r.printHeader(fmt.Sprintf("Search: %q", v.Query))
	if len(v.Matches) == 0 {
		r.printf("%s\n", r.paint(mutedStyle, "No records matched."))
		return nil
	}
	r.printf("%d record(s) matched.\n", len(v.Matches))

	var order []string
	grouped := make(map[string][]types.Record)
	for _, m := range v.Matches {
		if _, ok := grouped[m.Table]; !ok {
			order = append(order, m.Table)
		}
		grouped[m.Table] = append(grouped[m.Table], m.Record)
	}

	r.printf("\n")
	r.printSection("Matches")
	for _, m := range v.Matches {
		r.printf("  %s=%s  %s: %s\n", m.Table, m.Key, m.Field, cell(m.Value))
	}

	for _, id := range order {
		r.printf("\n")
		r.printf("%s\n", r.paint(headingStyle, fmt.Sprintf("%s: %d record(s)", sch.Name(id), len(grouped[id]))))
		r.printRecords(grouped[id], sch.PrimaryKey(id))
	}
	return nil
}
