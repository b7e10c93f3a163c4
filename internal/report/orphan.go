package report

import (
	"fmt"

	"github.com/dbsmedya/gorelate/internal/orphan"
	"github.com/dbsmedya/gorelate/internal/schema"
)

// OrphanView is the renderable form of an orphan report.
type OrphanView struct {
	Total      int         `json:"total" yaml:"total"`
	TableCount int         `json:"table_count" yaml:"table_count"`
	Tables     []TableView `json:"tables" yaml:"tables"`
	Duration   string      `json:"duration" yaml:"duration"`
}

// NewOrphanView orders the report's tables by enumeration.
func NewOrphanView(rep *orphan.Report, sch *schema.Schema) *OrphanView {
	v := &OrphanView{
		Total:      rep.Total,
		TableCount: rep.TableCount(),
		Tables:     []TableView{},
		Duration:   rep.Duration.String(),
	}
	for _, id := range rep.Ordered {
		v.Tables = append(v.Tables, TableView{
			ID:      id,
			Name:    sch.Name(id),
			Count:   len(rep.Tables[id]),
			Records: rep.Tables[id],
		})
	}
	return v
}

// Orphans writes an orphan report. Mermaid is not supported.
func (r *Renderer) Orphans(v *OrphanView, sch *schema.Schema, format Format) error {
	if done, err := r.encode(format, v); done {
		return err
	}
	if format == FormatMermaid {
		return fmt.Errorf("mermaid output is not available for orphan reports")
	}

	r.printHeader("Orphan Records Report")
	if v.Total == 0 {
		r.printf("%s\n", r.paint(okStyle, "No orphan records were found."))
		return nil
	}
	r.printf("Found a total of %s orphan record(s) across %d table(s).\n",
		r.paint(warnStyle, fmt.Sprint(v.Total)), v.TableCount)

	for _, table := range v.Tables {
		r.printf("\n")
		r.printf("%s\n", r.paint(warnStyle, fmt.Sprintf("%s: %d orphan record(s)", table.Name, table.Count)))
		r.printRecords(table.Records, sch.PrimaryKey(table.ID))
	}
	return nil
}
