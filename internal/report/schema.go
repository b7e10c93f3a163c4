package report

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/gorelate/internal/schema"
)

// SchemaView is the renderable form of the relationship schema.
type SchemaView struct {
	Tables        []schema.Table        `json:"tables" yaml:"tables"`
	Relationships []schema.Relationship `json:"relationships" yaml:"relationships"`
	Components    [][]string            `json:"components" yaml:"components"`
	CyclicTables  []string              `json:"cyclic_tables,omitempty" yaml:"cyclic_tables,omitempty"`
	SelfLinked    []string              `json:"self_linked,omitempty" yaml:"self_linked,omitempty"`
}

// NewSchemaView describes sch, including its connected components and any
// tables caught in or downstream of a relationship cycle.
func NewSchemaView(sch *schema.Schema) *SchemaView {
	v := &SchemaView{
		Relationships: sch.Relationships(),
		Components:    [][]string{},
	}
	for _, id := range sch.TableIDs() {
		t, _ := sch.Table(id)
		v.Tables = append(v.Tables, *t)
	}
	for _, c := range sch.Components() {
		v.Components = append(v.Components, c.Tables)
	}
	if info := sch.DetectCycles(); info != nil {
		v.CyclicTables = info.CyclicTables
		v.SelfLinked = info.SelfLinked
	}
	return v
}

// Schema writes the schema description.
func (r *Renderer) Schema(v *SchemaView, sch *schema.Schema, format Format) error {
	if done, err := r.encode(format, v); done {
		return err
	}
	if format == FormatMermaid {
		_, err := fmt.Fprint(r.w, SchemaMermaid(sch))
		return err
	}

	r.printHeader("Relationship Schema")

	r.printf("\n")
	r.printSection("Tables")
	for i, t := range v.Tables {
		r.printf("  [%d] %s (%s) PK: %s", i+1, t.ID, t.Name, t.PrimaryKey)
		if len(t.SearchableFields) > 0 {
			r.printf(" | search: %s", strings.Join(t.SearchableFields, ", "))
		}
		r.printf("\n")
	}

	r.printf("\n")
	r.printSection("Relationships")
	for _, rel := range v.Relationships {
		r.printf("  #%-2d %s\n", rel.Index, rel.String())
	}

	r.printf("\n")
	r.printSection("Connected Components")
	for i, c := range v.Components {
		r.printf("  %d: %s\n", i+1, strings.Join(c, ", "))
	}

	if len(v.CyclicTables) > 0 || len(v.SelfLinked) > 0 {
		r.printf("\n")
		r.printSection("Cycles")
		if len(v.SelfLinked) > 0 {
			r.printf("  Self-linked: %s\n", strings.Join(v.SelfLinked, ", "))
		}
		if len(v.CyclicTables) > 0 {
			r.printf("  On or after a cycle: %s\n", strings.Join(v.CyclicTables, ", "))
		}
	}
	return nil
}
