package report

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/gorelate/internal/schema"
)

// sanitizeNodeID turns a table id into a valid Mermaid node id.
func sanitizeNodeID(table string) string {
	return strings.NewReplacer(
		".", "_",
		"-", "_",
		" ", "_",
	).Replace(table)
}

func mermaidLabel(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}

// TraceMermaid returns a left-to-right graph of the trace: one node per table
// with records, seed tables styled, and an edge per active relationship whose
// two tables are both present.
func TraceMermaid(v *TraceView) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	present := make(map[string]bool, len(v.Tables))
	for _, t := range v.Tables {
		if t.Count == 0 {
			continue
		}
		present[t.ID] = true
		sb.WriteString(fmt.Sprintf("    %s[\"%s (%d records)\"]\n",
			sanitizeNodeID(t.ID), mermaidLabel(t.Name), t.Count))
	}

	for _, link := range v.Relationships {
		if !link.Active || !present[link.From] || !present[link.To] {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s -->|\"%s → %s\"| %s\n",
			sanitizeNodeID(link.From), mermaidLabel(link.FromField), mermaidLabel(link.ToField), sanitizeNodeID(link.To)))
	}

	for _, t := range v.Tables {
		if t.Seed && present[t.ID] {
			sb.WriteString(fmt.Sprintf("    style %s fill:#0d6efd,color:#fff\n", sanitizeNodeID(t.ID)))
		}
	}
	return sb.String()
}

// SchemaMermaid returns the whole relationship schema as a graph.
func SchemaMermaid(sch *schema.Schema) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	for _, id := range sch.TableIDs() {
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", sanitizeNodeID(id), mermaidLabel(sch.Name(id))))
	}
	for _, rel := range sch.Relationships() {
		sb.WriteString(fmt.Sprintf("    %s -->|\"#%d %s → %s\"| %s\n",
			sanitizeNodeID(rel.From), rel.Index, mermaidLabel(rel.FromField), mermaidLabel(rel.ToField), sanitizeNodeID(rel.To)))
	}
	return sb.String()
}
