package trace

import (
	"github.com/dbsmedya/gorelate/internal/schema"
	"github.com/dbsmedya/gorelate/internal/types"
)

// ActiveLinks returns, in schema order, the index of every relationship for
// which some record of result[from] and some record of result[to] carry equal
// values. Any pair counts, whether or not the trace walked through it.
func ActiveLinks(result *types.RecordSet, sch *schema.Schema) []int {
	var indices []int
	for _, rel := range sch.Relationships() {
		if realized(result, rel) {
			indices = append(indices, rel.Index)
		}
	}
	return indices
}

func realized(result *types.RecordSet, rel schema.Relationship) bool {
	if !result.Has(rel.From) || !result.Has(rel.To) {
		return false
	}

	targets := make(map[string]bool)
	for _, record := range result.Records[rel.To] {
		if key, ok := types.MatchKey(record[rel.ToField]); ok {
			targets[key] = true
		}
	}
	if len(targets) == 0 {
		return false
	}

	for _, record := range result.Records[rel.From] {
		if key, ok := types.MatchKey(record[rel.FromField]); ok && targets[key] {
			return true
		}
	}
	return false
}
