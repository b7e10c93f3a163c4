package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbsmedya/gorelate/internal/types"
)

func TestActiveLinks(t *testing.T) {
	s := buildSchema(t,
		[]string{"A", "B", "C"},
		[][4]string{
			{"A", "x", "B", "x"},
			{"B", "y", "C", "y"},
			{"A", "q", "B", "q"},
			{"C", "z", "A", "z"},
		},
	)

	tests := []struct {
		name     string
		records  map[string][]types.Record
		expected []int
	}{
		{
			name:     "empty result",
			records:  map[string][]types.Record{},
			expected: nil,
		},
		{
			name: "matching pair across tables",
			records: map[string][]types.Record{
				"A": {{"OBJECTID": 1, "x": "K"}},
				"B": {{"OBJECTID": 1, "x": "k", "y": "v"}},
			},
			expected: []int{0},
		},
		{
			name: "any pair counts, not only traversed ones",
			records: map[string][]types.Record{
				"A": {{"OBJECTID": 1, "x": "k"}, {"OBJECTID": 2, "q": "7"}},
				"B": {{"OBJECTID": 1, "x": "k"}, {"OBJECTID": 2, "q": 7}},
			},
			expected: []int{0, 2},
		},
		{
			name: "blank values never realise a link",
			records: map[string][]types.Record{
				"A": {{"OBJECTID": 1, "x": " "}},
				"B": {{"OBJECTID": 1, "x": " "}},
			},
			expected: nil,
		},
		{
			name: "tables missing from result",
			records: map[string][]types.Record{
				"C": {{"OBJECTID": 1, "z": "a"}},
			},
			expected: nil,
		},
		{
			name: "schema order",
			records: map[string][]types.Record{
				"A": {{"OBJECTID": 1, "x": "k", "z": "zz"}},
				"B": {{"OBJECTID": 1, "x": "k", "y": "v"}},
				"C": {{"OBJECTID": 1, "y": "v", "z": "zz"}},
			},
			expected: []int{0, 1, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := &types.RecordSet{Records: tt.records}
			assert.Equal(t, tt.expected, ActiveLinks(rs, s))
		})
	}
}
