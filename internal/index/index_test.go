package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gorelate/internal/dataset"
	"github.com/dbsmedya/gorelate/internal/types"
)

func createTestDataset() *dataset.Dataset {
	d := dataset.New()
	d.Put("AGS_DATA", []types.Record{
		{"OBJECTID": 1, "serviceName": "Parcels"},
		{"OBJECTID": 2, "serviceName": "PARCELS"},
		{"OBJECTID": 3, "serviceName": "Roads"},
		{"OBJECTID": 4, "serviceName": ""},
		{"OBJECTID": 5, "serviceName": "   "},
		{"OBJECTID": 6, "serviceName": nil},
		{"OBJECTID": 7},
		{"OBJECTID": 8, "serviceName": float64(42)},
	})
	return d
}

func TestValuesOf(t *testing.T) {
	ix := New(createTestDataset())

	values := ix.ValuesOf("AGS_DATA", "serviceName")
	assert.Len(t, values, 3)
	assert.True(t, values.Has("parcels"))
	assert.True(t, values.Has("roads"))
	assert.True(t, values.Has("42"))
	assert.False(t, values.Has("Parcels"), "values are stored lower-cased")
	assert.False(t, values.Has(""))
}

func TestValuesOf_UnknownTable(t *testing.T) {
	ix := New(createTestDataset())

	values := ix.ValuesOf("PBI_DATA", "Report")
	assert.NotNil(t, values)
	assert.Empty(t, values)
}

func TestRowsMatching_PreservesTableOrder(t *testing.T) {
	ix := New(createTestDataset())

	rows := ix.RowsMatching("AGS_DATA", "serviceName", "parcels")
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0]["OBJECTID"])
	assert.Equal(t, 2, rows[1]["OBJECTID"])

	assert.Empty(t, ix.RowsMatching("AGS_DATA", "serviceName", "rivers"))
}

func TestIndex_MemoizesColumns(t *testing.T) {
	ix := New(createTestDataset())

	ix.ValuesOf("AGS_DATA", "serviceName")
	ix.RowsMatching("AGS_DATA", "serviceName", "roads")
	ix.ValuesOf("AGS_DATA", "serviceName")
	assert.Equal(t, 1, ix.Columns())

	ix.ValuesOf("AGS_DATA", "OBJECTID")
	assert.Equal(t, 2, ix.Columns())
}
