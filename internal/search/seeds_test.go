package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gorelate/internal/dataset"
	"github.com/dbsmedya/gorelate/internal/schema"
	"github.com/dbsmedya/gorelate/internal/types"
)

func TestParseSeed(t *testing.T) {
	table, key, err := ParseSeed(" AGS_DATA = 12 ")
	require.NoError(t, err)
	assert.Equal(t, "AGS_DATA", table)
	assert.Equal(t, "12", key)

	for _, bad := range []string{"AGS_DATA", "=1", "AGS_DATA=", ""} {
		_, _, err := ParseSeed(bad)
		assert.Error(t, err, bad)
	}
}

func seedFixture(t *testing.T) (*dataset.Dataset, *schema.Schema) {
	t.Helper()
	s := schema.New()
	require.NoError(t, s.AddTable(&schema.Table{ID: "Services", PrimaryKey: "Code"}))
	require.NoError(t, s.AddTable(&schema.Table{ID: "Layers"}))
	ds := dataset.FromMap(map[string][]types.Record{
		"Services": {{"Code": "roads", "Env": "prod"}, {"Code": "parcels", "Env": "dev"}},
		"Layers":   {{"OBJECTID": 1, "Env": "prod"}, {"OBJECTID": 2, "Env": "prod"}, {"OBJECTID": 3, "Env": "dev"}},
	})
	return ds, s
}

func TestByKey(t *testing.T) {
	ds, s := seedFixture(t)

	sel, err := ByKey(ds, s, "Services", "parcels")
	require.NoError(t, err)
	require.Len(t, sel, 1)
	assert.Equal(t, "dev", sel[0].Record["Env"])

	sel, err = ByKey(ds, s, "Layers", "3")
	require.NoError(t, err)
	assert.Len(t, sel, 1)

	_, err = ByKey(ds, s, "Layers", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no record in Layers with OBJECTID=99")

	_, err = ByKey(ds, s, "Nope", "1")
	assert.True(t, errors.Is(err, ErrUnknownTable))
}

func TestByFilter(t *testing.T) {
	ds, s := seedFixture(t)

	sel, err := ByFilter(ds, s, "Layers", []Condition{{Field: "Env", Value: "prod"}})
	require.NoError(t, err)
	assert.Len(t, sel, 2)

	sel, err = ByFilter(ds, s, "Layers", nil)
	require.NoError(t, err)
	assert.Len(t, sel, 3, "no conditions selects the whole table")

	_, err = ByFilter(ds, s, "Nope", nil)
	assert.ErrorIs(t, err, ErrUnknownTable)
}
