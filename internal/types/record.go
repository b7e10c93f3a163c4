package types

// DefaultPrimaryKey is the identity field carried by every record unless a
// table configures another one.
const DefaultPrimaryKey = "OBJECTID"

// Record is one row of a table: field name -> scalar value.
type Record map[string]interface{}

// Key returns the record's identity under the given primary key field.
// Returns false when the field is absent or nil.
func (r Record) Key(pkField string) (string, bool) {
	return ValueString(r[pkField])
}

// Selection is a seed picked by the user: a record and the table it lives in.
type Selection struct {
	Record  Record `json:"record" yaml:"record"`
	TableID string `json:"table" yaml:"table"`
}

// SeedTables returns the set of tables the selections were taken from.
func SeedTables(seeds []Selection) map[string]bool {
	tables := make(map[string]bool, len(seeds))
	for _, s := range seeds {
		tables[s.TableID] = true
	}
	return tables
}
