// Package schema holds the table enumeration and the relationship definitions
// that connect tables.
package schema

import (
	"fmt"
	"sort"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/gorelate/internal/types"
)

// Table is one entry of the table enumeration.
type Table struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	PrimaryKey       string   `json:"primary_key" yaml:"primary_key"`
	SearchableFields []string `json:"searchable_fields,omitempty" yaml:"searchable_fields,omitempty"`
}

// Relationship is a directed attribute-equality link between two tables.
// Index is the definition's position in the schema and its stable identity.
type Relationship struct {
	Index     int    `json:"index" yaml:"index"`
	From      string `json:"from" yaml:"from"`
	FromField string `json:"from_field" yaml:"from_field"`
	To        string `json:"to" yaml:"to"`
	ToField   string `json:"to_field" yaml:"to_field"`
}

// Link is a relationship oriented for traversal out of SourceTable.
type Link struct {
	SourceTable string
	SourceField string
	TargetTable string
	TargetField string
}

func (r Relationship) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s", r.From, r.FromField, r.To, r.ToField)
}

// Forward returns the relationship oriented from -> to.
func (r Relationship) Forward() Link {
	return Link{SourceTable: r.From, SourceField: r.FromField, TargetTable: r.To, TargetField: r.ToField}
}

// Reverse returns the relationship oriented to -> from.
func (r Relationship) Reverse() Link {
	return Link{SourceTable: r.To, SourceField: r.ToField, TargetTable: r.From, TargetField: r.FromField}
}

// LinkFrom returns how the relationship applies when leaving table.
// Forward wins when the relationship starts at table; the reverse
// orientation is only considered when reverse is true.
func (r Relationship) LinkFrom(table string, reverse bool) (Link, bool) {
	if r.From == table {
		return r.Forward(), true
	}
	if reverse && r.To == table {
		return r.Reverse(), true
	}
	return Link{}, false
}

// Touches reports whether either side of the relationship is table.
func (r Relationship) Touches(table string) bool {
	return r.From == table || r.To == table
}

// DefinitionError is returned when a table or relationship definition is invalid.
type DefinitionError struct {
	Subject string
	Reason  string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid definition %s: %s", e.Subject, e.Reason)
}

// Schema is the ordered table enumeration plus the ordered relationship list.
// It is read-only once built.
type Schema struct {
	tables        *orderedmap.OrderedMap[string, *Table]
	relationships []Relationship
	outgoing      map[string][]int // table -> indices of relationships leaving it
}

// New creates an empty schema.
func New() *Schema {
	return &Schema{
		tables:   orderedmap.NewOrderedMap[string, *Table](),
		outgoing: make(map[string][]int),
	}
}

// AddTable appends a table to the enumeration.
func (s *Schema) AddTable(t *Table) error {
	if t == nil || t.ID == "" {
		return &DefinitionError{Subject: "table", Reason: "id is empty"}
	}
	if _, exists := s.tables.Get(t.ID); exists {
		return &DefinitionError{Subject: fmt.Sprintf("table %q", t.ID), Reason: "declared more than once"}
	}
	if t.PrimaryKey == "" {
		t.PrimaryKey = types.DefaultPrimaryKey
	}
	s.tables.Set(t.ID, t)
	return nil
}

// AddRelationship appends a relationship definition and returns it with its index.
func (s *Schema) AddRelationship(from, fromField, to, toField string) (Relationship, error) {
	subject := fmt.Sprintf("relationship %d", len(s.relationships))
	for _, table := range []string{from, to} {
		if _, ok := s.tables.Get(table); !ok {
			return Relationship{}, &DefinitionError{Subject: subject, Reason: fmt.Sprintf("unknown table %q", table)}
		}
	}
	if fromField == "" || toField == "" {
		return Relationship{}, &DefinitionError{Subject: subject, Reason: "field names cannot be empty"}
	}

	rel := Relationship{
		Index:     len(s.relationships),
		From:      from,
		FromField: fromField,
		To:        to,
		ToField:   toField,
	}
	s.relationships = append(s.relationships, rel)
	s.outgoing[from] = append(s.outgoing[from], rel.Index)
	return rel, nil
}

// Table returns the table with the given id.
func (s *Schema) Table(id string) (*Table, bool) {
	return s.tables.Get(id)
}

// HasTable returns true if the schema declares the table.
func (s *Schema) HasTable(id string) bool {
	_, ok := s.tables.Get(id)
	return ok
}

// TableCount returns the number of declared tables.
func (s *Schema) TableCount() int {
	return s.tables.Len()
}

// TableIDs returns table ids in enumeration order.
func (s *Schema) TableIDs() []string {
	ids := make([]string, 0, s.tables.Len())
	for el := s.tables.Front(); el != nil; el = el.Next() {
		ids = append(ids, el.Key)
	}
	return ids
}

// Name returns the display name of a table, falling back to its id.
func (s *Schema) Name(id string) string {
	if t, ok := s.tables.Get(id); ok && t.Name != "" {
		return t.Name
	}
	return id
}

// PrimaryKey returns the identity field of a table.
// Undeclared tables use the default OBJECTID.
func (s *Schema) PrimaryKey(id string) string {
	if t, ok := s.tables.Get(id); ok && t.PrimaryKey != "" {
		return t.PrimaryKey
	}
	return types.DefaultPrimaryKey
}

// Relationships returns a copy of all relationship definitions in schema order.
func (s *Schema) Relationships() []Relationship {
	out := make([]Relationship, len(s.relationships))
	copy(out, s.relationships)
	return out
}

// Relationship returns the definition at index.
func (s *Schema) Relationship(index int) (Relationship, bool) {
	if index < 0 || index >= len(s.relationships) {
		return Relationship{}, false
	}
	return s.relationships[index], true
}

// RelationshipCount returns the number of relationship definitions.
func (s *Schema) RelationshipCount() int {
	return len(s.relationships)
}

// Outgoing returns the relationships whose from side is table.
func (s *Schema) Outgoing(table string) []Relationship {
	return s.pick(s.outgoing[table])
}

// Touching returns every relationship with table on either side, each once,
// in schema order.
func (s *Schema) Touching(table string) []Relationship {
	var out []Relationship
	for _, rel := range s.relationships {
		if rel.Touches(table) {
			out = append(out, rel)
		}
	}
	return out
}

// Select returns the definitions at the given indices in schema order.
// Unknown indices are ignored.
func (s *Schema) Select(indices []int) []Relationship {
	wanted := make(map[int]bool, len(indices))
	for _, i := range indices {
		wanted[i] = true
	}
	var out []Relationship
	for _, rel := range s.relationships {
		if wanted[rel.Index] {
			out = append(out, rel)
		}
	}
	return out
}

// Position returns the table's place in the enumeration.
// Undeclared tables sort after every declared one.
func (s *Schema) Position(id string) int {
	pos := 0
	for el := s.tables.Front(); el != nil; el = el.Next() {
		if el.Key == id {
			return pos
		}
		pos++
	}
	return pos
}

// SortTables orders table ids by enumeration position.
// Undeclared tables follow in lexical order.
func (s *Schema) SortTables(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := s.Position(out[i]), s.Position(out[j])
		if pi != pj {
			return pi < pj
		}
		return out[i] < out[j]
	})
	return out
}

func (s *Schema) pick(indices []int) []Relationship {
	out := make([]Relationship, 0, len(indices))
	for _, i := range indices {
		out = append(out, s.relationships[i])
	}
	return out
}
