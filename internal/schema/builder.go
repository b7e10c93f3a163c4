package schema

import (
	"fmt"

	"github.com/dbsmedya/gorelate/internal/config"
)

// Builder constructs a schema from configuration.
type Builder struct {
	cfg *config.Config
}

// NewBuilder creates a new schema builder for the given configuration.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build declares every configured table in order, then every relationship in order.
func (b *Builder) Build() (*Schema, error) {
	if b.cfg == nil {
		return nil, fmt.Errorf("configuration is nil")
	}

	if len(b.cfg.Tables) == 0 {
		return nil, fmt.Errorf("no tables are configured")
	}

	s := New()

	for _, tc := range b.cfg.Tables {
		table := &Table{
			ID:               tc.ID,
			Name:             tc.DisplayName(),
			PrimaryKey:       tc.PrimaryKey,
			SearchableFields: append([]string(nil), tc.SearchableFields...),
		}
		if err := s.AddTable(table); err != nil {
			return nil, fmt.Errorf("failed to declare tables: %w", err)
		}
	}

	for _, rc := range b.cfg.Relationships {
		if _, err := s.AddRelationship(rc.From, rc.FromField, rc.To, rc.ToField); err != nil {
			return nil, fmt.Errorf("failed to declare relationships: %w", err)
		}
	}

	return s, nil
}

// BuildFromConfig is a convenience function that builds a schema directly from config.
func BuildFromConfig(cfg *config.Config) (*Schema, error) {
	return NewBuilder(cfg).Build()
}
