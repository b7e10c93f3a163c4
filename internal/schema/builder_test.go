package schema

import (
	"strings"
	"testing"

	"github.com/dbsmedya/gorelate/internal/config"
)

func TestNewBuilder(t *testing.T) {
	cfg := config.DefaultConfig()

	builder := NewBuilder(cfg)
	if builder == nil {
		t.Fatal("NewBuilder returned nil")
	}
	if builder.cfg != cfg {
		t.Error("Builder cfg field not set correctly")
	}
}

func TestBuild_FromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tables = []config.TableConfig{
		{ID: "DOMAIN_USAGE", Name: "Domain Usage", SearchableFields: []string{"DomainName"}},
		{ID: "DOMAIN_TABLE", PrimaryKey: "GlobalID"},
	}
	cfg.Relationships = []config.RelationshipConfig{
		{From: "DOMAIN_USAGE", FromField: "DomainName", To: "DOMAIN_TABLE", ToField: "DomainName"},
	}

	s, err := BuildFromConfig(cfg)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	ids := s.TableIDs()
	if len(ids) != 2 || ids[0] != "DOMAIN_USAGE" || ids[1] != "DOMAIN_TABLE" {
		t.Errorf("unexpected table order: %v", ids)
	}

	usage, _ := s.Table("DOMAIN_USAGE")
	if usage.Name != "Domain Usage" {
		t.Errorf("expected name 'Domain Usage', got %q", usage.Name)
	}
	if usage.PrimaryKey != "OBJECTID" {
		t.Errorf("expected default primary key, got %q", usage.PrimaryKey)
	}
	if len(usage.SearchableFields) != 1 || usage.SearchableFields[0] != "DomainName" {
		t.Errorf("unexpected searchable fields %v", usage.SearchableFields)
	}

	domainTable, _ := s.Table("DOMAIN_TABLE")
	if domainTable.Name != "DOMAIN_TABLE" {
		t.Errorf("expected name to fall back to id, got %q", domainTable.Name)
	}
	if domainTable.PrimaryKey != "GlobalID" {
		t.Errorf("expected primary key GlobalID, got %q", domainTable.PrimaryKey)
	}

	if s.RelationshipCount() != 1 {
		t.Fatalf("expected 1 relationship, got %d", s.RelationshipCount())
	}
}

func TestBuild_NilConfig(t *testing.T) {
	if _, err := NewBuilder(nil).Build(); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestBuild_NoTables(t *testing.T) {
	_, err := BuildFromConfig(config.DefaultConfig())
	if err == nil || !strings.Contains(err.Error(), "no tables") {
		t.Errorf("expected 'no tables' error, got %v", err)
	}
}

func TestBuild_DuplicateTable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tables = []config.TableConfig{{ID: "A"}, {ID: "A"}}

	_, err := BuildFromConfig(cfg)
	if err == nil || !strings.Contains(err.Error(), "declared more than once") {
		t.Errorf("expected duplicate table error, got %v", err)
	}
}

func TestBuild_UnknownRelationshipTable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tables = []config.TableConfig{{ID: "A"}}
	cfg.Relationships = []config.RelationshipConfig{
		{From: "A", FromField: "x", To: "B", ToField: "y"},
	}

	_, err := BuildFromConfig(cfg)
	if err == nil || !strings.Contains(err.Error(), `unknown table "B"`) {
		t.Errorf("expected unknown table error, got %v", err)
	}
}
