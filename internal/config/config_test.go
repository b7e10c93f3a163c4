package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Source.Type != SourceSnapshot {
		t.Errorf("expected source type 'snapshot', got %s", cfg.Source.Type)
	}
	if cfg.Source.MySQL.Port != 3306 {
		t.Errorf("expected mysql port 3306, got %d", cfg.Source.MySQL.Port)
	}
	if cfg.Source.MySQL.TLS != "preferred" {
		t.Errorf("expected mysql TLS 'preferred', got %s", cfg.Source.MySQL.TLS)
	}
	if cfg.Source.Snapshot.Pattern != "%s.json" {
		t.Errorf("expected snapshot pattern '%%s.json', got %s", cfg.Source.Snapshot.Pattern)
	}

	if cfg.Trace.AllowLoopback {
		t.Error("expected loopback disabled by default")
	}
	if cfg.Trace.Bidirectional {
		t.Error("expected bidirectional disabled by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected logging format 'text', got %s", cfg.Logging.Format)
	}
}

func TestDisplayName(t *testing.T) {
	named := TableConfig{ID: "AGS_DATA", Name: "ArcGIS Server Services"}
	if named.DisplayName() != "ArcGIS Server Services" {
		t.Errorf("unexpected display name %q", named.DisplayName())
	}

	unnamed := TableConfig{ID: "AGO_DATA"}
	if unnamed.DisplayName() != "AGO_DATA" {
		t.Errorf("expected display name to fall back to id, got %q", unnamed.DisplayName())
	}
}

func TestSourceName(t *testing.T) {
	withSource := TableConfig{ID: "AGO_DATA", Source: "EnterpriseInventoryAGODataSources"}
	if withSource.SourceName() != "EnterpriseInventoryAGODataSources" {
		t.Errorf("unexpected source name %q", withSource.SourceName())
	}

	withoutSource := TableConfig{ID: "AGO_DATA"}
	if withoutSource.SourceName() != "AGO_DATA" {
		t.Errorf("expected source name to fall back to id, got %q", withoutSource.SourceName())
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()

	cfg.ApplyOverrides("", "", false, false)
	if cfg.Logging.Level != "info" || cfg.Trace.AllowLoopback || cfg.Trace.Bidirectional {
		t.Error("empty overrides should not change the config")
	}

	cfg.ApplyOverrides("debug", "json", true, true)
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected format 'json', got %s", cfg.Logging.Format)
	}
	if !cfg.Trace.AllowLoopback || !cfg.Trace.Bidirectional {
		t.Error("expected trace policy overrides to apply")
	}
}
