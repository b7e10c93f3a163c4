package cmd

import (
	"context"
	"fmt"

	"github.com/dbsmedya/gorelate/internal/config"
	"github.com/dbsmedya/gorelate/internal/database"
	"github.com/dbsmedya/gorelate/internal/dataset"
	"github.com/dbsmedya/gorelate/internal/loader"
	"github.com/dbsmedya/gorelate/internal/logger"
	"github.com/dbsmedya/gorelate/internal/schema"
)

// session is everything a command needs: validated configuration, logger,
// schema and, when requested, the loaded dataset.
type session struct {
	cfg    *config.Config
	log    *logger.Logger
	schema *schema.Schema
	data   *dataset.Dataset
	stats  *loader.Stats

	closers []func() error
}

// loadConfig loads, overrides and validates the configuration file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat, overrides.AllowLoopback, overrides.Bidirectional)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openSession(ctx context.Context, withData bool) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	sch, err := schema.BuildFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build relationship schema: %w", err)
	}

	s := &session{cfg: cfg, log: log, schema: sch}
	if !withData {
		return s, nil
	}

	src, closeSource, err := openSource(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, closeSource)

	l := loader.New(src, cfg.Tables, log)
	l.Strict = strictLoad
	s.data, s.stats, err = l.Load(ctx)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return s, nil
}

// openSource connects to the configured source of table snapshots.
func openSource(ctx context.Context, cfg *config.Config, log *logger.Logger) (loader.Source, func() error, error) {
	switch cfg.Source.Type {
	case config.SourceMySQL:
		m := database.NewManager(&cfg.Source.MySQL, log)
		if err := m.Connect(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to source database: %w", err)
		}
		return loader.NewMySQLSource(m.DB), m.Close, nil
	case config.SourceSnapshot:
		return loader.NewSnapshotSource(cfg.Source.Snapshot), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported source type %q", cfg.Source.Type)
	}
}

// Close releases the source connection and flushes the logger.
func (s *session) Close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			s.log.Warnf("Close failed: %v", err)
		}
	}
	_ = s.log.Sync()
}
