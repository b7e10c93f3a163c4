// Package config provides configuration structures and loading for gorelate.
package config

// Source types
const (
	SourceMySQL    = "mysql"
	SourceSnapshot = "snapshot"
)

// Config represents the complete application configuration.
type Config struct {
	Source        SourceConfig         `yaml:"source" mapstructure:"source"`
	Tables        []TableConfig        `yaml:"tables" mapstructure:"tables"`
	Relationships []RelationshipConfig `yaml:"relationships" mapstructure:"relationships"`
	Trace         TraceConfig          `yaml:"trace" mapstructure:"trace"`
	Logging       LoggingConfig        `yaml:"logging" mapstructure:"logging"`
}

// SourceConfig selects where table snapshots are loaded from.
type SourceConfig struct {
	Type     string         `yaml:"type" mapstructure:"type"` // mysql or snapshot
	MySQL    DatabaseConfig `yaml:"mysql" mapstructure:"mysql"`
	Snapshot SnapshotConfig `yaml:"snapshot" mapstructure:"snapshot"`
}

// DatabaseConfig represents a MySQL database connection configuration.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// SnapshotConfig locates per-table JSON snapshots.
// Each table is read from Location joined with Pattern, where the %s verb
// in Pattern is replaced by the table's source name.
type SnapshotConfig struct {
	Location string `yaml:"location" mapstructure:"location"` // directory or afs URL
	Pattern  string `yaml:"pattern" mapstructure:"pattern"`
}

// TableConfig declares one table (layer) of the dataset.
// The order of Config.Tables is the display order of results.
type TableConfig struct {
	ID               string   `yaml:"id" mapstructure:"id"`
	Name             string   `yaml:"name" mapstructure:"name"`
	Source           string   `yaml:"source" mapstructure:"source"`           // SQL table or snapshot name (defaults to ID)
	PrimaryKey       string   `yaml:"primary_key" mapstructure:"primary_key"` // defaults to OBJECTID
	SearchableFields []string `yaml:"searchable_fields" mapstructure:"searchable_fields"`
}

// RelationshipConfig declares a directed attribute-equality link.
type RelationshipConfig struct {
	From      string `yaml:"from" mapstructure:"from"`
	FromField string `yaml:"from_field" mapstructure:"from_field"`
	To        string `yaml:"to" mapstructure:"to"`
	ToField   string `yaml:"to_field" mapstructure:"to_field"`
}

// TraceConfig holds the default trace policy.
type TraceConfig struct {
	AllowLoopback bool `yaml:"allow_loopback" mapstructure:"allow_loopback"`
	Bidirectional bool `yaml:"bidirectional" mapstructure:"bidirectional"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Type: SourceSnapshot,
			MySQL: DatabaseConfig{
				Port:               3306,
				TLS:                "preferred",
				MaxConnections:     10,
				MaxIdleConnections: 5,
			},
			Snapshot: SnapshotConfig{
				Location: ".",
				Pattern:  "%s.json",
			},
		},
		Trace: TraceConfig{
			AllowLoopback: false,
			Bidirectional: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// SourceName returns the physical name the table is loaded from.
func (t *TableConfig) SourceName() string {
	if t.Source != "" {
		return t.Source
	}
	return t.ID
}

// DisplayName returns the human readable name, falling back to the id.
func (t *TableConfig) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}
