package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateSource()...)

	if len(c.Tables) == 0 {
		errors = append(errors, ValidationError{
			Field:   "tables",
			Message: "at least one table must be defined",
		})
	}
	known := make(map[string]bool, len(c.Tables))
	for i, table := range c.Tables {
		prefix := fmt.Sprintf("tables[%d]", i)
		if table.ID == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".id",
				Message: "id is required",
			})
			continue
		}
		if known[table.ID] {
			errors = append(errors, ValidationError{
				Field:   prefix + ".id",
				Message: fmt.Sprintf("duplicate table id %q", table.ID),
			})
		}
		known[table.ID] = true
		for j, field := range table.SearchableFields {
			if strings.TrimSpace(field) == "" {
				errors = append(errors, ValidationError{
					Field:   fmt.Sprintf("%s.searchable_fields[%d]", prefix, j),
					Message: "field name cannot be empty",
				})
			}
		}
	}

	for i, rel := range c.Relationships {
		errors = append(errors, validateRelationship(fmt.Sprintf("relationships[%d]", i), &rel, known)...)
	}

	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSource() ValidationErrors {
	var errors ValidationErrors

	switch c.Source.Type {
	case SourceMySQL:
		errors = append(errors, validateDatabase("source.mysql", &c.Source.MySQL)...)
	case SourceSnapshot, "":
		if c.Source.Snapshot.Location == "" {
			errors = append(errors, ValidationError{
				Field:   "source.snapshot.location",
				Message: "location is required",
			})
		}
		if !validSnapshotPattern(c.Source.Snapshot.Pattern) {
			errors = append(errors, ValidationError{
				Field:   "source.snapshot.pattern",
				Message: "pattern must contain exactly one %s for the table source name and no other verbs",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "source.type",
			Message: "type must be 'mysql' or 'snapshot'",
		})
	}

	return errors
}

// validSnapshotPattern accepts patterns with a single %s verb. Literal
// percent signs must be written as %%.
func validSnapshotPattern(pattern string) bool {
	stripped := strings.ReplaceAll(pattern, "%%", "")
	if strings.Count(stripped, "%s") != 1 {
		return false
	}
	return !strings.Contains(strings.Replace(stripped, "%s", "", 1), "%")
}

func validateDatabase(prefix string, db *DatabaseConfig) ValidationErrors {
	var errors ValidationErrors

	if db.Host == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".host",
			Message: "host is required",
		})
	}

	if db.Port <= 0 || db.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".port",
			Message: "port must be between 1 and 65535",
		})
	}

	if db.User == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".user",
			Message: "user is required",
		})
	}

	if db.Database == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".database",
			Message: "database name is required",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[db.TLS] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	if db.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	if db.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

func validateRelationship(prefix string, rel *RelationshipConfig, known map[string]bool) ValidationErrors {
	var errors ValidationErrors

	check := func(side, table, field string) {
		if table == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + "." + side,
				Message: side + " table is required",
			})
		} else if !known[table] {
			errors = append(errors, ValidationError{
				Field:   prefix + "." + side,
				Message: fmt.Sprintf("unknown table %q", table),
			})
		}
		if field == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + "." + side + "_field",
				Message: side + "_field is required",
			})
		}
	}

	check("from", rel.From, rel.FromField)
	check("to", rel.To, rel.ToField)

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
