// Package sqlutil builds the SQL used to read table snapshots from MySQL.
package sqlutil

import (
	"regexp"
	"strings"
)

// QuoteIdentifier quotes a MySQL identifier with backticks, doubling any
// backtick inside it.
// Example: "my_table" -> "`my_table`"
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Configured table sources are restricted to word characters, $ and spaces.
var validIdentifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_$ ]+$`)

// IsValidIdentifier checks a single identifier part.
func IsValidIdentifier(name string) bool {
	return strings.TrimSpace(name) != "" && validIdentifierRegex.MatchString(name)
}

// QuoteQualified quotes a possibly schema-qualified name such as
// "gis.DATABASE_CONTENT", validating every part.
func QuoteQualified(name string) (string, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return "", &InvalidIdentifierError{Name: name}
	}
	quoted := make([]string, 0, len(parts))
	for _, part := range parts {
		if !IsValidIdentifier(part) {
			return "", &InvalidIdentifierError{Name: name}
		}
		quoted = append(quoted, QuoteIdentifier(part))
	}
	return strings.Join(quoted, "."), nil
}

// SelectAll returns the query that reads every row of a table.
func SelectAll(table string) (string, error) {
	quoted, err := QuoteQualified(table)
	if err != nil {
		return "", err
	}
	return "SELECT * FROM " + quoted, nil
}

// InvalidIdentifierError is returned when a table name cannot be quoted safely.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (expected [schema.]table with word characters only)"
}
