package loader

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dbsmedya/gorelate/internal/config"
	"github.com/dbsmedya/gorelate/internal/sqlutil"
	"github.com/dbsmedya/gorelate/internal/types"
)

// MySQLSource reads tables with SELECT * over an open connection.
type MySQLSource struct {
	db *sql.DB
}

// NewMySQLSource creates a source over db.
func NewMySQLSource(db *sql.DB) *MySQLSource {
	return &MySQLSource{db: db}
}

// Fetch reads every row of the table's source. Text columns arrive as
// []byte from the driver and are stored as strings.
func (s *MySQLSource) Fetch(ctx context.Context, table config.TableConfig) ([]types.Record, error) {
	query, err := sqlutil.SelectAll(table.SourceName())
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table.SourceName(), err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var records []types.Record
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := make(types.Record, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				record[col] = string(b)
			} else {
				record[col] = values[i]
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}
