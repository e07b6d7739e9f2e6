// Package storage provides the dual-backend persistence layer. Statement
// templates are written once with the universal `?` placeholder; each
// adapter rewrites that token into its backend's native bound-parameter
// syntax, so the query builder and services never see a dialect.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Result reports the outcome of a mutating statement. InsertedID is only
// meaningful for INSERTs; each adapter normalizes its backend's id-return
// mechanism into this field.
type Result struct {
	InsertedID int64
	Affected   int64
}

// Row is a single result row keyed by column name.
type Row map[string]any

// Adapter executes parameterized statements against one backend.
type Adapter interface {
	// Execute runs a mutating statement.
	Execute(ctx context.Context, query string, args ...any) (Result, error)
	// QueryAll returns every matching row.
	QueryAll(ctx context.Context, query string, args ...any) ([]Row, error)
	// QueryOne returns the first matching row, or nil when there is none.
	QueryOne(ctx context.Context, query string, args ...any) (Row, error)
	// InitSchema creates tables and applies additive column evolution.
	// Safe to run on every startup.
	InitSchema(ctx context.Context) error
	Close() error
}

// Open constructs the adapter selected by driver: "postgres" (networked)
// or "sqlite" (embedded file).
func Open(driver, postgresDSN, sqlitePath string) (Adapter, error) {
	switch driver {
	case "postgres":
		return OpenPostgres(postgresDSN)
	case "sqlite":
		return OpenSQLite(sqlitePath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// Columns added after initial deployment. Both adapters apply these as
// add-column-if-absent patches so existing data is never touched.
var additiveColumns = []struct{ name, definition string }{
	{"deal_type", "TEXT NOT NULL DEFAULT 'supplier_offer'"},
	{"incoterms", "TEXT"},
	{"country_of_origin", "TEXT"},
	{"intermediary", "TEXT"},
	{"deal_contacts", "TEXT"},
	{"euc_text", "TEXT"},
}

// scanRows drains rows into column-keyed maps.
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
