package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteAdapter runs statements against an embedded file database. SQLite's
// native markers already match the universal `?` token, so templates pass
// through untouched except for the RETURNING clause, which is stripped: the
// inserted identity comes from the dedicated last-insert-rowid retrieval
// instead.
type SQLiteAdapter struct {
	db *sql.DB
}

var returningClause = regexp.MustCompile(`(?i)\s+RETURNING\s+\w+\s*$`)

func OpenSQLite(path string) (*SQLiteAdapter, error) {
	if path == "" {
		path = "defaero.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	// foreign_keys must be on for the document cascade; the DSN pragma
	// applies it to every pooled connection.
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)
	return &SQLiteAdapter{db: db}, nil
}

func (a *SQLiteAdapter) Execute(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := a.db.ExecContext(ctx, returningClause.ReplaceAllString(query, ""), args...)
	if err != nil {
		return Result{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Result{}, err
	}
	out := Result{Affected: affected}
	if isInsert(query) {
		id, err := res.LastInsertId()
		if err != nil {
			return Result{}, err
		}
		out.InsertedID = id
	}
	return out, nil
}

func isInsert(query string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "INSERT")
}

func (a *SQLiteAdapter) QueryAll(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (a *SQLiteAdapter) QueryOne(ctx context.Context, query string, args ...any) (Row, error) {
	all, err := a.QueryAll(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

// InitSchema mirrors the Postgres schema in SQLite types. ADD COLUMN IF NOT
// EXISTS is not available here, so the additive column patches consult
// PRAGMA table_info first; re-running on a current schema is a no-op.
func (a *SQLiteAdapter) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS opportunities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			deal_type TEXT NOT NULL DEFAULT 'supplier_offer',
			supplier TEXT NOT NULL,
			product TEXT NOT NULL,
			customer TEXT DEFAULT '',
			qty_needed REAL,
			supplier_price REAL,
			target_sell_price REAL,
			incoterms TEXT,
			country_of_origin TEXT,
			intermediary TEXT,
			deal_contacts TEXT,
			stage TEXT NOT NULL DEFAULT 'sourcing',
			status TEXT NOT NULL DEFAULT 'open',
			confidence INTEGER NOT NULL DEFAULT 50,
			owner TEXT,
			notes TEXT,
			euc_text TEXT,
			next_action TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS opportunity_documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			opportunity_id INTEGER NOT NULL,
			original_name TEXT NOT NULL,
			mime_type TEXT,
			size_bytes INTEGER,
			file_data BLOB NOT NULL,
			uploaded_by TEXT,
			created_at TEXT NOT NULL,
			FOREIGN KEY(opportunity_id)
				REFERENCES opportunities(id)
				ON DELETE CASCADE
		)`,
	}
	for _, stmt := range stmts {
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	existing, err := a.columnNames(ctx, "opportunities")
	if err != nil {
		return err
	}
	for _, c := range additiveColumns {
		if existing[c.name] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE opportunities ADD COLUMN %s %s", c.name, c.definition)
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("add column %s: %w", c.name, err)
		}
	}
	return nil
}

func (a *SQLiteAdapter) columnNames(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()
	names := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name, typ string
			notnull   int
			dflt      sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		names[name] = true
	}
	return names, rows.Err()
}

func (a *SQLiteAdapter) Close() error { return a.db.Close() }
