package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// PostgresAdapter runs statements against a networked Postgres, rewriting
// `?` placeholders into sequential $1..$n markers. INSERTs carry a
// RETURNING id clause, so the inserted identity comes straight out of the
// statement result.
type PostgresAdapter struct {
	db *sql.DB
}

func OpenPostgres(dsn string) (*PostgresAdapter, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresAdapter{db: db}, nil
}

// rewritePlaceholders turns each `?` into the next numbered marker. Our
// statement templates never carry `?` inside string literals, so a plain
// byte scan is sufficient.
func rewritePlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (a *PostgresAdapter) Execute(ctx context.Context, query string, args ...any) (Result, error) {
	compiled := rewritePlaceholders(query)
	if strings.Contains(strings.ToUpper(query), "RETURNING") {
		var id int64
		if err := a.db.QueryRowContext(ctx, compiled, args...).Scan(&id); err != nil {
			return Result{}, err
		}
		return Result{InsertedID: id, Affected: 1}, nil
	}
	res, err := a.db.ExecContext(ctx, compiled, args...)
	if err != nil {
		return Result{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Result{}, err
	}
	return Result{Affected: affected}, nil
}

func (a *PostgresAdapter) QueryAll(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := a.db.QueryContext(ctx, rewritePlaceholders(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (a *PostgresAdapter) QueryOne(ctx context.Context, query string, args ...any) (Row, error) {
	all, err := a.QueryAll(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

// InitSchema is idempotent: CREATE TABLE IF NOT EXISTS for both entity
// tables plus ADD COLUMN IF NOT EXISTS for every column introduced after
// initial deployment. Existing data is never dropped or altered.
func (a *PostgresAdapter) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS opportunities (
			id BIGSERIAL PRIMARY KEY,
			deal_type TEXT NOT NULL DEFAULT 'supplier_offer',
			supplier TEXT NOT NULL,
			product TEXT NOT NULL,
			customer TEXT DEFAULT '',
			qty_needed DOUBLE PRECISION,
			supplier_price DOUBLE PRECISION,
			target_sell_price DOUBLE PRECISION,
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
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS opportunity_documents (
			id BIGSERIAL PRIMARY KEY,
			opportunity_id BIGINT NOT NULL,
			original_name TEXT NOT NULL,
			mime_type TEXT,
			size_bytes BIGINT,
			file_data BYTEA NOT NULL,
			uploaded_by TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			CONSTRAINT fk_opportunity
				FOREIGN KEY(opportunity_id)
				REFERENCES opportunities(id)
				ON DELETE CASCADE
		)`,
	}
	for _, c := range additiveColumns {
		stmts = append(stmts, fmt.Sprintf(
			"ALTER TABLE opportunities ADD COLUMN IF NOT EXISTS %s %s", c.name, c.definition))
	}
	for _, stmt := range stmts {
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (a *PostgresAdapter) Close() error { return a.db.Close() }

// DB exposes the underlying pool for integration tests.
func (a *PostgresAdapter) DB() *sql.DB { return a.db }
