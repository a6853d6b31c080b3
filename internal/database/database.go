package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func New(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// schema creates the dataset on first run. Statements are idempotent: an
// absent dataset is initialized empty, while an existing one is left alone.
// Any other failure surfaces as an error instead of reinitializing, so a
// damaged dataset is never silently discarded.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		seq         BIGSERIAL PRIMARY KEY,
		id          UUID NOT NULL UNIQUE,
		amount      NUMERIC(14, 2) NOT NULL,
		type        TEXT NOT NULL,
		category    TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date        TIMESTAMPTZ NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		seq        BIGSERIAL PRIMARY KEY,
		id         UUID NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		phone      TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS debts (
		seq           BIGSERIAL PRIMARY KEY,
		id            UUID NOT NULL UNIQUE,
		customer_name TEXT NOT NULL,
		amount        NUMERIC(14, 2) NOT NULL,
		due_date      TIMESTAMPTZ NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT 'unpaid',
		paid_amount   NUMERIC(14, 2) NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS metrics (
		id             SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		total_revenue  NUMERIC(14, 2) NOT NULL DEFAULT 0,
		total_expenses NUMERIC(14, 2) NOT NULL DEFAULT 0,
		net_income     NUMERIC(14, 2) NOT NULL DEFAULT 0,
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`INSERT INTO metrics (id) VALUES (1) ON CONFLICT (id) DO NOTHING`,
	`CREATE TABLE IF NOT EXISTS category_mappings (
		seq        BIGSERIAL PRIMARY KEY,
		pattern    TEXT NOT NULL,
		category   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema bootstraps missing tables and seeds the metrics row.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}

	return nil
}
