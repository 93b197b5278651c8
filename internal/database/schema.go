package database

import (
	"context"
	"fmt"
)

// schemaStatements create the schema. Every statement is a no-op when its
// object already exists.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS timescaledb`,
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS assets (
		id SERIAL PRIMARY KEY,
		symbol TEXT,
		name TEXT
	)`,
	// Composite key: a hypertable's unique keys must include the time column.
	`CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL,
		user_id INT REFERENCES users(id),
		asset_id INT REFERENCES assets(id),
		amount NUMERIC,
		price_usd NUMERIC,
		ts TIMESTAMPTZ DEFAULT NOW(),
		PRIMARY KEY (id, ts)
	)`,
	`SELECT create_hypertable('transactions', 'ts', if_not_exists => TRUE)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS assets_symbol_key ON assets(symbol)`,
}

// EnsureSchema creates the tables, the asset symbol index and the
// transactions hypertable in one transaction. Safe to run on every start.
func EnsureSchema(ctx context.Context, db DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range schemaStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
