package condb

import (
	"context"

	"github.com/jackc/pgx/v4"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS admin_emails (
		id          SERIAL PRIMARY KEY,
		email       TEXT NOT NULL UNIQUE,
		is_active   BOOLEAN NOT NULL DEFAULT TRUE,
		added_by    TEXT NOT NULL DEFAULT 'system',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS admin_login_logs (
		id        SERIAL PRIMARY KEY,
		email     TEXT NOT NULL,
		login_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id                  TEXT PRIMARY KEY,
		name                TEXT NOT NULL,
		category            TEXT NOT NULL,
		price               NUMERIC NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		images              JSONB NOT NULL DEFAULT '[]',
		sizes               TEXT[] NOT NULL DEFAULT '{}',
		featured            BOOLEAN NOT NULL DEFAULT FALSE,
		out_of_stock        BOOLEAN NOT NULL DEFAULT FALSE,
		fabric_composition  TEXT NOT NULL DEFAULT '',
		fit                 TEXT NOT NULL DEFAULT '',
		country_of_origin   TEXT NOT NULL DEFAULT '',
		care_instruction    TEXT NOT NULL DEFAULT '',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id          TEXT PRIMARY KEY,
		first_name  TEXT NOT NULL,
		email       TEXT NOT NULL,
		phone       TEXT NOT NULL DEFAULT '',
		password    TEXT NOT NULL,
		wishlist    TEXT[] NOT NULL DEFAULT '{}',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate creates the schema if it does not exist yet. Safe to run on every
// startup.
func Migrate(ctx context.Context, conn *pgx.Conn) error {
	for _, stmt := range migrations {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
