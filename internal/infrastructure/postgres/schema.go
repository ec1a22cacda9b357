package postgres

import (
	"context"
)

// schemaDDL tablas de la aplicación. Idempotente.
var schemaDDL = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS store_settings (
		id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name           TEXT NOT NULL DEFAULT '',
		address        TEXT NOT NULL DEFAULT '',
		city           TEXT NOT NULL DEFAULT '',
		phone          TEXT NOT NULL DEFAULT '',
		email          TEXT NOT NULL DEFAULT '',
		logo_url       TEXT NOT NULL DEFAULT '',
		receipt_footer TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name         TEXT NOT NULL,
		contact_name TEXT NOT NULL DEFAULT '',
		email        TEXT NOT NULL DEFAULT '',
		phone        TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name           TEXT NOT NULL,
		category       TEXT NOT NULL DEFAULT 'General',
		price          NUMERIC(14,2) NOT NULL DEFAULT 0,
		purchase_price NUMERIC(14,2) NOT NULL DEFAULT 0,
		stock          INTEGER NOT NULL DEFAULT 0,
		sku            TEXT NOT NULL UNIQUE,
		description    TEXT NOT NULL DEFAULT '',
		image_url      TEXT NOT NULL DEFAULT '',
		supplier_id    UUID REFERENCES suppliers(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		date       TIMESTAMPTZ NOT NULL DEFAULT now(),
		total      NUMERIC(14,2) NOT NULL DEFAULT 0,
		cashier_id TEXT NOT NULL DEFAULT '',
		items      JSONB NOT NULL DEFAULT '[]'::jsonb
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (date DESC)`,
}

// Migrate crea las tablas que falten.
func (b *Backend) Migrate(ctx context.Context) error {
	for _, stmt := range schemaDDL {
		if _, err := b.q.Exec(ctx, stmt); err != nil {
			return classify("migrate", err)
		}
	}
	return nil
}
