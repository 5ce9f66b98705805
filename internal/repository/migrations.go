// Package repository implements SQL persistence for the curator domain
// on top of the shared postgres wrapper.
package repository

import (
	"context"

	"github.com/stocktide/curator/pkg/postgres"
)

// Schema statements, idempotent so they run on every startup.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

	`CREATE TABLE IF NOT EXISTS buckets (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL DEFAULT 'regular' CHECK (type IN ('macro', 'regular')),
		description TEXT,
		persona TEXT NOT NULL,
		collection_interval_minutes INTEGER NOT NULL DEFAULT 60,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		twitter_handle TEXT NOT NULL UNIQUE,
		twitter_id TEXT,
		display_name TEXT,
		description TEXT,
		followers_count INTEGER,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS account_buckets (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		account_id UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		bucket_id UUID NOT NULL REFERENCES buckets(id) ON DELETE CASCADE,
		priority INTEGER NOT NULL DEFAULT 0,
		last_fetched_at TIMESTAMPTZ,
		next_fetch_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (account_id, bucket_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_account_buckets_bucket ON account_buckets (bucket_id)`,
	`CREATE INDEX IF NOT EXISTS idx_account_buckets_account ON account_buckets (account_id)`,
}

// Migrate applies the schema.
func Migrate(ctx context.Context, db *postgres.Postgres) error {
	return db.Migrate(ctx, schema...)
}
