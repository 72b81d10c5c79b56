package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaStatements returns the DDL that creates every table and index for
// the given table names. Statements are idempotent.
//
// Ownership consistency is enforced by composite foreign keys: a folder's
// (parent_id, owner_id) and a file's (folder_id, owner_id) must match an
// existing folder's (id, owner_id). ON DELETE CASCADE on those keys removes a
// subtree and its files in the same statement that deletes its top folder.
func SchemaStatements(tables *TableNames, prefix string) []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Tokens + ` (
			user_id UUID PRIMARY KEY REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			token_id UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			owner_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			parent_id UUID,
			name TEXT NOT NULL,
			sort_order BIGSERIAL NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (id, owner_id),
			CHECK (parent_id IS NULL OR parent_id <> id),
			FOREIGN KEY (parent_id, owner_id) REFERENCES ` + tables.Folders + `(id, owner_id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Files + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			owner_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			folder_id UUID NOT NULL,
			name TEXT NOT NULL,
			original_name TEXT NOT NULL,
			size BIGINT NOT NULL CHECK (size >= 0),
			mime_type TEXT NOT NULL,
			storage_key TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			FOREIGN KEY (folder_id, owner_id) REFERENCES ` + tables.Folders + `(id, owner_id) ON DELETE CASCADE
		)`,

		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + prefix + `users_email_lower ON ` + tables.Users + `(lower(email))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + prefix + `folders_one_root ON ` + tables.Folders + `(owner_id) WHERE parent_id IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `folders_owner_parent ON ` + tables.Folders + `(owner_id, parent_id, sort_order)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `files_owner_folder ON ` + tables.Files + `(owner_id, folder_id, created_at)`,
	}
}

// EnsureSchema creates tables and indexes if they don't exist
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, prefix string) error {
	for _, stmt := range SchemaStatements(tables, prefix) {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("run schema: %w", err)
		}
	}
	return nil
}

// DropTables drops all tables in reverse dependency order
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.Files, tables.Folders, tables.Tokens, tables.Users} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// ClearData removes every row but keeps the schema
func ClearData(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	// cascades to tokens, folders and files
	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Users); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	return nil
}
