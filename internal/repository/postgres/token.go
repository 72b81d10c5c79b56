package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cloudstore/internal/domain"
	"cloudstore/internal/domain/repositories"
)

// PostgresTokenRepository keeps one active token id per user
type PostgresTokenRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(config *RepositoryConfig) repositories.TokenRepository {
	return &PostgresTokenRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Replace upserts the user's active token id
func (r *PostgresTokenRepository) Replace(ctx context.Context, userID, tokenID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, token_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET token_id = EXCLUDED.token_id, created_at = EXCLUDED.created_at
	`, r.tables.Tokens)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, userID, tokenID); err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
		}
		return fmt.Errorf("replace token: %w", err)
	}

	return nil
}

// GetActive returns the active token id of a user
func (r *PostgresTokenRepository) GetActive(ctx context.Context, userID string) (string, error) {
	if !IsValidID(userID) {
		return "", fmt.Errorf("token for %s: %w", userID, domain.ErrNotFound)
	}

	query := fmt.Sprintf(`SELECT token_id FROM %s WHERE user_id = $1`, r.tables.Tokens)

	var tokenID string
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, userID).Scan(&tokenID); err != nil {
		if IsPgNoRowsError(err) {
			return "", fmt.Errorf("token for %s: %w", userID, domain.ErrNotFound)
		}
		return "", fmt.Errorf("get token: %w", err)
	}

	return tokenID, nil
}

// Revoke removes the user's active token
func (r *PostgresTokenRepository) Revoke(ctx context.Context, userID string) error {
	if !IsValidID(userID) {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, r.tables.Tokens)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}
