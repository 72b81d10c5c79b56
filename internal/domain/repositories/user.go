package repositories

import (
	"context"

	"cloudstore/internal/domain/models"
)

// UserRepository persists identities.
type UserRepository interface {
	// Create inserts the user and fills ID/timestamps. A duplicate email
	// yields a ConflictError.
	Create(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update writes the profile fields (first/last name) and updated_at.
	Update(ctx context.Context, user *models.User) error
}

// TokenRepository stores the single active token id per user.
type TokenRepository interface {
	// Replace sets tokenID as the user's only active token.
	Replace(ctx context.Context, userID, tokenID string) error

	// GetActive returns the active token id, or ErrNotFound.
	GetActive(ctx context.Context, userID string) (string, error)

	Revoke(ctx context.Context, userID string) error
}
