package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"cloudstore/internal/domain"
	"cloudstore/internal/domain/models"
	"cloudstore/internal/domain/repositories"
)

// UserRepository is the in-memory UserRepository
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a user repository over the store
func NewUserRepository(store *Store) repositories.UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.store.do(ctx, func(d *dataset) error {
		for _, existing := range d.users {
			if strings.EqualFold(existing.Email, user.Email) {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("a user with email %q already exists", user.Email),
					ResourceType: "user",
					ResourceID:   existing.ID,
				}
			}
		}
		user.ID = uuid.NewString()
		d.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.store.do(ctx, func(d *dataset) error {
		u, ok := d.users[id]
		if !ok {
			return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user *models.User
	err := r.store.do(ctx, func(d *dataset) error {
		for _, u := range d.users {
			if strings.EqualFold(u.Email, email) {
				u := u
				user = &u
				return nil
			}
		}
		return fmt.Errorf("user: %w", domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.store.do(ctx, func(d *dataset) error {
		existing, ok := d.users[user.ID]
		if !ok {
			return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
		}
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.UpdatedAt = user.UpdatedAt
		d.users[user.ID] = existing
		return nil
	})
}

// TokenRepository is the in-memory TokenRepository
type TokenRepository struct {
	store *Store
}

// NewTokenRepository creates a token repository over the store
func NewTokenRepository(store *Store) repositories.TokenRepository {
	return &TokenRepository{store: store}
}

func (r *TokenRepository) Replace(ctx context.Context, userID, tokenID string) error {
	return r.store.do(ctx, func(d *dataset) error {
		if _, ok := d.users[userID]; !ok {
			return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
		}
		d.tokens[userID] = tokenID
		return nil
	})
}

func (r *TokenRepository) GetActive(ctx context.Context, userID string) (string, error) {
	var tokenID string
	err := r.store.do(ctx, func(d *dataset) error {
		id, ok := d.tokens[userID]
		if !ok {
			return fmt.Errorf("token for %s: %w", userID, domain.ErrNotFound)
		}
		tokenID = id
		return nil
	})
	return tokenID, err
}

func (r *TokenRepository) Revoke(ctx context.Context, userID string) error {
	return r.store.do(ctx, func(d *dataset) error {
		delete(d.tokens, userID)
		return nil
	})
}
