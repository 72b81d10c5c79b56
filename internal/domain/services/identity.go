package services

import (
	"context"

	"cloudstore/internal/domain/models"
)

// IdentityService manages user identities, credentials and profiles.
type IdentityService interface {
	// Register creates the identity and provisions its root folder in the
	// same transaction.
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)

	// Verify checks an email/password pair. Any failure is ErrUnauthorized.
	Verify(ctx context.Context, email, password string) (*models.User, error)

	// Login verifies credentials and issues a fresh token.
	Login(ctx context.Context, req *LoginRequest) (*models.LoginResult, error)

	// Logout revokes the user's active token.
	Logout(ctx context.Context, userID string) error

	GetProfile(ctx context.Context, userID string) (*models.User, error)

	// UpdateProfile changes first/last name. It never provisions folders.
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.User, error)
}

// RegisterRequest is the payload for POST /api/register
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest is the payload for POST /api/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the payload for PUT /api/profile.
// Email is accepted so a client can echo the profile back, but it is read-only.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
}
