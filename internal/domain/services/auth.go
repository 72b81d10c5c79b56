package services

import "context"

// ResourceAuthorizer checks if a user can access resources.
// Ownership-based: a user reaches only the folders and files they own, and
// anything else is reported exactly like a missing resource (ErrNotFound).
type ResourceAuthorizer interface {
	// CanAccessFolder checks if user owns the folder
	CanAccessFolder(ctx context.Context, userID, folderID string) error

	// CanAccessFile checks if user owns the file
	CanAccessFile(ctx context.Context, userID, fileID string) error
}

// TokenIssuer issues and verifies the bearer credential returned at login.
type TokenIssuer interface {
	// Issue creates a new token for the user, invalidating earlier ones.
	Issue(ctx context.Context, userID string) (string, error)

	// Verify returns the user id of a valid, active token or ErrUnauthorized.
	Verify(ctx context.Context, token string) (string, error)

	// Revoke invalidates the user's active token.
	Revoke(ctx context.Context, userID string) error
}

// PasswordHasher hashes and checks password credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
