package filesystem

import (
	"context"

	models "cloudstore/internal/domain/models/filesystem"
)

// FolderRepository defines data access for the folder tree.
// Every lookup takes the owner; a folder of another owner is ErrNotFound.
type FolderRepository interface {
	// Create inserts the folder as the last child of its parent.
	// A second root for the same owner yields a ConflictError.
	Create(ctx context.Context, folder *models.Folder) error

	GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error)

	// GetForUpdate is GetByID that also row-locks the folder for the
	// surrounding transaction.
	GetForUpdate(ctx context.Context, id, ownerID string) (*models.Folder, error)

	// GetRoot returns the owner's root folder.
	GetRoot(ctx context.Context, ownerID string) (*models.Folder, error)

	// Rename updates name and updated_at.
	Rename(ctx context.Context, folder *models.Folder) error

	// Move re-parents the folder, making it the last child of its new
	// parent, and writes updated_at. Position is updated on folder.
	Move(ctx context.Context, folder *models.Folder) error

	// IsDescendant reports whether candidateID lies in the subtree rooted at
	// ancestorID (the folder itself included).
	IsDescendant(ctx context.Context, ancestorID, candidateID, ownerID string) (bool, error)

	// Delete removes the folder with its whole subtree and the files in it.
	Delete(ctx context.Context, id, ownerID string) error

	// ListByOwner returns all of the owner's folders in tree order:
	// parents before children, siblings by position.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error)

	// LockTree serializes structural changes to one owner's tree for the
	// rest of the surrounding transaction.
	LockTree(ctx context.Context, ownerID string) error
}
