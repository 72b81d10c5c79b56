package filesystem

import (
	"context"

	models "cloudstore/internal/domain/models/filesystem"
)

// FileRepository defines data access for file metadata.
type FileRepository interface {
	Create(ctx context.Context, file *models.File) error

	GetByID(ctx context.Context, id, ownerID string) (*models.File, error)

	GetForUpdate(ctx context.Context, id, ownerID string) (*models.File, error)

	// Update writes name, folder_id and updated_at.
	Update(ctx context.Context, file *models.File) error

	Delete(ctx context.Context, id, ownerID string) error

	// ListByFolder returns files directly in the folder ordered by
	// creation time, oldest first.
	ListByFolder(ctx context.Context, folderID, ownerID string) ([]models.File, error)

	// ListByOwner returns every file of the owner (tree building).
	ListByOwner(ctx context.Context, ownerID string) ([]models.File, error)

	// ListStorageKeysInSubtree returns the storage keys of all files in the
	// subtree rooted at folderID.
	ListStorageKeysInSubtree(ctx context.Context, folderID, ownerID string) ([]string, error)
}
