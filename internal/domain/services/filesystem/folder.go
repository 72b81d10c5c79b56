package filesystem

import (
	"context"

	models "cloudstore/internal/domain/models/filesystem"
)

// FolderService defines business logic for the folder tree
type FolderService interface {
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)
	GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error)

	// ListFolders returns every folder of the user in tree order.
	ListFolders(ctx context.Context, userID string) ([]models.Folder, error)

	// UpdateFolder renames and/or moves a folder.
	UpdateFolder(ctx context.Context, userID, folderID string, req *UpdateFolderRequest) (*models.Folder, error)
	MoveFolder(ctx context.Context, userID, folderID, newParentID string) (*models.Folder, error)

	// DeleteFolder removes the folder, its descendants and their files.
	DeleteFolder(ctx context.Context, userID, folderID string) error

	// ProvisionRoot returns the owner's root folder, creating it if absent.
	ProvisionRoot(ctx context.Context, ownerID string) (*models.Folder, error)
}

// CreateFolderRequest is the payload for POST /api/folders
type CreateFolderRequest struct {
	OwnerID  string `json:"-"`
	ParentID string `json:"parent_id"`
	Name     string `json:"name"`
}

// UpdateFolderRequest represents a rename and/or move.
// The handler maps the tri-state parent_id (httputil.OptionalString) onto
// ParentID and ClearParent.
type UpdateFolderRequest struct {
	Name        *string `json:"name"`
	ParentID    *string `json:"parent_id"`
	ClearParent bool    `json:"-"` // parent_id explicitly null
}
