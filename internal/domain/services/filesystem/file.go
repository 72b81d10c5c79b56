package filesystem

import (
	"context"
	"io"

	models "cloudstore/internal/domain/models/filesystem"
)

// FileService defines business logic for file metadata and content
type FileService interface {
	CreateFile(ctx context.Context, req *CreateFileRequest) (*models.File, error)
	GetFile(ctx context.Context, userID, folderID, fileID string) (*models.File, error)
	ListFiles(ctx context.Context, userID, folderID string) ([]models.File, error)

	// UpdateFile renames and/or moves a file to another folder.
	UpdateFile(ctx context.Context, userID, folderID, fileID string, req *UpdateFileRequest) (*models.File, error)
	DeleteFile(ctx context.Context, userID, folderID, fileID string) error

	// ResolveContentLocation returns the URL of the file's content.
	ResolveContentLocation(ctx context.Context, userID, folderID, fileID string) (string, error)
}

// CreateFileRequest carries a multipart upload.
// Name defaults to Filename when empty.
type CreateFileRequest struct {
	OwnerID  string    `json:"-"`
	FolderID string    `json:"folder_id"`
	Name     string    `json:"name"`
	Filename string    `json:"filename"`
	Content  io.Reader `json:"-"`
}

// UpdateFileRequest is the payload for PUT/PATCH .../files/{file_id}
type UpdateFileRequest struct {
	Name     *string `json:"name,omitempty"`
	FolderID *string `json:"folder_id,omitempty"`
}
