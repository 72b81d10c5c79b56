package filesystem

import (
	"context"

	models "cloudstore/internal/domain/models/filesystem"
)

// TreeService builds the nested folder/file tree of a user
type TreeService interface {
	GetTree(ctx context.Context, userID string) (*models.FolderTreeNode, error)
}
