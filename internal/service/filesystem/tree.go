package filesystem

import (
	"context"
	"fmt"
	"log/slog"

	"cloudstore/internal/domain"
	models "cloudstore/internal/domain/models/filesystem"
	fsRepo "cloudstore/internal/domain/repositories/filesystem"
	fsSvc "cloudstore/internal/domain/services/filesystem"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo fsRepo.FolderRepository
	fileRepo   fsRepo.FileRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo fsRepo.FolderRepository,
	fileRepo fsRepo.FileRepository,
	logger *slog.Logger,
) fsSvc.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		logger:     logger,
	}
}

// GetTree builds the nested folder/file tree rooted at the user's root folder
func (s *treeService) GetTree(ctx context.Context, userID string) (*models.FolderTreeNode, error) {
	// tree order guarantees a parent is seen before its children
	allFolders, err := s.folderRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	allFiles, err := s.fileRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	folderMap := make(map[string]*models.FolderTreeNode, len(allFolders))
	var root *models.FolderTreeNode

	// First pass: create nodes and attach each to its parent
	for _, folder := range allFolders {
		node := &models.FolderTreeNode{
			ID:        folder.ID,
			Name:      folder.Name,
			ParentID:  folder.ParentID,
			CreatedAt: folder.CreatedAt,
			Folders:   []*models.FolderTreeNode{},
			Files:     []models.FileTreeNode{},
		}
		folderMap[folder.ID] = node

		if folder.ParentID == nil {
			root = node
			continue
		}
		if parent, exists := folderMap[*folder.ParentID]; exists {
			parent.Folders = append(parent.Folders, node)
		}
	}

	if root == nil {
		return nil, fmt.Errorf("root folder of %s: %w", userID, domain.ErrNotFound)
	}

	// Second pass: add files to their folders
	for _, file := range allFiles {
		if parent, exists := folderMap[file.FolderID]; exists {
			parent.Files = append(parent.Files, models.FileTreeNode{
				ID:        file.ID,
				Name:      file.Name,
				Size:      file.Size,
				MimeType:  file.MimeType,
				UpdatedAt: file.UpdatedAt,
			})
		}
	}

	s.logger.Debug("folder tree built",
		"owner_id", userID,
		"folder_count", len(allFolders),
		"file_count", len(allFiles),
	)

	return root, nil
}
