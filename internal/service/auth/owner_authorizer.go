package auth

import (
	"context"
	"errors"
	"fmt"

	"cloudstore/internal/domain"
	fsRepo "cloudstore/internal/domain/repositories/filesystem"
)

// OwnerBasedAuthorizer implements ResourceAuthorizer using ownership checks.
// A user can access a folder or file only if they own it. Lookups are scoped
// by owner, so a foreign resource produces the same ErrNotFound as a missing
// one and nothing about its existence leaks.
type OwnerBasedAuthorizer struct {
	folderRepo fsRepo.FolderRepository
	fileRepo   fsRepo.FileRepository
}

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(folderRepo fsRepo.FolderRepository, fileRepo fsRepo.FileRepository) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
	}
}

// CanAccessFolder checks if user owns the folder
func (a *OwnerBasedAuthorizer) CanAccessFolder(ctx context.Context, userID, folderID string) error {
	if _, err := a.folderRepo.GetByID(ctx, folderID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
		}
		return fmt.Errorf("check folder access: %w", err)
	}
	return nil
}

// CanAccessFile checks if user owns the file
func (a *OwnerBasedAuthorizer) CanAccessFile(ctx context.Context, userID, fileID string) error {
	if _, err := a.fileRepo.GetByID(ctx, fileID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
		}
		return fmt.Errorf("check file access: %w", err)
	}
	return nil
}
