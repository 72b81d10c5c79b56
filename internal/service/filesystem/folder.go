package filesystem

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"cloudstore/internal/config"
	"cloudstore/internal/domain"
	models "cloudstore/internal/domain/models/filesystem"
	"cloudstore/internal/domain/repositories"
	fsRepo "cloudstore/internal/domain/repositories/filesystem"
	"cloudstore/internal/domain/services"
	fsSvc "cloudstore/internal/domain/services/filesystem"
	"cloudstore/internal/service"
)

type folderService struct {
	folderRepo   fsRepo.FolderRepository
	fileRepo     fsRepo.FileRepository
	contentStore services.ContentStore // blobs of deleted subtrees
	txManager    repositories.TransactionManager
	logger       *slog.Logger
	now          func() time.Time
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo fsRepo.FolderRepository,
	fileRepo fsRepo.FileRepository,
	contentStore services.ContentStore,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) fsSvc.FolderService {
	return &folderService{
		folderRepo:   folderRepo,
		fileRepo:     fileRepo,
		contentStore: contentStore,
		txManager:    txManager,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateFolder creates a folder as the last child of an owned parent
func (s *folderService) CreateFolder(ctx context.Context, req *fsSvc.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.folderRepo.LockTree(ctx, req.OwnerID); err != nil {
			return err
		}

		parent, err := s.folderRepo.GetForUpdate(ctx, req.ParentID, req.OwnerID)
		if err != nil {
			return err
		}

		now := s.now()
		folder = &models.Folder{
			OwnerID:   req.OwnerID,
			ParentID:  &parent.ID,
			Name:      req.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.folderRepo.Create(ctx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"owner_id", folder.OwnerID,
		"parent_id", *folder.ParentID,
	)

	return folder, nil
}

// GetFolder retrieves an owned folder
func (s *folderService) GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, folderID, userID)
}

// ListFolders lists all of the user's folders in tree order
func (s *folderService) ListFolders(ctx context.Context, userID string) ([]models.Folder, error) {
	return s.folderRepo.ListByOwner(ctx, userID)
}

// UpdateFolder renames and/or moves a folder.
// The tree lock is held from the cycle check through the write, so two
// concurrent moves cannot combine into a cycle.
func (s *folderService) UpdateFolder(ctx context.Context, userID, folderID string, req *fsSvc.UpdateFolderRequest) (*models.Folder, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, err
	}

	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.folderRepo.LockTree(ctx, userID); err != nil {
			return err
		}

		var err error
		folder, err = s.folderRepo.GetForUpdate(ctx, folderID, userID)
		if err != nil {
			return err
		}

		now := s.now()

		if req.Name != nil {
			folder.Name = *req.Name
			folder.UpdatedAt = now
			if err := s.folderRepo.Rename(ctx, folder); err != nil {
				return err
			}
		}

		if req.ParentID != nil {
			return s.move(ctx, folder, *req.ParentID, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// MoveFolder re-parents a folder under newParentID
func (s *folderService) MoveFolder(ctx context.Context, userID, folderID, newParentID string) (*models.Folder, error) {
	return s.UpdateFolder(ctx, userID, folderID, &fsSvc.UpdateFolderRequest{ParentID: &newParentID})
}

// move must run inside the transaction holding the owner's tree lock
func (s *folderService) move(ctx context.Context, folder *models.Folder, newParentID string, now time.Time) error {
	if folder.IsRoot() {
		return &domain.IntegrityError{Message: "the root folder cannot be moved"}
	}
	if newParentID == folder.ID {
		return domain.NewValidationError("parent_id", "a folder cannot be its own parent")
	}

	parent, err := s.folderRepo.GetForUpdate(ctx, newParentID, folder.OwnerID)
	if err != nil {
		return err
	}

	// cycle check: the new parent must not sit inside the moved subtree
	inside, err := s.folderRepo.IsDescendant(ctx, folder.ID, parent.ID, folder.OwnerID)
	if err != nil {
		return err
	}
	if inside {
		return domain.NewValidationError("parent_id", "a folder cannot be moved into its own subfolder")
	}

	folder.UpdatedAt = now

	if *folder.ParentID == parent.ID {
		// same parent: keep the sibling position, only touch updated_at
		return s.folderRepo.Rename(ctx, folder)
	}

	folder.ParentID = &parent.ID
	s.logger.Debug("moving folder to new parent",
		"folder_id", folder.ID,
		"new_parent_id", parent.ID,
	)
	return s.folderRepo.Move(ctx, folder)
}

// DeleteFolder deletes a folder with its subtree and files in one
// transaction, then reclaims the content of the removed files.
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID string) error {
	var (
		folder *models.Folder
		keys   []string
	)
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.folderRepo.LockTree(ctx, userID); err != nil {
			return err
		}

		var err error
		folder, err = s.folderRepo.GetForUpdate(ctx, folderID, userID)
		if err != nil {
			return err
		}
		if folder.IsRoot() {
			return &domain.IntegrityError{Message: "the root folder cannot be deleted"}
		}

		keys, err = s.fileRepo.ListStorageKeysInSubtree(ctx, folder.ID, userID)
		if err != nil {
			return err
		}

		return s.folderRepo.Delete(ctx, folder.ID, userID)
	})
	if err != nil {
		return err
	}

	reclaimContent(ctx, s.contentStore, s.logger, keys)

	s.logger.Info("folder deleted",
		"id", folder.ID,
		"name", folder.Name,
		"owner_id", userID,
		"files_removed", len(keys),
	)

	return nil
}

// ProvisionRoot returns the owner's root folder, creating it when missing.
// It joins the caller's transaction, so a failure here rolls back the
// identity being created.
func (s *folderService) ProvisionRoot(ctx context.Context, ownerID string) (*models.Folder, error) {
	var root *models.Folder
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.folderRepo.LockTree(ctx, ownerID); err != nil {
			return err
		}

		existing, err := s.folderRepo.GetRoot(ctx, ownerID)
		if err == nil {
			root = existing
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		now := s.now()
		root = &models.Folder{
			OwnerID:   ownerID,
			Name:      models.RootFolderName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.folderRepo.Create(ctx, root); err != nil {
			return err
		}
		s.logger.Info("root folder provisioned", "id", root.ID, "owner_id", ownerID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *fsSvc.CreateFolderRequest) error {
	return service.AsValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		),
		validation.Field(&req.ParentID, validation.Required),
	))
}

// validateUpdateRequest validates a folder update request
func (s *folderService) validateUpdateRequest(req *fsSvc.UpdateFolderRequest) error {
	if req.Name == nil && req.ParentID == nil && !req.ClearParent {
		return &domain.ValidationError{Message: "at least one of name or parent_id must be provided"}
	}
	if req.ClearParent {
		return domain.NewValidationError("parent_id", "cannot be null")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
		return service.AsValidationError(validation.ValidateStruct(req,
			validation.Field(&req.Name,
				validation.Required,
				validation.Length(1, config.MaxFolderNameLength),
			),
		))
	}
	return nil
}
