package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"cloudstore/internal/config"
	"cloudstore/internal/content"
	"cloudstore/internal/domain"
	models "cloudstore/internal/domain/models/filesystem"
	"cloudstore/internal/domain/repositories"
	fsRepo "cloudstore/internal/domain/repositories/filesystem"
	"cloudstore/internal/domain/services"
	fsSvc "cloudstore/internal/domain/services/filesystem"
	"cloudstore/internal/service"
)

type fileService struct {
	fileRepo       fsRepo.FileRepository
	folderRepo     fsRepo.FolderRepository
	contentStore   services.ContentStore
	detector       services.ContentDetector
	txManager      repositories.TransactionManager
	authorizer     services.ResourceAuthorizer
	maxUploadBytes int64
	logger         *slog.Logger
	now            func() time.Time
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo fsRepo.FileRepository,
	folderRepo fsRepo.FolderRepository,
	contentStore services.ContentStore,
	detector services.ContentDetector,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	maxUploadBytes int64,
	logger *slog.Logger,
) fsSvc.FileService {
	if maxUploadBytes <= 0 {
		maxUploadBytes = config.DefaultMaxUploadBytes
	}
	return &fileService{
		fileRepo:       fileRepo,
		folderRepo:     folderRepo,
		contentStore:   contentStore,
		detector:       detector,
		txManager:      txManager,
		authorizer:     authorizer,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
		now:            time.Now,
	}
}

// CreateFile stores the uploaded content and records its metadata.
// Size and mime type always come from the content itself.
func (s *fileService) CreateFile(ctx context.Context, req *fsSvc.CreateFileRequest) (*models.File, error) {
	filename := uploadBaseName(req.Filename)
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = filename
	}
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	// reject foreign folders before touching the content store
	if err := s.authorizer.CanAccessFolder(ctx, req.OwnerID, req.FolderID); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(req.Content, s.maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, domain.NewValidationError("file", fmt.Sprintf("exceeds the upload limit of %d bytes", s.maxUploadBytes))
	}

	// the uploaded filename only feeds the extension of the key and the
	// detector's fallback; original_name is the first name the file is given
	source := filename
	if source == "" {
		source = req.Name
	}
	mimeType, size := s.detector.Detect(source, data)

	now := s.now()
	file := &models.File{
		OwnerID:      req.OwnerID,
		FolderID:     req.FolderID,
		Name:         req.Name,
		OriginalName: req.Name,
		Size:         size,
		MimeType:     mimeType,
		StorageKey:   content.StorageKey(req.OwnerID, source, now),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.contentStore.Put(ctx, file.StorageKey, bytes.NewReader(data), mimeType); err != nil {
		return nil, err
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		// serializes with a concurrent delete of the folder
		if err := s.folderRepo.LockTree(ctx, req.OwnerID); err != nil {
			return err
		}
		if _, err := s.folderRepo.GetByID(ctx, req.FolderID, req.OwnerID); err != nil {
			return err
		}
		return s.fileRepo.Create(ctx, file)
	})
	if err != nil {
		reclaimContent(ctx, s.contentStore, s.logger, []string{file.StorageKey})
		return nil, err
	}

	s.logger.Info("file created",
		"id", file.ID,
		"name", file.Name,
		"folder_id", file.FolderID,
		"owner_id", file.OwnerID,
		"size", file.Size,
		"mime_type", file.MimeType,
	)

	return file, nil
}

// GetFile retrieves an owned file. A non-empty folderID must match the
// folder the file is anchored in.
func (s *fileService) GetFile(ctx context.Context, userID, folderID, fileID string) (*models.File, error) {
	if err := s.authorizer.CanAccessFile(ctx, userID, fileID); err != nil {
		return nil, err
	}
	file, err := s.fileRepo.GetByID(ctx, fileID, userID)
	if err != nil {
		return nil, err
	}
	if err := checkAnchor(file, folderID); err != nil {
		return nil, err
	}
	return file, nil
}

// ListFiles lists files directly in an owned folder
func (s *fileService) ListFiles(ctx context.Context, userID, folderID string) ([]models.File, error) {
	if err := s.authorizer.CanAccessFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}
	return s.fileRepo.ListByFolder(ctx, folderID, userID)
}

// UpdateFile renames and/or moves a file between the user's folders
func (s *fileService) UpdateFile(ctx context.Context, userID, folderID, fileID string, req *fsSvc.UpdateFileRequest) (*models.File, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, err
	}

	var file *models.File
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.folderRepo.LockTree(ctx, userID); err != nil {
			return err
		}

		var err error
		file, err = s.fileRepo.GetForUpdate(ctx, fileID, userID)
		if err != nil {
			return err
		}
		if err := checkAnchor(file, folderID); err != nil {
			return err
		}

		if req.FolderID != nil {
			target, err := s.folderRepo.GetByID(ctx, *req.FolderID, userID)
			if err != nil {
				return err
			}
			file.FolderID = target.ID
		}
		if req.Name != nil {
			file.Name = *req.Name
		}
		file.UpdatedAt = s.now()

		return s.fileRepo.Update(ctx, file)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("file updated",
		"id", file.ID,
		"name", file.Name,
		"folder_id", file.FolderID,
	)

	return file, nil
}

// DeleteFile removes the metadata, then the content
func (s *fileService) DeleteFile(ctx context.Context, userID, folderID, fileID string) error {
	var file *models.File
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		file, err = s.fileRepo.GetForUpdate(ctx, fileID, userID)
		if err != nil {
			return err
		}
		if err := checkAnchor(file, folderID); err != nil {
			return err
		}
		return s.fileRepo.Delete(ctx, file.ID, userID)
	})
	if err != nil {
		return err
	}

	reclaimContent(ctx, s.contentStore, s.logger, []string{file.StorageKey})

	s.logger.Info("file deleted", "id", file.ID, "name", file.Name, "owner_id", userID)
	return nil
}

// ResolveContentLocation returns where the file's content can be fetched
func (s *fileService) ResolveContentLocation(ctx context.Context, userID, folderID, fileID string) (string, error) {
	file, err := s.GetFile(ctx, userID, folderID, fileID)
	if err != nil {
		return "", err
	}
	return s.contentStore.URL(file.StorageKey), nil
}

func (s *fileService) validateCreateRequest(req *fsSvc.CreateFileRequest) error {
	if req.Content == nil {
		return domain.NewValidationError("file", "no file was submitted")
	}
	return service.AsValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFileNameLength),
		),
		validation.Field(&req.FolderID, validation.Required),
	))
}

func (s *fileService) validateUpdateRequest(req *fsSvc.UpdateFileRequest) error {
	if req.Name == nil && req.FolderID == nil {
		return &domain.ValidationError{Message: "at least one of name or folder_id must be provided"}
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	return service.AsValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxFileNameLength),
		),
		validation.Field(&req.FolderID, validation.NilOrNotEmpty),
	))
}

// checkAnchor hides a file reached through a folder it does not live in
func checkAnchor(file *models.File, folderID string) error {
	if folderID != "" && file.FolderID != folderID {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}
	return nil
}

// uploadBaseName strips any client-side directory from a multipart filename
func uploadBaseName(filename string) string {
	filename = strings.TrimSpace(strings.ReplaceAll(filename, `\`, "/"))
	if filename == "" {
		return ""
	}
	base := filepath.Base(filename)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

// reclaimContent deletes blobs whose metadata is gone. Failures only leave
// orphaned content behind, so they are logged and not returned.
func reclaimContent(ctx context.Context, store services.ContentStore, logger *slog.Logger, keys []string) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := store.Delete(ctx, key); err != nil {
			logger.Warn("failed to delete content", "storage_key", key, "error", err)
		}
	}
}
