package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"cloudstore/internal/config"
	"cloudstore/internal/domain"
	"cloudstore/internal/domain/models"
	"cloudstore/internal/domain/repositories"
	"cloudstore/internal/domain/services"
	fsSvc "cloudstore/internal/domain/services/filesystem"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type identityService struct {
	userRepo      repositories.UserRepository
	folderService fsSvc.FolderService // root provisioning
	hasher        services.PasswordHasher
	tokens        services.TokenIssuer
	txManager     repositories.TransactionManager
	logger        *slog.Logger
	now           func() time.Time
}

// NewIdentityService creates a new identity service
func NewIdentityService(
	userRepo repositories.UserRepository,
	folderService fsSvc.FolderService,
	hasher services.PasswordHasher,
	tokens services.TokenIssuer,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.IdentityService {
	return &identityService{
		userRepo:      userRepo,
		folderService: folderService,
		hasher:        hasher,
		tokens:        tokens,
		txManager:     txManager,
		logger:        logger,
		now:           time.Now,
	}
}

// Register creates a user and its root folder atomically
func (s *identityService) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := s.validateRegisterRequest(req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var rootID string
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		root, err := s.folderService.ProvisionRoot(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("provision root folder: %w", err)
		}
		rootID = root.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		"id", user.ID,
		"email", user.Email,
		"root_folder_id", rootID,
	)

	return user, nil
}

// Verify checks credentials. Unknown email, wrong password and inactive
// accounts are indistinguishable to the caller.
func (s *identityService) Verify(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if !user.IsActive || !s.hasher.Compare(user.PasswordHash, password) {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	return user, nil
}

// Login verifies credentials and rotates the user's token
func (s *identityService) Login(ctx context.Context, req *services.LoginRequest) (*models.LoginResult, error) {
	err := AsValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required),
		validation.Field(&req.Password, validation.Required),
	))
	if err != nil {
		return nil, err
	}

	user, err := s.Verify(ctx, req.Email, req.Password)
	if err != nil {
		s.logger.Info("login rejected", "email", req.Email)
		return nil, err
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "id", user.ID)

	return &models.LoginResult{Status: "Success", Token: token}, nil
}

// Logout revokes the active token
func (s *identityService) Logout(ctx context.Context, userID string) error {
	return s.tokens.Revoke(ctx, userID)
}

// GetProfile returns the user's profile
func (s *identityService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile updates names. Email is read-only and ignored.
func (s *identityService) UpdateProfile(ctx context.Context, userID string, req *services.UpdateProfileRequest) (*models.User, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	err := AsValidationError(validation.ValidateStruct(req,
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, config.MaxPersonNameLength)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, config.MaxPersonNameLength)),
	))
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.UpdatedAt = s.now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "id", user.ID)
	return user, nil
}

// validateRegisterRequest validates a registration request
func (s *identityService) validateRegisterRequest(req *services.RegisterRequest) error {
	return AsValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Email,
			validation.Required,
			validation.Length(3, config.MaxEmailLength),
			validation.Match(emailPattern).Error("must be a valid email address"),
		),
		validation.Field(&req.Password,
			validation.Required,
			validation.Length(config.MinPasswordLength, 72).Error(
				fmt.Sprintf("must be between %d and 72 characters", config.MinPasswordLength)),
		),
		validation.Field(&req.FirstName, validation.Length(0, config.MaxPersonNameLength)),
		validation.Field(&req.LastName, validation.Length(0, config.MaxPersonNameLength)),
	))
}
