// Package seed loads development fixtures through the service layer.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"cloudstore/internal/domain"
	"cloudstore/internal/domain/services"
	fsSvc "cloudstore/internal/domain/services/filesystem"
)

//go:embed fixture.yaml
var defaultFixture []byte

// Fixture is the YAML document describing users and their folder trees
type Fixture struct {
	Users []UserFixture `yaml:"users"`
}

// UserFixture is one user with the folders to create under its root
type UserFixture struct {
	Email     string          `yaml:"email"`
	Password  string          `yaml:"password"`
	FirstName string          `yaml:"first_name"`
	LastName  string          `yaml:"last_name"`
	Folders   []FolderFixture `yaml:"folders"`
}

// FolderFixture is a folder with optional children
type FolderFixture struct {
	Name    string          `yaml:"name"`
	Folders []FolderFixture `yaml:"folders"`
}

// Result counts what a seeding run created
type Result struct {
	Users   int
	Skipped int
	Folders int
}

// DefaultFixture parses the embedded fixture
func DefaultFixture() (*Fixture, error) {
	return ParseFixture(defaultFixture)
}

// ParseFixture parses a YAML fixture
func ParseFixture(data []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for i, u := range fixture.Users {
		if u.Email == "" {
			return nil, fmt.Errorf("fixture user %d has no email", i)
		}
	}
	return &fixture, nil
}

// Seeder creates fixture data with the same services the API uses, so
// seeded users get their root folder exactly like registered ones.
type Seeder struct {
	identity services.IdentityService
	folders  fsSvc.FolderService
	logger   *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(identity services.IdentityService, folders fsSvc.FolderService, logger *slog.Logger) *Seeder {
	return &Seeder{
		identity: identity,
		folders:  folders,
		logger:   logger,
	}
}

// Seed registers every fixture user and builds its folders. Users whose
// email is already taken are skipped.
func (s *Seeder) Seed(ctx context.Context, fixture *Fixture) (*Result, error) {
	result := &Result{}

	for _, u := range fixture.Users {
		user, err := s.identity.Register(ctx, &services.RegisterRequest{
			Email:     u.Email,
			Password:  u.Password,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Info("user exists, skipping", "email", u.Email)
			result.Skipped++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("register %s: %w", u.Email, err)
		}
		result.Users++

		root, err := s.folders.ProvisionRoot(ctx, user.ID)
		if err != nil {
			return result, fmt.Errorf("root folder of %s: %w", u.Email, err)
		}

		n, err := s.createFolders(ctx, user.ID, root.ID, u.Folders)
		result.Folders += n
		if err != nil {
			return result, fmt.Errorf("folders of %s: %w", u.Email, err)
		}

		s.logger.Info("seeded user", "email", u.Email, "id", user.ID, "folders", n)
	}

	return result, nil
}

func (s *Seeder) createFolders(ctx context.Context, ownerID, parentID string, folders []FolderFixture) (int, error) {
	created := 0
	for _, f := range folders {
		folder, err := s.folders.CreateFolder(ctx, &fsSvc.CreateFolderRequest{
			OwnerID:  ownerID,
			ParentID: parentID,
			Name:     f.Name,
		})
		if err != nil {
			return created, fmt.Errorf("create %q: %w", f.Name, err)
		}
		created++

		n, err := s.createFolders(ctx, ownerID, folder.ID, f.Folders)
		created += n
		if err != nil {
			return created, err
		}
	}
	return created, nil
}
