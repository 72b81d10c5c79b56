package filesystem

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cloudstore/internal/content"
	"cloudstore/internal/domain/models"
	fsModels "cloudstore/internal/domain/models/filesystem"
	"cloudstore/internal/domain/repositories"
	fsRepo "cloudstore/internal/domain/repositories/filesystem"
	fsSvc "cloudstore/internal/domain/services/filesystem"
	"cloudstore/internal/repository/memory"
	"cloudstore/internal/service/auth"
)

// fixture wires the filesystem services over the in-memory backend
type fixture struct {
	users      repositories.UserRepository
	folderRepo fsRepo.FolderRepository
	fileRepo   fsRepo.FileRepository
	blobs      *content.MemoryStore
	folders    *folderService
	files      *fileService
	tree       fsSvc.TreeService
	clock      *fakeClock
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tx := memory.NewTransactionManager(store)
	folderRepo := memory.NewFolderRepository(store)
	fileRepo := memory.NewFileRepository(store)
	blobs := content.NewMemoryStore("/media")
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	authorizer := auth.NewOwnerBasedAuthorizer(folderRepo, fileRepo)

	folders := NewFolderService(folderRepo, fileRepo, blobs, tx, logger).(*folderService)
	folders.now = clock.Now
	files := NewFileService(fileRepo, folderRepo, blobs, content.NewDetector(), tx, authorizer, 1024, logger).(*fileService)
	files.now = clock.Now

	return &fixture{
		users:      memory.NewUserRepository(store),
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		blobs:      blobs,
		folders:    folders,
		files:      files,
		tree:       NewTreeService(folderRepo, fileRepo, logger),
		clock:      clock,
	}
}

// newUser creates a user with a provisioned root and returns both ids
func (f *fixture) newUser(t *testing.T, email string) (userID, rootID string) {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Email: email, IsActive: true}
	require.NoError(t, f.users.Create(ctx, user))

	root, err := f.folders.ProvisionRoot(ctx, user.ID)
	require.NoError(t, err)

	return user.ID, root.ID
}

func (f *fixture) mkdir(t *testing.T, ownerID, parentID, name string) *fsModels.Folder {
	t.Helper()
	folder, err := f.folders.CreateFolder(context.Background(), &fsSvc.CreateFolderRequest{
		OwnerID:  ownerID,
		ParentID: parentID,
		Name:     name,
	})
	require.NoError(t, err)
	return folder
}

func folderNames(folders []fsModels.Folder) []string {
	names := make([]string, 0, len(folders))
	for _, f := range folders {
		names = append(names, f.Name)
	}
	return names
}
