package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"cloudstore/internal/domain"
	models "cloudstore/internal/domain/models/filesystem"
	fsRepo "cloudstore/internal/domain/repositories/filesystem"
)

func folderNotFound(id string) error {
	return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

func fileNotFound(id string) error {
	return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
}

// ownedFolder returns the folder if it exists and belongs to ownerID
func (d *dataset) ownedFolder(id, ownerID string) (models.Folder, bool) {
	f, ok := d.folders[id]
	if !ok || f.OwnerID != ownerID {
		return models.Folder{}, false
	}
	return f, true
}

// childIndex groups folders by parent id, each group ordered by position
func (d *dataset) childIndex() map[string][]models.Folder {
	index := make(map[string][]models.Folder)
	for _, f := range d.folders {
		if f.ParentID != nil {
			index[*f.ParentID] = append(index[*f.ParentID], f)
		}
	}
	for _, siblings := range index {
		sort.Slice(siblings, func(i, j int) bool { return siblings[i].Position < siblings[j].Position })
	}
	return index
}

// subtree returns the ids of the folder and all its descendants
func (d *dataset) subtree(rootID string) map[string]bool {
	index := d.childIndex()
	ids := map[string]bool{rootID: true}
	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range index[id] {
			if !ids[child.ID] {
				ids[child.ID] = true
				queue = append(queue, child.ID)
			}
		}
	}
	return ids
}

// FolderRepository is the in-memory FolderRepository
type FolderRepository struct {
	store *Store
}

// NewFolderRepository creates a folder repository over the store
func NewFolderRepository(store *Store) fsRepo.FolderRepository {
	return &FolderRepository{store: store}
}

func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	return r.store.do(ctx, func(d *dataset) error {
		if _, ok := d.users[folder.OwnerID]; !ok {
			return fmt.Errorf("owner %s: %w", folder.OwnerID, domain.ErrNotFound)
		}
		if folder.ParentID == nil {
			for _, f := range d.folders {
				if f.OwnerID == folder.OwnerID && f.ParentID == nil {
					return &domain.ConflictError{
						Message:      "owner already has a root folder",
						ResourceType: "folder",
						ResourceID:   f.ID,
					}
				}
			}
		} else if _, ok := d.ownedFolder(*folder.ParentID, folder.OwnerID); !ok {
			return folderNotFound(*folder.ParentID)
		}

		folder.ID = uuid.NewString()
		folder.Position = d.next()
		stored := *folder
		stored.ParentID = copyParent(folder.ParentID)
		d.folders[folder.ID] = stored
		return nil
	})
}

func (r *FolderRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	var folder models.Folder
	err := r.store.do(ctx, func(d *dataset) error {
		f, ok := d.ownedFolder(id, ownerID)
		if !ok {
			return folderNotFound(id)
		}
		folder = f
		folder.ParentID = copyParent(f.ParentID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// GetForUpdate is GetByID; transactions are already exclusive.
func (r *FolderRepository) GetForUpdate(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	return r.GetByID(ctx, id, ownerID)
}

func (r *FolderRepository) GetRoot(ctx context.Context, ownerID string) (*models.Folder, error) {
	var root *models.Folder
	err := r.store.do(ctx, func(d *dataset) error {
		for _, f := range d.folders {
			if f.OwnerID == ownerID && f.ParentID == nil {
				f := f
				root = &f
				return nil
			}
		}
		return fmt.Errorf("root folder: %w", domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

func (r *FolderRepository) Rename(ctx context.Context, folder *models.Folder) error {
	return r.store.do(ctx, func(d *dataset) error {
		f, ok := d.ownedFolder(folder.ID, folder.OwnerID)
		if !ok {
			return folderNotFound(folder.ID)
		}
		f.Name = folder.Name
		f.UpdatedAt = folder.UpdatedAt
		d.folders[f.ID] = f
		return nil
	})
}

func (r *FolderRepository) Move(ctx context.Context, folder *models.Folder) error {
	if folder.ParentID == nil {
		return fmt.Errorf("move folder %s without parent: %w", folder.ID, domain.ErrValidation)
	}
	return r.store.do(ctx, func(d *dataset) error {
		f, ok := d.ownedFolder(folder.ID, folder.OwnerID)
		if !ok {
			return folderNotFound(folder.ID)
		}
		if _, ok := d.ownedFolder(*folder.ParentID, folder.OwnerID); !ok {
			return folderNotFound(*folder.ParentID)
		}
		f.ParentID = copyParent(folder.ParentID)
		f.Position = d.next()
		f.UpdatedAt = folder.UpdatedAt
		d.folders[f.ID] = f
		folder.Position = f.Position
		return nil
	})
}

func (r *FolderRepository) IsDescendant(ctx context.Context, ancestorID, candidateID, ownerID string) (bool, error) {
	var found bool
	err := r.store.do(ctx, func(d *dataset) error {
		seen := map[string]bool{}
		id := candidateID
		for id != "" && !seen[id] {
			seen[id] = true
			f, ok := d.ownedFolder(id, ownerID)
			if !ok {
				return nil
			}
			if f.ID == ancestorID {
				found = true
				return nil
			}
			if f.ParentID == nil {
				return nil
			}
			id = *f.ParentID
		}
		return nil
	})
	return found, err
}

func (r *FolderRepository) Delete(ctx context.Context, id, ownerID string) error {
	return r.store.do(ctx, func(d *dataset) error {
		if _, ok := d.ownedFolder(id, ownerID); !ok {
			return folderNotFound(id)
		}
		doomed := d.subtree(id)
		for fileID, row := range d.files {
			if doomed[row.file.FolderID] {
				delete(d.files, fileID)
			}
		}
		for folderID := range doomed {
			delete(d.folders, folderID)
		}
		return nil
	})
}

func (r *FolderRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	folders := []models.Folder{}
	err := r.store.do(ctx, func(d *dataset) error {
		index := d.childIndex()
		var walk func(f models.Folder)
		walk = func(f models.Folder) {
			f.ParentID = copyParent(f.ParentID)
			folders = append(folders, f)
			for _, child := range index[f.ID] {
				walk(child)
			}
		}
		for _, f := range d.folders {
			if f.OwnerID == ownerID && f.ParentID == nil {
				walk(f)
			}
		}
		return nil
	})
	return folders, err
}

// LockTree is a no-op; transactions are already exclusive.
func (r *FolderRepository) LockTree(ctx context.Context, ownerID string) error {
	return nil
}

// FileRepository is the in-memory FileRepository
type FileRepository struct {
	store *Store
}

// NewFileRepository creates a file repository over the store
func NewFileRepository(store *Store) fsRepo.FileRepository {
	return &FileRepository{store: store}
}

func (r *FileRepository) Create(ctx context.Context, file *models.File) error {
	return r.store.do(ctx, func(d *dataset) error {
		if _, ok := d.ownedFolder(file.FolderID, file.OwnerID); !ok {
			return folderNotFound(file.FolderID)
		}
		file.ID = uuid.NewString()
		d.files[file.ID] = fileRow{file: *file, seq: d.next()}
		return nil
	})
}

func (r *FileRepository) GetByID(ctx context.Context, id, ownerID string) (*models.File, error) {
	var file models.File
	err := r.store.do(ctx, func(d *dataset) error {
		row, ok := d.files[id]
		if !ok || row.file.OwnerID != ownerID {
			return fileNotFound(id)
		}
		file = row.file
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// GetForUpdate is GetByID; transactions are already exclusive.
func (r *FileRepository) GetForUpdate(ctx context.Context, id, ownerID string) (*models.File, error) {
	return r.GetByID(ctx, id, ownerID)
}

func (r *FileRepository) Update(ctx context.Context, file *models.File) error {
	return r.store.do(ctx, func(d *dataset) error {
		row, ok := d.files[file.ID]
		if !ok || row.file.OwnerID != file.OwnerID {
			return fileNotFound(file.ID)
		}
		if _, ok := d.ownedFolder(file.FolderID, file.OwnerID); !ok {
			return folderNotFound(file.FolderID)
		}
		row.file.Name = file.Name
		row.file.FolderID = file.FolderID
		row.file.UpdatedAt = file.UpdatedAt
		d.files[file.ID] = row
		return nil
	})
}

func (r *FileRepository) Delete(ctx context.Context, id, ownerID string) error {
	return r.store.do(ctx, func(d *dataset) error {
		row, ok := d.files[id]
		if !ok || row.file.OwnerID != ownerID {
			return fileNotFound(id)
		}
		delete(d.files, id)
		return nil
	})
}

func (r *FileRepository) list(ctx context.Context, match func(models.File) bool) ([]models.File, error) {
	var rows []fileRow
	err := r.store.do(ctx, func(d *dataset) error {
		for _, row := range d.files {
			if match(row.file) {
				rows = append(rows, row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].file.CreatedAt.Equal(rows[j].file.CreatedAt) {
			return rows[i].file.CreatedAt.Before(rows[j].file.CreatedAt)
		}
		return rows[i].seq < rows[j].seq
	})

	files := make([]models.File, 0, len(rows))
	for _, row := range rows {
		files = append(files, row.file)
	}
	return files, nil
}

func (r *FileRepository) ListByFolder(ctx context.Context, folderID, ownerID string) ([]models.File, error) {
	return r.list(ctx, func(f models.File) bool {
		return f.FolderID == folderID && f.OwnerID == ownerID
	})
}

func (r *FileRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.File, error) {
	return r.list(ctx, func(f models.File) bool {
		return f.OwnerID == ownerID
	})
}

func (r *FileRepository) ListStorageKeysInSubtree(ctx context.Context, folderID, ownerID string) ([]string, error) {
	keys := []string{}
	err := r.store.do(ctx, func(d *dataset) error {
		if _, ok := d.ownedFolder(folderID, ownerID); !ok {
			return nil
		}
		inSubtree := d.subtree(folderID)
		for _, row := range d.files {
			if inSubtree[row.file.FolderID] {
				keys = append(keys, row.file.StorageKey)
			}
		}
		return nil
	})
	sort.Strings(keys)
	return keys, err
}
