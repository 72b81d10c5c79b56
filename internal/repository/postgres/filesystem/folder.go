package filesystem

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cloudstore/internal/domain"
	models "cloudstore/internal/domain/models/filesystem"
	fsRepo "cloudstore/internal/domain/repositories/filesystem"
	"cloudstore/internal/repository/postgres"
)

// treeLockClass namespaces the per-owner advisory locks taken by LockTree.
const treeLockClass = 7301

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) fsRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const folderColumns = `id, owner_id, parent_id, name, sort_order, created_at, updated_at`

func scanFolder(row interface{ Scan(...any) error }) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.Position,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func notFound(id string) error {
	return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

// Create creates a new folder. sort_order is assigned by its sequence, so a
// new folder is always the last child of its parent.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	if folder.ParentID != nil && !postgres.IsValidID(*folder.ParentID) {
		return notFound(*folder.ParentID)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, parent_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sort_order
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.OwnerID,
		folder.ParentID,
		folder.Name,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.Position)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "owner already has a root folder",
				ResourceType: "folder",
			}
		}
		if postgres.IsPgForeignKeyError(err) {
			// parent vanished or belongs to someone else
			if folder.ParentID != nil {
				return notFound(*folder.ParentID)
			}
			return fmt.Errorf("owner %s: %w", folder.OwnerID, domain.ErrNotFound)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID, scoped to its owner
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	return r.get(ctx, id, ownerID, "")
}

// GetForUpdate retrieves a folder and locks its row until the transaction ends
func (r *PostgresFolderRepository) GetForUpdate(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	return r.get(ctx, id, ownerID, "FOR UPDATE")
}

func (r *PostgresFolderRepository) get(ctx context.Context, id, ownerID, lock string) (*models.Folder, error) {
	if !postgres.IsValidID(id) || !postgres.IsValidID(ownerID) {
		return nil, notFound(id)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND owner_id = $2
		%s
	`, folderColumns, r.tables.Folders, lock)

	executor := postgres.GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return folder, nil
}

// GetRoot retrieves the owner's root folder
func (r *PostgresFolderRepository) GetRoot(ctx context.Context, ownerID string) (*models.Folder, error) {
	if !postgres.IsValidID(ownerID) {
		return nil, fmt.Errorf("root folder: %w", domain.ErrNotFound)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = $1 AND parent_id IS NULL
	`, folderColumns, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, ownerID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("root folder: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get root folder: %w", err)
	}

	return folder, nil
}

// Rename updates a folder's name
func (r *PostgresFolderRepository) Rename(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, updated_at = $2
		WHERE id = $3 AND owner_id = $4
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		folder.Name,
		folder.UpdatedAt,
		folder.ID,
		folder.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("rename folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return notFound(folder.ID)
	}

	return nil
}

// Move re-parents a folder and draws a fresh sort_order from the sequence so
// it becomes the last child of the new parent. Descendants keep their rows.
func (r *PostgresFolderRepository) Move(ctx context.Context, folder *models.Folder) error {
	if folder.ParentID == nil {
		return fmt.Errorf("move folder %s without parent: %w", folder.ID, domain.ErrValidation)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1,
			sort_order = nextval(pg_get_serial_sequence('%s', 'sort_order')),
			updated_at = $2
		WHERE id = $3 AND owner_id = $4
		RETURNING sort_order
	`, r.tables.Folders, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		*folder.ParentID,
		folder.UpdatedAt,
		folder.ID,
		folder.OwnerID,
	).Scan(&folder.Position)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return notFound(folder.ID)
		}
		if postgres.IsPgForeignKeyError(err) {
			return notFound(*folder.ParentID)
		}
		return fmt.Errorf("move folder: %w", err)
	}

	return nil
}

// IsDescendant walks up from candidateID and reports whether ancestorID is
// on the way to the root.
func (r *PostgresFolderRepository) IsDescendant(ctx context.Context, ancestorID, candidateID, ownerID string) (bool, error) {
	if !postgres.IsValidID(ancestorID) || !postgres.IsValidID(candidateID) || !postgres.IsValidID(ownerID) {
		return false, nil
	}

	query := fmt.Sprintf(`
		WITH RECURSIVE ancestry AS (
			SELECT id, parent_id
			FROM %s
			WHERE id = $1 AND owner_id = $3
			UNION
			SELECT f.id, f.parent_id
			FROM %s f
			JOIN ancestry a ON f.id = a.parent_id
		)
		SELECT EXISTS (SELECT 1 FROM ancestry WHERE id = $2)
	`, r.tables.Folders, r.tables.Folders)

	var found bool
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, candidateID, ancestorID, ownerID).Scan(&found); err != nil {
		return false, fmt.Errorf("check folder ancestry: %w", err)
	}

	return found, nil
}

// Delete removes a folder; foreign keys cascade to its subtree and files
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, ownerID string) error {
	if !postgres.IsValidID(id) || !postgres.IsValidID(ownerID) {
		return notFound(id)
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return notFound(id)
	}

	return nil
}

// ListByOwner returns the owner's folders in tree order. Each row carries the
// sort_order values of its ancestry; ordering by that array lists a parent
// before its children and siblings by sort_order.
func (r *PostgresFolderRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	if !postgres.IsValidID(ownerID) {
		return []models.Folder{}, nil
	}

	query := fmt.Sprintf(`
		WITH RECURSIVE tree AS (
			SELECT %[2]s, ARRAY[sort_order] AS sort_path
			FROM %[1]s
			WHERE owner_id = $1 AND parent_id IS NULL
			UNION ALL
			SELECT f.id, f.owner_id, f.parent_id, f.name, f.sort_order, f.created_at, f.updated_at,
				t.sort_path || f.sort_order
			FROM %[1]s f
			JOIN tree t ON f.parent_id = t.id
			WHERE f.owner_id = $1
		)
		SELECT %[2]s
		FROM tree
		ORDER BY sort_path
	`, r.tables.Folders, folderColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// LockTree takes a transaction-scoped advisory lock on the owner's tree.
// Outside a transaction the lock is released when the statement ends.
func (r *PostgresFolderRepository) LockTree(ctx context.Context, ownerID string) error {
	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, `SELECT pg_advisory_xact_lock($1, hashtext($2))`, treeLockClass, ownerID); err != nil {
		return fmt.Errorf("lock folder tree: %w", err)
	}
	return nil
}
