package filesystem

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cloudstore/internal/domain"
	models "cloudstore/internal/domain/models/filesystem"
	fsRepo "cloudstore/internal/domain/repositories/filesystem"
	"cloudstore/internal/repository/postgres"
)

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *postgres.RepositoryConfig) fsRepo.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const fileColumns = `id, owner_id, folder_id, name, original_name, size, mime_type, storage_key, created_at, updated_at`

func scanFile(row interface{ Scan(...any) error }) (*models.File, error) {
	var file models.File
	err := row.Scan(
		&file.ID,
		&file.OwnerID,
		&file.FolderID,
		&file.Name,
		&file.OriginalName,
		&file.Size,
		&file.MimeType,
		&file.StorageKey,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func collectFiles(rows pgx.Rows) ([]models.File, error) {
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, *file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}

func fileNotFound(id string) error {
	return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
}

// Create inserts file metadata. The composite foreign key rejects a folder
// that is missing or has another owner.
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	if !postgres.IsValidID(file.FolderID) {
		return notFound(file.FolderID)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, folder_id, name, original_name, size, mime_type, storage_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		file.OwnerID,
		file.FolderID,
		file.Name,
		file.OriginalName,
		file.Size,
		file.MimeType,
		file.StorageKey,
		file.CreatedAt,
		file.UpdatedAt,
	).Scan(&file.ID)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return notFound(file.FolderID)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID, scoped to its owner
func (r *PostgresFileRepository) GetByID(ctx context.Context, id, ownerID string) (*models.File, error) {
	return r.get(ctx, id, ownerID, "")
}

// GetForUpdate retrieves a file and locks its row until the transaction ends
func (r *PostgresFileRepository) GetForUpdate(ctx context.Context, id, ownerID string) (*models.File, error) {
	return r.get(ctx, id, ownerID, "FOR UPDATE")
}

func (r *PostgresFileRepository) get(ctx context.Context, id, ownerID, lock string) (*models.File, error) {
	if !postgres.IsValidID(id) || !postgres.IsValidID(ownerID) {
		return nil, fileNotFound(id)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND owner_id = $2
		%s
	`, fileColumns, r.tables.Files, lock)

	executor := postgres.GetExecutor(ctx, r.pool)
	file, err := scanFile(executor.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fileNotFound(id)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return file, nil
}

// Update writes name, folder and updated_at
func (r *PostgresFileRepository) Update(ctx context.Context, file *models.File) error {
	if !postgres.IsValidID(file.FolderID) {
		return notFound(file.FolderID)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, folder_id = $2, updated_at = $3
		WHERE id = $4 AND owner_id = $5
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		file.Name,
		file.FolderID,
		file.UpdatedAt,
		file.ID,
		file.OwnerID,
	)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return notFound(file.FolderID)
		}
		return fmt.Errorf("update file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fileNotFound(file.ID)
	}

	return nil
}

// Delete removes file metadata
func (r *PostgresFileRepository) Delete(ctx context.Context, id, ownerID string) error {
	if !postgres.IsValidID(id) || !postgres.IsValidID(ownerID) {
		return fileNotFound(id)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND owner_id = $2`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fileNotFound(id)
	}

	return nil
}

// ListByFolder lists files directly in a folder, oldest first
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID, ownerID string) ([]models.File, error) {
	if !postgres.IsValidID(folderID) || !postgres.IsValidID(ownerID) {
		return []models.File{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE folder_id = $1 AND owner_id = $2
		ORDER BY created_at ASC, id ASC
	`, fileColumns, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return collectFiles(rows)
}

// ListByOwner lists every file of an owner
func (r *PostgresFileRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.File, error) {
	if !postgres.IsValidID(ownerID) {
		return []models.File{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`, fileColumns, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list files by owner: %w", err)
	}

	return collectFiles(rows)
}

// ListStorageKeysInSubtree collects the storage keys of every file below
// folderID (inclusive)
func (r *PostgresFileRepository) ListStorageKeysInSubtree(ctx context.Context, folderID, ownerID string) ([]string, error) {
	if !postgres.IsValidID(folderID) || !postgres.IsValidID(ownerID) {
		return []string{}, nil
	}

	query := fmt.Sprintf(`
		WITH RECURSIVE subtree AS (
			SELECT id FROM %[1]s WHERE id = $1 AND owner_id = $2
			UNION
			SELECT f.id FROM %[1]s f JOIN subtree s ON f.parent_id = s.id
		)
		SELECT storage_key
		FROM %[2]s
		WHERE owner_id = $2 AND folder_id IN (SELECT id FROM subtree)
	`, r.tables.Folders, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list subtree storage keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan storage key: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate storage keys: %w", err)
	}

	return keys, nil
}
