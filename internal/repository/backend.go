// Package repository selects and opens the persistence backend.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"cloudstore/internal/config"
	"cloudstore/internal/domain/repositories"
	fsRepo "cloudstore/internal/domain/repositories/filesystem"
	"cloudstore/internal/repository/memory"
	"cloudstore/internal/repository/postgres"
	pgFilesystem "cloudstore/internal/repository/postgres/filesystem"
)

// Backend bundles the repositories of one storage backend
type Backend struct {
	Users     repositories.UserRepository
	Tokens    repositories.TokenRepository
	Folders   fsRepo.FolderRepository
	Files     fsRepo.FileRepository
	TxManager repositories.TransactionManager

	close func()
}

// Close releases the backend's connections
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open returns the PostgreSQL backend when cfg.DatabaseURL is set and the
// in-memory backend otherwise. The PostgreSQL schema is created if missing.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, using the in-memory backend; data is lost on restart")
		return NewMemoryBackend(), nil
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	logger.Info("database connected",
		"table_prefix", cfg.TablePrefix,
		"max_conns", pool.Config().MaxConns,
	)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}

	return &Backend{
		Users:     postgres.NewUserRepository(repoConfig),
		Tokens:    postgres.NewTokenRepository(repoConfig),
		Folders:   pgFilesystem.NewFolderRepository(repoConfig),
		Files:     pgFilesystem.NewFileRepository(repoConfig),
		TxManager: postgres.NewTransactionManager(pool, logger),
		close:     pool.Close,
	}, nil
}

// NewMemoryBackend returns an empty in-memory backend
func NewMemoryBackend() *Backend {
	store := memory.NewStore()
	return &Backend{
		Users:     memory.NewUserRepository(store),
		Tokens:    memory.NewTokenRepository(store),
		Folders:   memory.NewFolderRepository(store),
		Files:     memory.NewFileRepository(store),
		TxManager: memory.NewTransactionManager(store),
	}
}
