package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"cloudstore/internal/config"
	"cloudstore/internal/content"
	"cloudstore/internal/repository/postgres"
	pgFilesystem "cloudstore/internal/repository/postgres/filesystem"
	"cloudstore/internal/seed"
	"cloudstore/internal/service"
	"cloudstore/internal/service/auth"
	"cloudstore/internal/service/filesystem"

	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up the schema, don't seed users")
	clearData := flag.Bool("clear-data", false, "Delete all users, folders and files (keep schema)")
	fixturePath := flag.String("fixture", "", "YAML fixture to load instead of the built-in one")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: cannot run destructive operations (--drop-tables or --clear-data) in production")
	}
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required; the in-memory backend cannot be seeded")
	}

	logger := config.NewLogger(cfg.Environment, os.Stdout)

	switch {
	case *clearData:
		log.Printf("Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	case *schemaOnly:
		log.Printf("Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	default:
		log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := postgres.DropTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	log.Println("Ensuring database schema is up to date...")
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		return
	}

	if *clearData {
		if err := postgres.ClearData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Data cleared (content blobs are left in storage)")
		return
	}

	fixture, err := loadFixture(*fixturePath)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	txManager := postgres.NewTransactionManager(pool, logger)
	folderRepo := pgFilesystem.NewFolderRepository(repoConfig)
	fileRepo := pgFilesystem.NewFileRepository(repoConfig)

	// seeding creates no files, so content never reaches the store
	folderService := filesystem.NewFolderService(folderRepo, fileRepo, content.NewMemoryStore(cfg.StorageLocalURL), txManager, logger)

	// tokens are never issued here; the secret only has to be valid
	tokens, err := auth.NewJWTTokenIssuer(seedSecret(cfg.TokenSecret), time.Hour, postgres.NewTokenRepository(repoConfig), logger)
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}

	identityService := service.NewIdentityService(
		postgres.NewUserRepository(repoConfig),
		folderService,
		auth.NewBcryptHasher(auth.DefaultBcryptCost),
		tokens,
		txManager,
		logger,
	)

	result, err := seed.NewSeeder(identityService, folderService, logger).Seed(ctx, fixture)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeding complete: %d users created, %d skipped, %d folders", result.Users, result.Skipped, result.Folders)
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.DefaultFixture()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.ParseFixture(data)
}

func seedSecret(secret string) string {
	if len(secret) >= 32 {
		return secret
	}
	return "seed-only-secret-never-used-for-signing"
}
