package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cloudstore/internal/config"
	"cloudstore/internal/content"
	"cloudstore/internal/handler"
	"cloudstore/internal/middleware"
	"cloudstore/internal/repository"
	"cloudstore/internal/service"
	"cloudstore/internal/service/auth"
	"cloudstore/internal/service/filesystem"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logOut, closeLog, err := config.LogWriter(cfg)
	if err != nil {
		log.Fatalf("Failed to set up log file: %v", err)
	}
	defer closeLog()

	logger := config.NewLogger(cfg.Environment, logOut)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"storage", cfg.StorageType,
	)

	tokenSecret := cfg.TokenSecret
	if tokenSecret == "" {
		if cfg.Environment == "prod" {
			log.Fatal("TOKEN_SECRET is required in prod")
		}
		tokenSecret = randomSecret()
		logger.Warn("TOKEN_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	ctx := context.Background()

	backend, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open backend: %v", err)
	}
	defer backend.Close()

	contentStore, err := content.NewStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to set up content storage: %v", err)
	}

	tokens, err := auth.NewJWTTokenIssuer(tokenSecret, cfg.TokenTTL, backend.Tokens, logger)
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}

	// Services
	authorizer := auth.NewOwnerBasedAuthorizer(backend.Folders, backend.Files)
	folderService := filesystem.NewFolderService(backend.Folders, backend.Files, contentStore, backend.TxManager, logger)
	fileService := filesystem.NewFileService(
		backend.Files,
		backend.Folders,
		contentStore,
		content.NewDetector(),
		backend.TxManager,
		authorizer,
		cfg.MaxUploadBytes,
		logger,
	)
	treeService := filesystem.NewTreeService(backend.Folders, backend.Files, logger)
	identityService := service.NewIdentityService(
		backend.Users,
		folderService,
		auth.NewBcryptHasher(auth.DefaultBcryptCost),
		tokens,
		backend.TxManager,
		logger,
	)

	// Routes
	routes := &handler.Routes{
		Auth:    handler.NewAuthHandler(identityService, logger),
		Profile: handler.NewProfileHandler(identityService, logger),
		Folder:  handler.NewFolderHandler(folderService, treeService, logger),
		File:    handler.NewFileHandler(fileService, cfg.MaxUploadBytes, logger),
	}

	mux := http.NewServeMux()
	routes.Register(mux)

	var publicPrefixes []string
	if cfg.StorageType == "local" && strings.HasPrefix(cfg.StorageLocalURL, "/") {
		// content URLs are unguessable keys; serve them like a CDN would
		prefix := strings.TrimRight(cfg.StorageLocalURL, "/") + "/"
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.StorageLocalPath))))
		publicPrefixes = append(publicPrefixes, prefix)
		logger.Info("serving local content", "url", prefix, "path", cfg.StorageLocalPath)
	}

	// Build middleware chain
	var h http.Handler = mux

	// Order: CORS → Recovery → Auth → Routes
	h = middleware.AuthMiddleware(tokens, publicPrefixes, logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS must wrap auth so pre-flight requests are answered without a token
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  60 * time.Second, // uploads
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// randomSecret returns a 64-character hex secret for dev runs
func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("Failed to generate token secret: %v", err)
	}
	return hex.EncodeToString(b)
}
