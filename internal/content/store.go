package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"

	"cloudstore/internal/config"
	"cloudstore/internal/domain"
	"cloudstore/internal/domain/services"
)

// StorageKey builds the blob key for an upload:
// user_<owner>/<yyyy>/<mm>/<uuid><ext>
func StorageKey(ownerID, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("user_%s/%04d/%02d/%s%s",
		ownerID, now.Year(), int(now.Month()), uuid.NewString(), ext)
}

// WaffleStore adapts a waffle storage.Store (local disk or S3/CloudFront)
// to services.ContentStore.
type WaffleStore struct {
	store storage.Store
}

// NewWaffleStore wraps an existing waffle store
func NewWaffleStore(store storage.Store) *WaffleStore {
	return &WaffleStore{store: store}
}

func (s *WaffleStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	if err := s.store.Put(ctx, key, r, &storage.PutOptions{ContentType: contentType}); err != nil {
		return fmt.Errorf("store content %s: %w", key, err)
	}
	return nil
}

func (s *WaffleStore) Delete(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete content %s: %w", key, err)
	}
	return nil
}

func (s *WaffleStore) URL(key string) string {
	return s.store.URL(key)
}

// MemoryStore keeps content in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	blobs   map[string][]byte
	types   map[string]string
}

// NewMemoryStore creates an empty in-memory content store.
// URLs are baseURL + "/" + key.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		blobs:   map[string][]byte{},
		types:   map[string]string{},
	}
}

func (s *MemoryStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("store content %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	s.types[key] = contentType
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	delete(s.types, key)
	return nil
}

func (s *MemoryStore) URL(key string) string {
	return s.baseURL + "/" + key
}

// Get returns a copy of a stored blob
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, false
	}
	return bytes.Clone(data), true
}

// Len reports how many blobs are stored
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// NewStore builds the content store selected by cfg.StorageType
func NewStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.ContentStore, error) {
	switch cfg.StorageType {
	case "s3":
		store, err := storage.NewS3(ctx, storage.S3Config{
			Region:                   cfg.StorageS3Region,
			Bucket:                   cfg.StorageS3Bucket,
			Prefix:                   cfg.StorageS3Prefix,
			CloudFrontURL:            cfg.StorageCFURL,
			CloudFrontKeyPairID:      cfg.StorageCFKeyID,
			CloudFrontPrivateKeyPath: cfg.StorageCFKeyPath,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize S3 storage: %w", err)
		}
		logger.Info("initialized S3/CloudFront content storage",
			"bucket", cfg.StorageS3Bucket,
			"prefix", cfg.StorageS3Prefix,
		)
		return NewWaffleStore(store), nil
	case "local", "":
		store, err := storage.NewLocal(storage.LocalConfig{
			BasePath: cfg.StorageLocalPath,
			BaseURL:  cfg.StorageLocalURL,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize local storage: %w", err)
		}
		logger.Info("initialized local content storage",
			"path", cfg.StorageLocalPath,
			"url", cfg.StorageLocalURL,
		)
		return NewWaffleStore(store), nil
	case "memory":
		logger.Warn("content is kept in memory and lost on restart")
		return NewMemoryStore(cfg.StorageLocalURL), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q: %w", cfg.StorageType, domain.ErrValidation)
	}
}
