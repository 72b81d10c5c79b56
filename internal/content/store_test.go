package content

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudstore/internal/config"
)

func TestStorageKey(t *testing.T) {
	now := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	key := StorageKey("42", "Photo.JPG", now)

	pattern := regexp.MustCompile(`^user_42/2024/03/[0-9a-f-]{36}\.jpg$`)
	assert.Regexp(t, pattern, key)
	assert.NotEqual(t, key, StorageKey("42", "Photo.JPG", now), "keys must be unique per upload")
}

func TestStorageKey_NoExtension(t *testing.T) {
	key := StorageKey("7", "README", time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, strings.HasPrefix(key, "user_7/2025/12/"))
	assert.NotContains(t, strings.TrimPrefix(key, "user_7/2025/12/"), ".")
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("/media/")

	require.NoError(t, store.Put(ctx, "a/b.txt", strings.NewReader("hello"), "text/plain"))

	data, ok := store.Get("a/b.txt")
	require.True(t, ok)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, "/media/a/b.txt", store.URL("a/b.txt"))
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Delete(ctx, "a/b.txt"))
	_, ok = store.Get("a/b.txt")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestNewStore_Memory(t *testing.T) {
	cfg := &config.Config{StorageType: "memory", StorageLocalURL: "/media"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := NewStore(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}

func TestNewStore_UnknownType(t *testing.T) {
	cfg := &config.Config{StorageType: "floppy"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewStore(context.Background(), cfg, logger)
	assert.Error(t, err)
}
