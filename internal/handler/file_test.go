package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsModels "cloudstore/internal/domain/models/filesystem"
)

func uploadOK(t *testing.T, s *testServer, token, folderID, filename string, data []byte) fsModels.File {
	t.Helper()
	w := s.upload(token, folderID, filename, "", data)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var file fsModels.File
	decode(t, w, &file)
	return file
}

func TestUploadFile(t *testing.T) {
	s := newTestServer(t)
	alice, root := s.signUp("alice@example.com")
	_, bobRoot := s.signUp("bob@example.com")

	t.Run("name field overrides filename", func(t *testing.T) {
		w := s.upload(alice, root, "scan.png", "My scan", []byte("\x89PNG\r\n\x1a\n0000000000000000"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var file fsModels.File
		decode(t, w, &file)
		assert.Equal(t, "My scan", file.Name)
		assert.Equal(t, "My scan", file.OriginalName)
		assert.Equal(t, "image/png", file.MimeType)
		assert.NotContains(t, w.Body.String(), "storage_key")
	})

	t.Run("foreign folder", func(t *testing.T) {
		w := s.upload(alice, bobRoot, "a.txt", "", []byte("x"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("over the limit", func(t *testing.T) {
		w := s.upload(alice, root, "big.bin", "", []byte(strings.Repeat("x", testUploadLimit+1)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/folders/"+root+"/files", alice, map[string]string{"name": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	assert.Equal(t, 1, s.blobs.Len())
}

func TestFileRoutesScopedByFolder(t *testing.T) {
	s := newTestServer(t)
	alice, root := s.signUp("alice@example.com")
	bob, _ := s.signUp("bob@example.com")
	docs := s.mkdir(alice, root, "docs")
	file := uploadOK(t, s, alice, docs.ID, "a.txt", []byte("hello"))

	base := "/api/folders/" + docs.ID + "/files/" + file.ID
	wrong := "/api/folders/" + root + "/files/" + file.ID

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, base, alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, wrong, alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, base, bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, base+"/file", bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, wrong, alice, nil).Code)

	w := s.do(http.MethodGet, "/api/folders/"+docs.ID+"/files", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var files []fsModels.File
	decode(t, w, &files)
	require.Len(t, files, 1)
	assert.Equal(t, file.ID, files[0].ID)

	w = s.do(http.MethodGet, "/api/folders/"+root+"/files", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestUpdateFile(t *testing.T) {
	s := newTestServer(t)
	alice, root := s.signUp("alice@example.com")
	_, bobRoot := s.signUp("bob@example.com")
	docs := s.mkdir(alice, root, "docs")
	file := uploadOK(t, s, alice, root, "a.txt", []byte("hello"))

	w := s.do(http.MethodPatch, "/api/folders/"+root+"/files/"+file.ID, alice, map[string]string{"folder_id": bobRoot})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, "/api/folders/"+root+"/files/"+file.ID, alice, map[string]string{"name": "b.txt", "folder_id": docs.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated fsModels.File
	decode(t, w, &updated)
	assert.Equal(t, "b.txt", updated.Name)
	assert.Equal(t, docs.ID, updated.FolderID)

	// now only reachable through its new folder
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/folders/"+root+"/files/"+file.ID, alice, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/folders/"+docs.ID+"/files/"+file.ID, alice, nil).Code)
}

func TestDownloadAndDeleteFile(t *testing.T) {
	s := newTestServer(t)
	alice, root := s.signUp("alice@example.com")
	file := uploadOK(t, s, alice, root, "a.txt", []byte("hello"))
	base := "/api/folders/" + root + "/files/" + file.ID

	w := s.do(http.MethodGet, base+"/file", alice, nil)
	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/media/user_"), location)
	assert.True(t, strings.HasSuffix(location, ".txt"), location)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, base, alice, nil).Code)
	assert.Equal(t, 0, s.blobs.Len())
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, base+"/file", alice, nil).Code)
}
