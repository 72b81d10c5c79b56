package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cloudstore/internal/content"
	fsModels "cloudstore/internal/domain/models/filesystem"
	"cloudstore/internal/middleware"
	"cloudstore/internal/repository/memory"
	"cloudstore/internal/service"
	"cloudstore/internal/service/auth"
	"cloudstore/internal/service/filesystem"
)

const testUploadLimit = 1024

// testServer is the full HTTP stack over the in-memory backend
type testServer struct {
	t       *testing.T
	handler http.Handler
	blobs   *content.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	tx := memory.NewTransactionManager(store)
	userRepo := memory.NewUserRepository(store)
	folderRepo := memory.NewFolderRepository(store)
	fileRepo := memory.NewFileRepository(store)
	blobs := content.NewMemoryStore("/media")

	tokens, err := auth.NewJWTTokenIssuer(strings.Repeat("s", 32), time.Hour, memory.NewTokenRepository(store), logger)
	require.NoError(t, err)

	folderService := filesystem.NewFolderService(folderRepo, fileRepo, blobs, tx, logger)
	fileService := filesystem.NewFileService(fileRepo, folderRepo, blobs, content.NewDetector(), tx,
		auth.NewOwnerBasedAuthorizer(folderRepo, fileRepo), testUploadLimit, logger)
	treeService := filesystem.NewTreeService(folderRepo, fileRepo, logger)
	identityService := service.NewIdentityService(userRepo, folderService, auth.NewBcryptHasher(bcrypt.MinCost), tokens, tx, logger)

	routes := &Routes{
		Auth:    NewAuthHandler(identityService, logger),
		Profile: NewProfileHandler(identityService, logger),
		Folder:  NewFolderHandler(folderService, treeService, logger),
		File:    NewFileHandler(fileService, testUploadLimit, logger),
	}
	mux := http.NewServeMux()
	routes.Register(mux)

	var h http.Handler = mux
	h = middleware.AuthMiddleware(tokens, []string{"/media/"}, logger)(h)
	h = middleware.Recovery(logger)(h)

	return &testServer{t: t, handler: h, blobs: blobs}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	}

	r := httptest.NewRequest(method, path, reader)
	if reader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w
}

func (s *testServer) upload(token, folderID, filename, name string, data []byte) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if name != "" {
		require.NoError(s.t, mw.WriteField("name", name))
	}
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(s.t, err)
	_, err = part.Write(data)
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/folders/"+folderID+"/files", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	r.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w
}

// signUp registers and logs in, returning the token and root folder id
func (s *testServer) signUp(email string) (token, rootID string) {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/register", "", map[string]string{
		"email": email, "password": "password123", "first_name": "Test", "last_name": "User",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": "password123"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Status string `json:"status"`
		Token  string `json:"token"`
	}
	decode(s.t, w, &login)
	require.Equal(s.t, "Success", login.Status)

	folders := s.listFolders(login.Token)
	require.Len(s.t, folders, 1)
	return login.Token, folders[0].ID
}

func (s *testServer) listFolders(token string) []fsModels.Folder {
	s.t.Helper()
	w := s.do(http.MethodGet, "/api/folders", token, nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var folders []fsModels.Folder
	decode(s.t, w, &folders)
	return folders
}

func (s *testServer) mkdir(token, parentID, name string) fsModels.Folder {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/folders", token, map[string]string{"name": name, "parent_id": parentID})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var folder fsModels.Folder
	decode(s.t, w, &folder)
	return folder
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), w.Body.String())
}

func problem(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	var body map[string]interface{}
	decode(t, w, &body)
	return body
}
