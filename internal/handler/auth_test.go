package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/register", "", map[string]string{"email": "alice@example.com", "password": "password123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user map[string]interface{}
	decode(t, w, &user)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, user, "PasswordHash")

	t.Run("duplicate email", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/register", "", map[string]string{"email": "alice@example.com", "password": "password123"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid payload", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/register", "", map[string]string{"email": "nope", "password": "x"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		fields, ok := problem(t, w)["fields"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
	})

	t.Run("malformed json", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/register", "", "{")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	first, _ := s.signUp("alice@example.com")

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{"missing password", map[string]string{"email": "alice@example.com"}, http.StatusBadRequest},
		{"missing email", map[string]string{"password": "password123"}, http.StatusBadRequest},
		{"wrong password", map[string]string{"email": "alice@example.com", "password": "password999"}, http.StatusUnauthorized},
		{"unknown user", map[string]string{"email": "eve@example.com", "password": "password123"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/login", "", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("login rotates the token", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/login", "", map[string]string{"email": "alice@example.com", "password": "password123"})
		require.Equal(t, http.StatusOK, w.Code)
		var login struct {
			Token string `json:"token"`
		}
		decode(t, w, &login)

		assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/folders", first, nil).Code)
		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/folders", login.Token, nil).Code)
	})
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signUp("alice@example.com")

	w := s.do(http.MethodPost, "/api/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/folders", "/api/folders/tree", "/api/profile"} {
		w := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := s.do(http.MethodGet, "/api/folders", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfile(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signUp("alice@example.com")

	w := s.do(http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile map[string]interface{}
	decode(t, w, &profile)
	assert.Equal(t, "alice@example.com", profile["email"])

	t.Run("update names", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/profile", token, map[string]string{
			"first_name": "Alice", "last_name": "Liddell", "email": "other@example.com",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var updated map[string]interface{}
		decode(t, w, &updated)
		assert.Equal(t, "Alice", updated["first_name"])
		assert.Equal(t, "Liddell", updated["last_name"])
		assert.Equal(t, "alice@example.com", updated["email"])
	})

	t.Run("missing last name", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/profile", token, map[string]string{"first_name": "Alice"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/profile", token, map[string]string{
			"first_name": "Alice", "last_name": "Liddell", "is_admin": "true",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no extra folders", func(t *testing.T) {
		assert.Len(t, s.listFolders(token), 1)
	})
}
