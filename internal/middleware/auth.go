package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"cloudstore/internal/domain"
	"cloudstore/internal/domain/services"
	"cloudstore/internal/httputil"
)

// publicRoutes are served without a token
var publicRoutes = map[string]bool{
	"GET /health":        true,
	"POST /api/register": true,
	"POST /api/login":    true,
}

// AuthMiddleware authenticates requests with the "Authorization" header.
// Both "Bearer <token>" and "Token <token>" are accepted. On success the
// user id is stored in the request context (see httputil.GetUserID).
func AuthMiddleware(issuer services.TokenIssuer, publicPrefixes []string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r, publicPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := extractToken(r.Header.Get("Authorization"))
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "authentication credentials were not provided")
				return
			}

			userID, err := issuer.Verify(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					logger.Error("token verification failed", "error", err, "path", r.URL.Path)
					httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}

func isPublic(r *http.Request, prefixes []string) bool {
	if publicRoutes[r.Method+" "+r.URL.Path] {
		return true
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}

// extractToken parses "<scheme> <token>" for the Bearer and Token schemes
func extractToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
