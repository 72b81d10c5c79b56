package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"cloudstore/internal/domain"
	"cloudstore/internal/domain/models"
	"cloudstore/internal/domain/repositories"
	"cloudstore/internal/domain/services"
)

const tokenIssuer = "cloudstore"

// JWTTokenIssuer issues HS256 tokens. Each token carries a fresh jti that is
// recorded as the user's only active token, so issuing rotates the credential.
type JWTTokenIssuer struct {
	secret    []byte
	ttl       time.Duration
	tokenRepo repositories.TokenRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewJWTTokenIssuer creates a token issuer
func NewJWTTokenIssuer(secret string, ttl time.Duration, tokenRepo repositories.TokenRepository, logger *slog.Logger) (services.TokenIssuer, error) {
	if len(secret) < 32 {
		return nil, errors.New("token secret must be at least 32 bytes")
	}
	return &JWTTokenIssuer{
		secret:    []byte(secret),
		ttl:       ttl,
		tokenRepo: tokenRepo,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Issue signs a new token for userID and makes it the active one
func (i *JWTTokenIssuer) Issue(ctx context.Context, userID string) (string, error) {
	now := i.now()
	tokenID := uuid.NewString()

	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := i.tokenRepo.Replace(ctx, userID, tokenID); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}

	i.logger.Debug("token issued", "user_id", userID)
	return signed, nil
}

// Verify validates signature, expiry and that the token is still active
func (i *JWTTokenIssuer) Verify(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{},
		func(t *jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		i.logger.Debug("token rejected", "error", err)
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || claims.GetUserID() == "" || claims.ID == "" {
		return "", domain.ErrUnauthorized
	}

	active, err := i.tokenRepo.GetActive(ctx, claims.GetUserID())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("load active token: %w", err)
	}
	if active != claims.ID {
		i.logger.Debug("superseded token rejected", "user_id", claims.GetUserID())
		return "", domain.ErrUnauthorized
	}

	return claims.GetUserID(), nil
}

// Revoke drops the user's active token
func (i *JWTTokenIssuer) Revoke(ctx context.Context, userID string) error {
	return i.tokenRepo.Revoke(ctx, userID)
}
