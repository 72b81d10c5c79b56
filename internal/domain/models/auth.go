package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the claim set of the bearer tokens issued at login.
// The registered ID (jti) identifies the single active token of a user.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *TokenClaims) GetUserID() string {
	return c.Subject
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}
