package jobboard

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind separates access tokens from refresh tokens. A refresh token can
// only be exchanged for a new access token; it never authorizes resource
// operations directly.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// JWTClaims is the claim set carried by both token kinds
type JWTClaims struct {
	jwt.RegisteredClaims
	UID      string    `json:"uid,omitempty"`
	UserRole UserRole  `json:"role,omitempty"`
	Kind     TokenKind `json:"kind,omitempty"`
}

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Role returns the user's role claim
func (c *JWTClaims) Role() UserRole {
	return c.UserRole
}

// IsKind reports whether the token was issued as the given kind. Tokens
// minted before the kind claim existed default to access.
func (c *JWTClaims) IsKind(kind TokenKind) bool {
	if c.Kind == "" {
		return kind == TokenKindAccess
	}
	return c.Kind == kind
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issuance time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
