package auth

import (
	"time"

	"github.com/wayfarerapp/wayfarer-server/internal/domain"
)

// AccessClaims represents the claims stored in a PASETO access token.
// These are encrypted in v4.local tokens, so they're not readable without the key.
type AccessClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// Actor converts the claims into the acting identity the core operations
// authorize against.
func (c *AccessClaims) Actor() domain.Actor {
	return domain.Actor{ID: c.UserID, Role: domain.Role(c.Role)}
}
