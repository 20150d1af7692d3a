package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wayfarerapp/wayfarer-server/internal/domain"
)

// authenticateRequest validates the Authorization header and returns the
// acting identity.
func (s *Server) authenticateRequest(authHeader string) (domain.Actor, error) {
	if authHeader == "" {
		return domain.Actor{}, huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return domain.Actor{}, huma.Error401Unauthorized("Invalid authorization header format")
	}

	actor, err := s.services.Auth.VerifyAccessToken(parts[1])
	if err != nil {
		return domain.Actor{}, huma.Error401Unauthorized("Invalid or expired token")
	}

	return actor, nil
}

// extractIP picks the client IP from forwarding headers. X-Forwarded-For may
// carry a chain; the first entry is the client.
func extractIP(xForwardedFor, xRealIP string) string {
	if xForwardedFor != "" {
		if i := strings.IndexByte(xForwardedFor, ','); i >= 0 {
			return strings.TrimSpace(xForwardedFor[:i])
		}
		return xForwardedFor
	}
	return xRealIP
}
