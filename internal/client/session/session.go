// Package session keeps the caller's backend session: the bearer token,
// who it belongs to and the current chat session. The gateway is
// stateless, so this is what every call takes its token from.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samterminal/samclient/internal/common"
)

type Session struct {
	Token         string `json:"token"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	ChatSessionID string `json:"chatSessionId,omitempty"`
}

func (s *Session) IsAdmin() bool {
	return s.Role == common.RoleAdmin
}

// TokenInfo is what can be read from a JWT without its signing key.
// ExpiresAt is zero when the token carries no exp claim.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// Inspect decodes token's claims without verifying the signature. The
// backend is the only party that can verify it; the client reads exp to
// avoid sending a token it knows is stale.
func Inspect(token string) (TokenInfo, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// Expired reports whether the token is a JWT whose exp is not after now.
// Opaque tokens never expire on this side.
func (s *Session) Expired(now time.Time) bool {
	info, err := Inspect(s.Token)
	if err != nil || info.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(info.ExpiresAt)
}
