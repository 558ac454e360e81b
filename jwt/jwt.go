// Package jwt reads the claims of a session token without verifying its
// signature. The signing key lives on the server; the client only uses the
// claims for display.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/medichat/medichat"
)

// ErrMalformedToken indicates the token could not be decoded.
var ErrMalformedToken = errors.New("malformed token")

// Claims is what the server puts in a session token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenInfo summarises a session token.
type TokenInfo struct {
	Username  string
	Role      medichat.Role
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now. Tokens
// without an expiry never expire.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Inspect decodes token and returns its subject, role and expiry.
func Inspect(token string) (TokenInfo, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	info := TokenInfo{
		Username: claims.Subject,
		Role:     medichat.Role(claims.Role),
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
