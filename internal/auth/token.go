package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers malformed, badly signed and expired tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSubject is returned when a valid token carries no subject claim.
	ErrMissingSubject = errors.New("token has no subject")
)

// TokenManager issues and verifies stateless HS256 bearer tokens. The
// payload carries only the subject (user email) and an absolute expiry;
// there is no revocation list, so logout is purely client-side.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 1440
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue builds and signs a token for the subject. Expiry is computed on a
// UTC clock with seconds granularity.
func (tm *TokenManager) Issue(subject string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(tm.ttl).Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks signature and expiry and returns the subject email. An
// optional case-insensitive "Bearer " prefix is stripped first, so raw
// Authorization header values can be passed directly.
func (tm *TokenManager) Verify(raw string) (string, error) {
	tokenStr := StripBearerPrefix(raw)

	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}

// StripBearerPrefix removes a leading "Bearer " scheme marker, ignoring case.
func StripBearerPrefix(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) >= 7 && strings.EqualFold(trimmed[:7], "bearer ") {
		return strings.TrimSpace(trimmed[7:])
	}
	return trimmed
}
