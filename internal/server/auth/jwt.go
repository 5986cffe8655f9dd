// Package auth issues and verifies access tokens, hashes passwords and
// decides whether an authenticated caller may touch a resource.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Sonchiik/Workout-Traker/internal/common"
)

// Claims is the signed token payload. Clients decode sub, user_id, is_admin
// and exp by these names.
type Claims struct {
	jwt.RegisteredClaims
	UserID  *int64 `json:"user_id,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}

// Identity is the verified caller extracted from a token. IsAdmin is the value
// at issue time; it is not re-read from the database.
type Identity struct {
	UserName  string
	UserID    int64
	IsAdmin   bool
	ExpiresAt time.Time
	TokenID   string
}

// TokenManager signs and verifies HS256 access tokens with a process-wide key.
// It holds no mutable state and is safe for concurrent use.
type TokenManager struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenManager builds a manager issuing tokens valid for ttl.
func NewTokenManager(secretKey []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secretKey: secretKey, ttl: ttl, now: time.Now}
}

// WithClock returns a copy of m that reads the current time from now.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	c := *m
	c.now = now
	return &c
}

// TTL is the default validity window of issued tokens.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for the given identity valid for the default TTL.
func (m *TokenManager) Issue(username string, userID int64, isAdmin bool) (string, error) {
	return m.IssueWithTTL(username, userID, isAdmin, m.ttl)
}

// IssueWithTTL signs a token valid from now until now+ttl. Timestamps are kept
// at second precision, as encoded in the token.
func (m *TokenManager) IssueWithTTL(username string, userID int64, isAdmin bool, ttl time.Duration) (string, error) {
	issuedAt := m.now().Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			ID:        uuid.NewString(),
		},
		UserID:  &userID,
		IsAdmin: isAdmin,
	})

	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the embedded identity.
// Every failure wraps common.ErrorUnauthorized; the specific cause
// (ErrTokenExpired, ErrInvalidToken, ErrMissingClaim) is kept for logging.
func (m *TokenManager) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return m.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %w: %v", common.ErrorUnauthorized, common.ErrInvalidToken, err)
	}

	if claims.Subject == "" || claims.UserID == nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrMissingClaim)
	}

	return &Identity{
		UserName:  claims.Subject,
		UserID:    *claims.UserID,
		IsAdmin:   claims.IsAdmin,
		ExpiresAt: claims.ExpiresAt.Time,
		TokenID:   claims.ID,
	}, nil
}
