package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crucial707/inventory/internal/models"
)

// TTL is the fixed validity of an issued token.
const TTL = 24 * time.Hour

// ErrInvalid is returned by Verify for any bad token: malformed, wrong
// signature, wrong algorithm, or expired.
var ErrInvalid = errors.New("invalid token")

// Claims are the JWT claims carried by an identity token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// Manager issues and verifies HMAC-signed identity tokens. It holds no state
// besides the secret and clock, so verification needs no store access.
type Manager struct {
	secret []byte
	now    func() time.Time
}

// NewManager creates a token manager for secret. now may be nil for time.Now.
func NewManager(secret string, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{secret: []byte(secret), now: now}
}

// Issue signs a token for the user valid from now until now+TTL.
func (m *Manager) Issue(userID, email string) (string, error) {
	issuedAt := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TTL)),
		},
		UserID: userID,
		Email:  email,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the asserted identity.
// A token is rejected at or after its expiry instant.
func (m *Manager) Verify(tokenString string) (models.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !token.Valid || claims.UserID == "" {
		return models.Identity{}, ErrInvalid
	}
	return models.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
