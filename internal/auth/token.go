// Package auth issues and parses the session tokens handed out after the
// shared-PIN login. A token only asserts "this client knows the PIN"; there
// are no per-user identities.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTTL = 12 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type Manager struct {
	secret []byte
}

func NewManager(accessSecret string) *Manager {
	return &Manager{secret: []byte(accessSecret)}
}

// Issue creates a provider session token.
func (m *Manager) Issue(now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   "provider",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates the signature and expiry of a session token.
func (m *Manager) Parse(raw string) error {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
