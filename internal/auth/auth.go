// Package auth issues and verifies the signed tickets players present at the
// websocket handshake.
package auth

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/victornm/thinkfast/internal/errors"
)

type ticketClaims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

type Config struct {
	Secret string
	TTL    time.Duration
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(c Config) *Manager {
	return &Manager{
		secret: []byte(c.Secret),
		ttl:    c.TTL,
	}
}

// Issue mints a fresh client identity and a signed ticket carrying it.
func (m *Manager) Issue(now time.Time) (token, clientID string, err error) {
	clientID = uuid.NewString()

	claims := ticketClaims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", fmt.Errorf("auth: sign ticket: %w", err)
	}

	return token, clientID, nil
}

// Verify checks the ticket signature and expiry and returns the client
// identity it carries. Every failure maps to CodeUnauthenticated; the caller
// rejects the handshake as a policy violation.
func (m *Manager) Verify(token string) (string, error) {
	if token == "" {
		return "", errors.New(errors.CodeUnauthenticated, errors.WithMessagef("missing ticket"))
	}

	parsed, err := jwt.ParseWithClaims(token, &ticketClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		msg := "invalid ticket"
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			msg = "expired ticket"
		}
		return "", errors.New(errors.CodeUnauthenticated, errors.WithMessagef(msg), errors.WithCause(err))
	}

	claims, ok := parsed.Claims.(*ticketClaims)
	if !ok || !parsed.Valid || claims.ClientID == "" {
		return "", errors.New(errors.CodeUnauthenticated, errors.WithMessagef("invalid ticket"))
	}

	return claims.ClientID, nil
}
