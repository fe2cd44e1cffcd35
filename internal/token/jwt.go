// Package token issues and validates HS512-signed session tokens whose
// payload is exactly {"sub": <user id>, "exp": <unix seconds>}.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 24 * time.Hour

var (
	// ErrInvalid covers malformed tokens and signature mismatches. Callers
	// get one error for both; Cause tells them apart for logging.
	ErrInvalid = errors.New("token is malformed or has an invalid signature")
	ErrExpired = errors.New("token has expired")
	ErrSigning = errors.New("token signing failed")
)

var signingMethod = jwt.SigningMethodHS512

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Manager)

// WithClock replaces time.Now for both issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

func NewManager(secret []byte, opts ...Option) (*Manager, error) {
	if len(secret) == 0 {
		return nil, errors.New("token: signing secret is empty")
	}
	m := &Manager{secret: secret, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	if m.ttl <= 0 {
		return nil, errors.New("token: ttl must be positive")
	}
	return m, nil
}

// Issue signs a token for userID that expires ttl after the current time.
func (m *Manager) Issue(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(m.now().Add(m.ttl)),
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigning, err)
	}
	return signed, nil
}

// Validate returns the subject of a well-formed, correctly signed, unexpired
// token. The signature is verified before the expiry claim is looked at, so a
// tampered token reports ErrInvalid even when it is also past its expiry.
func (m *Manager) Validate(raw string) (string, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %w", ErrExpired, err)
		}
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalid)
	}
	return claims.Subject, nil
}

// Cause classifies a Validate error for log attributes.
func Cause(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return "signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	default:
		return "claims"
	}
}
