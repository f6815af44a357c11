package statictoken

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"pet-tag-registry/internal/ports/auth"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrInvalidToken  = errors.New("invalid token")
	ErrNotConfigured = errors.New("statictoken: admin token not configured")
)

// Verifier implementa auth.AuthVerifier comparando el bearer token contra
// el admin token configurado. Suficiente para el back office actual;
// si se suma otro rol de usuario conviene migrar a un verifier real.
type Verifier struct {
	token string
}

func NewVerifier(token string) (*Verifier, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNotConfigured
	}
	return &Verifier{token: token}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.token == "" {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(v.token)) != 1 {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID: "admin",
		Role:   auth.RoleAdmin,
	}, nil
}
