package statictoken

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-tag-registry/internal/ports/auth"
)

func TestNewVerifier(t *testing.T) {
	_, err := NewVerifier("  ")
	assert.ErrorIs(t, err, ErrNotConfigured)

	v, err := NewVerifier("s3cret")
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestVerify(t *testing.T) {
	v, err := NewVerifier("s3cret")
	require.NoError(t, err)
	ctx := context.Background()

	claims, err := v.Verify(ctx, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
	assert.Equal(t, "admin", claims.UserID)

	_, err = v.Verify(ctx, "")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = v.Verify(ctx, "wrong")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
