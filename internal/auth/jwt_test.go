package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/factorg/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_SignedRoundTrip(t *testing.T) {
	t.Parallel()

	secret := "super-secret"
	tok, err := GenerateToken("user-123", "ana@factorg.cl", []byte(secret), time.Hour)
	require.NoError(t, err)

	claims, err := NewVerifier(secret).Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "ana@factorg.cl", claims.Email)
}

func TestVerifier_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u1", "u1@x.cl", []byte("secret"), -1*time.Second)
	require.NoError(t, err)

	_, err = NewVerifier("secret").Parse(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)

	_, err = NewVerifier("").Parse(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestVerifier_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", "u2@x.cl", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier("wrong-secret").Parse(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerifier_UnverifiedReadsClaims(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u3", "u3@x.cl", []byte("provider-only"), time.Hour)
	require.NoError(t, err)

	claims, err := NewVerifier("").Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u3@x.cl", claims.Email)
}

func TestVerifier_Garbage(t *testing.T) {
	t.Parallel()

	_, err := NewVerifier("").Parse("not-a-jwt")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerifier_Expired_Leeway(t *testing.T) {
	t.Parallel()

	v := NewVerifier("")
	tok, err := GenerateToken("u4", "u4@x.cl", []byte("k"), 30*time.Second)
	require.NoError(t, err)

	assert.False(t, v.Expired(tok, 0))
	assert.True(t, v.Expired(tok, time.Minute))
	assert.True(t, v.Expired("garbage", 0))
}
