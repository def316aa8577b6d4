package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret")

	token, err := issuer.Generate()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, issuer.Validate(token))
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a").Generate()
	require.NoError(t, err)

	assert.Error(t, NewTokenIssuer("secret-b").Validate(token))
	assert.Error(t, NewTokenIssuer("secret-a").Validate("not-a-token"))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("hunter2", hash))
	assert.False(t, CheckPasswordHash("hunter3", hash))
}
