package auth

import (
	"testing"

	"github.com/dmitrijs2005/jobflow/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashThenVerify(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	for _, pw := range []string{"p", "correct horse battery staple", "пароль", ""} {
		digest, err := h.Hash(pw)
		require.NoError(t, err)

		ok, err := h.Verify(pw, digest)
		require.NoError(t, err)
		assert.True(t, ok, "password %q", pw)
	}
}

func TestBcryptHasher_SaltedDigestsDiffer(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_WrongPassword(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	digest, err := h.Hash("right")
	require.NoError(t, err)

	ok, err := h.Verify("wrong", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	for _, digest := range []string{"", "plaintext", "$2a$10$short"} {
		ok, err := h.Verify("anything", digest)
		assert.False(t, ok)
		assert.ErrorIs(t, err, common.ErrMalformedHash, "digest %q", digest)
	}
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.MaxCost, NewBcryptHasher(99).cost)
	assert.Equal(t, 10, NewBcryptHasher(10).cost)
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	t.Parallel()

	digest, err := NewBcryptHasher(5).Hash("x")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}
