package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Roundtrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, h.Verify("secret", hash))
	assert.False(t, h.Verify("wrong", hash))
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("secret")
	require.NoError(t, err)
	second, err := h.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret", first))
	assert.True(t, h.Verify("secret", second))
}

func TestBcryptHasher_CrossVerifyFails(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("password-one")
	require.NoError(t, err)

	assert.False(t, h.Verify("password-two", hash))
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	assert.False(t, h.Verify("secret", []byte("not a bcrypt hash")))
	assert.False(t, h.Verify("secret", nil))
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	h := NewBcryptHasher(100)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	h = NewBcryptHasher(-1)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	h = NewBcryptHasher(12)
	assert.Equal(t, 12, h.cost)
}
