package cryptox

import (
	"testing"

	"github.com/dmitrijs2005/markbook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	k1 := DeriveKey([]byte("secret-password"), []byte("fixed-salt"))
	k2 := DeriveKey([]byte("secret-password"), []byte("fixed-salt"))

	require.Len(t, k1, argonKeyLen)
	assert.Equal(t, k1, k2)
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	k1 := DeriveKey([]byte("secret-password"), []byte("salt-1"))
	k2 := DeriveKey([]byte("secret-password"), []byte("salt-2"))
	assert.NotEqual(t, k1, k2)
}

func TestNewCredential_DoesNotContainSecret(t *testing.T) {
	secret := []byte("hunter2hunter2")
	c := NewCredential(secret)

	require.Len(t, c.Salt, SaltSize)
	require.Len(t, c.Verifier, 32)
	assert.NotContains(t, string(c.Verifier), string(secret))
	assert.NotContains(t, string(c.Salt), string(secret))
}

func TestNewCredential_SaltIsRandom(t *testing.T) {
	a := NewCredential([]byte("same"))
	b := NewCredential([]byte("same"))
	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.Verifier, b.Verifier)
}

func TestVerify(t *testing.T) {
	c := NewCredential([]byte("Passw0rd"))

	assert.True(t, Verify(c, []byte("Passw0rd")))
	assert.False(t, Verify(c, []byte("passw0rd")), "comparison is case-sensitive")
	assert.False(t, Verify(c, []byte("Passw0rd ")), "no trimming")
	assert.False(t, Verify(c, nil))
	assert.False(t, Verify(models.Credential{}, []byte("Passw0rd")))
}
