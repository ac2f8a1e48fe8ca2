// Package cryptox derives and checks the one-way credential references stored
// for accounts. Raw secrets never leave this package in reversible form.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/models"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of freshly generated salts in bytes.
const SaltSize = 32

// argon2id parameters
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// DeriveKey stretches secret with salt using argon2id.
func DeriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// MakeVerifier hashes a derived key into the value that is persisted.
func MakeVerifier(key []byte) []byte {
	sum := sha256.Sum256(key)
	return sum[:]
}

// NewCredential creates a random salt and the matching verifier for secret.
func NewCredential(secret []byte) models.Credential {
	salt := common.GenerateRandByteArray(SaltSize)
	return models.Credential{Salt: salt, Verifier: verifierFor(secret, salt)}
}

// Verify reports whether secret matches the stored credential. The comparison
// is exact and runs in constant time with respect to the verifier contents.
func Verify(c models.Credential, secret []byte) bool {
	if len(c.Salt) == 0 || len(c.Verifier) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(c.Verifier, verifierFor(secret, c.Salt)) == 1
}

func verifierFor(secret, salt []byte) []byte {
	key := DeriveKey(secret, salt)
	defer common.WipeByteArray(key)
	return MakeVerifier(key)
}
