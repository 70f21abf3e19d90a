// Package credentials seals stored account passwords.
package credentials

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	apperrors "entity-tracker-backend/internal/errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const sealedPrefix = "v1:"

// keySalt is fixed so the same secret always derives the same key
var keySalt = []byte("entity-tracker/credentials/v1")

// Sealer encrypts and decrypts credential values with XChaCha20-Poly1305
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives the sealing key from secret with Argon2id
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, apperrors.ErrCredentialsKeyMissing
	}
	key := argon2.IDKey([]byte(secret), keySalt, 1, 64*1024, 4, chacha20poly1305.KeySize)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// IsSealed reports whether stored was produced by Seal
func IsSealed(stored string) bool {
	return strings.HasPrefix(stored, sealedPrefix)
}

// Seal returns v1:<base64(nonce|ciphertext)>
func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. Values stored before sealing was introduced carry no
// prefix and are returned unchanged.
func (s *Sealer) Open(stored string) (string, error) {
	if !IsSealed(stored) {
		return stored, nil
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, sealedPrefix))
	if err != nil || len(raw) < s.aead.NonceSize() {
		return "", apperrors.ErrSealedValueInvalid
	}
	nonce, ciphertext := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", apperrors.ErrSealedValueInvalid
	}
	return string(plaintext), nil
}
