// Package crypto implements the at-rest encryption used for stored
// credentials: an AES-256-GCM cipher around a process-wide key, and a field
// codec that applies it to whole records.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"keycrypt-backend/internal/apperror"
)

const (
	// AES-256 key length.
	keyLength = 32
	// GCM standard nonce length.
	nonceLength = 12
)

// Cipher encrypts and decrypts individual values with AES-256-GCM. The key is
// injected at construction and immutable afterwards; it is never logged and
// never appears in error messages.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher from a 32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("invalid key length: must be %d bytes for AES-256, got %d", keyLength, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt seals plainText with a fresh random nonce and returns
// base64(nonce || ciphertext). Encrypting the same plaintext twice yields
// different ciphertexts.
func (c *Cipher) Encrypt(plainText string) (string, error) {
	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plainText), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. A value not produced under this cipher's key, or
// corrupted in storage, fails GCM authentication and returns an error wrapping
// apperror.ErrDecryption; it never returns garbage as a valid result.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64 ciphertext", apperror.ErrDecryption)
	}
	if len(raw) < nonceLength {
		return "", fmt.Errorf("%w: ciphertext too short to contain nonce", apperror.ErrDecryption)
	}
	nonce, sealed := raw[:nonceLength], raw[nonceLength:]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		// Authentication failure: wrong key or corrupted data. The underlying
		// error is deliberately not included.
		return "", fmt.Errorf("%w: ciphertext authentication failed", apperror.ErrDecryption)
	}
	return string(plain), nil
}
