package crypto

import (
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// KeyFromBase64 decodes a Base64-encoded AES-256 key.
func KeyFromBase64(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, errors.New("encryption key is empty")
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key from base64: %w", err)
	}
	if len(key) != keyLength {
		return nil, fmt.Errorf("encryption key must be %d bytes after base64 decoding, got %d", keyLength, len(key))
	}
	return key, nil
}

// DeriveKey stretches a passphrase and salt into an AES-256 key with argon2id.
func DeriveKey(passphrase, salt string) ([]byte, error) {
	if passphrase == "" {
		return nil, errors.New("encryption passphrase is empty")
	}
	if salt == "" {
		return nil, errors.New("encryption salt is empty")
	}
	return argon2.IDKey([]byte(passphrase), []byte(salt), 1, 64*1024, 4, keyLength), nil
}
