package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"
)

var _ ports.KeyCipher = (*AESKeyCipher)(nil)

// AESKeyCipher seals agent keys with AES-256-GCM under the process secret.
type AESKeyCipher struct {
	aead cipher.AEAD
}

// NewAESKeyCipher creates a cipher from a 64-character hex key (32 bytes).
func NewAESKeyCipher(hexKey string) (*AESKeyCipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decoding custody key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("custody key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return &AESKeyCipher{aead: aead}, nil
}

// Seal returns hex(iv || ciphertext || tag) with a fresh random IV.
func (c *AESKeyCipher) Seal(plaintext []byte) (string, error) {
	iv := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", apperror.ErrEncryptionFailure(fmt.Errorf("generating iv: %w", err))
	}
	return hex.EncodeToString(c.aead.Seal(iv, iv, plaintext, nil)), nil
}

// Open reverses Seal. Tampered input or a different key fails with
// DecryptionFailed.
func (c *AESKeyCipher) Open(sealed string) ([]byte, error) {
	raw, err := hex.DecodeString(sealed)
	if err != nil {
		return nil, apperror.ErrDecryptionFailed(fmt.Errorf("decoding sealed key: %w", err))
	}
	n := c.aead.NonceSize()
	if len(raw) < n+c.aead.Overhead() {
		return nil, apperror.ErrDecryptionFailed(fmt.Errorf("sealed key too short"))
	}
	plaintext, err := c.aead.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return nil, apperror.ErrDecryptionFailed(err)
	}
	return plaintext, nil
}
