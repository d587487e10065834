package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for password-derived sealing keys.
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64MB
	argon2Threads = 4
	argon2KeyLen  = 32
	argon2SaltLen = 16
)

var _ ports.PasswordVault = (*Argon2Vault)(nil)

// Argon2Vault seals secrets with an AES-256-GCM key derived from a password
// with Argon2id. The salt, nonce and parameters travel with the ciphertext.
type Argon2Vault struct{}

// NewArgon2Vault creates a new password vault.
func NewArgon2Vault() *Argon2Vault {
	return &Argon2Vault{}
}

// Seal returns format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<nonce||ciphertext>
func (v *Argon2Vault) Seal(secret []byte, password string) (string, error) {
	if password == "" {
		return "", apperror.ErrInvalidRequest("password is required")
	}
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", apperror.ErrEncryptionFailure(fmt.Errorf("generating salt: %w", err))
	}

	params := argon2Params{memory: argon2Memory, time: argon2Time, threads: argon2Threads}
	aead, err := deriveAEAD(password, salt, params)
	if err != nil {
		return "", apperror.ErrEncryptionFailure(err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", apperror.ErrEncryptionFailure(fmt.Errorf("generating nonce: %w", err))
	}
	sealed := aead.Seal(nonce, nonce, secret, nil)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		params.memory, params.time, params.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sealed),
	), nil
}

// Open fails with DecryptionFailed on a wrong password or tampered input.
func (v *Argon2Vault) Open(sealed string, password string) ([]byte, error) {
	salt, payload, params, err := decodeSealed(sealed)
	if err != nil {
		return nil, apperror.ErrDecryptionFailed(err)
	}
	aead, err := deriveAEAD(password, salt, params)
	if err != nil {
		return nil, apperror.ErrDecryptionFailed(err)
	}
	n := aead.NonceSize()
	if len(payload) < n+aead.Overhead() {
		return nil, apperror.ErrDecryptionFailed(fmt.Errorf("sealed payload too short"))
	}
	secret, err := aead.Open(nil, payload[:n], payload[n:], nil)
	if err != nil {
		return nil, apperror.ErrDecryptionFailed(err)
	}
	return secret, nil
}

type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
}

func deriveAEAD(password string, salt []byte, p argon2Params) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, argon2KeyLen)
	defer clear(key)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

func decodeSealed(sealed string) (salt, payload []byte, params argon2Params, err error) {
	parts := strings.Split(sealed, "$")
	if len(parts) != 6 {
		return nil, nil, params, fmt.Errorf("invalid sealed format: expected 6 parts, got %d", len(parts))
	}
	if parts[1] != "argon2id" {
		return nil, nil, params, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, params, fmt.Errorf("parsing version: %w", err)
	}
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return nil, nil, params, fmt.Errorf("parsing params: %w", err)
	}
	if params.memory > 1<<20 || params.time > 10 || params.threads == 0 {
		return nil, nil, params, fmt.Errorf("argon2 parameters out of range")
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, params, fmt.Errorf("decoding salt: %w", err)
	}
	if payload, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, nil, params, fmt.Errorf("decoding payload: %w", err)
	}
	return salt, payload, params, nil
}
