package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"

	"github.com/gagliardetto/solana-go"
)

var _ ports.Signer = (*KeypairSigner)(nil)

// KeypairSigner signs with a key held in memory by the caller.
type KeypairSigner struct {
	key solana.PrivateKey
}

// NewKeypairSigner wraps key. The caller owns and zeroes the key bytes.
func NewKeypairSigner(key solana.PrivateKey) *KeypairSigner {
	return &KeypairSigner{key: key}
}

// PublicKey returns the address of the wrapped key.
func (s *KeypairSigner) PublicKey() solana.PublicKey {
	return s.key.PublicKey()
}

// SignTransaction signs tx as its fee payer.
func (s *KeypairSigner) SignTransaction(_ context.Context, tx *solana.Transaction) error {
	return signWith(tx, s.key)
}

func signWith(tx *solana.Transaction, key solana.PrivateKey) error {
	owner := key.PublicKey()
	_, err := tx.Sign(func(pk solana.PublicKey) *solana.PrivateKey {
		if pk.Equals(owner) {
			return &key
		}
		return nil
	})
	if err != nil {
		return apperror.InternalError(fmt.Errorf("sign transaction: %w", err))
	}
	return nil
}

// ParsePrivateKey accepts a 64-byte secret key as base58 or base64.
func ParsePrivateKey(material string) (solana.PrivateKey, error) {
	material = strings.TrimSpace(material)
	if material == "" {
		return nil, errors.New("empty key material")
	}
	if key, err := solana.PrivateKeyFromBase58(material); err == nil && len(key) == 64 {
		return key, nil
	}
	raw, err := base64.StdEncoding.DecodeString(material)
	if err != nil || len(raw) != 64 {
		return nil, errors.New("key must be a 64-byte secret in base58 or base64")
	}
	return solana.PrivateKey(raw), nil
}

// zeroKey overwrites key material in place.
func zeroKey(key solana.PrivateKey) {
	clear(key)
}
