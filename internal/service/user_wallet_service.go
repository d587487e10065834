package service

import (
	"context"
	"fmt"

	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
)

const minPasswordLength = 8

// UserWalletServiceImpl implements ports.UserWalletService. Keys are
// generated, sealed with the user's password and returned; nothing is stored.
type UserWalletServiceImpl struct {
	vault ports.PasswordVault
	log   zerolog.Logger
}

// NewUserWalletService creates a new UserWalletServiceImpl.
func NewUserWalletService(vault ports.PasswordVault, log zerolog.Logger) *UserWalletServiceImpl {
	return &UserWalletServiceImpl{vault: vault, log: log}
}

// CreateUserWallet generates a keypair sealed under password.
func (s *UserWalletServiceImpl) CreateUserWallet(_ context.Context, password string) (*domain.UserWallet, error) {
	if len(password) < minPasswordLength {
		return nil, apperror.ErrInvalidRequest(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate keypair: %w", err))
	}
	defer zeroKey(key)

	sealed, err := s.vault.Seal(key, password)
	if err != nil {
		return nil, asEncryption(err)
	}

	wallet := &domain.UserWallet{Address: key.PublicKey().String(), SealedKey: sealed}
	s.log.Info().Str("address", wallet.Address).Msg("user wallet created")
	return wallet, nil
}

// OpenFundingKey unseals a user wallet key and returns it base58 encoded for
// a single funding transfer.
func (s *UserWalletServiceImpl) OpenFundingKey(_ context.Context, sealedKey, password string) (string, error) {
	raw, err := s.vault.Open(sealedKey, password)
	if err != nil {
		return "", asDecryption(err)
	}
	key := solana.PrivateKey(raw)
	defer zeroKey(key)

	if len(key) != 64 {
		return "", apperror.ErrDecryptionFailed(fmt.Errorf("unsealed key has %d bytes", len(key)))
	}
	return key.String(), nil
}
