package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletCustodyServiceImpl implements ports.WalletCustodyService.
type WalletCustodyServiceImpl struct {
	wallets    ports.AgentWalletRepository
	agents     ports.AgentRepository
	txRepo     ports.TransactionRepository
	cipher     ports.KeyCipher
	ledger     ports.LedgerClient
	executor   ports.PaymentExecutor
	balances   ports.BalanceCache // optional
	activity   ports.ActivityFeed // optional
	balanceTTL time.Duration
	log        zerolog.Logger
}

// NewWalletCustodyService creates a new WalletCustodyServiceImpl. balances and
// activity may be nil.
func NewWalletCustodyService(
	wallets ports.AgentWalletRepository,
	agents ports.AgentRepository,
	txRepo ports.TransactionRepository,
	cipher ports.KeyCipher,
	ledger ports.LedgerClient,
	executor ports.PaymentExecutor,
	balances ports.BalanceCache,
	activity ports.ActivityFeed,
	balanceTTL time.Duration,
	log zerolog.Logger,
) *WalletCustodyServiceImpl {
	return &WalletCustodyServiceImpl{
		wallets:    wallets,
		agents:     agents,
		txRepo:     txRepo,
		cipher:     cipher,
		ledger:     ledger,
		executor:   executor,
		balances:   balances,
		activity:   activity,
		balanceTTL: balanceTTL,
		log:        log,
	}
}

// CreateWallet generates a keypair for the agent and stores the sealed
// secret. An agent has at most one wallet.
func (s *WalletCustodyServiceImpl) CreateWallet(ctx context.Context, agentID uuid.UUID) (*domain.AgentWallet, error) {
	agent, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get agent: %w", err))
	}
	if agent == nil {
		return nil, apperror.ErrAgentNotFound()
	}

	existing, err := s.wallets.GetByAgentID(ctx, agentID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallet: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrWalletExists()
	}

	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate keypair: %w", err))
	}
	defer zeroKey(key)

	sealed, err := s.cipher.Seal(key)
	if err != nil {
		return nil, asEncryption(err)
	}

	now := time.Now().UTC()
	wallet := &domain.AgentWallet{
		AgentID:      agentID,
		Address:      key.PublicKey().String(),
		EncryptedKey: sealed,
		Balance:      decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	inserted, err := s.wallets.Create(ctx, wallet)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create wallet: %w", err))
	}
	if !inserted {
		return nil, apperror.ErrWalletExists()
	}

	s.log.Info().Str("agent_id", agentID.String()).Str("address", wallet.Address).Msg("agent wallet created")
	s.publish(ctx, domain.NewActivity(agentID, domain.ActivityWalletCreated, map[string]any{
		"address": wallet.Address,
	}))
	return wallet, nil
}

// GetWallet returns the wallet with the cached balance when one is fresh.
func (s *WalletCustodyServiceImpl) GetWallet(ctx context.Context, agentID uuid.UUID) (*domain.AgentWallet, error) {
	wallet, err := s.getWallet(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if s.balances != nil {
		cached, err := s.balances.Get(ctx, agentID)
		if err != nil {
			s.log.Warn().Err(err).Str("agent_id", agentID.String()).Msg("balance cache read failed")
		} else if cached != nil {
			wallet.Balance = *cached
		}
	}
	return wallet, nil
}

// RefreshBalance reads the SOL balance from the ledger and writes it through
// to the stored wallet and the cache.
func (s *WalletCustodyServiceImpl) RefreshBalance(ctx context.Context, agentID uuid.UUID) (decimal.Decimal, error) {
	wallet, err := s.getWallet(ctx, agentID)
	if err != nil {
		return decimal.Zero, err
	}
	owner, err := solana.PublicKeyFromBase58(wallet.Address)
	if err != nil {
		return decimal.Zero, apperror.InternalError(fmt.Errorf("stored address: %w", err))
	}

	lamports, err := s.ledger.GetNativeBalance(ctx, owner)
	if err != nil {
		return decimal.Zero, asNetwork(err)
	}
	balance := domain.FromBaseUnits(lamports, domain.NativeDecimals)

	if err := s.wallets.UpdateBalance(ctx, agentID, balance); err != nil {
		s.log.Warn().Err(err).Str("agent_id", agentID.String()).Msg("failed to store refreshed balance")
	}
	if s.balances != nil {
		if err := s.balances.Set(ctx, agentID, balance, s.balanceTTL); err != nil {
			s.log.Warn().Err(err).Str("agent_id", agentID.String()).Msg("balance cache write failed")
		}
	}
	return balance, nil
}

// WithSigningKey opens the agent key, checks it against the stored address
// and hands it to fn. The key bytes are zeroed when fn returns.
func (s *WalletCustodyServiceImpl) WithSigningKey(ctx context.Context, agentID uuid.UUID, fn func(solana.PrivateKey) error) error {
	wallet, err := s.getWallet(ctx, agentID)
	if err != nil {
		return err
	}

	raw, err := s.cipher.Open(wallet.EncryptedKey)
	if err != nil {
		return asDecryption(err)
	}
	key := solana.PrivateKey(raw)
	defer zeroKey(key)

	if len(key) != 64 || key.PublicKey().String() != wallet.Address {
		return apperror.ErrDecryptionFailed(errors.New("decrypted key does not match wallet address"))
	}
	return fn(key)
}

// Signer returns a signer that opens the agent key only while signing.
func (s *WalletCustodyServiceImpl) Signer(ctx context.Context, agentID uuid.UUID) (ports.Signer, error) {
	wallet, err := s.getWallet(ctx, agentID)
	if err != nil {
		return nil, err
	}
	address, err := solana.PublicKeyFromBase58(wallet.Address)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("stored address: %w", err))
	}
	return &agentSigner{custody: s, agentID: agentID, address: address}, nil
}

// FundWallet moves SOL from an external funding key into the agent wallet.
// The funding key is used for this one transfer and never stored.
func (s *WalletCustodyServiceImpl) FundWallet(ctx context.Context, agentID uuid.UUID, funderKey string, amount decimal.Decimal) (string, error) {
	wallet, err := s.getWallet(ctx, agentID)
	if err != nil {
		return "", err
	}

	key, err := ParsePrivateKey(funderKey)
	if err != nil {
		return "", apperror.ErrInvalidRequest(err.Error())
	}
	defer zeroKey(key)
	funder := NewKeypairSigner(key)

	req := domain.PaymentRequest{
		Recipient: wallet.Address,
		Amount:    amount,
		Currency:  domain.NativeSymbol,
	}
	if err := s.executor.Validate(funder.PublicKey(), req); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:          uuid.New(),
		AgentID:     agentID,
		Type:        domain.TransactionTypeFunding,
		Status:      domain.TransactionStatusPending,
		Amount:      amount,
		Currency:    domain.NativeSymbol,
		FromAddress: funder.PublicKey().String(),
		ToAddress:   wallet.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.txRepo.Create(ctx, txn); err != nil {
		return "", apperror.ErrDatabaseError(fmt.Errorf("create funding record: %w", err))
	}

	result, execErr := s.executor.Execute(ctx, funder, req, attemptRecorder{repo: s.txRepo, txnID: txn.ID})
	if err := s.txRepo.UpdateOutcome(context.WithoutCancel(ctx), txn.ID, outcomeOf(result)); err != nil {
		s.log.Error().Err(err).Str("transaction_id", txn.ID.String()).Msg("failed to record funding outcome")
	}
	if execErr != nil {
		return result.Signature, execErr
	}

	if _, err := s.RefreshBalance(ctx, agentID); err != nil {
		s.log.Warn().Err(err).Str("agent_id", agentID.String()).Msg("balance refresh after funding failed")
	}
	s.publish(ctx, domain.NewActivity(agentID, domain.ActivityWalletFunded, map[string]any{
		"amount":    amount.String(),
		"signature": result.Signature,
	}))
	s.log.Info().Str("agent_id", agentID.String()).Str("signature", result.Signature).Msg("agent wallet funded")
	return result.Signature, nil
}

func (s *WalletCustodyServiceImpl) getWallet(ctx context.Context, agentID uuid.UUID) (*domain.AgentWallet, error) {
	wallet, err := s.wallets.GetByAgentID(ctx, agentID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

func (s *WalletCustodyServiceImpl) publish(ctx context.Context, a domain.Activity) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Publish(ctx, a); err != nil {
		s.log.Warn().Err(err).Str("agent_id", a.AgentID.String()).Str("type", a.Type).Msg("activity publish failed")
	}
}

// agentSigner signs on behalf of a custodial wallet.
type agentSigner struct {
	custody *WalletCustodyServiceImpl
	agentID uuid.UUID
	address solana.PublicKey
}

func (a *agentSigner) PublicKey() solana.PublicKey {
	return a.address
}

func (a *agentSigner) SignTransaction(ctx context.Context, tx *solana.Transaction) error {
	return a.custody.WithSigningKey(ctx, a.agentID, func(key solana.PrivateKey) error {
		return signWith(tx, key)
	})
}

func asEncryption(err error) error {
	if apperror.CodeOf(err) != "" {
		return err
	}
	return apperror.ErrEncryptionFailure(err)
}

func asDecryption(err error) error {
	if apperror.CodeOf(err) != "" {
		return err
	}
	return apperror.ErrDecryptionFailed(err)
}
