package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subra-settlement/internal/adapter/metrics"
	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// defaultFeeLamports is quoted when the ledger cannot estimate a fee.
const defaultFeeLamports = 5000

// ExecutorConfig tunes the payment state machine.
type ExecutorConfig struct {
	ConfirmTimeout time.Duration
	// FeeBuffer is the SOL held back from native payments for fees.
	FeeBuffer decimal.Decimal
}

// PaymentExecutorImpl implements ports.PaymentExecutor.
type PaymentExecutorImpl struct {
	ledger  ports.LedgerClient
	builder *PaymentBuilder
	assets  *domain.AssetRegistry
	cfg     ExecutorConfig
	metrics *metrics.Metrics
	log     zerolog.Logger
	now     func() time.Time
}

// NewPaymentExecutor creates a new PaymentExecutorImpl.
func NewPaymentExecutor(
	ledger ports.LedgerClient,
	builder *PaymentBuilder,
	assets *domain.AssetRegistry,
	cfg ExecutorConfig,
	m *metrics.Metrics,
	log zerolog.Logger,
) *PaymentExecutorImpl {
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = 30 * time.Second
	}
	return &PaymentExecutorImpl{
		ledger:  ledger,
		builder: builder,
		assets:  assets,
		cfg:     cfg,
		metrics: m,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

type validatedPayment struct {
	recipient solana.PublicKey
	asset     domain.Asset
	units     uint64
}

// Execute runs one attempt: validate, check balance, build, sign, submit,
// confirm. Submission is never cancelled by ctx; confirmation is.
func (e *PaymentExecutorImpl) Execute(ctx context.Context, signer ports.Signer, req domain.PaymentRequest, observer ports.AttemptObserver) (*domain.PaymentResult, error) {
	payer := signer.PublicKey()
	log := e.log.With().
		Str("payer", payer.String()).
		Str("recipient", req.Recipient).
		Str("amount", req.Amount.String()).
		Str("currency", req.Currency).
		Logger()

	v, err := e.validate(payer, req)
	if err != nil {
		return e.fail(req, "", err), err
	}
	currency := v.asset.Symbol()
	log.Debug().Str("state", string(domain.AttemptValidated)).Uint64("units", v.units).Msg("payment validated")

	required := req.Amount.Add(e.bufferFor(v.asset))
	available, err := e.balance(ctx, payer, v.asset)
	if err != nil {
		return e.fail(req, domain.AttemptValidated, err), err
	}
	if available.LessThan(required) {
		e.metrics.InsufficientBalance(currency)
		err := apperror.ErrInsufficientBalance(required.String(), available.String(), currency)
		log.Info().Str("available", available.String()).Str("required", required.String()).Msg("insufficient balance")
		return e.fail(req, domain.AttemptValidated, err), err
	}

	transfer, err := e.builder.Build(ctx, payer, v.recipient, v.asset, req.Amount, req.Memo)
	if err != nil {
		err = asNetwork(err)
		return e.fail(req, domain.AttemptBalanceChecked, err), err
	}

	if err := signer.SignTransaction(ctx, transfer.Tx); err != nil {
		err = asInternal(err)
		return e.fail(req, domain.AttemptBuilt, err), err
	}
	sig := transfer.Tx.Signatures[0]
	log = log.With().Str("signature", sig.String()).Logger()

	raw, err := transfer.Tx.MarshalBinary()
	if err != nil {
		err = apperror.InternalError(fmt.Errorf("serialize transaction: %w", err))
		return e.fail(req, domain.AttemptBuilt, err), err
	}

	if observer != nil {
		if err := observer.OnSigned(ctx, sig, transfer.Block); err != nil {
			err = asInternal(err)
			log.Error().Err(err).Msg("failed to record signature, not submitting")
			return e.fail(req, domain.AttemptSigned, err), err
		}
	}

	// The node may already have the transaction once we start sending.
	if _, err := e.ledger.SubmitTransaction(context.WithoutCancel(ctx), raw); err != nil {
		failure := apperror.ErrSubmissionFailed(err)
		log.Warn().Err(err).Msg("submission rejected")
		return e.fail(req, domain.AttemptSigned, failure), failure
	}
	log.Debug().Str("state", string(domain.AttemptSubmitted)).Msg("transaction submitted")

	started := time.Now()
	conf, err := e.ledger.ConfirmTransaction(ctx, sig, e.cfg.ConfirmTimeout)
	if err != nil {
		conf = &ports.Confirmation{Status: ports.ConfirmationTimedOut, Reason: err.Error()}
	}
	e.metrics.ConfirmDuration(string(conf.Status), time.Since(started))

	switch conf.Status {
	case ports.ConfirmationConfirmed:
		log.Info().Uint64("slot", conf.Slot).Msg("payment settled")
		e.metrics.PaymentAttempt(currency, string(domain.OutcomeSettled))
		return domain.SettledResult(sig.String(), req.Amount, currency, e.now()), nil

	case ports.ConfirmationFailed:
		failure := apperror.ErrLedgerExecutionFailed(conf.Reason)
		log.Warn().Str("reason", conf.Reason).Msg("transaction failed on ledger")
		e.metrics.PaymentAttempt(currency, string(domain.OutcomeFailed))
		result := domain.FailedResult(domain.AttemptSubmitted, domain.PaymentFailure{
			Code:            failure.Code,
			Message:         failure.Message,
			LedgerReference: sig.String(),
		}, req.Amount, currency, e.now())
		return result, failure

	default:
		log.Warn().Dur("timeout", e.cfg.ConfirmTimeout).Msg("payment not final before timeout")
		e.metrics.PaymentAttempt(currency, string(domain.OutcomeIndeterminate))
		return domain.IndeterminateResult(sig.String(), req.Amount, currency, e.now()),
			apperror.ErrIndeterminate(sig.String())
	}
}

// Quote estimates the cost of a payment without signing anything.
func (e *PaymentExecutorImpl) Quote(ctx context.Context, payer solana.PublicKey, req domain.PaymentRequest) (*domain.Quote, error) {
	v, err := e.validate(payer, req)
	if err != nil {
		return nil, err
	}

	transfer, err := e.builder.Build(ctx, payer, v.recipient, v.asset, req.Amount, req.Memo)
	if err != nil {
		return nil, asNetwork(err)
	}

	fee := uint64(defaultFeeLamports)
	msg, err := transfer.Tx.Message.MarshalBinary()
	if err == nil {
		if estimated, ferr := e.ledger.EstimateFee(ctx, msg); ferr == nil {
			fee = estimated
		} else {
			e.log.Warn().Err(ferr).Msg("fee estimation failed, using default")
		}
	}

	networkFee := domain.FromBaseUnits(fee, domain.NativeDecimals)
	total := req.Amount
	if _, native := v.asset.(domain.NativeAsset); native {
		total = total.Add(networkFee)
	}
	return &domain.Quote{
		Amount:     req.Amount,
		Currency:   v.asset.Symbol(),
		NetworkFee: networkFee,
		FeeBuffer:  e.bufferFor(v.asset),
		Total:      total,
	}, nil
}

// Validate rejects a request that can never succeed: unknown currency,
// non-positive or unrepresentable amount, bad recipient, oversized memo.
func (e *PaymentExecutorImpl) Validate(payer solana.PublicKey, req domain.PaymentRequest) error {
	_, err := e.validate(payer, req)
	return err
}

func (e *PaymentExecutorImpl) validate(payer solana.PublicKey, req domain.PaymentRequest) (*validatedPayment, error) {
	asset, ok := e.assets.Resolve(req.Currency)
	if !ok {
		return nil, apperror.ErrUnsupportedCurrency(req.Currency)
	}
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidRequest("amount must be greater than zero")
	}
	recipient, err := solana.PublicKeyFromBase58(req.Recipient)
	if err != nil {
		return nil, apperror.ErrInvalidRequest("recipient is not a valid address")
	}
	if recipient.Equals(payer) {
		return nil, apperror.ErrInvalidRequest("recipient must differ from payer")
	}
	if len(req.Memo) > maxMemoBytes {
		return nil, apperror.ErrInvalidRequest(fmt.Sprintf("memo exceeds %d bytes", maxMemoBytes))
	}
	units, err := domain.ToBaseUnits(req.Amount, asset.Decimals())
	if err != nil {
		return nil, apperror.ErrInvalidAmount(fmt.Sprintf("%s: %s has %d decimals", err, asset.Symbol(), asset.Decimals()))
	}
	return &validatedPayment{recipient: recipient, asset: asset, units: units}, nil
}

func (e *PaymentExecutorImpl) balance(ctx context.Context, owner solana.PublicKey, asset domain.Asset) (decimal.Decimal, error) {
	switch a := asset.(type) {
	case domain.NativeAsset:
		lamports, err := e.ledger.GetNativeBalance(ctx, owner)
		if err != nil {
			return decimal.Zero, asNetwork(err)
		}
		return domain.FromBaseUnits(lamports, domain.NativeDecimals), nil
	case domain.TokenAsset:
		units, err := e.ledger.GetTokenBalance(ctx, owner, a.Mint)
		if err != nil {
			return decimal.Zero, asNetwork(err)
		}
		return domain.FromBaseUnits(units, a.Exponent), nil
	default:
		return decimal.Zero, apperror.ErrUnsupportedCurrency(asset.Symbol())
	}
}

func (e *PaymentExecutorImpl) bufferFor(asset domain.Asset) decimal.Decimal {
	if _, native := asset.(domain.NativeAsset); native {
		return e.cfg.FeeBuffer
	}
	return decimal.Zero
}

func (e *PaymentExecutorImpl) fail(req domain.PaymentRequest, stage domain.AttemptState, err error) *domain.PaymentResult {
	code, message := apperror.CodeInternal, err.Error()
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		code, message = appErr.Code, appErr.Message
	}
	currency := "unknown"
	if asset, ok := e.assets.Resolve(req.Currency); ok {
		currency = asset.Symbol()
	}
	e.metrics.PaymentAttempt(currency, string(domain.OutcomeFailed))
	return domain.FailedResult(stage, domain.PaymentFailure{Code: code, Message: message}, req.Amount, currency, e.now())
}

// asNetwork classifies unexpected ledger errors as network failures.
func asNetwork(err error) error {
	if apperror.CodeOf(err) != "" {
		return err
	}
	return apperror.ErrNetwork(err)
}

func asInternal(err error) error {
	if apperror.CodeOf(err) != "" {
		return err
	}
	return apperror.InternalError(err)
}
