package ledger

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"subra-settlement/internal/adapter/metrics"
	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"

	"github.com/avast/retry-go/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// errNotFinal keeps the confirmation loop polling.
var errNotFinal = errors.New("signature not final")

var (
	_ ports.LedgerClient  = (*RPCClient)(nil)
	_ ports.HealthChecker = (*RPCClient)(nil)
)

// Config tunes the RPC client.
type Config struct {
	Commitment        string
	PollInterval      time.Duration
	RequestsPerSecond float64
	Burst             int
	BreakerFailures   uint32
	BreakerTimeout    time.Duration
}

// RPCClient implements ports.LedgerClient over Solana JSON-RPC. Every call
// goes through a token-bucket limiter and a circuit breaker. Nothing is
// retried except the read-only confirmation poll.
type RPCClient struct {
	rpc          *rpc.Client
	commitment   rpc.CommitmentType
	pollInterval time.Duration
	limiter      *rate.Limiter
	cb           *gobreaker.CircuitBreaker
	metrics      *metrics.Metrics
	log          zerolog.Logger
}

// NewRPCClient creates a client for the given endpoint.
func NewRPCClient(endpoint string, cfg Config, m *metrics.Metrics, log zerolog.Logger) *RPCClient {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	failures := cfg.BreakerFailures
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "solana-rpc",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// A missing account or transaction is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, rpc.ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("ledger circuit breaker state changed")
		},
	})

	return &RPCClient{
		rpc:          rpc.New(endpoint),
		commitment:   ParseCommitment(cfg.Commitment),
		pollInterval: cfg.PollInterval,
		limiter:      rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cb:           cb,
		metrics:      m,
		log:          log,
	}
}

// ParseCommitment maps a config value to an RPC commitment. Unknown values
// mean "confirmed".
func ParseCommitment(s string) rpc.CommitmentType {
	switch strings.ToLower(s) {
	case "processed":
		return rpc.CommitmentProcessed
	case "finalized":
		return rpc.CommitmentFinalized
	default:
		return rpc.CommitmentConfirmed
	}
}

// call runs fn under the limiter and breaker. rpc.ErrNotFound passes through
// unwrapped; every other failure becomes a NetworkError.
func (c *RPCClient) call(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		c.metrics.LedgerRequest(method, err)
		return apperror.ErrNetwork(fmt.Errorf("%s: rate limiter: %w", method, err))
	}

	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, fn(ctx)
	})
	c.metrics.LedgerRequest(method, err)

	if err == nil {
		return nil
	}
	if errors.Is(err, rpc.ErrNotFound) {
		return err
	}
	return apperror.ErrNetwork(fmt.Errorf("%s: %w", method, err))
}

// GetNativeBalance returns the owner's balance in lamports.
func (c *RPCClient) GetNativeBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	var out *rpc.GetBalanceResult
	err := c.call(ctx, "getBalance", func(ctx context.Context) error {
		var err error
		out, err = c.rpc.GetBalance(ctx, owner, c.commitment)
		return err
	})
	if err != nil {
		return 0, err
	}
	return out.Value, nil
}

// GetTokenBalance returns the balance of the owner's associated token account
// in base units, or 0 when the account has not been created.
func (c *RPCClient) GetTokenBalance(ctx context.Context, owner, mint solana.PublicKey) (uint64, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return 0, fmt.Errorf("deriving token account: %w", err)
	}

	exists, err := c.AccountExists(ctx, ata)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}

	var out *rpc.GetTokenAccountBalanceResult
	err = c.call(ctx, "getTokenAccountBalance", func(ctx context.Context) error {
		var err error
		out, err = c.rpc.GetTokenAccountBalance(ctx, ata, c.commitment)
		return err
	})
	if err != nil {
		return 0, err
	}
	if out.Value == nil {
		return 0, nil
	}

	amount, err := strconv.ParseUint(out.Value.Amount, 10, 64)
	if err != nil {
		return 0, apperror.ErrNetwork(fmt.Errorf("parsing token amount %q: %w", out.Value.Amount, err))
	}
	return amount, nil
}

// GetTokenDecimals reads the decimal exponent from the mint.
func (c *RPCClient) GetTokenDecimals(ctx context.Context, mint solana.PublicKey) (uint8, error) {
	var out *rpc.GetTokenSupplyResult
	err := c.call(ctx, "getTokenSupply", func(ctx context.Context) error {
		var err error
		out, err = c.rpc.GetTokenSupply(ctx, mint, c.commitment)
		return err
	})
	if err != nil {
		return 0, err
	}
	if out.Value == nil {
		return 0, apperror.ErrNetwork(fmt.Errorf("getTokenSupply: empty result for %s", mint))
	}
	return out.Value.Decimals, nil
}

// AccountExists reports whether the account is allocated on the ledger.
func (c *RPCClient) AccountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	err := c.call(ctx, "getAccountInfo", func(ctx context.Context) error {
		_, err := c.rpc.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
			Commitment: c.commitment,
		})
		return err
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetLatestBlockContext fetches a fresh blockhash and its expiry height.
func (c *RPCClient) GetLatestBlockContext(ctx context.Context) (*ports.BlockContext, error) {
	var out *rpc.GetLatestBlockhashResult
	err := c.call(ctx, "getLatestBlockhash", func(ctx context.Context) error {
		var err error
		out, err = c.rpc.GetLatestBlockhash(ctx, c.commitment)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out.Value == nil {
		return nil, apperror.ErrNetwork(errors.New("getLatestBlockhash: empty result"))
	}
	return &ports.BlockContext{
		Blockhash:            out.Value.Blockhash,
		LastValidBlockHeight: out.Value.LastValidBlockHeight,
	}, nil
}

// GetBlockHeight returns the current block height at the configured commitment.
func (c *RPCClient) GetBlockHeight(ctx context.Context) (uint64, error) {
	var height uint64
	err := c.call(ctx, "getBlockHeight", func(ctx context.Context) error {
		var err error
		height, err = c.rpc.GetBlockHeight(ctx, c.commitment)
		return err
	})
	return height, err
}

// EstimateFee asks the node what a compiled message would cost in lamports.
func (c *RPCClient) EstimateFee(ctx context.Context, message []byte) (uint64, error) {
	var out *rpc.GetFeeForMessageResult
	err := c.call(ctx, "getFeeForMessage", func(ctx context.Context) error {
		var err error
		out, err = c.rpc.GetFeeForMessage(ctx, base64.StdEncoding.EncodeToString(message), c.commitment)
		return err
	})
	if err != nil {
		return 0, err
	}
	if out.Value == nil {
		return 0, apperror.ErrNetwork(errors.New("getFeeForMessage: blockhash expired or unknown"))
	}
	return *out.Value, nil
}

// SubmitTransaction broadcasts a signed transaction once, with preflight.
func (c *RPCClient) SubmitTransaction(ctx context.Context, raw []byte) (solana.Signature, error) {
	var sig solana.Signature
	err := c.call(ctx, "sendTransaction", func(ctx context.Context) error {
		var err error
		sig, err = c.rpc.SendRawTransactionWithOpts(ctx, raw, rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: c.commitment,
		})
		return err
	})
	if err != nil {
		return solana.Signature{}, err
	}
	return sig, nil
}

// ConfirmTransaction polls the signature status every poll interval until
// the configured commitment is reached, the ledger reports an execution
// error, or timeout elapses. Poll failures are treated as "not yet known".
func (c *RPCClient) ConfirmTransaction(ctx context.Context, sig solana.Signature, timeout time.Duration) (*ports.Confirmation, error) {
	pollCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var final *ports.Confirmation
	interval := c.pollInterval

	r := retry.New(
		retry.Context(pollCtx),
		retry.Attempts(uint(timeout/interval)+2),
		retry.DelayType(func(n uint, err error, config retry.DelayContext) time.Duration {
			return interval
		}),
	)

	_ = r.Do(func() error {
		conf, err := c.signatureStatus(pollCtx, sig)
		if err != nil {
			c.log.Debug().Err(err).Str("signature", sig.String()).Msg("signature status poll failed")
			return err
		}
		if conf == nil {
			return errNotFinal
		}
		final = conf
		return nil
	})

	if final == nil {
		return &ports.Confirmation{Status: ports.ConfirmationTimedOut}, nil
	}
	return final, nil
}

// signatureStatus returns nil while the signature has not reached the
// configured commitment.
func (c *RPCClient) signatureStatus(ctx context.Context, sig solana.Signature) (*ports.Confirmation, error) {
	var out *rpc.GetSignatureStatusesResult
	err := c.call(ctx, "getSignatureStatuses", func(ctx context.Context) error {
		var err error
		out, err = c.rpc.GetSignatureStatuses(ctx, true, sig)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return nil, nil
	}

	status := out.Value[0]
	if status.Err != nil {
		return &ports.Confirmation{
			Status: ports.ConfirmationFailed,
			Reason: describeLedgerError(status.Err),
			Slot:   status.Slot,
		}, nil
	}
	if !reached(status.ConfirmationStatus, c.commitment) {
		return nil, nil
	}
	return &ports.Confirmation{Status: ports.ConfirmationConfirmed, Slot: status.Slot}, nil
}

func reached(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	switch want {
	case rpc.CommitmentFinalized:
		return status == rpc.ConfirmationStatusFinalized
	case rpc.CommitmentProcessed:
		return status != ""
	default:
		return status == rpc.ConfirmationStatusConfirmed || status == rpc.ConfirmationStatusFinalized
	}
}

// GetTransaction loads a landed transaction. Returns
// ports.ErrTransactionNotFound when the ledger does not know the signature.
func (c *RPCClient) GetTransaction(ctx context.Context, sig solana.Signature) (*ports.SettledTransaction, error) {
	commitment := c.commitment
	if commitment == rpc.CommitmentProcessed {
		commitment = rpc.CommitmentConfirmed
	}
	maxVersion := uint64(0)

	var out *rpc.GetTransactionResult
	err := c.call(ctx, "getTransaction", func(ctx context.Context) error {
		var err error
		out, err = c.rpc.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
			Encoding:                       solana.EncodingBase64,
			Commitment:                     commitment,
			MaxSupportedTransactionVersion: &maxVersion,
		})
		return err
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, ports.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	if out == nil || out.Transaction == nil {
		return nil, ports.ErrTransactionNotFound
	}

	tx, err := out.Transaction.GetTransaction()
	if err != nil {
		return nil, fmt.Errorf("decoding transaction %s: %w", sig, err)
	}

	settled := &ports.SettledTransaction{
		Signature:   sig,
		Slot:        out.Slot,
		AccountKeys: tx.Message.AccountKeys,
	}
	if out.BlockTime != nil {
		t := out.BlockTime.Time().UTC()
		settled.BlockTime = &t
	}
	if out.Meta != nil {
		if out.Meta.Err != nil {
			settled.Err = describeLedgerError(out.Meta.Err)
		}
		settled.Fee = out.Meta.Fee
		settled.PreBalances = out.Meta.PreBalances
		settled.PostBalances = out.Meta.PostBalances
		settled.PreTokenBalances = tokenBalances(out.Meta.PreTokenBalances)
		settled.PostTokenBalances = tokenBalances(out.Meta.PostTokenBalances)
	}
	return settled, nil
}

func tokenBalances(in []rpc.TokenBalance) []ports.TokenBalance {
	out := make([]ports.TokenBalance, 0, len(in))
	for _, b := range in {
		if b.Owner == nil || b.UiTokenAmount == nil {
			continue
		}
		amount, err := strconv.ParseUint(b.UiTokenAmount.Amount, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, ports.TokenBalance{Owner: *b.Owner, Mint: b.Mint, Amount: amount})
	}
	return out
}

// describeLedgerError renders the ledger's error object verbatim.
func describeLedgerError(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// Ping checks node health.
func (c *RPCClient) Ping(ctx context.Context) error {
	return c.call(ctx, "getHealth", func(ctx context.Context) error {
		_, err := c.rpc.GetHealth(ctx)
		return err
	})
}

// Name identifies the client in health reports.
func (c *RPCClient) Name() string {
	return "solana-rpc"
}
