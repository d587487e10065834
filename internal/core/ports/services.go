package ports

import (
	"context"
	"time"

	"subra-settlement/internal/core/domain"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KeyCipher seals and opens agent key material with the process secret.
type KeyCipher interface {
	Seal(plaintext []byte) (string, error)
	Open(sealed string) ([]byte, error)
}

// PasswordVault seals user wallet keys with a user-supplied password.
type PasswordVault interface {
	Seal(secret []byte, password string) (string, error)
	Open(sealed string, password string) ([]byte, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID uuid.UUID) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID uuid.UUID
}

// BalanceCache stores refreshed agent balances. Optional for the core.
type BalanceCache interface {
	Get(ctx context.Context, agentID uuid.UUID) (*decimal.Decimal, error) // nil when absent
	Set(ctx context.Context, agentID uuid.UUID, balance decimal.Decimal, ttl time.Duration) error
}

// OutcomeCache is the fast-path idempotency store for purchase tasks, keyed
// by agent and task id.
type OutcomeCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // nil when absent
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// AgentLocker serializes payment attempts per agent.
type AgentLocker interface {
	// Acquire returns a release token, or "" when the agent is already locked.
	Acquire(ctx context.Context, agentID uuid.UUID, ttl time.Duration) (string, error)
	Release(ctx context.Context, agentID uuid.UUID, token string) error
}

// JobLocker keeps a scheduled job to one replica at a time.
type JobLocker interface {
	// TryLock returns a release token, or "" when another replica holds the job.
	TryLock(ctx context.Context, job string, ttl time.Duration) (string, error)
	Unlock(ctx context.Context, job, token string) error
}

// ActivityFeed publishes agent activity and keeps a bounded history.
type ActivityFeed interface {
	Publish(ctx context.Context, activity domain.Activity) error
	History(ctx context.Context, agentID uuid.UUID, limit int) ([]domain.Activity, error)
}

// ActivitySubscriber streams live agent activity. The channel closes when ctx
// is done.
type ActivitySubscriber interface {
	Subscribe(ctx context.Context, agentID uuid.UUID) (<-chan domain.Activity, error)
}

// --- Service Ports (Business Logic) ---

// Signer signs a transaction as its fee payer.
type Signer interface {
	PublicKey() solana.PublicKey
	SignTransaction(ctx context.Context, tx *solana.Transaction) error
}

// AttemptObserver is told the signature of an attempt after signing and
// before submission.
type AttemptObserver interface {
	OnSigned(ctx context.Context, sig solana.Signature, block BlockContext) error
}

// PaymentExecutor settles one payment request. The returned result is never
// nil; the error is non-nil exactly when the result is not a success and
// carries the apperror classification.
type PaymentExecutor interface {
	Execute(ctx context.Context, signer Signer, req domain.PaymentRequest, observer AttemptObserver) (*domain.PaymentResult, error)
	Quote(ctx context.Context, payer solana.PublicKey, req domain.PaymentRequest) (*domain.Quote, error)
	// Validate runs the checks that need no ledger access.
	Validate(payer solana.PublicKey, req domain.PaymentRequest) error
}

// WalletCustodyService manages custodial agent wallets.
type WalletCustodyService interface {
	CreateWallet(ctx context.Context, agentID uuid.UUID) (*domain.AgentWallet, error)
	GetWallet(ctx context.Context, agentID uuid.UUID) (*domain.AgentWallet, error)
	RefreshBalance(ctx context.Context, agentID uuid.UUID) (decimal.Decimal, error)
	// WithSigningKey gives fn the decrypted key; the bytes are zeroed after fn returns.
	WithSigningKey(ctx context.Context, agentID uuid.UUID, fn func(solana.PrivateKey) error) error
	Signer(ctx context.Context, agentID uuid.UUID) (Signer, error)
	FundWallet(ctx context.Context, agentID uuid.UUID, funderKey string, amount decimal.Decimal) (string, error)
}

// UserWalletService manages password-sealed user wallets.
type UserWalletService interface {
	CreateUserWallet(ctx context.Context, password string) (*domain.UserWallet, error)
	// OpenFundingKey unseals a user wallet key into base58 key material.
	OpenFundingKey(ctx context.Context, sealedKey, password string) (string, error)
}

// PurchaseService runs purchase tasks end to end.
type PurchaseService interface {
	ExecutePurchase(ctx context.Context, intent domain.PurchaseIntent) (*domain.PurchaseOutcome, error)
	ListTransactions(ctx context.Context, agentID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error)
	ActivityHistory(ctx context.Context, agentID uuid.UUID, limit int) ([]domain.Activity, error)
}

// PaymentVerifier checks settled transactions against expectations.
type PaymentVerifier interface {
	Verify(ctx context.Context, req domain.VerificationRequest) (*domain.Verification, error)
}

// ExperienceService awards skill experience.
type ExperienceService interface {
	Award(ctx context.Context, agentID uuid.UUID, skill domain.SkillType, xp int) (*domain.AgentSkill, error)
	// RecordTask awards the experience of a search or compare task over n products.
	RecordTask(ctx context.Context, agentID uuid.UUID, skill domain.SkillType, products int) (*domain.AgentSkill, error)
	ListSkills(ctx context.Context, agentID uuid.UUID) ([]domain.AgentSkill, error)
}

// ReconcileSummary counts the records touched by one reconciliation pass.
type ReconcileSummary struct {
	Examined  int `json:"examined"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Pending   int `json:"pending"`
}

// Reconciler resolves unsettled transaction records by signature lookup.
type Reconciler interface {
	ReconcileOnce(ctx context.Context) (*ReconcileSummary, error)
}

// AuditService records audit entries.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
