package ports

import (
	"context"
	"errors"
	"time"

	"subra-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AgentRepository reads agents owned by the agent-management API.
type AgentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error)
}

// AgentWalletRepository persists custodial agent wallets.
type AgentWalletRepository interface {
	// Create inserts the wallet unless the agent already has one. It reports
	// whether a row was inserted; an existing row is never overwritten.
	Create(ctx context.Context, wallet *domain.AgentWallet) (bool, error)
	GetByAgentID(ctx context.Context, agentID uuid.UUID) (*domain.AgentWallet, error)
	UpdateBalance(ctx context.Context, agentID uuid.UUID, balance decimal.Decimal) error
}

// ErrDuplicateTask is returned by TransactionRepository.Create when the task
// id already has a record.
var ErrDuplicateTask = errors.New("task already has a transaction")

// TransactionRepository persists payment attempt records.
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByTaskID(ctx context.Context, taskID string) (*domain.Transaction, error)
	// AttachSignature stores the signature and expiry height before broadcast.
	AttachSignature(ctx context.Context, id uuid.UUID, signature string, lastValidBlockHeight uint64) error
	UpdateOutcome(ctx context.Context, id uuid.UUID, outcome domain.TransactionOutcome) error
	// ListUnsettled returns UNCONFIRMED records and PENDING records older than
	// olderThan, oldest first.
	ListUnsettled(ctx context.Context, olderThan time.Time, limit int) ([]domain.Transaction, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error)
}

// SkillRepository persists agent skill experience.
// Methods accepting pgx.Tx are used inside transaction blocks for row locking.
type SkillRepository interface {
	GetForUpdate(ctx context.Context, tx pgx.Tx, agentID uuid.UUID, skill domain.SkillType) (*domain.AgentSkill, error)
	Update(ctx context.Context, tx pgx.Tx, skill *domain.AgentSkill) error
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]domain.AgentSkill, error)
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
