package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation    = "23505"
	taskIDUniqueIndex  = "transactions_task_id_key"
	transactionColumns = `id, agent_id, task_id, type, status, amount, currency, from_address, to_address,
		signature, last_valid_block_height, failure_reason, metadata, created_at, updated_at`
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new record. A second record for the same task id fails
// with ports.ErrDuplicateTask.
func (r *TransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.AgentID, t.TaskID, t.Type, t.Status, t.Amount, t.Currency,
		t.FromAddress, t.ToAddress, t.Signature, heightParam(t.LastValidBlockHeight),
		t.FailureReason, t.Metadata, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == taskIDUniqueIndex {
			return ports.ErrDuplicateTask
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a record by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByTaskID fetches the record of a purchase task.
func (r *TransactionRepo) GetByTaskID(ctx context.Context, taskID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE task_id = $1`
	return scanTransaction(r.pool.QueryRow(ctx, query, taskID))
}

// AttachSignature stores the signature of a pending record. It must run
// before the transaction is broadcast.
func (r *TransactionRepo) AttachSignature(ctx context.Context, id uuid.UUID, signature string, lastValidBlockHeight uint64) error {
	query := `UPDATE transactions SET signature = $1, last_valid_block_height = $2, updated_at = NOW()
		WHERE id = $3 AND status = 'PENDING'`

	tag, err := r.pool.Exec(ctx, query, signature, int64(lastValidBlockHeight), id)
	if err != nil {
		return fmt.Errorf("attach signature: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pending transaction not found: %s", id)
	}
	return nil
}

// UpdateOutcome moves a PENDING or UNCONFIRMED record to its new status. A
// record that is already final is not touched.
func (r *TransactionRepo) UpdateOutcome(ctx context.Context, id uuid.UUID, outcome domain.TransactionOutcome) error {
	query := `UPDATE transactions
		SET status = $1, signature = COALESCE($2, signature), failure_reason = $3, updated_at = NOW()
		WHERE id = $4 AND status IN ('PENDING', 'UNCONFIRMED')`

	tag, err := r.pool.Exec(ctx, query, outcome.Status, outcome.Signature, outcome.FailureReason, id)
	if err != nil {
		return fmt.Errorf("update transaction outcome: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s not found or already final", id)
	}
	return nil
}

// ListUnsettled returns every UNCONFIRMED record and the PENDING records
// created before olderThan, oldest first.
func (r *TransactionRepo) ListUnsettled(ctx context.Context, olderThan time.Time, limit int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE status = 'UNCONFIRMED' OR (status = 'PENDING' AND created_at < $1)
		ORDER BY created_at ASC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("list unsettled transactions: %w", err)
	}
	return collectTransactions(rows)
}

// ListByAgent pages an agent's records, newest first.
func (r *TransactionRepo) ListByAgent(ctx context.Context, agentID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE agent_id = $1`, agentID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE agent_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	txns, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, nil
}

// scanTransaction scans one row. It returns nil, nil on pgx.ErrNoRows.
func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	var height *int64
	err := row.Scan(
		&t.ID, &t.AgentID, &t.TaskID, &t.Type, &t.Status, &t.Amount, &t.Currency,
		&t.FromAddress, &t.ToAddress, &t.Signature, &height,
		&t.FailureReason, &t.Metadata, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	if height != nil {
		h := uint64(*height)
		t.LastValidBlockHeight = &h
	}
	return t, nil
}

func heightParam(h *uint64) *int64 {
	if h == nil {
		return nil
	}
	v := int64(*h)
	return &v
}
