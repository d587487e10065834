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
)

const (
	reasonNeverSubmitted = "attempt abandoned before submission"
	reasonExpired        = "blockhash expired before the transaction landed"
)

// ReconcilerConfig bounds one reconciliation pass.
type ReconcilerConfig struct {
	// StaleAfter is how old a PENDING record must be before it is treated
	// as abandoned rather than in flight.
	StaleAfter       time.Duration
	BatchSize        int
	ExperiencePoints int
}

// ReconcilerImpl implements ports.Reconciler. It resolves UNCONFIRMED and
// stale PENDING records by looking their signature up on the ledger; it never
// submits anything.
type ReconcilerImpl struct {
	txRepo     ports.TransactionRepository
	ledger     ports.LedgerClient
	experience ports.ExperienceService // optional
	activity   ports.ActivityFeed      // optional
	cfg        ReconcilerConfig
	metrics    *metrics.Metrics
	log        zerolog.Logger
	now        func() time.Time
}

// NewReconciler creates a new ReconcilerImpl.
func NewReconciler(
	txRepo ports.TransactionRepository,
	ledger ports.LedgerClient,
	experience ports.ExperienceService,
	activity ports.ActivityFeed,
	cfg ReconcilerConfig,
	m *metrics.Metrics,
	log zerolog.Logger,
) *ReconcilerImpl {
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 2 * time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.ExperiencePoints <= 0 {
		cfg.ExperiencePoints = 25
	}
	return &ReconcilerImpl{
		txRepo:     txRepo,
		ledger:     ledger,
		experience: experience,
		activity:   activity,
		cfg:        cfg,
		metrics:    m,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ReconcileOnce examines one batch of unsettled records.
func (r *ReconcilerImpl) ReconcileOnce(ctx context.Context) (*ports.ReconcileSummary, error) {
	records, err := r.txRepo.ListUnsettled(ctx, r.now().Add(-r.cfg.StaleAfter), r.cfg.BatchSize)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list unsettled: %w", err))
	}

	summary := &ports.ReconcileSummary{}
	var height *uint64
	for i := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		txn := &records[i]
		summary.Examined++

		outcome, err := r.resolve(ctx, txn, &height)
		if err != nil {
			r.log.Warn().Err(err).Str("transaction_id", txn.ID.String()).Msg("reconcile lookup failed")
			summary.Pending++
			continue
		}
		if outcome == nil {
			summary.Pending++
			continue
		}

		if err := r.txRepo.UpdateOutcome(ctx, txn.ID, *outcome); err != nil {
			r.log.Error().Err(err).Str("transaction_id", txn.ID.String()).Msg("failed to record reconciled outcome")
			summary.Pending++
			continue
		}
		r.metrics.Reconciled(string(outcome.Status))
		r.settled(ctx, txn, outcome)

		if outcome.Status == domain.TransactionStatusCompleted {
			summary.Completed++
		} else {
			summary.Failed++
		}
	}

	if summary.Examined > 0 {
		r.log.Info().
			Int("examined", summary.Examined).
			Int("completed", summary.Completed).
			Int("failed", summary.Failed).
			Int("pending", summary.Pending).
			Msg("reconciliation pass finished")
	}
	return summary, nil
}

// resolve returns nil when the record must stay unsettled for now.
func (r *ReconcilerImpl) resolve(ctx context.Context, txn *domain.Transaction, height **uint64) (*domain.TransactionOutcome, error) {
	if txn.Signature == nil {
		if txn.Status == domain.TransactionStatusPending {
			return failedOutcome(nil, reasonNeverSubmitted), nil
		}
		return nil, nil
	}

	sig, err := solana.SignatureFromBase58(*txn.Signature)
	if err != nil {
		return nil, fmt.Errorf("stored signature: %w", err)
	}

	settled, err := r.ledger.GetTransaction(ctx, sig)
	switch {
	case err == nil:
		if settled.Err != "" {
			return failedOutcome(txn.Signature, settled.Err), nil
		}
		return &domain.TransactionOutcome{Status: domain.TransactionStatusCompleted, Signature: txn.Signature}, nil

	case errors.Is(err, ports.ErrTransactionNotFound):
		if txn.LastValidBlockHeight == nil {
			return nil, nil
		}
		if *height == nil {
			h, err := r.ledger.GetBlockHeight(ctx)
			if err != nil {
				return nil, err
			}
			*height = &h
		}
		// Past its last valid height the transaction can never land.
		if **height > *txn.LastValidBlockHeight {
			return failedOutcome(txn.Signature, reasonExpired), nil
		}
		return nil, nil

	default:
		return nil, err
	}
}

// settled runs the side effects of a resolved record.
func (r *ReconcilerImpl) settled(ctx context.Context, txn *domain.Transaction, outcome *domain.TransactionOutcome) {
	log := r.log.With().Str("transaction_id", txn.ID.String()).Str("status", string(outcome.Status)).Logger()
	log.Info().Msg("transaction reconciled")

	if outcome.Status == domain.TransactionStatusCompleted &&
		txn.Type == domain.TransactionTypePurchase && r.experience != nil {
		if _, err := r.experience.Award(ctx, txn.AgentID, domain.SkillPurchase, r.cfg.ExperiencePoints); err != nil {
			log.Warn().Err(err).Msg("failed to award reconciled purchase experience")
		}
	}

	if r.activity != nil {
		data := map[string]any{
			"transactionId": txn.ID.String(),
			"status":        string(outcome.Status),
		}
		if txn.TaskID != nil {
			data["taskId"] = *txn.TaskID
		}
		if outcome.Signature != nil {
			data["signature"] = *outcome.Signature
		}
		if outcome.FailureReason != nil {
			data["reason"] = *outcome.FailureReason
		}
		if err := r.activity.Publish(ctx, domain.NewActivity(txn.AgentID, domain.ActivityPaymentReconciled, data)); err != nil {
			log.Warn().Err(err).Msg("activity publish failed")
		}
	}
}

func failedOutcome(sig *string, reason string) *domain.TransactionOutcome {
	return &domain.TransactionOutcome{
		Status:        domain.TransactionStatusFailed,
		Signature:     sig,
		FailureReason: &reason,
	}
}
