package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPageSize    = 20
	maxPageSize        = 100
	defaultHistorySize = 50
)

// PurchaseConfig tunes the orchestrator.
type PurchaseConfig struct {
	ExperiencePoints int
	LockTTL          time.Duration
	OutcomeTTL       time.Duration
}

// PurchaseServiceImpl implements ports.PurchaseService.
type PurchaseServiceImpl struct {
	txRepo     ports.TransactionRepository
	custody    ports.WalletCustodyService
	executor   ports.PaymentExecutor
	experience ports.ExperienceService
	outcomes   ports.OutcomeCache // optional
	locker     ports.AgentLocker  // optional
	activity   ports.ActivityFeed // optional
	cfg        PurchaseConfig
	log        zerolog.Logger
}

// NewPurchaseService creates a new PurchaseServiceImpl. outcomes, locker and
// activity may be nil.
func NewPurchaseService(
	txRepo ports.TransactionRepository,
	custody ports.WalletCustodyService,
	executor ports.PaymentExecutor,
	experience ports.ExperienceService,
	outcomes ports.OutcomeCache,
	locker ports.AgentLocker,
	activity ports.ActivityFeed,
	cfg PurchaseConfig,
	log zerolog.Logger,
) *PurchaseServiceImpl {
	if cfg.ExperiencePoints <= 0 {
		cfg.ExperiencePoints = 25
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 2 * time.Minute
	}
	if cfg.OutcomeTTL <= 0 {
		cfg.OutcomeTTL = 24 * time.Hour
	}
	return &PurchaseServiceImpl{
		txRepo:     txRepo,
		custody:    custody,
		executor:   executor,
		experience: experience,
		outcomes:   outcomes,
		locker:     locker,
		activity:   activity,
		cfg:        cfg,
		log:        log,
	}
}

// ExecutePurchase pays the merchant for one task. A task id is settled at
// most once: repeated calls replay the recorded outcome.
//
// Once a transaction record exists the outcome is returned with a nil error,
// whatever the payment result; the failure classification is carried in
// outcome.Payment.Failure.
func (s *PurchaseServiceImpl) ExecutePurchase(ctx context.Context, intent domain.PurchaseIntent) (*domain.PurchaseOutcome, error) {
	if intent.TaskID == "" {
		return nil, apperror.ErrInvalidRequest("task_id is required")
	}
	log := s.log.With().
		Str("task_id", intent.TaskID).
		Str("agent_id", intent.AgentID.String()).
		Logger()

	// Layer 1: Redis outcome cache
	if cached := s.cachedOutcome(ctx, outcomeKey(intent)); cached != nil {
		log.Debug().Msg("replaying cached purchase outcome")
		return cached, nil
	}

	// Layer 2: transaction record
	if replay, err := s.recordedOutcome(ctx, intent); replay != nil || err != nil {
		return replay, err
	}

	if s.locker != nil {
		token, err := s.locker.Acquire(ctx, intent.AgentID, s.cfg.LockTTL)
		switch {
		case err != nil:
			log.Error().Err(err).Msg("agent lock unavailable")
			return nil, apperror.ErrLockUnavailable(err)
		case token == "":
			return nil, apperror.ErrAgentBusy()
		default:
			defer func() {
				if err := s.locker.Release(context.WithoutCancel(ctx), intent.AgentID, token); err != nil {
					log.Warn().Err(err).Msg("failed to release agent lock")
				}
			}()
			// Another request may have recorded this task while we waited.
			if replay, err := s.recordedOutcome(ctx, intent); replay != nil || err != nil {
				return replay, err
			}
		}
	}

	signer, err := s.custody.Signer(ctx, intent.AgentID)
	if err != nil {
		return nil, err
	}

	memo := intent.Memo
	if memo == "" {
		memo = "subra:" + intent.TaskID
	}
	req := domain.PaymentRequest{
		Recipient: intent.Merchant,
		Amount:    intent.Price,
		Currency:  intent.Currency,
		Memo:      memo,
	}
	// Caller errors leave no record, so the task id stays usable.
	if err := s.executor.Validate(signer.PublicKey(), req); err != nil {
		log.Info().Err(err).Msg("purchase rejected")
		return nil, err
	}

	now := time.Now().UTC()
	taskID := intent.TaskID
	txn := &domain.Transaction{
		ID:          uuid.New(),
		AgentID:     intent.AgentID,
		TaskID:      &taskID,
		Type:        domain.TransactionTypePurchase,
		Status:      domain.TransactionStatusPending,
		Amount:      intent.Price,
		Currency:    intent.Currency,
		FromAddress: signer.PublicKey().String(),
		ToAddress:   intent.Merchant,
		Metadata: map[string]any{
			"product_id":   intent.ProductID,
			"product_name": intent.ProductName,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.txRepo.Create(ctx, txn); err != nil {
		if errors.Is(err, ports.ErrDuplicateTask) {
			if replay, rerr := s.recordedOutcome(ctx, intent); replay != nil || rerr != nil {
				return replay, rerr
			}
		}
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create purchase record: %w", err))
	}

	s.publish(ctx, domain.NewActivity(intent.AgentID, domain.ActivityPurchaseStarted, map[string]any{
		"taskId":      intent.TaskID,
		"productName": intent.ProductName,
		"price":       intent.Price.String(),
		"currency":    intent.Currency,
	}))

	result, execErr := s.executor.Execute(ctx, signer, req, attemptRecorder{repo: s.txRepo, txnID: txn.ID})

	// The record must reflect the attempt even if the caller has gone away.
	recordCtx := context.WithoutCancel(ctx)
	if err := s.txRepo.UpdateOutcome(recordCtx, txn.ID, outcomeOf(result)); err != nil {
		log.Error().Err(err).Str("transaction_id", txn.ID.String()).Msg("failed to record purchase outcome")
	}

	outcome := &domain.PurchaseOutcome{
		TaskID:        intent.TaskID,
		TransactionID: txn.ID,
		Payment:       result,
	}

	switch result.Outcome {
	case domain.OutcomeSettled:
		outcome.Status = domain.PurchaseCompleted
		outcome.Message = fmt.Sprintf("Purchased %s", intent.ProductName)
		outcome.ExperienceGained = s.awardPurchase(recordCtx, intent.AgentID, log)
		if _, err := s.custody.RefreshBalance(recordCtx, intent.AgentID); err != nil {
			log.Warn().Err(err).Msg("balance refresh after purchase failed")
		}
		s.publish(recordCtx, domain.NewActivity(intent.AgentID, domain.ActivityPurchaseCompleted, map[string]any{
			"taskId":      intent.TaskID,
			"productName": intent.ProductName,
			"signature":   result.Signature,
		}))
		log.Info().Str("signature", result.Signature).Msg("purchase completed")

	case domain.OutcomeIndeterminate:
		outcome.Status = domain.PurchasePaymentUnknown
		outcome.Message = "payment status unknown, verifying"
		s.publish(recordCtx, domain.NewActivity(intent.AgentID, domain.ActivityPaymentUnverified, map[string]any{
			"taskId":    intent.TaskID,
			"signature": result.Signature,
			"message":   outcome.Message,
		}))
		log.Warn().Str("signature", result.Signature).Msg("purchase payment unverified")

	default:
		outcome.Status = domain.PurchaseFailed
		outcome.Message = execErr.Error()
		if result.Failure != nil {
			outcome.Message = result.Failure.Message
		}
		s.publish(recordCtx, domain.NewActivity(intent.AgentID, domain.ActivityPurchaseFailed, map[string]any{
			"taskId": intent.TaskID,
			"error":  outcome.Message,
		}))
		log.Info().Err(execErr).Msg("purchase failed")
	}

	if outcome.Status != domain.PurchasePaymentUnknown {
		s.cacheOutcome(recordCtx, outcomeKey(intent), outcome)
	}
	return outcome, nil
}

// ListTransactions pages the agent's records, newest first.
func (s *PurchaseServiceImpl) ListTransactions(ctx context.Context, agentID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	txns, total, err := s.txRepo.ListByAgent(ctx, agentID, limit, offset)
	if err != nil {
		return nil, 0, apperror.ErrDatabaseError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, total, nil
}

// ActivityHistory returns the most recent activity, newest first.
func (s *PurchaseServiceImpl) ActivityHistory(ctx context.Context, agentID uuid.UUID, limit int) ([]domain.Activity, error) {
	if s.activity == nil {
		return []domain.Activity{}, nil
	}
	if limit <= 0 {
		limit = defaultHistorySize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	history, err := s.activity.History(ctx, agentID, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("activity history: %w", err))
	}
	return history, nil
}

// recordedOutcome replays a stored record for the task, if any.
func (s *PurchaseServiceImpl) recordedOutcome(ctx context.Context, intent domain.PurchaseIntent) (*domain.PurchaseOutcome, error) {
	existing, err := s.txRepo.GetByTaskID(ctx, intent.TaskID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get by task id: %w", err))
	}
	if existing == nil {
		return nil, nil
	}
	if existing.AgentID != intent.AgentID {
		return nil, apperror.ErrInvalidRequest("task_id already used by another agent")
	}

	outcome := &domain.PurchaseOutcome{
		TaskID:        intent.TaskID,
		TransactionID: existing.ID,
		Status:        domain.PurchaseStatusFor(existing.Status),
	}
	switch outcome.Status {
	case domain.PurchaseCompleted:
		outcome.Message = "purchase already completed"
	case domain.PurchaseFailed:
		outcome.Message = "purchase already failed"
		if existing.FailureReason != nil {
			outcome.Message = *existing.FailureReason
		}
	case domain.PurchasePaymentUnknown:
		outcome.Message = "payment status unknown, verifying"
	default:
		outcome.Message = "purchase in progress"
	}
	return outcome, nil
}

func (s *PurchaseServiceImpl) awardPurchase(ctx context.Context, agentID uuid.UUID, log zerolog.Logger) int {
	if s.experience == nil {
		return 0
	}
	if _, err := s.experience.Award(ctx, agentID, domain.SkillPurchase, s.cfg.ExperiencePoints); err != nil {
		log.Warn().Err(err).Msg("failed to award purchase experience")
		return 0
	}
	return s.cfg.ExperiencePoints
}

// outcomeKey scopes cached outcomes to the agent that owns the task.
func outcomeKey(intent domain.PurchaseIntent) string {
	return intent.AgentID.String() + ":" + intent.TaskID
}

func (s *PurchaseServiceImpl) cachedOutcome(ctx context.Context, key string) *domain.PurchaseOutcome {
	if s.outcomes == nil {
		return nil
	}
	cached, err := s.outcomes.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("redis outcome check failed, falling through to DB")
		return nil
	}
	if cached == nil {
		return nil
	}
	var outcome domain.PurchaseOutcome
	if err := json.Unmarshal(cached, &outcome); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("discarding unreadable cached outcome")
		return nil
	}
	return &outcome
}

func (s *PurchaseServiceImpl) cacheOutcome(ctx context.Context, key string, outcome *domain.PurchaseOutcome) {
	if s.outcomes == nil {
		return
	}
	data, err := json.Marshal(outcome)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to marshal outcome for cache")
		return
	}
	if err := s.outcomes.Set(ctx, key, data, s.cfg.OutcomeTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to cache outcome in redis")
	}
}

func (s *PurchaseServiceImpl) publish(ctx context.Context, a domain.Activity) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Publish(ctx, a); err != nil {
		s.log.Warn().Err(err).Str("agent_id", a.AgentID.String()).Str("type", a.Type).Msg("activity publish failed")
	}
}
