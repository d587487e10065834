package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/internal/core/ports/mocks"
	"subra-settlement/internal/ledgertest"
	"subra-settlement/pkg/apperror"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type purchaseTestDeps struct {
	svc        *PurchaseServiceImpl
	txRepo     *mocks.MockTransactionRepository
	custody    *mocks.MockWalletCustodyService
	executor   *mocks.MockPaymentExecutor
	experience *mocks.MockExperienceService
	outcomes   *mocks.MockOutcomeCache
	locker     *mocks.MockAgentLocker
	activity   *mocks.MockActivityFeed
	ctrl       *gomock.Controller
}

func setupPurchase(t *testing.T) *purchaseTestDeps {
	ctrl := gomock.NewController(t)
	d := &purchaseTestDeps{
		txRepo:     mocks.NewMockTransactionRepository(ctrl),
		custody:    mocks.NewMockWalletCustodyService(ctrl),
		executor:   mocks.NewMockPaymentExecutor(ctrl),
		experience: mocks.NewMockExperienceService(ctrl),
		outcomes:   mocks.NewMockOutcomeCache(ctrl),
		locker:     mocks.NewMockAgentLocker(ctrl),
		activity:   mocks.NewMockActivityFeed(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewPurchaseService(d.txRepo, d.custody, d.executor, d.experience, d.outcomes, d.locker, d.activity,
		PurchaseConfig{}, newTestLogger())
	return d
}

func testIntent(t *testing.T) domain.PurchaseIntent {
	return domain.PurchaseIntent{
		TaskID:      "task-" + uuid.NewString(),
		AgentID:     uuid.New(),
		ProductID:   "prod-1",
		ProductName: "Mechanical Keyboard",
		Price:       decimal.RequireFromString("0.25"),
		Currency:    "SOL",
		Merchant:    newKey(t).PublicKey().String(),
	}
}

// expectFreshAttempt sets up the lookups that precede a new attempt.
func (d *purchaseTestDeps) expectFreshAttempt(t *testing.T, intent domain.PurchaseIntent) *KeypairSigner {
	signer := NewKeypairSigner(newKey(t))
	d.outcomes.EXPECT().Get(gomock.Any(), intent.AgentID.String()+":"+intent.TaskID).Return(nil, nil)
	d.txRepo.EXPECT().GetByTaskID(gomock.Any(), intent.TaskID).Return(nil, nil).Times(2)
	d.locker.EXPECT().Acquire(gomock.Any(), intent.AgentID, 2*time.Minute).Return("tok", nil)
	d.locker.EXPECT().Release(gomock.Any(), intent.AgentID, "tok").Return(nil)
	d.custody.EXPECT().Signer(gomock.Any(), intent.AgentID).Return(signer, nil)
	d.executor.EXPECT().Validate(signer.PublicKey(), gomock.Any()).Return(nil)
	return signer
}

// ==================== ExecutePurchase Tests ====================

func TestPurchase_Completed(t *testing.T) {
	d := setupPurchase(t)
	defer d.ctrl.Finish()
	intent := testIntent(t)
	signer := d.expectFreshAttempt(t, intent)

	var recordID uuid.UUID
	d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, txn *domain.Transaction) error {
			assert.Equal(t, domain.TransactionTypePurchase, txn.Type)
			assert.Equal(t, domain.TransactionStatusPending, txn.Status)
			assert.Equal(t, intent.TaskID, *txn.TaskID)
			assert.Equal(t, signer.PublicKey().String(), txn.FromAddress)
			recordID = txn.ID
			return nil
		})
	d.executor.EXPECT().Execute(gomock.Any(), signer, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ ports.Signer, req domain.PaymentRequest, obs ports.AttemptObserver) (*domain.PaymentResult, error) {
			assert.Equal(t, "subra:"+intent.TaskID, req.Memo)
			assert.Equal(t, intent.Merchant, req.Recipient)
			assert.NotNil(t, obs)
			return domain.SettledResult("sig123", req.Amount, "SOL", time.Now()), nil
		})
	d.txRepo.EXPECT().UpdateOutcome(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id uuid.UUID, out domain.TransactionOutcome) error {
			assert.Equal(t, recordID, id)
			assert.Equal(t, domain.TransactionStatusCompleted, out.Status)
			assert.Equal(t, "sig123", *out.Signature)
			return nil
		})
	d.experience.EXPECT().Award(gomock.Any(), intent.AgentID, domain.SkillPurchase, 25).Return(&domain.AgentSkill{}, nil)
	d.custody.EXPECT().RefreshBalance(gomock.Any(), intent.AgentID).Return(decimal.Zero, nil)

	var published []string
	d.activity.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, a domain.Activity) error {
			published = append(published, a.Type)
			return nil
		}).Times(2)
	d.outcomes.EXPECT().Set(gomock.Any(), intent.AgentID.String()+":"+intent.TaskID, gomock.Any(), 24*time.Hour).Return(nil)

	outcome, err := d.svc.ExecutePurchase(context.Background(), intent)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseCompleted, outcome.Status)
	assert.Equal(t, recordID, outcome.TransactionID)
	assert.Equal(t, 25, outcome.ExperienceGained)
	assert.Equal(t, "sig123", outcome.Payment.Signature)
	assert.Equal(t, []string{domain.ActivityPurchaseStarted, domain.ActivityPurchaseCompleted}, published)
}

func TestPurchase_FailedIsRecordedNotReturnedAsError(t *testing.T) {
	d := setupPurchase(t)
	defer d.ctrl.Finish()
	intent := testIntent(t)
	d.expectFreshAttempt(t, intent)

	d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	failure := apperror.ErrInsufficientBalance("0.26", "0.1", "SOL")
	d.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(
		domain.FailedResult(domain.AttemptValidated, domain.PaymentFailure{Code: failure.Code, Message: failure.Message},
			intent.Price, "SOL", time.Now()), failure)
	d.txRepo.EXPECT().UpdateOutcome(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uuid.UUID, out domain.TransactionOutcome) error {
			assert.Equal(t, domain.TransactionStatusFailed, out.Status)
			assert.Nil(t, out.Signature)
			return nil
		})
	d.activity.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	d.outcomes.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := d.svc.ExecutePurchase(context.Background(), intent)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseFailed, outcome.Status)
	assert.Equal(t, apperror.CodeInsufficientBalance, outcome.Payment.Failure.Code)
	assert.Zero(t, outcome.ExperienceGained)
}

func TestPurchase_IndeterminateIsNotCached(t *testing.T) {
	d := setupPurchase(t)
	defer d.ctrl.Finish()
	intent := testIntent(t)
	d.expectFreshAttempt(t, intent)

	d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	d.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(
		domain.IndeterminateResult("sig999", intent.Price, "SOL", time.Now()), apperror.ErrIndeterminate("sig999"))
	d.txRepo.EXPECT().UpdateOutcome(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uuid.UUID, out domain.TransactionOutcome) error {
			assert.Equal(t, domain.TransactionStatusUnconfirmed, out.Status)
			assert.Equal(t, "sig999", *out.Signature)
			return nil
		})
	d.activity.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	// no outcomes.Set expected

	outcome, err := d.svc.ExecutePurchase(context.Background(), intent)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchasePaymentUnknown, outcome.Status)
	assert.Equal(t, "sig999", outcome.Payment.Signature)
}

func TestPurchase_ReplaysCachedOutcome(t *testing.T) {
	d := setupPurchase(t)
	defer d.ctrl.Finish()
	intent := testIntent(t)

	cached, err := json.Marshal(domain.PurchaseOutcome{TaskID: intent.TaskID, Status: domain.PurchaseCompleted, ExperienceGained: 25})
	require.NoError(t, err)
	d.outcomes.EXPECT().Get(gomock.Any(), intent.AgentID.String()+":"+intent.TaskID).Return(cached, nil)

	outcome, err := d.svc.ExecutePurchase(context.Background(), intent)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseCompleted, outcome.Status)
	assert.Equal(t, 25, outcome.ExperienceGained)
}

func TestPurchase_ReplaysRecordedOutcome(t *testing.T) {
	tests := []struct {
		name   string
		status domain.TransactionStatus
		want   domain.PurchaseStatus
	}{
		{"completed", domain.TransactionStatusCompleted, domain.PurchaseCompleted},
		{"failed", domain.TransactionStatusFailed, domain.PurchaseFailed},
		{"unconfirmed", domain.TransactionStatusUnconfirmed, domain.PurchasePaymentUnknown},
		{"pending", domain.TransactionStatusPending, domain.PurchaseInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupPurchase(t)
			defer d.ctrl.Finish()
			intent := testIntent(t)
			record := &domain.Transaction{ID: uuid.New(), AgentID: intent.AgentID, Status: tt.status}

			d.outcomes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
			d.txRepo.EXPECT().GetByTaskID(gomock.Any(), intent.TaskID).Return(record, nil)

			outcome, err := d.svc.ExecutePurchase(context.Background(), intent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome.Status)
			assert.Equal(t, record.ID, outcome.TransactionID)
		})
	}
}

func TestPurchase_TaskOwnedByAnotherAgent(t *testing.T) {
	d := setupPurchase(t)
	defer d.ctrl.Finish()
	intent := testIntent(t)

	d.outcomes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	d.txRepo.EXPECT().GetByTaskID(gomock.Any(), intent.TaskID).Return(&domain.Transaction{ID: uuid.New(), AgentID: uuid.New()}, nil)

	_, err := d.svc.ExecutePurchase(context.Background(), intent)
	assertAppError(t, err, apperror.CodeInvalidRequest)
}

func TestPurchase_AgentBusy(t *testing.T) {
	d := setupPurchase(t)
	defer d.ctrl.Finish()
	intent := testIntent(t)

	d.outcomes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	d.txRepo.EXPECT().GetByTaskID(gomock.Any(), intent.TaskID).Return(nil, nil)
	d.locker.EXPECT().Acquire(gomock.Any(), intent.AgentID, gomock.Any()).Return("", nil)

	_, err := d.svc.ExecutePurchase(context.Background(), intent)
	assertAppError(t, err, apperror.CodeAgentBusy)
}

func TestPurchase_RecordAppearsWhileWaitingForLock(t *testing.T) {
	d := setupPurchase(t)
	defer d.ctrl.Finish()
	intent := testIntent(t)
	record := &domain.Transaction{ID: uuid.New(), AgentID: intent.AgentID, Status: domain.TransactionStatusCompleted}

	d.outcomes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	gomock.InOrder(
		d.txRepo.EXPECT().GetByTaskID(gomock.Any(), intent.TaskID).Return(nil, nil),
		d.txRepo.EXPECT().GetByTaskID(gomock.Any(), intent.TaskID).Return(record, nil),
	)
	d.locker.EXPECT().Acquire(gomock.Any(), intent.AgentID, gomock.Any()).Return("tok", nil)
	d.locker.EXPECT().Release(gomock.Any(), intent.AgentID, "tok").Return(nil)

	outcome, err := d.svc.ExecutePurchase(context.Background(), intent)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseCompleted, outcome.Status)
}

func TestPurchase_DuplicateInsertReplays(t *testing.T) {
	d := setupPurchase(t)
	defer d.ctrl.Finish()
	intent := testIntent(t)
	record := &domain.Transaction{ID: uuid.New(), AgentID: intent.AgentID, Status: domain.TransactionStatusPending}

	d.outcomes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	gomock.InOrder(
		d.txRepo.EXPECT().GetByTaskID(gomock.Any(), intent.TaskID).Return(nil, nil).Times(2),
		d.txRepo.EXPECT().GetByTaskID(gomock.Any(), intent.TaskID).Return(record, nil),
	)
	d.locker.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any()).Return("tok", nil)
	d.locker.EXPECT().Release(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.custody.EXPECT().Signer(gomock.Any(), intent.AgentID).Return(NewKeypairSigner(newKey(t)), nil)
	d.executor.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ports.ErrDuplicateTask)

	outcome, err := d.svc.ExecutePurchase(context.Background(), intent)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseInProgress, outcome.Status)
	assert.Equal(t, record.ID, outcome.TransactionID)
}

func TestPurchase_LockerErrorFailsClosed(t *testing.T) {
	d := setupPurchase(t)
	defer d.ctrl.Finish()
	intent := testIntent(t)

	d.outcomes.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
	d.txRepo.EXPECT().GetByTaskID(gomock.Any(), intent.TaskID).Return(nil, nil)
	d.locker.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("redis down"))
	// no Signer, Create or Execute expected

	_, err := d.svc.ExecutePurchase(context.Background(), intent)
	assertAppError(t, err, apperror.CodeNetwork)
}

func TestPurchase_InvalidRequestLeavesNoRecord(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.PurchaseIntent)
		code   string
	}{
		{"unsupported currency", func(i *domain.PurchaseIntent) { i.Currency = "DOGE" }, apperror.CodeUnsupportedCurrency},
		{"below one lamport", func(i *domain.PurchaseIntent) { i.Price = decimal.RequireFromString("0.0000000001") }, apperror.CodeInvalidAmount},
		{"zero price", func(i *domain.PurchaseIntent) { i.Price = decimal.Zero }, apperror.CodeInvalidRequest},
		{"bad merchant", func(i *domain.PurchaseIntent) { i.Merchant = "not-an-address" }, apperror.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ledger := ledgertest.New()
			txRepo := mocks.NewMockTransactionRepository(ctrl)
			custody := mocks.NewMockWalletCustodyService(ctrl)
			svc := NewPurchaseService(txRepo, custody, newTestExecutor(ledger, true, time.Second),
				nil, nil, nil, nil, PurchaseConfig{}, newTestLogger())
			intent := testIntent(t)
			tt.mutate(&intent)

			txRepo.EXPECT().GetByTaskID(gomock.Any(), intent.TaskID).Return(nil, nil)
			custody.EXPECT().Signer(gomock.Any(), intent.AgentID).Return(NewKeypairSigner(newKey(t)), nil)
			// no Create expected

			outcome, err := svc.ExecutePurchase(context.Background(), intent)
			assert.Nil(t, outcome)
			assertAppError(t, err, tt.code)
			assert.Zero(t, ledger.Calls("SubmitTransaction"))
		})
	}
}

// A rejected request does not consume the task id.
func TestPurchase_RejectedTaskCanBeRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := ledgertest.New()
	payer := newKey(t)
	ledger.Airdrop(payer.PublicKey(), sol)

	txRepo := mocks.NewMockTransactionRepository(ctrl)
	custody := mocks.NewMockWalletCustodyService(ctrl)
	svc := NewPurchaseService(txRepo, custody, newTestExecutor(ledger, true, time.Second),
		nil, nil, nil, nil, PurchaseConfig{}, newTestLogger())
	intent := testIntent(t)

	txRepo.EXPECT().GetByTaskID(gomock.Any(), intent.TaskID).Return(nil, nil).Times(2)
	custody.EXPECT().Signer(gomock.Any(), intent.AgentID).Return(NewKeypairSigner(payer), nil).Times(2)

	bad := intent
	bad.Currency = "DOGE"
	_, err := svc.ExecutePurchase(context.Background(), bad)
	assertAppError(t, err, apperror.CodeUnsupportedCurrency)

	txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	txRepo.EXPECT().AttachSignature(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	txRepo.EXPECT().UpdateOutcome(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uuid.UUID, out domain.TransactionOutcome) error {
			assert.Equal(t, domain.TransactionStatusCompleted, out.Status)
			return nil
		})
	custody.EXPECT().RefreshBalance(gomock.Any(), intent.AgentID).Return(decimal.Zero, nil)

	outcome, err := svc.ExecutePurchase(context.Background(), intent)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseCompleted, outcome.Status)
	merchant, err := solana.PublicKeyFromBase58(intent.Merchant)
	require.NoError(t, err)
	assert.Equal(t, uint64(sol/4), ledger.Balance(merchant))
}

func TestPurchase_MissingTaskID(t *testing.T) {
	d := setupPurchase(t)
	defer d.ctrl.Finish()

	_, err := d.svc.ExecutePurchase(context.Background(), domain.PurchaseIntent{AgentID: uuid.New()})
	assertAppError(t, err, apperror.CodeInvalidRequest)
}

// An unanswered confirmation against a real executor leaves the record
// UNCONFIRMED with its signature attached before broadcast.
func TestPurchase_Indeterminate_EndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := ledgertest.New()
	ledger.Unconfirmed = true
	payer := newKey(t)
	ledger.Airdrop(payer.PublicKey(), sol)

	txRepo := mocks.NewMockTransactionRepository(ctrl)
	custody := mocks.NewMockWalletCustodyService(ctrl)
	svc := NewPurchaseService(txRepo, custody, newTestExecutor(ledger, true, 20*time.Millisecond),
		nil, nil, nil, nil, PurchaseConfig{}, newTestLogger())
	intent := testIntent(t)

	var attached string
	txRepo.EXPECT().GetByTaskID(gomock.Any(), intent.TaskID).Return(nil, nil)
	custody.EXPECT().Signer(gomock.Any(), intent.AgentID).Return(NewKeypairSigner(payer), nil)
	txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	txRepo.EXPECT().AttachSignature(gomock.Any(), gomock.Any(), gomock.Any(), uint64(1150)).DoAndReturn(
		func(_ context.Context, _ uuid.UUID, sig string, _ uint64) error {
			attached = sig
			return nil
		})
	txRepo.EXPECT().UpdateOutcome(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uuid.UUID, out domain.TransactionOutcome) error {
			assert.Equal(t, domain.TransactionStatusUnconfirmed, out.Status)
			assert.Equal(t, attached, *out.Signature)
			return nil
		})

	outcome, err := svc.ExecutePurchase(context.Background(), intent)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchasePaymentUnknown, outcome.Status)
	assert.Equal(t, attached, outcome.Payment.Signature)
	assert.Equal(t, 1, ledger.Calls("SubmitTransaction"))
}

// ==================== Listing Tests ====================

func TestPurchase_ListTransactions_ClampsLimit(t *testing.T) {
	d := setupPurchase(t)
	defer d.ctrl.Finish()
	agentID := uuid.New()

	d.txRepo.EXPECT().ListByAgent(gomock.Any(), agentID, 100, 0).Return([]domain.Transaction{}, int64(0), nil)
	_, _, err := d.svc.ListTransactions(context.Background(), agentID, 500, -3)
	require.NoError(t, err)

	d.txRepo.EXPECT().ListByAgent(gomock.Any(), agentID, 20, 40).Return(nil, int64(0), errors.New("db down"))
	_, _, err = d.svc.ListTransactions(context.Background(), agentID, 0, 40)
	assertAppError(t, err, apperror.CodeDatabase)
}

func TestPurchase_ActivityHistory(t *testing.T) {
	d := setupPurchase(t)
	defer d.ctrl.Finish()
	agentID := uuid.New()
	want := []domain.Activity{domain.NewActivity(agentID, domain.ActivityWalletCreated, nil)}

	d.activity.EXPECT().History(gomock.Any(), agentID, 50).Return(want, nil)

	got, err := d.svc.ActivityHistory(context.Background(), agentID, 0)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
