package service

import (
	"context"
	"testing"
	"time"

	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports/mocks"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

func TestAuditService_Log_PersistsToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, log *domain.AuditLog) error {
			if log.Action != domain.AuditActionPurchase {
				t.Errorf("expected PURCHASE, got %s", log.Action)
			}
			close(done)
			return nil
		},
	)

	agentID := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	svc.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		AgentID:      &agentID,
		Action:       domain.AuditActionPurchase,
		ResourceType: "agent",
		ResourceID:   agentID.String(),
		IPAddress:    "127.0.0.1",
		StatusCode:   200,
		CreatedAt:    time.Now(),
	})
	// The request finishing must not cancel persistence.
	cancel()

	select {
	case <-done:
		// OK
	case <-time.After(2 * time.Second):
		t.Fatal("audit log not persisted in time")
	}
}

func TestAuditService_Log_NilRepo(t *testing.T) {
	svc := NewAuditService(nil, newTestLogger())

	userID := uuid.New()
	// Should not panic
	svc.Log(context.Background(), &domain.AuditLog{
		ID:           uuid.New(),
		UserID:       &userID,
		Action:       domain.AuditActionUserWalletCreate,
		ResourceType: "user_wallet",
		IPAddress:    "127.0.0.1",
		CreatedAt:    time.Now(),
	})

	time.Sleep(50 * time.Millisecond) // let goroutine run
}
