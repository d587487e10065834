package service

import (
	"context"
	"fmt"

	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
)

// attemptRecorder stores the signature of a pending record before the
// transaction is broadcast, so an unanswered submission can be reconciled.
type attemptRecorder struct {
	repo  ports.TransactionRepository
	txnID uuid.UUID
}

func (r attemptRecorder) OnSigned(ctx context.Context, sig solana.Signature, block ports.BlockContext) error {
	if err := r.repo.AttachSignature(ctx, r.txnID, sig.String(), block.LastValidBlockHeight); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("attach signature: %w", err))
	}
	return nil
}

// outcomeOf maps an executor result onto the record update.
func outcomeOf(result *domain.PaymentResult) domain.TransactionOutcome {
	out := domain.TransactionOutcome{Status: domain.StatusFor(result.Outcome)}
	if result.Signature != "" {
		sig := result.Signature
		out.Signature = &sig
	}
	if result.Failure != nil {
		reason := result.Failure.Message
		out.FailureReason = &reason
		if result.Failure.LedgerReference != "" {
			ref := result.Failure.LedgerReference
			out.Signature = &ref
		}
	}
	return out
}
