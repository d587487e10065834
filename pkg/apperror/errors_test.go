package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("PAY_001", "Insufficient balance", http.StatusPaymentRequired),
			expected: "[PAY_001] Insufficient balance",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("NET_001", "RPC down", http.StatusServiceUnavailable, fmt.Errorf("connection refused")),
			expected: "[NET_001] RPC down: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := ErrNetwork(inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, ErrWalletNotFound().Unwrap())
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("funding: %w", ErrWalletNotFound())

	assert.Equal(t, CodeWalletNotFound, CodeOf(wrapped))
	assert.True(t, Is(wrapped, CodeWalletNotFound))
	assert.False(t, Is(wrapped, CodeAlreadyExists))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.False(t, Is(nil, CodeWalletNotFound))
}

func TestInsufficientBalance_Details(t *testing.T) {
	err := ErrInsufficientBalance("5.01", "5", "SOL")

	assert.Equal(t, CodeInsufficientBalance, err.Code)
	assert.Equal(t, http.StatusPaymentRequired, err.HTTPStatus)
	require.Len(t, err.Details, 3)
	assert.Equal(t, "5.01", err.Details["required"])
	assert.Equal(t, "5", err.Details["available"])
	assert.Equal(t, "SOL", err.Details["currency"])
}

func TestLedgerExecutionFailed_KeepsReason(t *testing.T) {
	err := ErrLedgerExecutionFailed(`{"InstructionError":[0,{"Custom":1}]}`)
	assert.Equal(t, `{"InstructionError":[0,{"Custom":1}]}`, err.Message)
}

func TestTaxonomy(t *testing.T) {
	inner := fmt.Errorf("boom")
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidRequest", ErrInvalidRequest("bad"), "REQ_001", 400},
		{"InvalidAmount", ErrInvalidAmount("too small"), "REQ_002", 400},
		{"UnsupportedCurrency", ErrUnsupportedCurrency("DOGE"), "REQ_003", 400},
		{"SubmissionFailed", ErrSubmissionFailed(inner), "PAY_002", 502},
		{"LedgerExecutionFailed", ErrLedgerExecutionFailed("reverted"), "PAY_003", 422},
		{"Indeterminate", ErrIndeterminate("sig"), "PAY_004", 202},
		{"Network", ErrNetwork(inner), "NET_001", 503},
		{"WalletNotFound", ErrWalletNotFound(), "WAL_001", 404},
		{"AlreadyExists", ErrWalletExists(), "WAL_002", 409},
		{"DecryptionFailed", ErrDecryptionFailed(inner), "WAL_003", 500},
		{"AgentNotFound", ErrAgentNotFound(), "WAL_004", 404},
		{"AgentBusy", ErrAgentBusy(), "WAL_005", 409},
		{"LockUnavailable", ErrLockUnavailable(inner), "NET_001", 503},
		{"Unauthorized", ErrUnauthorized(), "AUTH_001", 401},
		{"InvalidToken", ErrInvalidToken(), "AUTH_002", 401},
		{"Forbidden", ErrForbidden(), "AUTH_003", 403},
		{"RateLimit", ErrRateLimitExceeded(), "RATE_001", 429},
		{"Internal", InternalError(inner), "SYS_001", 500},
		{"Database", ErrDatabaseError(inner), "SYS_002", 500},
		{"Encryption", ErrEncryptionFailure(inner), "SYS_003", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestUnsupportedCurrency_NamesTag(t *testing.T) {
	assert.Contains(t, ErrUnsupportedCurrency("DOGE").Message, "DOGE")
}
