package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string            `json:"error_code"`
	Message    string            `json:"message"`
	HTTPStatus int               `json:"-"`
	Details    map[string]string `json:"details,omitempty"`
	Err        error             `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail returns the error with an extra client-visible detail attached.
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Is reports whether err carries an AppError with the given code.
func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

const (
	CodeInvalidRequest        = "REQ_001"
	CodeInvalidAmount         = "REQ_002"
	CodeUnsupportedCurrency   = "REQ_003"
	CodeInsufficientBalance   = "PAY_001"
	CodeSubmissionFailed      = "PAY_002"
	CodeLedgerExecutionFailed = "PAY_003"
	CodeIndeterminate         = "PAY_004"
	CodeNetwork               = "NET_001"
	CodeWalletNotFound        = "WAL_001"
	CodeAlreadyExists         = "WAL_002"
	CodeDecryptionFailed      = "WAL_003"
	CodeAgentNotFound         = "WAL_004"
	CodeAgentBusy             = "WAL_005"
	CodeUnauthorized          = "AUTH_001"
	CodeInvalidToken          = "AUTH_002"
	CodeForbidden             = "AUTH_003"
	CodeRateLimited           = "RATE_001"
	CodeInternal              = "SYS_001"
	CodeDatabase              = "SYS_002"
	CodeEncryption            = "SYS_003"
)

// ---- Request validation (REQ) ----

func ErrInvalidRequest(message string) *AppError {
	return New(CodeInvalidRequest, message, http.StatusBadRequest)
}

func ErrInvalidAmount(message string) *AppError {
	return New(CodeInvalidAmount, message, http.StatusBadRequest)
}

func ErrUnsupportedCurrency(currency string) *AppError {
	return New(CodeUnsupportedCurrency, fmt.Sprintf("Unsupported currency %q", currency), http.StatusBadRequest)
}

// ---- Payment settlement (PAY) ----

// ErrInsufficientBalance carries the required and available amounts as details.
func ErrInsufficientBalance(required, available, currency string) *AppError {
	return New(CodeInsufficientBalance, "Insufficient balance in wallet", http.StatusPaymentRequired).
		WithDetail("required", required).
		WithDetail("available", available).
		WithDetail("currency", currency)
}

func ErrSubmissionFailed(err error) *AppError {
	return Wrap(CodeSubmissionFailed, "Transaction rejected by the network", http.StatusBadGateway, err)
}

// ErrLedgerExecutionFailed keeps the ledger's reason verbatim as the message.
func ErrLedgerExecutionFailed(reason string) *AppError {
	return New(CodeLedgerExecutionFailed, reason, http.StatusUnprocessableEntity)
}

func ErrIndeterminate(signature string) *AppError {
	return New(CodeIndeterminate, "Payment status unknown, verifying", http.StatusAccepted).
		WithDetail("signature", signature)
}

// ---- Ledger connectivity (NET) ----

func ErrNetwork(err error) *AppError {
	return Wrap(CodeNetwork, "Ledger network unavailable", http.StatusServiceUnavailable, err)
}

// ---- Custody (WAL) ----

func ErrWalletNotFound() *AppError {
	return New(CodeWalletNotFound, "Wallet not found for agent", http.StatusNotFound)
}

func ErrWalletExists() *AppError {
	return New(CodeAlreadyExists, "Agent already has a wallet", http.StatusConflict)
}

func ErrDecryptionFailed(err error) *AppError {
	return Wrap(CodeDecryptionFailed, "Wallet key could not be decrypted", http.StatusInternalServerError, err)
}

func ErrAgentNotFound() *AppError {
	return New(CodeAgentNotFound, "Agent not found", http.StatusNotFound)
}

func ErrAgentBusy() *AppError {
	return New(CodeAgentBusy, "Agent has a payment in progress", http.StatusConflict)
}

func ErrLockUnavailable(err error) *AppError {
	return Wrap(CodeNetwork, "Agent lock unavailable", http.StatusServiceUnavailable, err)
}

// ---- Authentication (AUTH) ----

func ErrUnauthorized() *AppError {
	return New(CodeUnauthorized, "Missing or malformed Authorization header", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New(CodeForbidden, "Agent does not belong to caller", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

func ErrDatabaseError(err error) *AppError {
	return Wrap(CodeDatabase, "Internal database error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap(CodeEncryption, "Encryption service failure", http.StatusInternalServerError, err)
}
