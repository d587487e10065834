package dto

import (
	"time"

	"subra-settlement/internal/core/domain"
)

// FundWalletRequest funds an agent wallet either from a raw funder key or from
// a password-sealed user wallet.
type FundWalletRequest struct {
	Amount          string `json:"amount" binding:"required,decimal_amount"`
	FunderSecretKey string `json:"funder_secret_key,omitempty" sanitize:"-"`
	SealedKey       string `json:"sealed_key,omitempty" sanitize:"-"`
	Password        string `json:"password,omitempty" sanitize:"-"`
}

// PurchaseRequest is the request body for a purchase task.
type PurchaseRequest struct {
	TaskID      string `json:"task_id" binding:"required,max=100,safe_id"`
	ProductID   string `json:"product_id" binding:"required,max=100"`
	ProductName string `json:"product_name" binding:"max=200"`
	Price       string `json:"price" binding:"required,decimal_amount"`
	Currency    string `json:"currency" binding:"required,max=10"`
	Merchant    string `json:"merchant" binding:"required,solana_address"`
	Memo        string `json:"memo,omitempty" binding:"max=256" sanitize:"-"`
}

// QuoteRequest asks for the cost of a payment from the agent wallet.
type QuoteRequest struct {
	Recipient string `json:"recipient" binding:"required,solana_address"`
	Amount    string `json:"amount" binding:"required,decimal_amount"`
	Currency  string `json:"currency" binding:"required,max=10"`
	Memo      string `json:"memo,omitempty" binding:"max=256" sanitize:"-"`
}

// VerifyRequest describes the transfer a signature is expected to contain.
type VerifyRequest struct {
	Signature string `json:"signature" binding:"required,max=100"`
	Recipient string `json:"recipient" binding:"required,solana_address"`
	Amount    string `json:"amount" binding:"required,decimal_amount"`
	Currency  string `json:"currency" binding:"required,max=10"`
}

// PaymentURLRequest is the input of a Solana Pay transfer request.
type PaymentURLRequest struct {
	Recipient string `json:"recipient" binding:"required,solana_address"`
	Amount    string `json:"amount" binding:"required,decimal_amount"`
	Currency  string `json:"currency" binding:"required,max=10"`
	Reference string `json:"reference,omitempty" binding:"omitempty,solana_address"`
	Memo      string `json:"memo,omitempty" binding:"max=256" sanitize:"-"`
}

// CreateUserWalletRequest generates a wallet sealed with the given password.
type CreateUserWalletRequest struct {
	Password string `json:"password" binding:"required,min=8,max=128" sanitize:"-"`
}

// RecordExperienceRequest awards experience for a search or compare task.
type RecordExperienceRequest struct {
	Products int `json:"products" binding:"min=0,max=1000"`
}

// WalletResponse is the public view of an agent wallet.
type WalletResponse struct {
	AgentID   string `json:"agent_id"`
	Address   string `json:"address"`
	Balance   string `json:"balance"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"created_at"`
}

// BalanceResponse is a freshly read wallet balance.
type BalanceResponse struct {
	Address  string `json:"address"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

// FundWalletResponse carries the signature of a settled funding transfer.
type FundWalletResponse struct {
	Signature string `json:"signature"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
}

// PaymentURLResponse wraps a rendered solana: URI.
type PaymentURLResponse struct {
	URL string `json:"url"`
}

// TransactionResponse is the public view of a transaction record.
type TransactionResponse struct {
	ID            string  `json:"id"`
	TaskID        *string `json:"task_id,omitempty"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	Amount        string  `json:"amount"`
	Currency      string  `json:"currency"`
	FromAddress   string  `json:"from_address"`
	ToAddress     string  `json:"to_address"`
	Signature     *string `json:"signature,omitempty"`
	FailureReason *string `json:"failure_reason,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// TransactionListResponse wraps a paginated transaction list.
type TransactionListResponse struct {
	Items  []TransactionResponse `json:"items"`
	Total  int64                 `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// ActivityListResponse wraps the recent activity of an agent.
type ActivityListResponse struct {
	Items []domain.Activity `json:"items"`
}

// SkillListResponse wraps the skills of an agent.
type SkillListResponse struct {
	Items []domain.AgentSkill `json:"items"`
}

// NewTransactionResponse converts a record into its public view.
func NewTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID.String(),
		TaskID:        t.TaskID,
		Type:          string(t.Type),
		Status:        string(t.Status),
		Amount:        t.Amount.String(),
		Currency:      t.Currency,
		FromAddress:   t.FromAddress,
		ToAddress:     t.ToAddress,
		Signature:     t.Signature,
		FailureReason: t.FailureReason,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
}
