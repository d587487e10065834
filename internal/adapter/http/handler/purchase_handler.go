package handler

import (
	"io"
	"net/http"
	"strconv"

	"subra-settlement/internal/adapter/http/dto"
	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"
	"subra-settlement/pkg/response"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PurchaseHandler handles purchase tasks and the agent's payment history.
type PurchaseHandler struct {
	purchases  ports.PurchaseService
	executor   ports.PaymentExecutor
	custody    ports.WalletCustodyService
	subscriber ports.ActivitySubscriber // nil = streaming disabled
	log        zerolog.Logger
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(
	purchases ports.PurchaseService,
	executor ports.PaymentExecutor,
	custody ports.WalletCustodyService,
	subscriber ports.ActivitySubscriber,
	log zerolog.Logger,
) *PurchaseHandler {
	return &PurchaseHandler{
		purchases:  purchases,
		executor:   executor,
		custody:    custody,
		subscriber: subscriber,
		log:        log,
	}
}

// ExecutePurchase handles POST /api/v1/agents/:agentId/tasks/purchase.
// Settled and failed purchases return 200 with the outcome; an outcome that
// is not yet known returns 202.
func (h *PurchaseHandler) ExecutePurchase(c *gin.Context) {
	agentID, ok := agentFromContext(c)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrInvalidRequest(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount("price is not a decimal"))
		return
	}

	outcome, err := h.purchases.ExecutePurchase(c.Request.Context(), domain.PurchaseIntent{
		TaskID:      req.TaskID,
		AgentID:     agentID,
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Price:       price,
		Currency:    req.Currency,
		Merchant:    req.Merchant,
		Memo:        req.Memo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	switch outcome.Status {
	case domain.PurchasePaymentUnknown, domain.PurchaseInProgress:
		response.Accepted(c, outcome)
	default:
		response.OK(c, outcome)
	}
}

// Quote handles POST /api/v1/agents/:agentId/payments/quote.
func (h *PurchaseHandler) Quote(c *gin.Context) {
	agentID, ok := agentFromContext(c)
	if !ok {
		return
	}

	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrInvalidRequest(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount("amount is not a decimal"))
		return
	}

	wallet, err := h.custody.GetWallet(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	payer, err := solana.PublicKeyFromBase58(wallet.Address)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	quote, err := h.executor.Quote(c.Request.Context(), payer, domain.PaymentRequest{
		Recipient: req.Recipient,
		Amount:    amount,
		Currency:  req.Currency,
		Memo:      req.Memo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, quote)
}

// ListTransactions handles GET /api/v1/agents/:agentId/transactions.
func (h *PurchaseHandler) ListTransactions(c *gin.Context) {
	agentID, ok := agentFromContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txns, total, err := h.purchases.ListTransactions(c.Request.Context(), agentID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		items = append(items, dto.NewTransactionResponse(t))
	}
	response.OK(c, dto.TransactionListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// ActivityHistory handles GET /api/v1/agents/:agentId/activity.
func (h *PurchaseHandler) ActivityHistory(c *gin.Context) {
	agentID, ok := agentFromContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	history, err := h.purchases.ActivityHistory(c.Request.Context(), agentID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ActivityListResponse{Items: history})
}

// StreamActivity handles GET /api/v1/agents/:agentId/activity/stream as
// server-sent events until the client disconnects.
func (h *PurchaseHandler) StreamActivity(c *gin.Context) {
	agentID, ok := agentFromContext(c)
	if !ok {
		return
	}
	if h.subscriber == nil {
		response.Error(c, apperror.New(apperror.CodeInternal, "activity streaming is disabled", http.StatusServiceUnavailable))
		return
	}

	events, err := h.subscriber.Subscribe(c.Request.Context(), agentID)
	if err != nil {
		h.log.Warn().Err(err).Str("agent_id", agentID.String()).Msg("activity subscribe failed")
		response.Error(c, apperror.InternalError(err))
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case a, open := <-events:
			if !open {
				return false
			}
			c.SSEvent(a.Type, a)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
