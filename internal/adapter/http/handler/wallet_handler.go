package handler

import (
	"time"

	"subra-settlement/internal/adapter/http/dto"
	"subra-settlement/internal/adapter/http/middleware"
	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"
	"subra-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletHandler handles agent and user wallet endpoints.
type WalletHandler struct {
	custody     ports.WalletCustodyService
	userWallets ports.UserWalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(custody ports.WalletCustodyService, userWallets ports.UserWalletService) *WalletHandler {
	return &WalletHandler{custody: custody, userWallets: userWallets}
}

// CreateWallet handles POST /api/v1/agents/:agentId/wallet.
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	agentID, ok := agentFromContext(c)
	if !ok {
		return
	}

	wallet, err := h.custody.CreateWallet(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toWalletResponse(wallet))
}

// GetWallet handles GET /api/v1/agents/:agentId/wallet.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	agentID, ok := agentFromContext(c)
	if !ok {
		return
	}

	wallet, err := h.custody.GetWallet(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWalletResponse(wallet))
}

// GetBalance handles GET /api/v1/agents/:agentId/wallet/balance. It always
// reads the ledger.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	agentID, ok := agentFromContext(c)
	if !ok {
		return
	}

	wallet, err := h.custody.GetWallet(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	balance, err := h.custody.RefreshBalance(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		Address:  wallet.Address,
		Balance:  balance.String(),
		Currency: domain.NativeSymbol,
	})
}

// FundWallet handles POST /api/v1/agents/:agentId/wallet/fund.
func (h *WalletHandler) FundWallet(c *gin.Context) {
	agentID, ok := agentFromContext(c)
	if !ok {
		return
	}

	var req dto.FundWalletRequest
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

	funderKey := req.FunderSecretKey
	switch {
	case funderKey != "":
	case req.SealedKey != "" && req.Password != "":
		funderKey, err = h.userWallets.OpenFundingKey(c.Request.Context(), req.SealedKey, req.Password)
		if err != nil {
			response.Error(c, err)
			return
		}
	default:
		response.Error(c, apperror.ErrInvalidRequest("funder_secret_key or sealed_key with password is required"))
		return
	}

	sig, err := h.custody.FundWallet(c.Request.Context(), agentID, funderKey, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FundWalletResponse{
		Signature: sig,
		Amount:    amount.String(),
		Currency:  domain.NativeSymbol,
	})
}

// CreateUserWallet handles POST /api/v1/user-wallets.
func (h *WalletHandler) CreateUserWallet(c *gin.Context) {
	var req dto.CreateUserWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrInvalidRequest(err.Error()))
		return
	}

	wallet, err := h.userWallets.CreateUserWallet(c.Request.Context(), req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, wallet)
}

func toWalletResponse(w *domain.AgentWallet) dto.WalletResponse {
	return dto.WalletResponse{
		AgentID:   w.AgentID.String(),
		Address:   w.Address,
		Balance:   w.Balance.String(),
		Currency:  domain.NativeSymbol,
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
	}
}

// agentFromContext reads the agent resolved by the ownership middleware. It
// writes the error response itself.
func agentFromContext(c *gin.Context) (uuid.UUID, bool) {
	agentID, ok := middleware.AgentID(c)
	if !ok {
		response.Error(c, apperror.ErrForbidden())
		return uuid.Nil, false
	}
	return agentID, true
}
