package handler

import (
	"fmt"

	"subra-settlement/internal/adapter/http/dto"
	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"
	"subra-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PaymentHandler handles agent-independent payment endpoints.
type PaymentHandler struct {
	verifier ports.PaymentVerifier
	assets   *domain.AssetRegistry
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(verifier ports.PaymentVerifier, assets *domain.AssetRegistry) *PaymentHandler {
	return &PaymentHandler{verifier: verifier, assets: assets}
}

// Verify handles POST /api/v1/payments/verify. A transfer that does not
// match is a 200 with verified=false, not an error.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
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

	result, err := h.verifier.Verify(c.Request.Context(), domain.VerificationRequest{
		Signature: req.Signature,
		Recipient: req.Recipient,
		Amount:    amount,
		Currency:  req.Currency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// PaymentURL handles POST /api/v1/payments/url.
func (h *PaymentHandler) PaymentURL(c *gin.Context) {
	var req dto.PaymentURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrInvalidRequest(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	asset, ok := h.assets.Resolve(req.Currency)
	if !ok {
		response.Error(c, apperror.ErrUnsupportedCurrency(req.Currency))
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount("amount is not a decimal"))
		return
	}
	if _, err := domain.ToBaseUnits(amount, asset.Decimals()); err != nil {
		response.Error(c, apperror.ErrInvalidAmount(fmt.Sprintf("%s: %s has %d decimals", err, asset.Symbol(), asset.Decimals())))
		return
	}

	link := domain.PaymentLink{
		Recipient: req.Recipient,
		Amount:    amount,
		Asset:     asset,
		Reference: req.Reference,
		Memo:      req.Memo,
	}
	response.OK(c, dto.PaymentURLResponse{URL: link.URL()})
}
