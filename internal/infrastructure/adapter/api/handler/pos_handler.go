package handler

import (
	"net/http"

	domainerr "github.com/guineapay/djomy-bridge/internal/domain/error"
	coreport "github.com/guineapay/djomy-bridge/internal/domain/port/core"
	paymentUseCase "github.com/guineapay/djomy-bridge/internal/domain/usecase/payment"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PosHandler handles point-of-sale payment endpoints
type PosHandler struct {
	paymentService *paymentUseCase.Service
	logger         coreport.Logger
}

// NewPosHandler creates a new POS handler instance
func NewPosHandler(paymentService *paymentUseCase.Service, logger coreport.Logger) *PosHandler {
	return &PosHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// CreatePayment handles the POST /pos/djomy/payment endpoint
func (h *PosHandler) CreatePayment(c *gin.Context) {
	var req dto.PosPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
			Message: "Invalid amount format",
		})
		return
	}

	result, err := h.paymentService.CreatePosPayment(c.Request.Context(), req.Reference, req.Method, req.PayerPhone, amount)
	if err != nil {
		h.respondGatewayError(c, err, "Failed to create POS payment")
		return
	}

	c.JSON(http.StatusOK, dto.PosPaymentResponse{
		Reference:     req.Reference,
		TransactionID: result.ProviderReference,
		Status:        result.Status,
	})
}

// CreateLink handles the POST /pos/djomy/link endpoint
func (h *PosHandler) CreateLink(c *gin.Context) {
	var req dto.PosLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
			Message: "Invalid amount format",
		})
		return
	}

	result, err := h.paymentService.CreatePosLink(c.Request.Context(), req.Reference, req.PayerPhone, amount)
	if err != nil {
		h.respondGatewayError(c, err, "Failed to create POS payment link")
		return
	}

	c.JSON(http.StatusOK, dto.PosLinkResponse{
		Reference:     req.Reference,
		PaymentLink:   result.PaymentLink,
		LinkReference: result.LinkReference,
		ExpiresAt:     result.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z"),
		SMSSent:       result.SMSSent,
	})
}

// PaymentStatus handles the GET /pos/djomy/payment/:transactionId/status endpoint
func (h *PosHandler) PaymentStatus(c *gin.Context) {
	transactionID := c.Param("transactionId")
	if transactionID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Missing transaction id",
		})
		return
	}

	flags, err := h.paymentService.CheckPaymentStatus(c.Request.Context(), transactionID)
	if err != nil {
		h.respondGatewayError(c, err, "Failed to query POS payment status")
		return
	}

	c.JSON(http.StatusOK, dto.PosStatusResponse{
		Status:      flags.Status,
		IsPending:   flags.IsPending,
		IsDone:      flags.IsDone,
		IsFailed:    flags.IsFailed,
		IsCancelled: flags.IsCancelled,
	})
}

// LinkStatus handles the GET /pos/djomy/link/:reference/status endpoint
func (h *PosHandler) LinkStatus(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Missing link reference",
		})
		return
	}

	flags, err := h.paymentService.CheckLinkStatus(c.Request.Context(), reference)
	if err != nil {
		h.respondGatewayError(c, err, "Failed to query POS link status")
		return
	}

	c.JSON(http.StatusOK, dto.PosStatusResponse{
		Status:        flags.LinkStatus,
		IsPending:     flags.IsPending,
		IsDone:        flags.IsDone,
		IsFailed:      flags.IsFailed,
		IsCancelled:   flags.IsCancelled,
		IsExpired:     flags.IsExpired,
		TransactionID: flags.ProviderReference,
	})
}

// respondGatewayError maps provider call failures onto HTTP responses
func (h *PosHandler) respondGatewayError(c *gin.Context, err error, logMessage string) {
	h.logger.Error(logMessage, map[string]any{
		"error": err.Error(),
	})

	if apiErr, ok := domainerr.AsAPIError(err); ok {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: apiErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
		Message: "Internal server error",
	})
}
