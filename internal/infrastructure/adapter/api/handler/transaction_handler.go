package handler

import (
	"net/http"
	"time"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	domainerr "github.com/guineapay/djomy-bridge/internal/domain/error"
	coreport "github.com/guineapay/djomy-bridge/internal/domain/port/core"
	paymentUseCase "github.com/guineapay/djomy-bridge/internal/domain/usecase/payment"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction registration and lookup for the host platform
type TransactionHandler struct {
	paymentService *paymentUseCase.Service
	logger         coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(paymentService *paymentUseCase.Service, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// Create handles the POST /transactions endpoint
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
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

	tx, err := h.paymentService.CreateTransaction(c.Request.Context(), req.Reference, amount, req.Currency, req.CountryCode)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

// Get handles the GET /transactions/:reference endpoint
func (h *TransactionHandler) Get(c *gin.Context) {
	reference := c.Param("reference")

	tx, err := h.paymentService.GetTransaction(c.Request.Context(), reference)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTransactionResponse(tx))
}

func (h *TransactionHandler) respondError(c *gin.Context, err error) {
	switch {
	case domainerr.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Transaction not found",
		})
	case domainerr.IsDuplicateReferenceError(err):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Transaction reference already exists",
		})
	case domainerr.ErrorCode(err) >= 4000 && domainerr.ErrorCode(err) < 5000:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
	default:
		h.logger.Error("Transaction request failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
			Message: "Internal server error",
		})
	}
}

func toTransactionResponse(tx *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		Reference:         tx.Reference,
		ProviderCode:      tx.ProviderCode,
		ProviderReference: tx.ProviderReference,
		Amount:            tx.Amount.String(),
		Currency:          tx.Currency,
		CountryCode:       tx.CountryCode,
		PayerPhone:        tx.PayerPhone,
		State:             string(tx.State),
		StateMessage:      tx.StateMessage,
		CreatedAt:         tx.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         tx.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
