package handler

import (
	"io"
	"net/http"

	domainerr "github.com/guineapay/djomy-bridge/internal/domain/error"
	coreport "github.com/guineapay/djomy-bridge/internal/domain/port/core"
	paymentUseCase "github.com/guineapay/djomy-bridge/internal/domain/usecase/payment"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// webhookAck is returned on every webhook call so the provider never retries
// because of an internal failure on our side.
var webhookAck = dto.WebhookAckResponse{Status: "ok"}

// PaymentHandler handles the hosted payment flow endpoints
type PaymentHandler struct {
	paymentService *paymentUseCase.Service
	statusPageURL  string
	logger         coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(
	paymentService *paymentUseCase.Service,
	statusPageURL string,
	logger coreport.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		statusPageURL:  statusPageURL,
		logger:         logger,
	}
}

// Process handles the POST /payment/djomy/process endpoint
func (h *PaymentHandler) Process(c *gin.Context) {
	var req dto.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	redirectURL, err := h.paymentService.CreatePayment(c.Request.Context(), req.Reference, req.PayerPhone)
	if err != nil {
		h.respondError(c, err, "Failed to create payment")
		return
	}

	c.JSON(http.StatusOK, dto.ProcessPaymentResponse{
		Reference:   req.Reference,
		RedirectURL: redirectURL,
	})
}

// Return handles the GET /payment/djomy/return endpoint. The payer lands here
// after the provider checkout page; whatever happens internally, they are sent
// on to the status page.
func (h *PaymentHandler) Return(c *gin.Context) {
	providerReference := c.Query("transactionId")
	urlStatus := c.Query("status")

	if err := h.paymentService.HandleReturn(c.Request.Context(), providerReference, urlStatus); err != nil {
		h.logger.Error("Return handling failed", map[string]any{
			"providerReference": providerReference,
			"urlStatus":         urlStatus,
			"error":             err.Error(),
		})
	}

	c.Redirect(http.StatusFound, h.statusPageURL)
}

// Cancel handles the GET /payment/djomy/cancel endpoint. The transaction is
// left open so the payer can retry; cancellation is confirmed by webhook.
func (h *PaymentHandler) Cancel(c *gin.Context) {
	h.logger.Info("Payer returned via cancel URL", map[string]any{
		"providerReference": c.Query("transactionId"),
	})
	c.Redirect(http.StatusFound, h.statusPageURL)
}

// WebhookHealth handles the GET /payment/djomy/webhook endpoint used by the
// provider to probe the endpoint
func (h *PaymentHandler) WebhookHealth(c *gin.Context) {
	c.JSON(http.StatusOK, webhookAck)
}

// Webhook handles the POST /payment/djomy/webhook endpoint
func (h *PaymentHandler) Webhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("Failed to read webhook body", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusOK, webhookAck)
		return
	}

	signature := c.GetHeader("X-Webhook-Signature")
	if err := h.paymentService.HandleWebhook(c.Request.Context(), rawBody, signature); err != nil {
		h.logger.Error("Webhook processing failed", map[string]any{
			"error": err.Error(),
		})
	}

	c.JSON(http.StatusOK, webhookAck)
}

// respondError maps domain errors onto HTTP responses
func (h *PaymentHandler) respondError(c *gin.Context, err error, logMessage string) {
	h.logger.Error(logMessage, map[string]any{
		"error": err.Error(),
	})

	status := http.StatusInternalServerError
	message := "Internal server error"
	switch {
	case domainerr.IsNotFoundError(err):
		status = http.StatusNotFound
		message = "Transaction not found"
	case domainerr.IsDuplicateReferenceError(err):
		status = http.StatusConflict
		message = "Transaction reference already exists"
	case domainerr.IsAPIError(err):
		status = http.StatusBadGateway
		if apiErr, ok := domainerr.AsAPIError(err); ok {
			message = apiErr.Message
		}
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}
