package dto

// ProcessPaymentRequest represents the API request for starting a hosted payment
type ProcessPaymentRequest struct {
	Reference  string `json:"reference" binding:"required"`
	PayerPhone string `json:"payerPhone" binding:"required"`
}

// ProcessPaymentResponse carries the provider checkout URL the payer is sent to
type ProcessPaymentResponse struct {
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirectUrl"`
}

// WebhookAckResponse is the acknowledgement body returned on every webhook call
type WebhookAckResponse struct {
	Status string `json:"status"`
}
