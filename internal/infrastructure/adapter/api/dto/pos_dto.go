package dto

// PosPaymentRequest represents a direct charge initiated from a point of sale
type PosPaymentRequest struct {
	Reference  string `json:"reference" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	PayerPhone string `json:"payerPhone" binding:"required"`
	Method     string `json:"method"`
}

// PosPaymentResponse represents the outcome of a direct charge request
type PosPaymentResponse struct {
	Reference     string `json:"reference"`
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

// PosLinkRequest represents a payment link request from a point of sale
type PosLinkRequest struct {
	Reference  string `json:"reference" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	PayerPhone string `json:"payerPhone"`
}

// PosLinkResponse carries the generated payment link
type PosLinkResponse struct {
	Reference     string `json:"reference"`
	PaymentLink   string `json:"paymentLink"`
	LinkReference string `json:"linkReference"`
	ExpiresAt     string `json:"expiresAt"`
	SMSSent       bool   `json:"smsSent"`
}

// PosStatusResponse reports the polled state of a payment or a link
type PosStatusResponse struct {
	Status        string `json:"status"`
	IsPending     bool   `json:"isPending"`
	IsDone        bool   `json:"isDone"`
	IsFailed      bool   `json:"isFailed"`
	IsCancelled   bool   `json:"isCancelled"`
	IsExpired     bool   `json:"isExpired,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
}
