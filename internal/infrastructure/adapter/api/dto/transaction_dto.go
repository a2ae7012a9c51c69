package dto

// CreateTransactionRequest registers a draft transaction for later collection
type CreateTransactionRequest struct {
	Reference   string `json:"reference" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Currency    string `json:"currency" binding:"required"`
	CountryCode string `json:"countryCode"`
}

// TransactionResponse represents a transaction as exposed to the host platform
type TransactionResponse struct {
	Reference         string `json:"reference"`
	ProviderCode      string `json:"providerCode"`
	ProviderReference string `json:"providerReference,omitempty"`
	Amount            string `json:"amount"`
	Currency          string `json:"currency"`
	CountryCode       string `json:"countryCode"`
	PayerPhone        string `json:"payerPhone,omitempty"`
	State             string `json:"state"`
	StateMessage      string `json:"stateMessage,omitempty"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}
