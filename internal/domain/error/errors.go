package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidReference    = 4001
	CodeInvalidAmount       = 4002
	CodeUnsupportedCurrency = 4003
	CodeDuplicateReference  = 4004
	CodeTransactionNotFound = 4040
	CodeSignatureRejected   = 4030

	// 5xxx - Server / upstream errors
	CodeInternalServer = 5000
	CodeProviderAPI    = 5020
	CodeProviderAuth   = 5021
)

// Base error types
var (
	// ErrInvalidReference is returned when the merchant reference is empty or invalid
	ErrInvalidReference = errors.New("payment reference cannot be empty")

	// ErrInvalidAmount is returned when the transaction amount is zero or negative
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrUnsupportedCurrency is returned when the currency is not accepted by the provider
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrDuplicateReference is returned when a transaction with the same reference already exists
	ErrDuplicateReference = errors.New("transaction with this reference already exists")

	// ErrTransactionNotFound is returned when no transaction matches an inbound signal
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAuth marks a remote authentication failure (missing/expired/invalid token)
	ErrAuth = errors.New("provider authentication failed")

	// ErrSignature is returned for a missing or mismatched webhook signature.
	// Missing and mismatched are deliberately indistinguishable to the caller.
	ErrSignature = errors.New("webhook signature rejected")

	// ErrGatewayNotFound is returned when no gateway is registered for a provider code
	ErrGatewayNotFound = errors.New("no payment gateway registered for provider")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidReference):
		return CodeInvalidReference
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrUnsupportedCurrency):
		return CodeUnsupportedCurrency
	case errors.Is(err, ErrDuplicateReference):
		return CodeDuplicateReference
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrSignature):
		return CodeSignatureRejected
	case errors.Is(err, ErrAuth):
		return CodeProviderAuth
	case IsAPIError(err):
		return CodeProviderAPI
	default:
		return CodeInternalServer
	}
}

// APIError represents a non-success response from the remote payment API.
// The HTTP status code is carried so callers can distinguish authentication
// failures structurally instead of matching message substrings.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface for APIError
func (e *APIError) Error() string {
	return fmt.Sprintf("provider API error (status %d): %s", e.StatusCode, e.Message)
}

// Is reports auth failures as ErrAuth so errors.Is(err, ErrAuth) works
func (e *APIError) Is(target error) bool {
	return target == ErrAuth && e.StatusCode == http.StatusUnauthorized
}

// LogFields returns a map of fields for structured logging
func (e *APIError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "provider_api_error",
		"http_status": e.StatusCode,
		"message":     e.Message,
		"error_code":  CodeProviderAPI,
	}
}

// NewAPIError creates an APIError from a remote response
func NewAPIError(statusCode int, message string) error {
	return &APIError{StatusCode: statusCode, Message: message}
}

// IsAPIError checks if the error is a remote API error
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// AsAPIError unwraps err into an APIError when possible
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsAuthError checks if the error is a remote authentication failure
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuth)
}

// UnrecognizedStatusError is returned when the remote status string does not
// map to any known bucket. The raw status is preserved so operators can see
// exactly what was received.
type UnrecognizedStatusError struct {
	Reference string
	RawStatus string
}

// Error implements the error interface
func (e *UnrecognizedStatusError) Error() string {
	return fmt.Sprintf("unknown payment status %q for transaction %s", e.RawStatus, e.Reference)
}

// LogFields returns a map of fields for structured logging
func (e *UnrecognizedStatusError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "unrecognized_status",
		"reference":  e.Reference,
		"raw_status": e.RawStatus,
	}
}

// CorrelationError is returned when an inbound signal cannot be matched to a
// local transaction. Inbound requests are still acknowledged; retrying would
// not change the outcome.
type CorrelationError struct {
	ProviderReference string
	Reference         string
}

// Error implements the error interface
func (e *CorrelationError) Error() string {
	return fmt.Sprintf("no transaction found for provider reference %q / merchant reference %q",
		e.ProviderReference, e.Reference)
}

// Is checks if the target error is an ErrTransactionNotFound
func (e *CorrelationError) Is(target error) bool {
	return target == ErrTransactionNotFound
}

// LogFields returns a map of fields for structured logging
func (e *CorrelationError) LogFields() map[string]any {
	return map[string]any{
		"error_type":         "correlation_error",
		"provider_reference": e.ProviderReference,
		"reference":          e.Reference,
		"error_code":         CodeTransactionNotFound,
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTransactionNotFound) || errors.Is(err, ErrGatewayNotFound)
}

// IsSignatureError checks if the error is a webhook signature rejection
func IsSignatureError(err error) bool {
	return errors.Is(err, ErrSignature)
}

// IsDuplicateReferenceError checks if the error is a duplicate reference error
func IsDuplicateReferenceError(err error) bool {
	return errors.Is(err, ErrDuplicateReference)
}
