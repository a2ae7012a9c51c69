package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid reference", ErrInvalidReference, CodeInvalidReference},
		{"invalid amount", ErrInvalidAmount, CodeInvalidAmount},
		{"unsupported currency", ErrUnsupportedCurrency, CodeUnsupportedCurrency},
		{"duplicate reference", ErrDuplicateReference, CodeDuplicateReference},
		{"transaction not found", ErrTransactionNotFound, CodeTransactionNotFound},
		{"signature rejected", ErrSignature, CodeSignatureRejected},
		{"auth failure", ErrAuth, CodeProviderAuth},
		{"wrapped error keeps its code", fmt.Errorf("context: %w", ErrInvalidAmount), CodeInvalidAmount},
		{"unknown error falls back to internal", errors.New("something else"), CodeInternalServer},
		{"nil error falls back to internal", nil, CodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorCode(tt.err))
		})
	}
}

func TestAPIError(t *testing.T) {
	t.Run("carries status code and message", func(t *testing.T) {
		err := NewAPIError(http.StatusBadRequest, "Invalid payer number")

		apiErr, ok := AsAPIError(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "Invalid payer number", apiErr.Message)
		assert.Contains(t, err.Error(), "400")
		assert.Contains(t, err.Error(), "Invalid payer number")
	})

	t.Run("401 response is an auth error", func(t *testing.T) {
		err := NewAPIError(http.StatusUnauthorized, "token expired")

		assert.True(t, IsAuthError(err))
		assert.ErrorIs(t, err, ErrAuth)
		assert.Equal(t, CodeProviderAuth, ErrorCode(err))
	})

	t.Run("non-401 response is not an auth error", func(t *testing.T) {
		err := NewAPIError(http.StatusForbidden, "partner domain rejected")

		assert.False(t, IsAuthError(err))
		assert.Equal(t, CodeProviderAPI, ErrorCode(err))
	})

	t.Run("wrapped API error is still detected", func(t *testing.T) {
		err := fmt.Errorf("create payment: %w", NewAPIError(http.StatusBadGateway, "upstream down"))

		assert.True(t, IsAPIError(err))
		apiErr, ok := AsAPIError(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	})

	t.Run("plain error is not an API error", func(t *testing.T) {
		assert.False(t, IsAPIError(errors.New("boom")))
	})
}

func TestUnrecognizedStatusError(t *testing.T) {
	err := &UnrecognizedStatusError{Reference: "SO042", RawStatus: "ON_HOLD"}

	assert.Contains(t, err.Error(), "ON_HOLD")
	assert.Contains(t, err.Error(), "SO042")

	fields := err.LogFields()
	assert.Equal(t, "SO042", fields["reference"])
	assert.Equal(t, "ON_HOLD", fields["raw_status"])
}

func TestCorrelationError(t *testing.T) {
	t.Run("matches ErrTransactionNotFound", func(t *testing.T) {
		err := &CorrelationError{ProviderReference: "DJ-123"}

		assert.ErrorIs(t, err, ErrTransactionNotFound)
		assert.True(t, IsNotFoundError(err))
		assert.Equal(t, CodeTransactionNotFound, ErrorCode(err))
	})

	t.Run("message names both identifiers", func(t *testing.T) {
		err := &CorrelationError{ProviderReference: "DJ-123", Reference: "SO042"}

		assert.Contains(t, err.Error(), "DJ-123")
		assert.Contains(t, err.Error(), "SO042")
	})
}

func TestErrorClassifiers(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrTransactionNotFound))
	assert.True(t, IsNotFoundError(ErrGatewayNotFound))
	assert.False(t, IsNotFoundError(ErrInvalidAmount))

	assert.True(t, IsSignatureError(fmt.Errorf("webhook: %w", ErrSignature)))
	assert.False(t, IsSignatureError(ErrAuth))

	assert.True(t, IsDuplicateReferenceError(ErrDuplicateReference))
	assert.False(t, IsDuplicateReferenceError(ErrTransactionNotFound))
}
