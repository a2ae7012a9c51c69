package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	errs "github.com/guineapay/djomy-bridge/internal/domain/error"
	mockcore "github.com/guineapay/djomy-bridge/mocks/port/core"
)

func TestNewTransaction(t *testing.T) {
	// Define fixed time for consistent testing
	fixedTime := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	newTimeProvider := func() *mockcore.MockTimeProvider {
		tp := new(mockcore.MockTimeProvider)
		tp.On("Now").Return(fixedTime)
		return tp
	}

	t.Run("should create draft transaction with valid inputs", func(t *testing.T) {
		amount := decimal.NewFromInt(10000)

		tx, err := NewTransaction("SO042", amount, "GNF", "GN", newTimeProvider())

		assert.NoError(t, err)
		assert.NotNil(t, tx)
		assert.Equal(t, "SO042", tx.Reference)
		assert.Equal(t, ProviderDjomy, tx.ProviderCode)
		assert.True(t, amount.Equal(tx.Amount))
		assert.Equal(t, "GNF", tx.Currency)
		assert.Equal(t, "GN", tx.CountryCode)
		assert.Equal(t, StateDraft, tx.State)
		assert.Empty(t, tx.ProviderReference)
		assert.Equal(t, fixedTime, tx.CreatedAt)
		assert.Equal(t, fixedTime, tx.UpdatedAt)
	})

	t.Run("should default country code to GN when empty", func(t *testing.T) {
		tx, err := NewTransaction("SO043", decimal.NewFromInt(500), "XOF", "", newTimeProvider())

		assert.NoError(t, err)
		assert.Equal(t, "GN", tx.CountryCode)
	})

	t.Run("should reject empty reference", func(t *testing.T) {
		tx, err := NewTransaction("", decimal.NewFromInt(100), "GNF", "GN", newTimeProvider())

		assert.Nil(t, tx)
		assert.ErrorIs(t, err, errs.ErrInvalidReference)
	})

	t.Run("should reject zero amount", func(t *testing.T) {
		tx, err := NewTransaction("SO044", decimal.Zero, "GNF", "GN", newTimeProvider())

		assert.Nil(t, tx)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		tx, err := NewTransaction("SO045", decimal.NewFromInt(-100), "GNF", "GN", newTimeProvider())

		assert.Nil(t, tx)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("should reject unsupported currency", func(t *testing.T) {
		tx, err := NewTransaction("SO046", decimal.NewFromInt(100), "GBP", "GN", newTimeProvider())

		assert.Nil(t, tx)
		assert.ErrorIs(t, err, errs.ErrUnsupportedCurrency)
	})
}

func TestTransactionState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    TransactionState
		terminal bool
	}{
		{StateDraft, false},
		{StatePending, false},
		{StateDone, true},
		{StateCancelled, true},
		{StateError, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.state.IsTerminal())
		})
	}
}

func TestTransaction_IsOpen(t *testing.T) {
	t.Run("draft transaction is open", func(t *testing.T) {
		tx := &Transaction{State: StateDraft}
		assert.True(t, tx.IsOpen())
	})

	t.Run("done transaction is not open", func(t *testing.T) {
		tx := &Transaction{State: StateDone}
		assert.False(t, tx.IsOpen())
	})
}

func TestValidState(t *testing.T) {
	assert.True(t, ValidState("draft"))
	assert.True(t, ValidState("pending"))
	assert.True(t, ValidState("done"))
	assert.True(t, ValidState("cancelled"))
	assert.True(t, ValidState("error"))
	assert.False(t, ValidState("canceled"))
	assert.False(t, ValidState(""))
	assert.False(t, ValidState("DONE"))
}
