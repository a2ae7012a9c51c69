package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/guineapay/djomy-bridge/internal/domain/error"
	tport "github.com/guineapay/djomy-bridge/internal/domain/port/core"
)

// TransactionState represents the lifecycle state of a payment transaction
type TransactionState string

// Transaction states. Draft and pending are open states; done, cancelled
// and error are terminal and are never left once entered.
const (
	StateDraft     TransactionState = "draft"
	StatePending   TransactionState = "pending"
	StateDone      TransactionState = "done"
	StateCancelled TransactionState = "cancelled"
	StateError     TransactionState = "error"
)

// ProviderDjomy is the provider code for the Djomy mobile-money aggregator
const ProviderDjomy = "djomy"

// SupportedCurrencies lists the currencies accepted by Djomy
var SupportedCurrencies = []string{"GNF", "XOF", "EUR", "USD"}

// Transaction represents one payment attempt against a remote provider.
// The reference is the merchant-side identity; the provider reference is
// the remote system's identifier, set once known.
type Transaction struct {
	ID                uint64           // Database identifier
	Reference         string           // Unique merchant payment reference
	ProviderCode      string           // Payment provider code, e.g. "djomy"
	ProviderReference string           // Remote transaction identifier, empty until assigned
	Amount            decimal.Decimal  // Amount in the transaction currency
	Currency          string           // ISO currency code
	CountryCode       string           // ISO 3166-1 alpha-2 payer country
	PayerPhone        string           // Payer phone number, supplied during checkout
	State             TransactionState // Current lifecycle state
	StateMessage      string           // Human-readable detail for the current state
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewTransaction creates a draft transaction with basic validation
func NewTransaction(
	reference string,
	amount decimal.Decimal,
	currency string,
	countryCode string,
	timeProvider tport.TimeProvider,
) (*Transaction, error) {
	if reference == "" {
		return nil, errs.ErrInvalidReference
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, amount)
	}
	if !isSupportedCurrency(currency) {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCurrency, currency)
	}
	if countryCode == "" {
		countryCode = "GN"
	}

	now := timeProvider.Now()
	return &Transaction{
		Reference:    reference,
		ProviderCode: ProviderDjomy,
		Amount:       amount,
		Currency:     currency,
		CountryCode:  countryCode,
		State:        StateDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsTerminal reports whether the state can never be left again
func (s TransactionState) IsTerminal() bool {
	return s == StateDone || s == StateCancelled || s == StateError
}

// IsOpen reports whether the transaction can still receive status updates
func (t *Transaction) IsOpen() bool {
	return !t.State.IsTerminal()
}

// ValidState reports whether s is one of the known lifecycle states
func ValidState(s string) bool {
	switch TransactionState(s) {
	case StateDraft, StatePending, StateDone, StateCancelled, StateError:
		return true
	}
	return false
}

func isSupportedCurrency(currency string) bool {
	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}
	return false
}
