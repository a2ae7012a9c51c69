package persistence

import (
	"context"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
)

// TransactionRepository defines essential methods to interact with transaction data
type TransactionRepository interface {
	// Create saves a new transaction
	//
	// Possible errors:
	// - ErrDuplicateReference: If a transaction with the same reference already exists
	// - ErrDatabaseConnection: If the database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByReference retrieves a transaction by its merchant payment reference
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction matches
	// - ErrDatabaseConnection: If the database connection fails
	GetByReference(ctx context.Context, reference string) (*entity.Transaction, error)

	// GetByProviderReference retrieves a transaction by the remote system's
	// transaction identifier for the given provider code
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction matches
	// - ErrDatabaseConnection: If the database connection fails
	GetByProviderReference(ctx context.Context, providerCode, providerReference string) (*entity.Transaction, error)

	// LatestOpen returns the most recently created transaction for the
	// provider still in draft or pending state. Used as the best-effort
	// fallback when a redirect-return carries no transaction identifier.
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no open transaction exists
	// - ErrDatabaseConnection: If the database connection fails
	LatestOpen(ctx context.Context, providerCode string) (*entity.Transaction, error)

	// SetProviderReference stores the remote transaction identifier. This is
	// applied unconditionally, even when status resolution later fails, so
	// correlation is preserved for audit.
	SetProviderReference(ctx context.Context, reference, providerReference string) error

	// SetPayerPhone updates the payer phone captured during checkout
	SetPayerPhone(ctx context.Context, reference, phone string) error

	// TransitionState moves the transaction to the given state with a
	// compare-and-set guard: the write only applies while the transaction is
	// still in an open (non-terminal) state. It returns false with a nil
	// error when the transaction is already terminal, so the first terminal
	// write wins and later conflicting notifications are reported, not
	// applied.
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction matches the reference
	// - ErrDatabaseConnection: If the database connection fails
	TransitionState(ctx context.Context, reference string, to entity.TransactionState, message string) (bool, error)
}
