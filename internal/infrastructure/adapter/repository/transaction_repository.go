package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	errs "github.com/guineapay/djomy-bridge/internal/domain/error"
	coreport "github.com/guineapay/djomy-bridge/internal/domain/port/core"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/model"
)

// terminalStates are the states a transaction can never leave
var terminalStates = []string{
	string(entity.StateDone),
	string(entity.StateCancelled),
	string(entity.StateError),
}

// TransactionRepository implements the TransactionRepository port using GORM
type TransactionRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(tx *entity.Transaction) model.Transaction {
	return model.Transaction{
		ID:                tx.ID,
		Reference:         tx.Reference,
		ProviderCode:      tx.ProviderCode,
		ProviderReference: tx.ProviderReference,
		Amount:            tx.Amount.String(),
		Currency:          tx.Currency,
		CountryCode:       tx.CountryCode,
		PayerPhone:        tx.PayerPhone,
		State:             string(tx.State),
		StateMessage:      tx.StateMessage,
		CreatedAt:         tx.CreatedAt,
		UpdatedAt:         tx.UpdatedAt,
	}
}

// modelToEntity converts a database model to a transaction entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		r.logger.Warn("Stored amount is not a valid decimal", map[string]any{
			"reference": m.Reference,
			"amount":    m.Amount,
		})
		amount = decimal.Zero
	}

	return &entity.Transaction{
		ID:                m.ID,
		Reference:         m.Reference,
		ProviderCode:      m.ProviderCode,
		ProviderReference: m.ProviderReference,
		Amount:            amount,
		Currency:          m.Currency,
		CountryCode:       m.CountryCode,
		PayerPhone:        m.PayerPhone,
		State:             entity.TransactionState(m.State),
		StateMessage:      m.StateMessage,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// Create saves a new transaction
func (r *TransactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	r.logger.Debug("Creating transaction", map[string]any{
		"reference": tx.Reference,
	})

	transactionModel := r.entityToModel(tx)
	result := r.db.WithContext(ctx).Create(&transactionModel)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate transaction reference", map[string]any{
				"reference": tx.Reference,
			})
			return errs.ErrDuplicateReference
		}
		r.logger.Error("Failed to create transaction", map[string]any{
			"reference": tx.Reference,
			"error":     result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	tx.ID = transactionModel.ID
	return nil
}

// GetByReference retrieves a transaction by its merchant payment reference
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&transactionModel)
	if result.Error != nil {
		return nil, r.classifyLookupError(result.Error, reference)
	}
	return r.modelToEntity(&transactionModel), nil
}

// GetByProviderReference retrieves a transaction by the remote system's
// transaction identifier
func (r *TransactionRepository) GetByProviderReference(ctx context.Context, providerCode, providerReference string) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).
		Where("provider_code = ? AND provider_reference = ?", providerCode, providerReference).
		First(&transactionModel)
	if result.Error != nil {
		return nil, r.classifyLookupError(result.Error, providerReference)
	}
	return r.modelToEntity(&transactionModel), nil
}

// LatestOpen returns the most recently created draft or pending transaction
// for the provider. Best-effort redirect correlation only; see the port
// documentation for the ambiguity this carries.
func (r *TransactionRepository) LatestOpen(ctx context.Context, providerCode string) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).
		Where("provider_code = ? AND state IN ?", providerCode,
			[]string{string(entity.StateDraft), string(entity.StatePending)}).
		Order("created_at DESC").
		First(&transactionModel)
	if result.Error != nil {
		return nil, r.classifyLookupError(result.Error, providerCode)
	}
	return r.modelToEntity(&transactionModel), nil
}

// SetProviderReference stores the remote transaction identifier
func (r *TransactionRepository) SetProviderReference(ctx context.Context, reference, providerReference string) error {
	return r.updateFields(ctx, reference, map[string]any{
		"provider_reference": providerReference,
		"updated_at":         r.timeProvider.Now(),
	})
}

// SetPayerPhone updates the payer phone captured during checkout
func (r *TransactionRepository) SetPayerPhone(ctx context.Context, reference, phone string) error {
	return r.updateFields(ctx, reference, map[string]any{
		"payer_phone": phone,
		"updated_at":  r.timeProvider.Now(),
	})
}

// TransitionState applies a guarded state change: the write only succeeds
// while the row is still in an open state, so racing notifications cannot
// both land a terminal state. Returns false with a nil error when a
// terminal state already holds.
func (r *TransactionRepository) TransitionState(ctx context.Context, reference string, to entity.TransactionState, message string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("reference = ? AND state NOT IN ?", reference, terminalStates).
		Updates(map[string]any{
			"state":         string(to),
			"state_message": message,
			"updated_at":    r.timeProvider.Now(),
		})
	if result.Error != nil {
		r.logger.Error("Failed to transition transaction state", map[string]any{
			"reference": reference,
			"state":     string(to),
			"error":     result.Error.Error(),
		})
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected > 0 {
		return true, nil
	}

	// Zero rows: either the row does not exist, or it is already terminal.
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("reference = ?", reference).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	if count == 0 {
		return false, errs.ErrTransactionNotFound
	}
	return false, nil
}

// updateFields applies a partial update to the row with the given reference
func (r *TransactionRepository) updateFields(ctx context.Context, reference string, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("reference = ?", reference).
		Updates(fields)
	if result.Error != nil {
		r.logger.Error("Failed to update transaction", map[string]any{
			"reference": reference,
			"error":     result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// classifyLookupError maps GORM lookup failures to domain errors
func (r *TransactionRepository) classifyLookupError(err error, key string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrTransactionNotFound
	}
	r.logger.Error("Transaction lookup failed", map[string]any{
		"key":   key,
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// isDuplicateKeyError detects unique constraint violations across drivers
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
