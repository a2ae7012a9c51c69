package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	errs "github.com/guineapay/djomy-bridge/internal/domain/error"
	coreport "github.com/guineapay/djomy-bridge/internal/domain/port/core"
	"github.com/guineapay/djomy-bridge/internal/domain/port/gateway"
	"github.com/guineapay/djomy-bridge/internal/domain/port/persistence"
)

// CallbackURLs are the absolute URLs the remote gateway sends the payer back
// to after checkout. Built by the caller from the public base URL.
type CallbackURLs struct {
	ReturnURL string
	CancelURL string
}

// Service drives payment transactions through their lifecycle: creation on
// the remote gateway, correlation of inbound signals, and reconciliation of
// remote statuses onto the local state machine.
type Service struct {
	repo         persistence.TransactionRepository
	gateways     *gateway.Registry
	events       persistence.EventStore
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	urls         CallbackURLs
}

// NewService creates the payment service
func NewService(
	repo persistence.TransactionRepository,
	gateways *gateway.Registry,
	events persistence.EventStore,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	urls CallbackURLs,
) *Service {
	return &Service{
		repo:         repo,
		gateways:     gateways,
		events:       events,
		timeProvider: timeProvider,
		logger:       logger,
		urls:         urls,
	}
}

// CreateTransaction registers a draft transaction on behalf of the host
// platform. The reference is the caller-assigned identity and must be unique.
func (s *Service) CreateTransaction(
	ctx context.Context,
	reference string,
	amount decimal.Decimal,
	currency string,
	countryCode string,
) (*entity.Transaction, error) {
	tx, err := entity.NewTransaction(reference, amount, currency, countryCode, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction created", map[string]any{
		"reference": reference,
		"amount":    amount.String(),
		"currency":  currency,
	})
	return tx, nil
}

// GetTransaction retrieves a transaction by its merchant reference
func (s *Service) GetTransaction(ctx context.Context, reference string) (*entity.Transaction, error) {
	return s.repo.GetByReference(ctx, reference)
}

// gatewayFor returns the registered gateway for a transaction's provider
func (s *Service) gatewayFor(providerCode string) (gateway.PaymentGateway, error) {
	gw, err := s.gateways.Get(providerCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrGatewayNotFound, providerCode)
	}
	return gw, nil
}
