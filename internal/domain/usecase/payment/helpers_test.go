package payment

import (
	"time"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	"github.com/guineapay/djomy-bridge/internal/domain/port/gateway"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/logger"
	mockcore "github.com/guineapay/djomy-bridge/mocks/port/core"
	mockgw "github.com/guineapay/djomy-bridge/mocks/port/gateway"
	mockpersistence "github.com/guineapay/djomy-bridge/mocks/port/persistence"
	"github.com/shopspring/decimal"
)

// testFixedTime is the reference instant used across the payment tests
var testFixedTime = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

// testCallbackURLs are the callback URLs wired into test services
var testCallbackURLs = CallbackURLs{
	ReturnURL: "https://shop.example.com/payment/djomy/return",
	CancelURL: "https://shop.example.com/payment/djomy/cancel",
}

// testDeps bundles the mocked dependencies behind a test service
type testDeps struct {
	repo    *mockpersistence.MockTransactionRepository
	gateway *mockgw.MockPaymentGateway
	events  *mockpersistence.MockEventStore
}

// newTestService builds a payment service around mocks, with the Djomy
// gateway mock already registered and a fixed clock.
func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		repo:    new(mockpersistence.MockTransactionRepository),
		gateway: new(mockgw.MockPaymentGateway),
		events:  new(mockpersistence.MockEventStore),
	}

	deps.gateway.On("Code").Return(entity.ProviderDjomy).Maybe()

	registry := gateway.NewRegistry()
	registry.Register(deps.gateway)

	timeProvider := new(mockcore.MockTimeProvider)
	timeProvider.On("Now").Return(testFixedTime).Maybe()

	svc := NewService(
		deps.repo,
		registry,
		deps.events,
		timeProvider,
		logger.NewNoopLogger(),
		testCallbackURLs,
	)
	return svc, deps
}

// draftTransaction builds an open transaction in the draft state
func draftTransaction(reference string) *entity.Transaction {
	return &entity.Transaction{
		ID:           1,
		Reference:    reference,
		ProviderCode: entity.ProviderDjomy,
		Amount:       decimal.NewFromInt(10000),
		Currency:     "GNF",
		CountryCode:  "GN",
		State:        entity.StateDraft,
		CreatedAt:    testFixedTime,
		UpdatedAt:    testFixedTime,
	}
}
