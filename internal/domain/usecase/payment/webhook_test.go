package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	errs "github.com/guineapay/djomy-bridge/internal/domain/error"
)

func TestService_HandleWebhook(t *testing.T) {
	ctx := context.Background()
	signature := "v1:deadbeef"

	t.Run("should apply success notification", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")
		body := []byte(`{"eventType":"payment.success","merchantPaymentReference":"SO042","transactionId":"DJ-123","status":"SUCCESS"}`)

		deps.repo.On("GetByReference", ctx, "SO042").Return(tx, nil)
		deps.gateway.On("VerifyWebhookSignature", signature, body).Return(nil)
		deps.events.On("CheckOrSetInProgress", ctx, "SO042:DJ-123:SUCCESS").Return(false, nil)
		deps.repo.On("SetProviderReference", ctx, "SO042", "DJ-123").Return(nil)
		deps.repo.On("TransitionState", ctx, "SO042", entity.StateDone, "").Return(true, nil)
		deps.events.On("SetProcessed", ctx, "SO042:DJ-123:SUCCESS").Return(nil)

		err := svc.HandleWebhook(ctx, body, signature)

		assert.NoError(t, err)
		assert.Equal(t, entity.StateDone, tx.State)
		deps.repo.AssertExpectations(t)
		deps.events.AssertExpectations(t)
	})

	t.Run("fields nested under data are tolerated", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")
		body := []byte(`{"eventType":"payment.success","data":{"merchantPaymentReference":"SO042","transactionId":"DJ-123","status":"SUCCESS"}}`)

		deps.repo.On("GetByReference", ctx, "SO042").Return(tx, nil)
		deps.gateway.On("VerifyWebhookSignature", signature, body).Return(nil)
		deps.events.On("CheckOrSetInProgress", ctx, "SO042:DJ-123:SUCCESS").Return(false, nil)
		deps.repo.On("SetProviderReference", ctx, "SO042", "DJ-123").Return(nil)
		deps.repo.On("TransitionState", ctx, "SO042", entity.StateDone, "").Return(true, nil)
		deps.events.On("SetProcessed", ctx, "SO042:DJ-123:SUCCESS").Return(nil)

		err := svc.HandleWebhook(ctx, body, signature)

		assert.NoError(t, err)
		assert.Equal(t, entity.StateDone, tx.State)
	})

	t.Run("missing status falls back to the event type", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")
		body := []byte(`{"eventType":"payment.cancelled","merchantPaymentReference":"SO042"}`)

		deps.repo.On("GetByReference", ctx, "SO042").Return(tx, nil)
		deps.gateway.On("VerifyWebhookSignature", signature, body).Return(nil)
		deps.events.On("CheckOrSetInProgress", ctx, "SO042::CANCELLED").Return(false, nil)
		deps.repo.On("TransitionState", ctx, "SO042", entity.StateCancelled, "").Return(true, nil)
		deps.events.On("SetProcessed", ctx, "SO042::CANCELLED").Return(nil)

		err := svc.HandleWebhook(ctx, body, signature)

		assert.NoError(t, err)
		assert.Equal(t, entity.StateCancelled, tx.State)
	})

	t.Run("rejected signature skips all mutation", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")
		body := []byte(`{"eventType":"payment.success","merchantPaymentReference":"SO042","status":"SUCCESS"}`)

		deps.repo.On("GetByReference", ctx, "SO042").Return(tx, nil)
		deps.gateway.On("VerifyWebhookSignature", "v1:wrong", body).Return(errs.ErrSignature)

		err := svc.HandleWebhook(ctx, body, "v1:wrong")

		assert.ErrorIs(t, err, errs.ErrSignature)
		assert.Equal(t, entity.StateDraft, tx.State)
		deps.repo.AssertNotCalled(t, "TransitionState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		deps.events.AssertNotCalled(t, "CheckOrSetInProgress", mock.Anything, mock.Anything)
	})

	t.Run("duplicate delivery is ignored", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")
		body := []byte(`{"eventType":"payment.success","merchantPaymentReference":"SO042","transactionId":"DJ-123","status":"SUCCESS"}`)

		deps.repo.On("GetByReference", ctx, "SO042").Return(tx, nil)
		deps.gateway.On("VerifyWebhookSignature", signature, body).Return(nil)
		deps.events.On("CheckOrSetInProgress", ctx, "SO042:DJ-123:SUCCESS").Return(true, nil)

		err := svc.HandleWebhook(ctx, body, signature)

		assert.NoError(t, err)
		deps.repo.AssertNotCalled(t, "TransitionState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		deps.events.AssertNotCalled(t, "SetProcessed", mock.Anything, mock.Anything)
	})

	t.Run("dedup store outage does not block processing", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")
		body := []byte(`{"eventType":"payment.success","merchantPaymentReference":"SO042","transactionId":"DJ-123","status":"SUCCESS"}`)

		deps.repo.On("GetByReference", ctx, "SO042").Return(tx, nil)
		deps.gateway.On("VerifyWebhookSignature", signature, body).Return(nil)
		deps.events.On("CheckOrSetInProgress", ctx, "SO042:DJ-123:SUCCESS").
			Return(false, errors.New("redis unavailable"))
		deps.repo.On("SetProviderReference", ctx, "SO042", "DJ-123").Return(nil)
		deps.repo.On("TransitionState", ctx, "SO042", entity.StateDone, "").Return(true, nil)
		deps.events.On("SetProcessed", ctx, "SO042:DJ-123:SUCCESS").
			Return(errors.New("redis unavailable"))

		err := svc.HandleWebhook(ctx, body, signature)

		assert.NoError(t, err)
		assert.Equal(t, entity.StateDone, tx.State)
	})

	t.Run("unhandled event type is ignored", func(t *testing.T) {
		svc, deps := newTestService()
		body := []byte(`{"eventType":"payout.success","merchantPaymentReference":"SO042"}`)

		err := svc.HandleWebhook(ctx, body, signature)

		assert.NoError(t, err)
		deps.repo.AssertNotCalled(t, "GetByReference", mock.Anything, mock.Anything)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		svc, _ := newTestService()

		err := svc.HandleWebhook(ctx, []byte("not json"), signature)

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("uncorrelated webhook is acknowledged as a no-op", func(t *testing.T) {
		svc, deps := newTestService()
		body := []byte(`{"eventType":"payment.success","merchantPaymentReference":"MISSING","transactionId":"DJ-404","status":"SUCCESS"}`)

		deps.repo.On("GetByReference", ctx, "MISSING").Return(nil, errs.ErrTransactionNotFound)
		deps.repo.On("GetByProviderReference", ctx, entity.ProviderDjomy, "DJ-404").
			Return(nil, errs.ErrTransactionNotFound)

		err := svc.HandleWebhook(ctx, body, signature)

		assert.NoError(t, err)
		deps.gateway.AssertNotCalled(t, "VerifyWebhookSignature", mock.Anything, mock.Anything)
	})

	t.Run("falls back to the provider reference for correlation", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")
		tx.ProviderReference = "DJ-123"
		body := []byte(`{"eventType":"payment.failed","transactionId":"DJ-123","status":"FAILED"}`)

		deps.repo.On("GetByProviderReference", ctx, entity.ProviderDjomy, "DJ-123").Return(tx, nil)
		deps.gateway.On("VerifyWebhookSignature", signature, body).Return(nil)
		deps.events.On("CheckOrSetInProgress", ctx, "SO042:DJ-123:FAILED").Return(false, nil)
		deps.repo.On("TransitionState", ctx, "SO042", entity.StateError,
			"An error occurred during the processing of your payment (status FAILED).").Return(true, nil)
		deps.events.On("SetProcessed", ctx, "SO042:DJ-123:FAILED").Return(nil)

		err := svc.HandleWebhook(ctx, body, signature)

		assert.NoError(t, err)
		assert.Equal(t, entity.StateError, tx.State)
	})
}
