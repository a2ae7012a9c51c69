package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	errs "github.com/guineapay/djomy-bridge/internal/domain/error"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		status string
		bucket StatusBucket
		known  bool
	}{
		{"PENDING", BucketPending, true},
		{"INITIATED", BucketPending, true},
		{"PROCESSING", BucketPending, true},
		{"CREATED", BucketPending, true},
		{"SUCCESS", BucketDone, true},
		{"SUCCESSFUL", BucketDone, true},
		{"CANCELLED", BucketCancel, true},
		{"FAILED", BucketError, true},
		{"ERROR", BucketError, true},
		// Classification is case-insensitive and tolerates padding
		{"success", BucketDone, true},
		{"  Failed  ", BucketError, true},
		// Anything outside the table is unrecognized, never silently mapped
		{"ON_HOLD", "", false},
		{"CANCELED", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			bucket, known := BucketFor(tt.status)
			assert.Equal(t, tt.known, known)
			if tt.known {
				assert.Equal(t, tt.bucket, bucket)
			}
		})
	}
}

func TestStatusBucket_TargetState(t *testing.T) {
	assert.Equal(t, entity.StatePending, BucketPending.TargetState())
	assert.Equal(t, entity.StateDone, BucketDone.TargetState())
	assert.Equal(t, entity.StateCancelled, BucketCancel.TargetState())
	assert.Equal(t, entity.StateError, BucketError.TargetState())
}

func TestService_ApplyUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("should apply done state for success status", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")

		deps.repo.On("SetProviderReference", ctx, "SO042", "DJ-123").Return(nil)
		deps.repo.On("TransitionState", ctx, "SO042", entity.StateDone, "").Return(true, nil)

		err := svc.ApplyUpdate(ctx, tx, "SUCCESS", "DJ-123")

		assert.NoError(t, err)
		assert.Equal(t, entity.StateDone, tx.State)
		assert.Equal(t, "DJ-123", tx.ProviderReference)
		deps.repo.AssertExpectations(t)
	})

	t.Run("should not overwrite an unchanged provider reference", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")
		tx.ProviderReference = "DJ-123"

		deps.repo.On("TransitionState", ctx, "SO042", entity.StatePending, "").Return(true, nil)

		err := svc.ApplyUpdate(ctx, tx, "PENDING", "DJ-123")

		assert.NoError(t, err)
		deps.repo.AssertNotCalled(t, "SetProviderReference", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should set error state with message for failed status", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")

		expectedMessage := "An error occurred during the processing of your payment (status FAILED)."
		deps.repo.On("TransitionState", ctx, "SO042", entity.StateError, expectedMessage).Return(true, nil)

		err := svc.ApplyUpdate(ctx, tx, "failed", "")

		assert.NoError(t, err)
		assert.Equal(t, entity.StateError, tx.State)
		assert.Equal(t, expectedMessage, tx.StateMessage)
		deps.repo.AssertExpectations(t)
	})

	t.Run("should ignore update when transaction is already terminal", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")
		tx.State = entity.StateDone

		// The CAS reports the write was not applied
		deps.repo.On("TransitionState", ctx, "SO042", entity.StateCancelled, "").Return(false, nil)

		err := svc.ApplyUpdate(ctx, tx, "CANCELLED", "")

		assert.NoError(t, err)
		assert.Equal(t, entity.StateDone, tx.State)
		deps.repo.AssertExpectations(t)
	})

	t.Run("redelivered terminal status is a no-op without error", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")
		tx.State = entity.StateDone

		deps.repo.On("TransitionState", ctx, "SO042", entity.StateDone, "").Return(false, nil)

		err := svc.ApplyUpdate(ctx, tx, "SUCCESS", "")

		assert.NoError(t, err)
		assert.Equal(t, entity.StateDone, tx.State)
	})

	t.Run("unrecognized status moves transaction to error and reports it", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")

		deps.repo.On("TransitionState", ctx, "SO042", entity.StateError, "Unknown payment status: ON_HOLD").
			Return(true, nil)

		err := svc.ApplyUpdate(ctx, tx, "on_hold", "")

		assert.Error(t, err)
		var unrecognized *errs.UnrecognizedStatusError
		assert.ErrorAs(t, err, &unrecognized)
		assert.Equal(t, "on_hold", unrecognized.RawStatus)
		assert.Equal(t, entity.StateError, tx.State)
		deps.repo.AssertExpectations(t)
	})

	t.Run("provider reference is stored even when status is unrecognized", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")

		deps.repo.On("SetProviderReference", ctx, "SO042", "DJ-999").Return(nil)
		deps.repo.On("TransitionState", ctx, "SO042", entity.StateError, mock.Anything).Return(true, nil)

		err := svc.ApplyUpdate(ctx, tx, "WEIRD", "DJ-999")

		assert.Error(t, err)
		assert.Equal(t, "DJ-999", tx.ProviderReference)
		deps.repo.AssertExpectations(t)
	})

	t.Run("repository failure is propagated", func(t *testing.T) {
		svc, deps := newTestService()
		tx := draftTransaction("SO042")

		deps.repo.On("TransitionState", ctx, "SO042", entity.StateDone, "").
			Return(false, errs.ErrDatabaseConnection)

		err := svc.ApplyUpdate(ctx, tx, "SUCCESS", "")

		assert.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.Equal(t, entity.StateDraft, tx.State)
	})
}
