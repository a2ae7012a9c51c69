package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	errs "github.com/guineapay/djomy-bridge/internal/domain/error"
)

// StatusBucket is the local classification every remote status string maps
// into. The remote vocabulary is an open enum; anything outside the table is
// unrecognized and treated as an error condition, never silently dropped.
type StatusBucket string

// Status buckets
const (
	BucketPending StatusBucket = "pending"
	BucketDone    StatusBucket = "done"
	BucketCancel  StatusBucket = "cancel"
	BucketError   StatusBucket = "error"
)

// statusBuckets maps every known remote status (upper-cased) to its bucket
var statusBuckets = map[string]StatusBucket{
	"PENDING":    BucketPending,
	"INITIATED":  BucketPending,
	"PROCESSING": BucketPending,
	"CREATED":    BucketPending,
	"SUCCESS":    BucketDone,
	"SUCCESSFUL": BucketDone,
	"CANCELLED":  BucketCancel,
	"FAILED":     BucketError,
	"ERROR":      BucketError,
}

// BucketFor classifies a remote status string, case-insensitively
func BucketFor(rawStatus string) (StatusBucket, bool) {
	bucket, ok := statusBuckets[strings.ToUpper(strings.TrimSpace(rawStatus))]
	return bucket, ok
}

// TargetState returns the local transaction state a bucket transitions to
func (b StatusBucket) TargetState() entity.TransactionState {
	switch b {
	case BucketPending:
		return entity.StatePending
	case BucketDone:
		return entity.StateDone
	case BucketCancel:
		return entity.StateCancelled
	default:
		return entity.StateError
	}
}

// ApplyUpdate reconciles a remote status report onto the local transaction.
//
// The provider reference is stored unconditionally, even when status
// resolution fails, so correlation is preserved for audit. The state
// transition is guarded by a compare-and-set in the repository: once any
// terminal state has been written, later notifications are reported and
// ignored, never applied (first terminal write wins; redelivery of the same
// terminal status is a no-op).
//
// An unrecognized status transitions the transaction to error with the raw
// status embedded in the message, and the UnrecognizedStatusError is
// returned so callers can log what was received.
func (s *Service) ApplyUpdate(ctx context.Context, tx *entity.Transaction, rawStatus, providerReference string) error {
	if providerReference != "" && providerReference != tx.ProviderReference {
		if err := s.repo.SetProviderReference(ctx, tx.Reference, providerReference); err != nil {
			return fmt.Errorf("failed to store provider reference: %w", err)
		}
		tx.ProviderReference = providerReference
	}

	bucket, known := BucketFor(rawStatus)
	if !known {
		message := fmt.Sprintf("Unknown payment status: %s", strings.ToUpper(strings.TrimSpace(rawStatus)))
		if _, err := s.transition(ctx, tx, entity.StateError, message); err != nil {
			return err
		}
		return &errs.UnrecognizedStatusError{Reference: tx.Reference, RawStatus: rawStatus}
	}

	target := bucket.TargetState()
	message := ""
	if bucket == BucketError {
		message = fmt.Sprintf(
			"An error occurred during the processing of your payment (status %s).",
			strings.ToUpper(strings.TrimSpace(rawStatus)),
		)
	}

	applied, err := s.transition(ctx, tx, target, message)
	if err != nil {
		return err
	}
	if !applied {
		s.logger.Warn("Transaction already terminal, status update ignored", map[string]any{
			"reference":       tx.Reference,
			"current_state":   string(tx.State),
			"attempted_state": string(target),
			"remote_status":   rawStatus,
		})
	}
	return nil
}

// transition applies a state change through the repository CAS and mirrors
// the outcome onto the in-memory entity.
func (s *Service) transition(ctx context.Context, tx *entity.Transaction, to entity.TransactionState, message string) (bool, error) {
	applied, err := s.repo.TransitionState(ctx, tx.Reference, to, message)
	if err != nil {
		return false, fmt.Errorf("failed to transition transaction %s to %s: %w", tx.Reference, to, err)
	}
	if applied {
		tx.State = to
		tx.StateMessage = message
		s.logger.Info("Transaction state updated", map[string]any{
			"reference": tx.Reference,
			"state":     string(to),
		})
	}
	return applied, nil
}
