package persistence

import "context"

// EventStore provides idempotency checking for inbound webhook events.
// An event is identified by the provider transaction id plus the reported
// status, so redelivery of the same notification is detected while a later
// status change for the same payment is not.
type EventStore interface {
	// CheckOrSetInProgress returns true when the event was already seen
	// (processed, or currently being processed by a concurrent delivery).
	// Returns false and marks the event in progress otherwise.
	CheckOrSetInProgress(ctx context.Context, eventKey string) (bool, error)

	// SetProcessed marks the event as fully processed with a long expiry
	SetProcessed(ctx context.Context, eventKey string) error
}
