package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	errs "github.com/guineapay/djomy-bridge/internal/domain/error"
)

// webhookEventTypes are the notification types this service processes
var webhookEventTypes = map[string]string{
	"payment.success":   "SUCCESS",
	"payment.failed":    "FAILED",
	"payment.cancelled": "CANCELLED",
	"payment.pending":   "PENDING",
}

// HandleWebhook processes one asynchronous notification from the remote
// payment system. The signature is verified over the raw body bytes before
// any transaction mutation; a rejected signature skips the mutation but the
// HTTP layer still acknowledges, so ErrSignature is returned for the handler
// to log, not to surface remotely.
//
// Redelivered events are detected through the event store and ignored.
// Unknown event types and uncorrelatable payloads are logged no-ops.
func (s *Service) HandleWebhook(ctx context.Context, rawBody []byte, signatureHeader string) error {
	var payload map[string]any
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return fmt.Errorf("%w: malformed webhook body", errs.ErrInvalidRequest)
	}

	eventType, _ := payload["eventType"].(string)
	impliedStatus, known := webhookEventTypes[eventType]
	if !known {
		s.logger.Info("Ignoring webhook with unhandled event type", map[string]any{
			"event_type": eventType,
		})
		return nil
	}

	tx, err := s.resolveWebhook(ctx, payload)
	if err != nil {
		if errs.IsNotFoundError(err) {
			s.logger.Warn("Webhook could not be correlated to a transaction", map[string]any{
				"event_type": eventType,
			})
			return nil
		}
		return err
	}

	gw, err := s.gatewayFor(tx.ProviderCode)
	if err != nil {
		return err
	}

	if err := gw.VerifyWebhookSignature(signatureHeader, rawBody); err != nil {
		s.logger.Warn("Webhook signature rejected", map[string]any{
			"reference":  tx.Reference,
			"event_type": eventType,
		})
		return err
	}

	providerReference := webhookField(payload, "transactionId")
	status := webhookField(payload, "status")
	if status == "" {
		status = impliedStatus
	}

	eventKey := fmt.Sprintf("%s:%s:%s", tx.Reference, providerReference, strings.ToUpper(status))
	duplicate, err := s.events.CheckOrSetInProgress(ctx, eventKey)
	if err != nil {
		// Dedup is best effort: the state machine CAS still guarantees
		// first-terminal-write-wins if the store is unavailable.
		s.logger.Warn("Webhook dedup store unavailable", map[string]any{
			"event_key": eventKey,
			"error":     err.Error(),
		})
	} else if duplicate {
		s.logger.Info("Duplicate webhook delivery ignored", map[string]any{
			"reference": tx.Reference,
			"event_key": eventKey,
		})
		return nil
	}

	if err := s.ApplyUpdate(ctx, tx, status, providerReference); err != nil {
		var unrecognized *errs.UnrecognizedStatusError
		if errors.As(err, &unrecognized) {
			s.logger.Warn("Webhook carried an unrecognized payment status", unrecognized.LogFields())
		} else {
			return err
		}
	}

	if err := s.events.SetProcessed(ctx, eventKey); err != nil {
		s.logger.Warn("Could not mark webhook event processed", map[string]any{
			"event_key": eventKey,
			"error":     err.Error(),
		})
	}
	return nil
}

// resolveWebhook correlates a webhook payload to a local transaction: by
// merchant payment reference when present, else by the remote transaction
// identifier.
func (s *Service) resolveWebhook(ctx context.Context, payload map[string]any) (*entity.Transaction, error) {
	if reference := webhookField(payload, "merchantPaymentReference"); reference != "" {
		tx, err := s.repo.GetByReference(ctx, reference)
		if err == nil {
			return tx, nil
		}
		if !errors.Is(err, errs.ErrTransactionNotFound) {
			return nil, err
		}
	}

	if providerReference := webhookField(payload, "transactionId"); providerReference != "" {
		tx, err := s.repo.GetByProviderReference(ctx, entity.ProviderDjomy, providerReference)
		if err == nil {
			return tx, nil
		}
		if !errors.Is(err, errs.ErrTransactionNotFound) {
			return nil, err
		}
	}

	return nil, &errs.CorrelationError{
		ProviderReference: webhookField(payload, "transactionId"),
		Reference:         webhookField(payload, "merchantPaymentReference"),
	}
}

// webhookField reads a string field from the payload, tolerating payloads
// that nest the payment fields under a data object.
func webhookField(payload map[string]any, key string) string {
	if value, ok := payload[key].(string); ok && value != "" {
		return value
	}
	if data, ok := payload["data"].(map[string]any); ok {
		if value, ok := data[key].(string); ok {
			return value
		}
	}
	return ""
}
