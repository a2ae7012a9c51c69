package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	errs "github.com/guineapay/djomy-bridge/internal/domain/error"
	"github.com/guineapay/djomy-bridge/internal/domain/port/gateway"
)

// CreatePayment creates the remote payment for a transaction and returns the
// URL the payer is redirected to. The payer phone is captured from the
// checkout form in the same call, after the transaction row already exists.
//
// Remote failures never escape: an API error moves the transaction to the
// error state with the remote message and is returned for the caller to
// translate into its own failure response.
func (s *Service) CreatePayment(ctx context.Context, reference, payerPhone string) (string, error) {
	tx, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		return "", err
	}

	if payerPhone != "" && payerPhone != tx.PayerPhone {
		if err := s.repo.SetPayerPhone(ctx, reference, payerPhone); err != nil {
			return "", err
		}
		tx.PayerPhone = payerPhone
	}

	gw, err := s.gatewayFor(tx.ProviderCode)
	if err != nil {
		return "", err
	}

	s.logger.Info("Creating payment", map[string]any{
		"reference": tx.Reference,
		"amount":    tx.Amount.String(),
		"phone":     tx.PayerPhone,
	})

	intent, err := gw.CreatePayment(ctx, gateway.CreatePaymentParams{
		Reference:   tx.Reference,
		Amount:      tx.Amount,
		CountryCode: tx.CountryCode,
		PayerPhone:  tx.PayerPhone,
		Description: fmt.Sprintf("Payment for %s", tx.Reference),
		ReturnURL:   s.urls.ReturnURL,
		CancelURL:   s.urls.CancelURL,
	})
	if err != nil {
		s.failTransaction(ctx, tx, err)
		return "", err
	}

	// Store the remote identifier before anything else so a webhook racing
	// this response can still correlate.
	if intent.ProviderReference != "" {
		if err := s.repo.SetProviderReference(ctx, tx.Reference, intent.ProviderReference); err != nil {
			return "", err
		}
		tx.ProviderReference = intent.ProviderReference
	}

	if intent.Status != "" {
		if err := s.ApplyUpdate(ctx, tx, intent.Status, intent.ProviderReference); err != nil {
			s.logger.Warn("Could not apply creation status", map[string]any{
				"reference": tx.Reference,
				"status":    intent.Status,
				"error":     err.Error(),
			})
		}
	}

	if intent.RedirectURL == "" {
		err := fmt.Errorf("%w: payment response carried no redirect URL", errs.ErrInvalidRequest)
		s.failTransaction(ctx, tx, err)
		return "", err
	}

	s.logger.Info("Payment created", map[string]any{
		"reference":          tx.Reference,
		"provider_reference": tx.ProviderReference,
		"redirect_url":       intent.RedirectURL,
	})
	return intent.RedirectURL, nil
}

// failTransaction moves a transaction to the error state with the failure
// message, preserving the first-terminal-write-wins rule.
func (s *Service) failTransaction(ctx context.Context, tx *entity.Transaction, cause error) {
	message := cause.Error()
	var apiErr *errs.APIError
	if errors.As(cause, &apiErr) {
		message = apiErr.Message
	}

	s.logger.Error("Payment operation failed", map[string]any{
		"reference": tx.Reference,
		"error":     cause.Error(),
	})

	if _, err := s.transition(ctx, tx, entity.StateError, message); err != nil {
		s.logger.Error("Could not record payment failure", map[string]any{
			"reference": tx.Reference,
			"error":     err.Error(),
		})
	}
}
