package payment

import (
	"context"
	"errors"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	errs "github.com/guineapay/djomy-bridge/internal/domain/error"
)

// ResolveRedirect finds the local transaction a redirect-return refers to.
//
// The primary key is the remote transaction identifier from the query
// string. The gateway does not reliably echo it on browser redirects, so
// when it is absent (or matches nothing) the most recently created open
// transaction for the provider is used instead. That fallback is unsound
// under concurrent pending transactions for the same merchant; it is a
// documented best-effort heuristic, not a correctness guarantee.
//
// Returns the transaction and whether the fallback was used.
func (s *Service) ResolveRedirect(ctx context.Context, providerReference string) (*entity.Transaction, bool, error) {
	if providerReference != "" {
		tx, err := s.repo.GetByProviderReference(ctx, entity.ProviderDjomy, providerReference)
		if err == nil {
			return tx, false, nil
		}
		if !errors.Is(err, errs.ErrTransactionNotFound) {
			return nil, false, err
		}
	}

	tx, err := s.repo.LatestOpen(ctx, entity.ProviderDjomy)
	if err != nil {
		if errors.Is(err, errs.ErrTransactionNotFound) {
			return nil, false, &errs.CorrelationError{ProviderReference: providerReference}
		}
		return nil, false, err
	}

	s.logger.Info("No transaction id in redirect, using most recent open transaction", map[string]any{
		"reference": tx.Reference,
	})
	return tx, true, nil
}

// HandleReturn processes the browser redirect after the payer completes or
// abandons checkout. The redirect carries best-effort, unsigned hints only,
// so when a transaction identifier is available the authoritative status is
// re-queried live from the remote API; the URL's own status parameter is the
// fallback when that query fails.
//
// Correlation failures are logged and swallowed: the payer is redirected to
// the status page either way, and retrying would not change the outcome.
func (s *Service) HandleReturn(ctx context.Context, providerReference, urlStatus string) error {
	tx, viaFallback, err := s.ResolveRedirect(ctx, providerReference)
	if err != nil {
		if errs.IsNotFoundError(err) {
			s.logger.Warn("Redirect could not be correlated to a transaction", map[string]any{
				"provider_reference": providerReference,
				"url_status":         urlStatus,
			})
			return nil
		}
		return err
	}

	// When the URL carried no identifier, fall back to the one stored at
	// payment creation.
	if providerReference == "" {
		providerReference = tx.ProviderReference
	}

	if providerReference == "" {
		s.logger.Warn("No transaction id available to verify payment status", map[string]any{
			"reference": tx.Reference,
		})
		return nil
	}

	finalStatus := urlStatus
	gw, err := s.gatewayFor(tx.ProviderCode)
	if err != nil {
		return err
	}

	status, err := gw.PaymentStatus(ctx, providerReference)
	switch {
	case err == nil:
		if finalStatus == "" {
			finalStatus = status.Status
		}
	case urlStatus == "":
		// Neither a live status nor a URL hint: nothing to reconcile.
		s.logger.Warn("Could not fetch payment status from provider", map[string]any{
			"reference": tx.Reference,
			"error":     err.Error(),
		})
		return nil
	default:
		s.logger.Warn("Could not fetch payment status from provider, using redirect status", map[string]any{
			"reference":  tx.Reference,
			"url_status": urlStatus,
			"error":      err.Error(),
		})
	}

	if viaFallback {
		s.logger.Info("Reconciling via redirect fallback", map[string]any{
			"reference":          tx.Reference,
			"provider_reference": providerReference,
			"status":             finalStatus,
		})
	}

	if err := s.ApplyUpdate(ctx, tx, finalStatus, providerReference); err != nil {
		var unrecognized *errs.UnrecognizedStatusError
		if errors.As(err, &unrecognized) {
			s.logger.Warn("Redirect carried an unrecognized payment status", unrecognized.LogFields())
			return nil
		}
		return err
	}
	return nil
}
