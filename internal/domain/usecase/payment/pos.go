package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	"github.com/guineapay/djomy-bridge/internal/domain/port/gateway"
)

// Mobile-money networks accepted for direct POS payments
var posPaymentMethods = map[string]string{
	"OM":   "Orange Money",
	"MOMO": "MTN Mobile Money",
	"KULU": "Kulu",
}

// DefaultPosMethod is used when the terminal does not select a network
const DefaultPosMethod = "OM"

// posLinkExpiry is the validity window for POS payment links
const posLinkExpiry = 15 * time.Minute

// PosPaymentResult is the outcome of a direct POS payment push
type PosPaymentResult struct {
	ProviderReference string
	Status            string
}

// PosLinkResult is a created POS payment link
type PosLinkResult struct {
	PaymentLink   string
	LinkReference string
	ExpiresAt     time.Time
	SMSSent       bool
}

// StatusFlags summarizes a polled payment status for terminal display
type StatusFlags struct {
	Status      string
	IsPending   bool
	IsDone      bool
	IsFailed    bool
	IsCancelled bool
}

// LinkFlags summarizes a polled payment link for terminal display
type LinkFlags struct {
	LinkStatus        string
	IsPending         bool
	IsDone            bool
	IsFailed          bool
	IsCancelled       bool
	IsExpired         bool
	ProviderReference string // Remote id of the successful attempt, if any
}

// CreatePosPayment pushes a payment request to the customer's phone for a
// point-of-sale order. POS orders are settled on the terminal, not through
// a local transaction row, so this is a direct gateway passthrough.
func (s *Service) CreatePosPayment(ctx context.Context, reference, method, phoneNumber string, amount decimal.Decimal) (*PosPaymentResult, error) {
	if _, ok := posPaymentMethods[method]; !ok {
		method = DefaultPosMethod
	}

	provider, err := s.gatewayFor(entity.ProviderDjomy)
	if err != nil {
		return nil, err
	}

	result, err := provider.CreateDirectPayment(ctx, gateway.DirectPaymentParams{
		Reference:   reference,
		Method:      method,
		Amount:      amount,
		CountryCode: "GN",
		PayerPhone:  phoneNumber,
		Description: fmt.Sprintf("POS Payment - %s", reference),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("POS payment pushed", map[string]any{
		"reference":          reference,
		"method":             method,
		"provider_reference": result.ProviderReference,
		"status":             result.Status,
	})
	return &PosPaymentResult{
		ProviderReference: result.ProviderReference,
		Status:            result.Status,
	}, nil
}

// CreatePosLink creates a shareable payment link for a POS order. When a
// phone number is supplied the gateway also sends the link by SMS.
func (s *Service) CreatePosLink(ctx context.Context, reference, phoneNumber string, amount decimal.Decimal) (*PosLinkResult, error) {
	provider, err := s.gatewayFor(entity.ProviderDjomy)
	if err != nil {
		return nil, err
	}

	expiresAt := s.timeProvider.Now().UTC().Add(posLinkExpiry)
	link, err := provider.CreatePaymentLink(ctx, gateway.PaymentLinkParams{
		Reference:   reference,
		LinkName:    fmt.Sprintf("POS-%s", reference),
		Amount:      amount,
		CountryCode: "GN",
		Description: fmt.Sprintf("POS Payment - %s", reference),
		ExpiresAt:   expiresAt,
		PhoneNumber: phoneNumber,
	})
	if err != nil {
		return nil, err
	}

	return &PosLinkResult{
		PaymentLink:   link.URL,
		LinkReference: link.Reference,
		ExpiresAt:     expiresAt,
		SMSSent:       link.SMSSent,
	}, nil
}

// CheckPaymentStatus polls the remote status of a payment and classifies it
// for terminal display.
func (s *Service) CheckPaymentStatus(ctx context.Context, providerReference string) (*StatusFlags, error) {
	provider, err := s.gatewayFor(entity.ProviderDjomy)
	if err != nil {
		return nil, err
	}

	status, err := provider.PaymentStatus(ctx, providerReference)
	if err != nil {
		return nil, err
	}

	bucket, _ := BucketFor(status.Status)
	return &StatusFlags{
		Status:      strings.ToUpper(status.Status),
		IsPending:   bucket == BucketPending,
		IsDone:      bucket == BucketDone,
		IsFailed:    bucket == BucketError,
		IsCancelled: bucket == BucketCancel,
	}, nil
}

// CheckLinkStatus polls a payment link and derives its display flags from
// the link state and the nested payment attempts.
func (s *Service) CheckLinkStatus(ctx context.Context, linkReference string) (*LinkFlags, error) {
	provider, err := s.gatewayFor(entity.ProviderDjomy)
	if err != nil {
		return nil, err
	}

	link, err := provider.LinkStatus(ctx, linkReference)
	if err != nil {
		return nil, err
	}

	linkStatus := strings.ToUpper(link.Status)
	flags := &LinkFlags{
		LinkStatus:  linkStatus,
		IsCancelled: linkStatus == "REVOKED",
		IsExpired:   linkStatus == "EXPIRED",
	}

	for _, attempt := range link.Payments {
		status, _ := attempt["status"].(string)
		switch strings.ToUpper(status) {
		case "SUCCESS", "SUCCESSFUL":
			if flags.ProviderReference == "" {
				flags.ProviderReference, _ = attempt["transactionId"].(string)
			}
			flags.IsDone = true
		case "FAILED":
			flags.IsFailed = true
		}
	}

	flags.IsPending = linkStatus == "ACTIVE" && !flags.IsDone
	return flags, nil
}
