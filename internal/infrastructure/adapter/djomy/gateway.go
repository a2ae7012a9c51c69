package djomy

import (
	"context"
	"fmt"
	"net/http"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	gw "github.com/guineapay/djomy-bridge/internal/domain/port/gateway"
)

// expiresAtLayout is the timestamp format the links endpoint expects
const expiresAtLayout = "2006-01-02T15:04:05Z"

// Gateway implements the PaymentGateway port for Djomy
type Gateway struct {
	cfg    *entity.ProviderConfig
	client *Client
}

// NewGateway creates the Djomy gateway backed by the given API client
func NewGateway(cfg *entity.ProviderConfig, client *Client) *Gateway {
	return &Gateway{cfg: cfg, client: client}
}

// Code returns the provider code this gateway serves
func (g *Gateway) Code() string {
	return entity.ProviderDjomy
}

// CreatePayment creates a hosted-checkout payment and returns the redirect
// target. The amount is truncated to integer currency units; Djomy accepts
// whole units only.
func (g *Gateway) CreatePayment(ctx context.Context, params gw.CreatePaymentParams) (*gw.PaymentIntent, error) {
	payload := map[string]any{
		"amount":                   params.Amount.IntPart(),
		"countryCode":              params.CountryCode,
		"payerNumber":              params.PayerPhone,
		"description":              params.Description,
		"merchantPaymentReference": params.Reference,
		"returnUrl":                params.ReturnURL,
		"cancelUrl":                params.CancelURL,
	}

	response, err := g.client.SendWithRetry(ctx, http.MethodPost, "payments/gateway", payload)
	if err != nil {
		return nil, err
	}

	// The redirect field name drifted across API versions.
	redirectURL := stringField(response, "redirectUrl")
	if redirectURL == "" {
		redirectURL = stringField(response, "link")
	}

	return &gw.PaymentIntent{
		ProviderReference: stringField(response, "transactionId"),
		RedirectURL:       redirectURL,
		Status:            stringField(response, "status"),
	}, nil
}

// CreateDirectPayment pushes a payment request straight to the payer's
// mobile-money account (POS flow, no browser redirect).
func (g *Gateway) CreateDirectPayment(ctx context.Context, params gw.DirectPaymentParams) (*gw.DirectPaymentResult, error) {
	payload := map[string]any{
		"paymentMethod":            params.Method,
		"payerIdentifier":          params.PayerPhone,
		"amount":                   params.Amount.IntPart(),
		"countryCode":              params.CountryCode,
		"description":              params.Description,
		"merchantPaymentReference": params.Reference,
	}

	response, err := g.client.SendWithRetry(ctx, http.MethodPost, "payments", payload)
	if err != nil {
		return nil, err
	}

	status := stringField(response, "status")
	if status == "" {
		status = "PENDING"
	}

	return &gw.DirectPaymentResult{
		ProviderReference: stringField(response, "transactionId"),
		Status:            status,
	}, nil
}

// CreatePaymentLink creates a shareable single-use payment link
func (g *Gateway) CreatePaymentLink(ctx context.Context, params gw.PaymentLinkParams) (*gw.PaymentLink, error) {
	payload := map[string]any{
		"amountToPay":       params.Amount.IntPart(),
		"linkName":          params.LinkName,
		"countryCode":       params.CountryCode,
		"description":       params.Description,
		"merchantReference": params.Reference,
		"usageType":         "UNIQUE",
		"expiresAt":         params.ExpiresAt.UTC().Format(expiresAtLayout),
	}
	if params.PhoneNumber != "" {
		payload["phoneNumber"] = params.PhoneNumber
		payload["sendSms"] = true
	}

	response, err := g.client.SendWithRetry(ctx, http.MethodPost, "links", payload)
	if err != nil {
		return nil, err
	}

	return &gw.PaymentLink{
		URL:       stringField(response, "paymentPageUrl"),
		Reference: stringField(response, "paymentLinkReference"),
		ExpiresAt: params.ExpiresAt,
		SMSSent:   params.PhoneNumber != "",
	}, nil
}

// PaymentStatus polls the remote status of a payment
func (g *Gateway) PaymentStatus(ctx context.Context, providerReference string) (*gw.PaymentStatus, error) {
	endpoint := fmt.Sprintf("payments/%s/status", providerReference)
	response, err := g.client.SendWithRetry(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	return &gw.PaymentStatus{
		Status: stringField(response, "status"),
		Raw:    response,
	}, nil
}

// LinkStatus polls the remote status of a payment link, including the nested
// payment attempts made against it.
func (g *Gateway) LinkStatus(ctx context.Context, linkReference string) (*gw.LinkStatus, error) {
	response, err := g.client.SendWithRetry(ctx, http.MethodGet, "links/"+linkReference, nil)
	if err != nil {
		return nil, err
	}

	var payments []map[string]any
	if rawPayments, ok := response["payments"].([]any); ok {
		for _, p := range rawPayments {
			if payment, ok := p.(map[string]any); ok {
				payments = append(payments, payment)
			}
		}
	}

	return &gw.LinkStatus{
		Status:   stringField(response, "status"),
		Payments: payments,
	}, nil
}

// VerifyWebhookSignature authenticates an inbound webhook payload
func (g *Gateway) VerifyWebhookSignature(header string, payload []byte) error {
	return VerifyWebhookSignature(header, payload, g.cfg.ClientSecret)
}

// stringField reads a string value from a loosely-typed API response
func stringField(doc map[string]any, key string) string {
	value, _ := doc[key].(string)
	return value
}

var _ gw.PaymentGateway = (*Gateway)(nil)
