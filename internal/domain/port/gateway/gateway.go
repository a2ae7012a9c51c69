package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/guineapay/djomy-bridge/internal/domain/error"
)

// CreatePaymentParams carries the data needed to create a hosted-checkout
// payment on the remote gateway.
type CreatePaymentParams struct {
	Reference   string
	Amount      decimal.Decimal
	CountryCode string
	PayerPhone  string
	Description string
	ReturnURL   string
	CancelURL   string
}

// PaymentIntent is the result of creating a payment: the remote identifier
// and the URL the payer is redirected to.
type PaymentIntent struct {
	ProviderReference string
	RedirectURL       string
	Status            string
}

// DirectPaymentParams carries the data for a direct push payment to the
// payer's mobile-money account (POS flow, no redirect).
type DirectPaymentParams struct {
	Reference   string
	Method      string // Mobile-money network: OM, MOMO or KULU
	Amount      decimal.Decimal
	CountryCode string
	PayerPhone  string
	Description string
}

// DirectPaymentResult is the outcome of a direct push payment request
type DirectPaymentResult struct {
	ProviderReference string
	Status            string
}

// PaymentLinkParams carries the data for a shareable payment link
type PaymentLinkParams struct {
	Reference   string
	LinkName    string
	Amount      decimal.Decimal
	CountryCode string
	Description string
	ExpiresAt   time.Time
	PhoneNumber string // When set, the gateway sends the link by SMS
}

// PaymentLink is a created shareable payment link
type PaymentLink struct {
	URL       string
	Reference string
	ExpiresAt time.Time
	SMSSent   bool
}

// PaymentStatus is the result of polling a payment's status
type PaymentStatus struct {
	Status string
	Raw    map[string]any
}

// LinkStatus is the result of polling a payment link, including the nested
// payment attempts made against it.
type LinkStatus struct {
	Status   string
	Payments []map[string]any
}

// PaymentGateway is the contract every payment provider integration
// implements. One implementation is registered per provider code; callers
// select it through the Registry instead of branching on the code.
type PaymentGateway interface {
	// Code returns the provider code this gateway serves
	Code() string

	// CreatePayment creates a hosted-checkout payment and returns the
	// redirect target
	CreatePayment(ctx context.Context, params CreatePaymentParams) (*PaymentIntent, error)

	// CreateDirectPayment pushes a payment request to the payer's phone
	CreateDirectPayment(ctx context.Context, params DirectPaymentParams) (*DirectPaymentResult, error)

	// CreatePaymentLink creates a shareable payment link
	CreatePaymentLink(ctx context.Context, params PaymentLinkParams) (*PaymentLink, error)

	// PaymentStatus polls the remote status of a payment
	PaymentStatus(ctx context.Context, providerReference string) (*PaymentStatus, error)

	// LinkStatus polls the remote status of a payment link
	LinkStatus(ctx context.Context, linkReference string) (*LinkStatus, error)

	// VerifyWebhookSignature authenticates an inbound webhook payload.
	// Returns ErrSignature for a missing or mismatched signature.
	VerifyWebhookSignature(header string, payload []byte) error
}

// Registry holds the registered payment gateways keyed by provider code
type Registry struct {
	mu       sync.RWMutex
	gateways map[string]PaymentGateway
}

// NewRegistry creates an empty gateway registry
func NewRegistry() *Registry {
	return &Registry{gateways: make(map[string]PaymentGateway)}
}

// Register adds a gateway under its provider code, replacing any previous one
func (r *Registry) Register(gw PaymentGateway) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gateways[gw.Code()] = gw
}

// Get returns the gateway for the provider code
//
// Possible errors:
// - ErrGatewayNotFound: If no gateway is registered for the code
func (r *Registry) Get(code string) (PaymentGateway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gw, ok := r.gateways[code]
	if !ok {
		return nil, errs.ErrGatewayNotFound
	}
	return gw, nil
}
