package entity

import (
	"strings"
	"sync"
)

// Provider environments selecting the remote API base URL
const (
	EnvProduction = "production"
	EnvTest       = "test"
)

// API base URLs per environment
var apiBaseURLs = map[string]string{
	EnvProduction: "https://api.djomy.africa/v1/",
	EnvTest:       "https://sandbox-api.djomy.africa/v1/",
}

// ProviderConfig holds the credentials and environment of one payment
// provider account. The cached access token is shared mutable state:
// concurrent requests may read, clear and replace it, so all access
// goes through the mutex-guarded methods.
type ProviderConfig struct {
	ClientID      string
	ClientSecret  string
	PartnerDomain string // Optional, required by Djomy in production
	Environment   string // production or test
	APIBaseURL    string // Overrides the environment-derived base URL when set

	mu          sync.Mutex
	accessToken string
}

// NewProviderConfig creates a provider configuration for the given credentials
func NewProviderConfig(clientID, clientSecret, partnerDomain, environment string) *ProviderConfig {
	if environment != EnvProduction {
		environment = EnvTest
	}
	return &ProviderConfig{
		ClientID:      clientID,
		ClientSecret:  clientSecret,
		PartnerDomain: partnerDomain,
		Environment:   environment,
	}
}

// BaseURL returns the remote API base URL for the configured environment.
// An explicit APIBaseURL wins; trailing slash is guaranteed either way.
func (p *ProviderConfig) BaseURL() string {
	if p.APIBaseURL != "" {
		return strings.TrimSuffix(p.APIBaseURL, "/") + "/"
	}
	return apiBaseURLs[p.Environment]
}

// AccessToken returns the cached bearer token, empty when none is cached
func (p *ProviderConfig) AccessToken() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.accessToken
}

// SetAccessToken replaces the cached bearer token
func (p *ProviderConfig) SetAccessToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accessToken = token
}

// ClearAccessToken drops the cached bearer token so the next
// authenticated call fetches a fresh one
func (p *ProviderConfig) ClearAccessToken() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accessToken = ""
}
