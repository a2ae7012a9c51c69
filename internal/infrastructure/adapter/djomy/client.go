package djomy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	errs "github.com/guineapay/djomy-bridge/internal/domain/error"
	coreport "github.com/guineapay/djomy-bridge/internal/domain/port/core"
)

// authEndpoint is the unauthenticated token acquisition endpoint
const authEndpoint = "auth"

// Client talks to the Djomy REST API. It owns header construction, lazy
// token acquisition and the one-shot refresh-and-retry on auth failure.
// Outbound calls go through a circuit breaker and a bounded-timeout HTTP
// client so a slow or failing remote cannot pin request handlers.
type Client struct {
	cfg        *entity.ProviderConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     coreport.Logger
}

// NewClient creates a Djomy API client for the given provider credentials
func NewClient(cfg *entity.ProviderConfig, timeout time.Duration, logger coreport.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "djomy-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
		logger:     logger,
	}
}

// envelope is the Djomy response wrapper: a success flag, an optional data
// payload and a message used on failures.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Send performs one request against the Djomy API and returns the unwrapped
// data payload. When skipAuth is set no bearer token is attached; this is
// used for the token acquisition call itself.
//
// Possible errors:
// - *APIError: On a non-success HTTP status or a remote-reported failure flag
// - transport errors from the underlying HTTP client, wrapped
func (c *Client) Send(ctx context.Context, method, endpoint string, body any, skipAuth bool) (map[string]any, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	url := c.cfg.BaseURL() + strings.TrimPrefix(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", apiKey(c.cfg.ClientID, c.cfg.ClientSecret))
	if c.cfg.PartnerDomain != "" {
		req.Header.Set("X-PARTNER-DOMAIN", c.cfg.PartnerDomain)
	}
	if !skipAuth {
		token, err := c.ensureAccessToken(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("Sending request to Djomy API", map[string]any{
		"method":   method,
		"endpoint": endpoint,
	})

	result, err := c.breaker.Execute(func() (any, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("djomy request failed: %w", err)
	}
	resp := result.(*http.Response)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if len(raw) == 0 && resp.StatusCode < http.StatusMultipleChoices {
		return map[string]any{}, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < http.StatusMultipleChoices {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		message := env.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		c.logger.Warn("Djomy API returned an error", map[string]any{
			"endpoint":    endpoint,
			"http_status": resp.StatusCode,
			"message":     message,
		})
		return nil, errs.NewAPIError(resp.StatusCode, message)
	}

	if env.Success != nil && !*env.Success {
		return nil, errs.NewAPIError(resp.StatusCode, env.Message)
	}

	return unwrapData(env, raw)
}

// SendWithRetry sends an authenticated request; on an authentication failure
// it clears the cached token, fetches a fresh one and retries exactly once.
// A second failure propagates unchanged. Non-auth errors are never retried.
func (c *Client) SendWithRetry(ctx context.Context, method, endpoint string, body any) (map[string]any, error) {
	response, err := c.Send(ctx, method, endpoint, body, false)
	if err == nil || !errs.IsAuthError(err) {
		return response, err
	}

	c.logger.Info("Access token expired or invalid, refreshing", map[string]any{
		"endpoint": endpoint,
	})

	if _, err := c.fetchAccessToken(ctx); err != nil {
		return nil, err
	}
	return c.Send(ctx, method, endpoint, body, false)
}

// ensureAccessToken returns the cached token, fetching one first when the
// cache is empty.
func (c *Client) ensureAccessToken(ctx context.Context) (string, error) {
	if token := c.cfg.AccessToken(); token != "" {
		return token, nil
	}
	return c.fetchAccessToken(ctx)
}

// fetchAccessToken obtains a new bearer token from the auth endpoint and
// caches it on the provider configuration.
func (c *Client) fetchAccessToken(ctx context.Context) (string, error) {
	c.cfg.ClearAccessToken()

	response, err := c.Send(ctx, http.MethodPost, authEndpoint, map[string]any{}, true)
	if err != nil {
		return "", err
	}

	token, _ := response["accessToken"].(string)
	if token == "" {
		return "", fmt.Errorf("%w: auth response missing accessToken", errs.ErrAuth)
	}

	c.cfg.SetAccessToken(token)
	c.logger.Debug("Fetched new Djomy access token", nil)
	return token, nil
}

// unwrapData extracts the data payload from a success envelope, falling back
// to the whole response document when no data field is present. Minor schema
// drift is tolerated: a non-object response body yields an empty map rather
// than an error.
func unwrapData(env envelope, raw []byte) (map[string]any, error) {
	if len(env.Data) > 0 && string(env.Data) != "null" {
		var data map[string]any
		if err := json.Unmarshal(env.Data, &data); err == nil {
			return data, nil
		}
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return map[string]any{}, nil
	}
	return doc, nil
}
