package djomy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guineapay/djomy-bridge/internal/domain/entity"
	errs "github.com/guineapay/djomy-bridge/internal/domain/error"
	"github.com/guineapay/djomy-bridge/internal/infrastructure/adapter/logger"
)

func newTestClient(baseURL string) (*Client, *entity.ProviderConfig) {
	cfg := entity.NewProviderConfig("client-1", "secret-1", "", entity.EnvTest)
	cfg.APIBaseURL = baseURL
	return NewClient(cfg, 5*time.Second, logger.NewNoopLogger()), cfg
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestClient_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches a token lazily and attaches auth headers", func(t *testing.T) {
		var authCalls, apiCalls int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth":
				atomic.AddInt32(&authCalls, 1)
				assert.Equal(t, http.MethodPost, r.Method)
				// The auth call itself carries the API key but no bearer token
				assert.Empty(t, r.Header.Get("Authorization"))
				assert.True(t, strings.HasPrefix(r.Header.Get("X-API-KEY"), "client-1:"))
				writeJSON(t, w, http.StatusOK, map[string]any{
					"success": true,
					"data":    map[string]any{"accessToken": "tok-1"},
				})
			case "/payments/DJ-123/status":
				atomic.AddInt32(&apiCalls, 1)
				assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
				writeJSON(t, w, http.StatusOK, map[string]any{
					"success": true,
					"data":    map[string]any{"status": "SUCCESS"},
				})
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))
		defer server.Close()

		client, cfg := newTestClient(server.URL)

		response, err := client.Send(ctx, http.MethodGet, "payments/DJ-123/status", nil, false)

		assert.NoError(t, err)
		assert.Equal(t, "SUCCESS", response["status"])
		assert.Equal(t, "tok-1", cfg.AccessToken())
		assert.Equal(t, int32(1), atomic.LoadInt32(&authCalls))
		assert.Equal(t, int32(1), atomic.LoadInt32(&apiCalls))
	})

	t.Run("reuses the cached token", func(t *testing.T) {
		var authCalls int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth" {
				atomic.AddInt32(&authCalls, 1)
			}
			writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
		}))
		defer server.Close()

		client, cfg := newTestClient(server.URL)
		cfg.SetAccessToken("cached-token")

		_, err := client.Send(ctx, http.MethodGet, "links/LNK-1", nil, false)

		assert.NoError(t, err)
		assert.Equal(t, int32(0), atomic.LoadInt32(&authCalls))
	})

	t.Run("sends the partner domain header when configured", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "shop.example.com", r.Header.Get("X-PARTNER-DOMAIN"))
			writeJSON(t, w, http.StatusOK, map[string]any{"success": true})
		}))
		defer server.Close()

		cfg := entity.NewProviderConfig("client-1", "secret-1", "shop.example.com", entity.EnvTest)
		cfg.APIBaseURL = server.URL
		cfg.SetAccessToken("tok")
		client := NewClient(cfg, 5*time.Second, logger.NewNoopLogger())

		_, err := client.Send(ctx, http.MethodGet, "links/LNK-1", nil, false)

		assert.NoError(t, err)
	})

	t.Run("remote failure flag becomes an API error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{
				"success": false,
				"message": "Invalid payer number",
			})
		}))
		defer server.Close()

		client, cfg := newTestClient(server.URL)
		cfg.SetAccessToken("tok")

		response, err := client.Send(ctx, http.MethodPost, "payments", map[string]any{}, false)

		assert.Nil(t, response)
		apiErr, ok := errs.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid payer number", apiErr.Message)
	})

	t.Run("non-2xx status becomes an API error with the remote message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{
				"success": false,
				"message": "amount below minimum",
			})
		}))
		defer server.Close()

		client, cfg := newTestClient(server.URL)
		cfg.SetAccessToken("tok")

		_, err := client.Send(ctx, http.MethodPost, "payments", map[string]any{}, false)

		apiErr, ok := errs.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		assert.Equal(t, "amount below minimum", apiErr.Message)
	})

	t.Run("non-2xx status without a body falls back to the status text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client, cfg := newTestClient(server.URL)
		cfg.SetAccessToken("tok")

		_, err := client.Send(ctx, http.MethodGet, "payments/DJ-1/status", nil, false)

		apiErr, ok := errs.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
	})

	t.Run("empty 2xx body yields an empty document", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client, cfg := newTestClient(server.URL)
		cfg.SetAccessToken("tok")

		response, err := client.Send(ctx, http.MethodGet, "links/LNK-1", nil, false)

		assert.NoError(t, err)
		assert.Empty(t, response)
	})

	t.Run("response without a data field returns the whole document", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"accessToken": "tok-raw"})
		}))
		defer server.Close()

		client, _ := newTestClient(server.URL)

		response, err := client.Send(ctx, http.MethodPost, "auth", map[string]any{}, true)

		assert.NoError(t, err)
		assert.Equal(t, "tok-raw", response["accessToken"])
	})
}

func TestClient_SendWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("refreshes the token and retries once on auth failure", func(t *testing.T) {
		var authCalls, apiCalls int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth":
				n := atomic.AddInt32(&authCalls, 1)
				writeJSON(t, w, http.StatusOK, map[string]any{
					"success": true,
					"data":    map[string]any{"accessToken": "tok-" + string(rune('0'+n))},
				})
			case "/payments":
				if atomic.AddInt32(&apiCalls, 1) == 1 {
					writeJSON(t, w, http.StatusUnauthorized, map[string]any{
						"success": false,
						"message": "token expired",
					})
					return
				}
				assert.Equal(t, "Bearer tok-2", r.Header.Get("Authorization"))
				writeJSON(t, w, http.StatusOK, map[string]any{
					"success": true,
					"data":    map[string]any{"transactionId": "DJ-123"},
				})
			}
		}))
		defer server.Close()

		client, _ := newTestClient(server.URL)

		response, err := client.SendWithRetry(ctx, http.MethodPost, "payments", map[string]any{})

		assert.NoError(t, err)
		assert.Equal(t, "DJ-123", response["transactionId"])
		assert.Equal(t, int32(2), atomic.LoadInt32(&authCalls))
		assert.Equal(t, int32(2), atomic.LoadInt32(&apiCalls))
	})

	t.Run("a second auth failure propagates", func(t *testing.T) {
		var apiCalls int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth" {
				writeJSON(t, w, http.StatusOK, map[string]any{
					"success": true,
					"data":    map[string]any{"accessToken": "tok"},
				})
				return
			}
			atomic.AddInt32(&apiCalls, 1)
			writeJSON(t, w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "token expired",
			})
		}))
		defer server.Close()

		client, _ := newTestClient(server.URL)

		_, err := client.SendWithRetry(ctx, http.MethodPost, "payments", map[string]any{})

		assert.True(t, errs.IsAuthError(err))
		// Exactly one retry, never more
		assert.Equal(t, int32(2), atomic.LoadInt32(&apiCalls))
	})

	t.Run("non-auth errors are not retried", func(t *testing.T) {
		var apiCalls int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth" {
				writeJSON(t, w, http.StatusOK, map[string]any{
					"success": true,
					"data":    map[string]any{"accessToken": "tok"},
				})
				return
			}
			atomic.AddInt32(&apiCalls, 1)
			writeJSON(t, w, http.StatusBadRequest, map[string]any{
				"success": false,
				"message": "Invalid payer number",
			})
		}))
		defer server.Close()

		client, _ := newTestClient(server.URL)

		_, err := client.SendWithRetry(ctx, http.MethodPost, "payments", map[string]any{})

		assert.True(t, errs.IsAPIError(err))
		assert.False(t, errs.IsAuthError(err))
		assert.Equal(t, int32(1), atomic.LoadInt32(&apiCalls))
	})
}

func TestClient_FetchAccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("auth response without a token is an auth error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{},
			})
		}))
		defer server.Close()

		client, cfg := newTestClient(server.URL)

		_, err := client.Send(ctx, http.MethodGet, "payments/DJ-1/status", nil, false)

		assert.True(t, errs.IsAuthError(err))
		assert.Empty(t, cfg.AccessToken())
	})
}
