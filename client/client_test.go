package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/inference-gateway/agent-catalog/client"
	types "github.com/inference-gateway/agent-catalog/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		expected string
	}{
		{
			name:     "creates client with default config",
			baseURL:  "http://localhost:8080",
			expected: "http://localhost:8080",
		},
		{
			name:     "creates client with https url",
			baseURL:  "https://example.com",
			expected: "https://example.com",
		},
		{
			name:     "creates client with custom port",
			baseURL:  "http://localhost:9090",
			expected: "http://localhost:9090",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := client.NewClient(tt.baseURL)

			assert.NotNil(t, c)
			assert.Equal(t, tt.expected, c.GetBaseURL())
		})
	}
}

func TestNewClientWithConfig(t *testing.T) {
	tests := []struct {
		name         string
		setupConfig  func() *client.Config
		expectedURL  string
		expectedUA   string
		expectClient bool
	}{
		{
			name: "creates client with custom config",
			setupConfig: func() *client.Config {
				return &client.Config{
					BaseURL:    "http://custom.example.com",
					Timeout:    45 * time.Second,
					UserAgent:  "Custom-Agent/2.0",
					Headers:    map[string]string{"X-Custom": "value"},
					MaxRetries: 5,
					RetryDelay: 2 * time.Second,
				}
			},
			expectedURL:  "http://custom.example.com",
			expectedUA:   "Custom-Agent/2.0",
			expectClient: true,
		},
		{
			name: "creates client with minimal config",
			setupConfig: func() *client.Config {
				return &client.Config{
					BaseURL: "http://minimal.example.com",
				}
			},
			expectedURL:  "http://minimal.example.com",
			expectedUA:   "",
			expectClient: true,
		},
		{
			name: "creates client with custom http client",
			setupConfig: func() *client.Config {
				httpClient := &http.Client{Timeout: 10 * time.Second}
				return &client.Config{
					BaseURL:    "http://httpclient.example.com",
					HTTPClient: httpClient,
				}
			},
			expectedURL:  "http://httpclient.example.com",
			expectedUA:   "",
			expectClient: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := tt.setupConfig()
			c := client.NewClientWithConfig(config)

			assert.NotNil(t, c)
			assert.Equal(t, tt.expectedURL, c.GetBaseURL())
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	tests := []struct {
		name               string
		baseURL            string
		expectedBaseURL    string
		expectedTimeout    time.Duration
		expectedUserAgent  string
		expectedMaxRetries int
		expectedRetryDelay time.Duration
	}{
		{
			name:               "creates default config with provided base url",
			baseURL:            "http://test.example.com",
			expectedBaseURL:    "http://test.example.com",
			expectedTimeout:    30 * time.Second,
			expectedUserAgent:  "Agent-Catalog-Go-Client/1.0",
			expectedMaxRetries: 3,
			expectedRetryDelay: 1 * time.Second,
		},
		{
			name:               "creates default config with different url",
			baseURL:            "https://secure.example.com:8443",
			expectedBaseURL:    "https://secure.example.com:8443",
			expectedTimeout:    30 * time.Second,
			expectedUserAgent:  "Agent-Catalog-Go-Client/1.0",
			expectedMaxRetries: 3,
			expectedRetryDelay: 1 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := client.DefaultConfig(tt.baseURL)

			assert.NotNil(t, config)
			assert.Equal(t, tt.expectedBaseURL, config.BaseURL)
			assert.Equal(t, tt.expectedTimeout, config.Timeout)
			assert.Equal(t, tt.expectedUserAgent, config.UserAgent)
			assert.Equal(t, tt.expectedMaxRetries, config.MaxRetries)
			assert.Equal(t, tt.expectedRetryDelay, config.RetryDelay)
			assert.NotNil(t, config.Headers)
			assert.NotNil(t, config.Logger)
		})
	}
}

func TestNewClientWithLogger(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		logger   *zap.Logger
		expected string
	}{
		{
			name:     "creates client with development logger",
			baseURL:  "http://localhost:8080",
			logger:   zap.NewExample(),
			expected: "http://localhost:8080",
		},
		{
			name:     "creates client with no-op logger",
			baseURL:  "https://example.com",
			logger:   zap.NewNop(),
			expected: "https://example.com",
		},
		{
			name:     "creates client with nil logger (defaults to no-op)",
			baseURL:  "http://localhost:9090",
			logger:   nil,
			expected: "http://localhost:9090",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := client.NewClientWithLogger(tt.baseURL, tt.logger)

			assert.NotNil(t, c)
			assert.Equal(t, tt.expected, c.GetBaseURL())

			logger := c.GetLogger()
			assert.NotNil(t, logger)
		})
	}
}

func TestClient_LoggerConfiguration(t *testing.T) {
	tests := []struct {
		name            string
		setupClient     func() client.CatalogClient
		setupLogger     func() *zap.Logger
		expectLoggerSet bool
	}{
		{
			name: "set and get development logger",
			setupClient: func() client.CatalogClient {
				return client.NewClient("http://localhost:8080")
			},
			setupLogger: func() *zap.Logger {
				return zap.NewExample()
			},
			expectLoggerSet: true,
		},
		{
			name: "set nil logger defaults to no-op",
			setupClient: func() client.CatalogClient {
				return client.NewClient("http://localhost:8080")
			},
			setupLogger: func() *zap.Logger {
				return nil
			},
			expectLoggerSet: true,
		},
		{
			name: "get logger from config",
			setupClient: func() client.CatalogClient {
				config := client.DefaultConfig("http://localhost:8080")
				config.Logger = zap.NewExample()
				return client.NewClientWithConfig(config)
			},
			setupLogger: func() *zap.Logger {
				return nil // Not setting via SetLogger
			},
			expectLoggerSet: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.setupClient()

			if logger := tt.setupLogger(); logger != nil {
				c.SetLogger(logger)
			}

			retrievedLogger := c.GetLogger()
			if tt.expectLoggerSet {
				assert.NotNil(t, retrievedLogger)
			}
		})
	}
}

func TestClient_ListAgents(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		body          string
		expected      []types.AgentInfo
		expectError   bool
		errorContains string
	}{
		{
			name:       "decodes agents in order",
			statusCode: http.StatusOK,
			body: `[
				{"name":"weather-agent","icon":"https://example.com/icons/weather.png","beta":false,"visibility":"Visible"},
				{"name":"experimental-agent","beta":true,"visibility":"Unlisted"}
			]`,
			expected: []types.AgentInfo{
				{Name: "weather-agent", Icon: stringPtr("https://example.com/icons/weather.png"), Beta: false, Visibility: types.VisibilityVisible},
				{Name: "experimental-agent", Beta: true, Visibility: types.VisibilityUnlisted},
			},
		},
		{
			name:       "empty catalog",
			statusCode: http.StatusOK,
			body:       `[]`,
			expected:   []types.AgentInfo{},
		},
		{
			name:          "upstream failure carries the error body",
			statusCode:    http.StatusInternalServerError,
			body:          `{"error":"failed to list agents","message":"registry unavailable"}`,
			expectError:   true,
			errorContains: "registry unavailable",
		},
		{
			name:          "invalid json",
			statusCode:    http.StatusOK,
			body:          `{not json`,
			expectError:   true,
			errorContains: "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/agents", r.URL.Path)
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Accept"))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Errorf("Failed to write response: %v", err)
				}
			}))
			defer server.Close()

			c := client.NewClient(server.URL + "/")
			agents, err := c.ListAgents(context.Background())

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, agents)
		})
	}
}

func TestClient_ListAgents_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to list agents","message":"boom"}`))
	}))
	defer server.Close()

	_, err := client.NewClient(server.URL).ListAgents(context.Background())

	var statusErr *client.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "failed to list agents", statusErr.ErrorText)
	assert.Equal(t, "boom", statusErr.Message)
}

func TestClient_RetryMechanism(t *testing.T) {
	tests := []struct {
		name          string
		handler       func(tries *int32) http.HandlerFunc
		maxRetries    int
		expectError   bool
		errorContains string
		expectedTries int32
	}{
		{
			name: "successful request on first try",
			handler: func(tries *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(tries, 1)
					_, _ = w.Write([]byte(`[]`))
				}
			},
			maxRetries:    3,
			expectedTries: 1,
		},
		{
			name: "exhausts all retries and fails",
			handler: func(tries *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(tries, 1)
					conn, _, _ := w.(http.Hijacker).Hijack()
					if err := conn.Close(); err != nil {
						t.Errorf("Failed to close connection: %v", err)
					}
				}
			},
			maxRetries:    2,
			expectError:   true,
			errorContains: "failed to send request after 3 attempts",
			expectedTries: 3,
		},
		{
			name: "non-200 status returns immediate error",
			handler: func(tries *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(tries, 1)
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte("internal server error"))
				}
			},
			maxRetries:    3,
			expectError:   true,
			errorContains: "unexpected status code: 500",
			expectedTries: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tries int32
			server := httptest.NewServer(tt.handler(&tries))
			defer server.Close()

			c := client.NewClientWithConfig(&client.Config{
				BaseURL:    server.URL,
				MaxRetries: tt.maxRetries,
				RetryDelay: 10 * time.Millisecond,
			})

			_, err := c.ListAgents(context.Background())

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedTries, atomic.LoadInt32(&tries))
		})
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	c := client.NewClientWithConfig(&client.Config{
		BaseURL:    server.URL,
		MaxRetries: 3,
		RetryDelay: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.ListAgents(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second, "a cancelled request must not be retried")
}

func TestClient_HeadersAndUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Custom-Agent/2.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "tenant-a", r.Header.Get("X-Tenant"))
		assert.Empty(t, r.Header.Get("X-Removed"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	config := client.DefaultConfig(server.URL)
	config.UserAgent = "Custom-Agent/2.0"
	c := client.NewClientWithConfig(config).(*client.Client)
	c.SetHeader("X-Tenant", "tenant-a")
	c.SetHeader("X-Removed", "value")
	c.RemoveHeader("X-Removed")

	_, err := c.ListAgents(context.Background())
	require.NoError(t, err)

	cfg := c.GetConfig()
	cfg.Headers["X-Other"] = "mutated"
	assert.NotContains(t, c.GetConfig().Headers, "X-Other")
}

func TestClient_GetHealth(t *testing.T) {
	tests := []struct {
		name           string
		statusCode     int
		body           string
		expectedStatus string
		expectError    bool
		errorContains  string
	}{
		{
			name:           "healthy",
			statusCode:     http.StatusOK,
			body:           `{"status":"healthy"}`,
			expectedStatus: types.HealthStatusHealthy,
		},
		{
			name:           "unknown status is returned with a warning",
			statusCode:     http.StatusOK,
			body:           `{"status":"starting"}`,
			expectedStatus: "starting",
		},
		{
			name:          "missing status",
			statusCode:    http.StatusOK,
			body:          `{}`,
			expectError:   true,
			errorContains: "health response missing status field",
		},
		{
			name:          "service unavailable",
			statusCode:    http.StatusServiceUnavailable,
			body:          `unavailable`,
			expectError:   true,
			errorContains: "unexpected status code: 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/health", r.URL.Path)
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			health, err := client.NewClient(server.URL).GetHealth(context.Background())
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, health.Status)
		})
	}
}

func TestClient_Configuration(t *testing.T) {
	c := client.NewClient("http://localhost:8080").(*client.Client)

	c.SetTimeout(5 * time.Second)
	c.SetMaxRetries(7)
	c.SetRetryDelay(250 * time.Millisecond)

	cfg := c.GetConfig()
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)

	httpClient := &http.Client{Timeout: time.Second}
	c.SetHTTPClient(httpClient)
	assert.Same(t, httpClient, c.GetConfig().HTTPClient)
}

func TestVisibleAgents(t *testing.T) {
	agents := []types.AgentInfo{
		{Name: "weather-agent", Visibility: types.VisibilityVisible},
		{Name: "experimental-agent", Beta: true, Visibility: types.VisibilityUnlisted},
		{Name: "travel-agent", Beta: true, Visibility: types.VisibilityVisible},
	}

	visible := client.VisibleAgents(agents)

	require.Len(t, visible, 2)
	assert.Equal(t, "weather-agent", visible[0].Name)
	assert.Equal(t, "travel-agent", visible[1].Name)
	assert.Len(t, agents, 3, "input must not be modified")

	assert.Empty(t, client.VisibleAgents(nil))
}

func stringPtr(s string) *string {
	return &s
}
