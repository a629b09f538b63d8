package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inference-gateway/agent-catalog/types"
	"go.uber.org/zap"
)

// CatalogClient defines the interface for an agent catalog client
type CatalogClient interface {
	// Catalog operations
	ListAgents(ctx context.Context) ([]types.AgentInfo, error)
	GetHealth(ctx context.Context) (*types.HealthResponse, error)

	// Configuration
	SetTimeout(timeout time.Duration)
	SetHTTPClient(client *http.Client)
	GetBaseURL() string

	// Logger configuration
	SetLogger(logger *zap.Logger)
	GetLogger() *zap.Logger
}

var _ CatalogClient = (*Client)(nil)

// StatusError is returned when the catalog answers with a non-200 status
type StatusError struct {
	StatusCode int
	ErrorText  string `json:"error"`
	Message    string `json:"message"`
	Body       string
}

func (e *StatusError) Error() string {
	if e.ErrorText != "" {
		return fmt.Sprintf("unexpected status code: %d, error: %s, message: %s", e.StatusCode, e.ErrorText, e.Message)
	}
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, e.Body)
}

// Config holds configuration options for the catalog client
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	UserAgent  string
	Headers    map[string]string
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// DefaultConfig returns a default configuration
func DefaultConfig(baseURL string) *Config {
	return &Config{
		BaseURL:    baseURL,
		Timeout:    30 * time.Second,
		UserAgent:  "Agent-Catalog-Go-Client/1.0",
		Headers:    make(map[string]string),
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
		Logger:     zap.NewNop(),
	}
}

// Client represents an agent catalog client
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new catalog client with default configuration
func NewClient(baseURL string) CatalogClient {
	config := DefaultConfig(baseURL)
	return NewClientWithConfig(config)
}

// NewClientWithLogger creates a new catalog client with a custom logger
func NewClientWithLogger(baseURL string, logger *zap.Logger) CatalogClient {
	config := DefaultConfig(baseURL)
	config.Logger = logger
	return NewClientWithConfig(config)
}

// NewClientWithConfig creates a new catalog client with custom configuration
func NewClientWithConfig(config *Config) CatalogClient {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

// endpointURL joins the base URL and path without doubling slashes
func (c *Client) endpointURL(path string) string {
	return strings.TrimSuffix(c.config.BaseURL, "/") + path
}

// ListAgents retrieves the public listing via HTTP GET to /agents
func (c *Client) ListAgents(ctx context.Context) ([]types.AgentInfo, error) {
	c.logger.Debug("listing agents", zap.String("endpoint", "/agents"))

	var agents []types.AgentInfo
	if err := c.getJSON(ctx, "/agents", &agents); err != nil {
		return nil, err
	}
	if agents == nil {
		agents = []types.AgentInfo{}
	}

	c.logger.Debug("agents listed successfully", zap.Int("count", len(agents)))
	return agents, nil
}

// GetHealth retrieves the health status of the catalog via HTTP GET to /health
func (c *Client) GetHealth(ctx context.Context) (*types.HealthResponse, error) {
	c.logger.Debug("retrieving catalog health", zap.String("endpoint", "/health"))

	var healthResp types.HealthResponse
	if err := c.getJSON(ctx, "/health", &healthResp); err != nil {
		return nil, err
	}

	if healthResp.Status == "" {
		c.logger.Error("health response missing status field")
		return nil, fmt.Errorf("health response missing status field")
	}

	switch healthResp.Status {
	case types.HealthStatusHealthy, types.HealthStatusDegraded, types.HealthStatusUnhealthy:
	default:
		c.logger.Warn("health response contains unknown status", zap.String("status", healthResp.Status))
	}

	c.logger.Debug("health check completed successfully", zap.String("status", healthResp.Status))
	return &healthResp, nil
}

// getJSON performs a GET with retries on transport errors and decodes a 200 response into out.
// Non-200 responses are returned as *StatusError and never retried.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL(path), nil)
	if err != nil {
		c.logger.Error("failed to create request", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(httpReq)

	var httpResp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying request",
				zap.String("path", path),
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", c.config.MaxRetries+1))
		}

		httpResp, err = c.httpClient.Do(httpReq)
		if err == nil {
			c.logger.Debug("request successful",
				zap.String("path", path),
				zap.Int("attempt", attempt+1),
				zap.Int("status_code", httpResp.StatusCode))
			break
		}
		lastErr = err
		c.logger.Warn("request failed",
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Error(err))

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if attempt < c.config.MaxRetries {
			delay := c.config.RetryDelay * time.Duration(attempt+1)
			select {
			case <-ctx.Done():
				c.logger.Debug("request context cancelled during retry delay")
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	if httpResp == nil {
		c.logger.Error("all retry attempts exhausted",
			zap.String("path", path),
			zap.Int("attempts", c.config.MaxRetries+1),
			zap.Error(lastErr))
		return fmt.Errorf("failed to send request after %d attempts: %w", c.config.MaxRetries+1, lastErr)
	}
	defer func() {
		if closeErr := httpResp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close response body", zap.Error(closeErr))
		}
	}()

	if httpResp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(httpResp.Body)
		statusErr := &StatusError{StatusCode: httpResp.StatusCode, Body: string(bodyBytes)}
		_ = json.Unmarshal(bodyBytes, statusErr)

		c.logger.Error("unexpected status code",
			zap.String("path", path),
			zap.Int("status_code", httpResp.StatusCode),
			zap.String("response_body", string(bodyBytes)))
		return statusErr
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		c.logger.Error("failed to decode response", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// setHeaders sets the common headers for HTTP requests
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	for key, value := range c.config.Headers {
		req.Header.Set(key, value)
	}
}

// SetHTTPClient allows customizing the HTTP client
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
	c.config.HTTPClient = client
}

// SetTimeout sets the timeout for HTTP requests
func (c *Client) SetTimeout(timeout time.Duration) {
	c.config.Timeout = timeout
	if c.httpClient != nil {
		c.httpClient.Timeout = timeout
	}
}

// GetBaseURL returns the base URL of the client
func (c *Client) GetBaseURL() string {
	return c.config.BaseURL
}

// SetHeader sets a custom header for all requests
func (c *Client) SetHeader(key, value string) {
	if c.config.Headers == nil {
		c.config.Headers = make(map[string]string)
	}
	c.config.Headers[key] = value
}

// RemoveHeader removes a custom header
func (c *Client) RemoveHeader(key string) {
	if c.config.Headers != nil {
		delete(c.config.Headers, key)
	}
}

// GetConfig returns a copy of the client configuration
func (c *Client) GetConfig() Config {
	config := *c.config
	if c.config.Headers != nil {
		config.Headers = make(map[string]string)
		for k, v := range c.config.Headers {
			config.Headers[k] = v
		}
	}
	return config
}

// SetMaxRetries sets the maximum number of retry attempts
func (c *Client) SetMaxRetries(maxRetries int) {
	c.config.MaxRetries = maxRetries
}

// SetRetryDelay sets the delay between retry attempts
func (c *Client) SetRetryDelay(delay time.Duration) {
	c.config.RetryDelay = delay
}

// SetLogger sets the logger for the client
func (c *Client) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
	c.config.Logger = logger
}

// GetLogger returns the current logger
func (c *Client) GetLogger() *zap.Logger {
	return c.logger
}

// VisibleAgents drops the agents whose visibility is Unlisted, keeping order
func VisibleAgents(agents []types.AgentInfo) []types.AgentInfo {
	visible := make([]types.AgentInfo, 0, len(agents))
	for _, agent := range agents {
		if agent.Visibility == types.VisibilityUnlisted {
			continue
		}
		visible = append(visible, agent)
	}
	return visible
}
