package server

import (
	"fmt"
	"strings"

	config "github.com/inference-gateway/agent-catalog/server/config"
	sdk "github.com/inference-gateway/sdk"
	zap "go.uber.org/zap"
)

// ChatClient is the chat completion client shared by hosted agents
type ChatClient interface {
	// Client returns the underlying Inference Gateway SDK client
	Client() sdk.Client

	// Provider returns the provider the client targets
	Provider() sdk.Provider

	// Model returns the model or deployment name without provider prefix
	Model() string
}

var _ ChatClient = (*OpenAICompatibleChatClient)(nil)

// OpenAICompatibleChatClient implements ChatClient using an OpenAI-compatible API via the Inference Gateway SDK
type OpenAICompatibleChatClient struct {
	client   sdk.Client
	provider sdk.Provider
	model    string
}

// NewOpenAICompatibleChatClient creates a new OpenAI-compatible chat client. No
// request is made until an agent runtime uses the client.
func NewOpenAICompatibleChatClient(cfg *config.ChatClientConfig, logger *zap.Logger) (*OpenAICompatibleChatClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("chat client config is required")
	}

	if cfg.Provider == "" {
		return nil, fmt.Errorf("provider is required")
	}

	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientOptions := &sdk.ClientOptions{}

	if cfg.BaseURL != "" {
		clientOptions.BaseURL = cfg.BaseURL
	}

	if cfg.APIKey != "" {
		clientOptions.APIKey = cfg.APIKey
	}

	if cfg.Timeout > 0 {
		clientOptions.Timeout = cfg.Timeout
	}

	if len(cfg.CustomHeaders) > 0 {
		clientOptions.Headers = cfg.CustomHeaders
	}

	provider, err := parseProvider(cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("invalid provider %s: %w", cfg.Provider, err)
	}

	model := parseModelName(cfg.Model)

	logger.Debug("chat client configured",
		zap.String("provider", string(provider)),
		zap.String("model", model),
		zap.String("base_url", cfg.BaseURL))

	return &OpenAICompatibleChatClient{
		client:   sdk.NewClient(clientOptions),
		provider: provider,
		model:    model,
	}, nil
}

func (c *OpenAICompatibleChatClient) Client() sdk.Client     { return c.client }
func (c *OpenAICompatibleChatClient) Provider() sdk.Provider { return c.provider }
func (c *OpenAICompatibleChatClient) Model() string          { return c.model }

// parseProvider converts a provider string to SDK Provider type
func parseProvider(provider string) (sdk.Provider, error) {
	p := sdk.Provider(strings.ToLower(strings.TrimSpace(provider)))
	if p == "" {
		return "", fmt.Errorf("invalid provider: %s", provider)
	}
	return p, nil
}

// parseModelName removes provider prefix from model name if present
func parseModelName(model string) string {
	if strings.Contains(model, "/") {
		parts := strings.SplitN(model, "/", 2)
		if len(parts) == 2 {
			return parts[1]
		}
	}
	return model
}
