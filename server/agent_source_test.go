package server

import (
	"context"
	"testing"

	"github.com/inference-gateway/agent-catalog/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type mockAgentSourceFactory struct {
	provider string
	source   AgentSource
}

func (f *mockAgentSourceFactory) SupportedProvider() string {
	return f.provider
}

func (f *mockAgentSourceFactory) ValidateConfig(cfg config.RegistryConfig) error {
	return nil
}

func (f *mockAgentSourceFactory) CreateSource(ctx context.Context, cfg config.RegistryConfig, logger *zap.Logger) (AgentSource, error) {
	return f.source, nil
}

func TestAgentSourceFactoryRegistry(t *testing.T) {
	registry := &AgentSourceFactoryRegistry{
		factories: make(map[string]AgentSourceFactory),
	}

	mockFactory := &mockAgentSourceFactory{provider: "test"}
	registry.Register("test", mockFactory)

	factory, err := registry.GetFactory("test")
	require.NoError(t, err)
	assert.Equal(t, mockFactory, factory)

	_, err = registry.GetFactory("nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported agent source provider")

	assert.Equal(t, []string{"test"}, registry.GetProviders())
}

func TestAgentSourceFactoryRegistryPanicsOnMismatch(t *testing.T) {
	registry := &AgentSourceFactoryRegistry{
		factories: make(map[string]AgentSourceFactory),
	}

	assert.Panics(t, func() {
		registry.Register("other", &mockAgentSourceFactory{provider: "test"})
	})
}

func TestAgentSourceFactoryRegistry_CreateSource(t *testing.T) {
	registry := &AgentSourceFactoryRegistry{
		factories: make(map[string]AgentSourceFactory),
	}

	expected := NewStaticAgentSource(AgentDefinition{Name: "a"})
	registry.Register("test", &mockAgentSourceFactory{provider: "test", source: expected})

	source, err := registry.CreateSource(context.Background(), config.RegistryConfig{Provider: "test"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Same(t, expected, source)
}

func TestBuiltinAgentSourceProviders(t *testing.T) {
	providers := GetSupportedAgentSourceProviders()

	assert.Equal(t, []string{
		config.RegistryProviderFile,
		config.RegistryProviderMinIO,
		config.RegistryProviderRedis,
		config.RegistryProviderSQLite,
		config.RegistryProviderStatic,
	}, providers)
}

func TestCreateAgentSource_ValidatesConfig(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.RegistryConfig
		errorText string
	}{
		{
			name:      "unknown provider",
			cfg:       config.RegistryConfig{Provider: "consul"},
			errorText: "unsupported agent source provider",
		},
		{
			name:      "file without path",
			cfg:       config.RegistryConfig{Provider: config.RegistryProviderFile},
			errorText: "file path is required",
		},
		{
			name:      "redis without url",
			cfg:       config.RegistryConfig{Provider: config.RegistryProviderRedis, Key: "agents"},
			errorText: "URL is required",
		},
		{
			name:      "redis without key",
			cfg:       config.RegistryConfig{Provider: config.RegistryProviderRedis, URL: "redis://localhost:6379"},
			errorText: "key is required",
		},
		{
			name:      "minio without endpoint",
			cfg:       config.RegistryConfig{Provider: config.RegistryProviderMinIO},
			errorText: "endpoint is required",
		},
		{
			name: "minio without object",
			cfg: config.RegistryConfig{
				Provider: config.RegistryProviderMinIO,
				ObjectStoreConfig: config.ObjectStoreConfig{
					Endpoint:   "localhost:9000",
					BucketName: "agent-catalog",
				},
			},
			errorText: "object name is required",
		},
		{
			name:      "sqlite without dsn",
			cfg:       config.RegistryConfig{Provider: config.RegistryProviderSQLite},
			errorText: "DSN is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := CreateAgentSource(context.Background(), tt.cfg, zaptest.NewLogger(t))
			require.Error(t, err)
			assert.Nil(t, source)
			assert.Contains(t, err.Error(), tt.errorText)
		})
	}
}

func TestStaticAgentSource(t *testing.T) {
	source, err := CreateAgentSource(context.Background(), config.RegistryConfig{Provider: config.RegistryProviderStatic}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, config.RegistryProviderStatic, source.Provider())

	definitions, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, definitions)

	fixed := NewStaticAgentSource(AgentDefinition{Name: "a"}, AgentDefinition{Name: "b"})
	definitions, err = fixed.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, definitions, 2)

	definitions[0].Name = "changed"
	again, err := fixed.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Name)
}
