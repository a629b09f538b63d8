package server

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/inference-gateway/agent-catalog/server/config"
	"go.uber.org/zap"
)

// AgentSource loads agent definitions once at startup
type AgentSource interface {
	// Load returns the definitions in their source order
	Load(ctx context.Context) ([]AgentDefinition, error)

	// Provider returns the provider name of the source
	Provider() string
}

// AgentSourceFactory defines the interface for creating agent sources
type AgentSourceFactory interface {
	// CreateSource creates a source with the given configuration
	CreateSource(ctx context.Context, config config.RegistryConfig, logger *zap.Logger) (AgentSource, error)

	// SupportedProvider returns the provider name this factory supports
	SupportedProvider() string

	// ValidateConfig validates the configuration for this provider
	ValidateConfig(config config.RegistryConfig) error
}

// AgentSourceFactoryRegistry manages registered source providers
type AgentSourceFactoryRegistry struct {
	mu        sync.RWMutex
	factories map[string]AgentSourceFactory
}

// globalSourceRegistry is the global source factory registry
var globalSourceRegistry = &AgentSourceFactoryRegistry{
	factories: make(map[string]AgentSourceFactory),
}

// RegisterAgentSourceProvider registers a source provider factory
func RegisterAgentSourceProvider(provider string, factory AgentSourceFactory) {
	globalSourceRegistry.Register(provider, factory)
}

// GetAgentSourceProvider retrieves a source provider factory
func GetAgentSourceProvider(provider string) (AgentSourceFactory, error) {
	return globalSourceRegistry.GetFactory(provider)
}

// GetSupportedAgentSourceProviders returns the sorted names of all registered providers
func GetSupportedAgentSourceProviders() []string {
	return globalSourceRegistry.GetProviders()
}

// CreateAgentSource creates a source using the registered factories
func CreateAgentSource(ctx context.Context, config config.RegistryConfig, logger *zap.Logger) (AgentSource, error) {
	return globalSourceRegistry.CreateSource(ctx, config, logger)
}

// Register registers a factory for a provider
func (r *AgentSourceFactoryRegistry) Register(provider string, factory AgentSourceFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if factory.SupportedProvider() != provider {
		panic(fmt.Sprintf("factory provider mismatch: expected %s, got %s", provider, factory.SupportedProvider()))
	}

	r.factories[provider] = factory
}

// GetFactory retrieves a factory for a provider
func (r *AgentSourceFactoryRegistry) GetFactory(provider string) (AgentSourceFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[provider]
	if !exists {
		return nil, fmt.Errorf("unsupported agent source provider: %s (supported: %v)", provider, r.getProviderNames())
	}

	return factory, nil
}

// GetProviders returns the sorted names of all registered providers
func (r *AgentSourceFactoryRegistry) GetProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getProviderNames()
}

// getProviderNames returns provider names (must be called with read lock held)
func (r *AgentSourceFactoryRegistry) getProviderNames() []string {
	providers := make([]string, 0, len(r.factories))
	for provider := range r.factories {
		providers = append(providers, provider)
	}
	sort.Strings(providers)
	return providers
}

// CreateSource creates a source using the appropriate factory
func (r *AgentSourceFactoryRegistry) CreateSource(ctx context.Context, config config.RegistryConfig, logger *zap.Logger) (AgentSource, error) {
	factory, err := r.GetFactory(config.Provider)
	if err != nil {
		return nil, err
	}

	if err := factory.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration for provider %s: %w", config.Provider, err)
	}

	return factory.CreateSource(ctx, config, logger)
}

// StaticAgentSourceFactory implements AgentSourceFactory for agents registered in code
type StaticAgentSourceFactory struct{}

// SupportedProvider returns the provider name
func (f *StaticAgentSourceFactory) SupportedProvider() string {
	return config.RegistryProviderStatic
}

// ValidateConfig validates the configuration for the static source
func (f *StaticAgentSourceFactory) ValidateConfig(config config.RegistryConfig) error {
	return nil
}

// CreateSource creates a static source
func (f *StaticAgentSourceFactory) CreateSource(ctx context.Context, config config.RegistryConfig, logger *zap.Logger) (AgentSource, error) {
	return NewStaticAgentSource(), nil
}

// StaticAgentSource serves a fixed list of definitions. The default instance is empty.
type StaticAgentSource struct {
	definitions []AgentDefinition
}

// NewStaticAgentSource creates a static source over definitions
func NewStaticAgentSource(definitions ...AgentDefinition) *StaticAgentSource {
	return &StaticAgentSource{definitions: definitions}
}

// Load returns the fixed definitions
func (s *StaticAgentSource) Load(ctx context.Context) ([]AgentDefinition, error) {
	out := make([]AgentDefinition, len(s.definitions))
	copy(out, s.definitions)
	return out, nil
}

// Provider returns the provider name
func (s *StaticAgentSource) Provider() string {
	return config.RegistryProviderStatic
}

// init registers the default static source provider
func init() {
	RegisterAgentSourceProvider(config.RegistryProviderStatic, &StaticAgentSourceFactory{})
}
