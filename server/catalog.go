package server

import (
	"context"
	"fmt"
	"iter"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	types "github.com/inference-gateway/agent-catalog/types"
	zap "go.uber.org/zap"
)

//go:generate go tool counterfeiter -o mocks/fake_agent_catalog.go . AgentCatalog

// AgentCatalog enumerates the agents known to the service
type AgentCatalog interface {
	// Agents returns a lazy, single-pass sequence of agents in registration order.
	// The context is checked before every step; once it is done the sequence
	// yields a single CatalogCancelledError and stops.
	Agents(ctx context.Context) iter.Seq2[Agent, error]
}

var _ AgentCatalog = (*AgentRegistry)(nil)

// AgentEventHandler receives the catalog.agent.registered event of every
// agent added by Build, in registration order
type AgentEventHandler func(event cloudevents.Event)

// AgentRegistry is an in-memory AgentCatalog. It is immutable once built and
// safe for concurrent readers without locking.
type AgentRegistry struct {
	agents []Agent
	byName map[string]Agent
}

// Agents implements AgentCatalog
func (r *AgentRegistry) Agents(ctx context.Context) iter.Seq2[Agent, error] {
	return func(yield func(Agent, error) bool) {
		for _, agent := range r.agents {
			if err := ctx.Err(); err != nil {
				yield(nil, NewCatalogCancelledError(err))
				return
			}
			if !yield(agent, nil) {
				return
			}
		}
	}
}

// Get returns the agent registered under name
func (r *AgentRegistry) Get(name string) (Agent, bool) {
	agent, ok := r.byName[name]
	return agent, ok
}

// Len returns the number of registered agents
func (r *AgentRegistry) Len() int {
	return len(r.agents)
}

// AgentRegistryBuilder collects agent registrations and builds an immutable AgentRegistry.
//
// Example:
//
//	registry, err := NewAgentRegistryBuilder(logger).
//	  WithChatClient(chatClient).
//	  WithAgent("weather-agent", ChatClientAgentFactory(instructions, description, properties)).
//	  WithSource(source).
//	  Build(ctx)
type AgentRegistryBuilder interface {
	// WithChatClient sets the chat client passed to every agent factory
	WithChatClient(chatClient ChatClient) AgentRegistryBuilder

	// WithAgent registers an agent produced by factory under key
	WithAgent(key string, factory AgentFactory) AgentRegistryBuilder

	// WithDefinition registers a static agent definition
	WithDefinition(definition AgentDefinition) AgentRegistryBuilder

	// WithEventHandler adds a handler called with each registration event.
	// Events are always logged at debug level as well.
	WithEventHandler(handler AgentEventHandler) AgentRegistryBuilder

	// WithSource appends the definitions loaded from source when Build is called.
	// Source definitions follow the in-code registrations, in source order.
	WithSource(source AgentSource) AgentRegistryBuilder

	// Build creates the registry. It fails on empty keys, duplicate names or a
	// failing source.
	Build(ctx context.Context) (*AgentRegistry, error)
}

var _ AgentRegistryBuilder = (*AgentRegistryBuilderImpl)(nil)

type registration struct {
	key     string
	factory AgentFactory
}

// AgentRegistryBuilderImpl is the concrete implementation of AgentRegistryBuilder
type AgentRegistryBuilderImpl struct {
	logger        *zap.Logger
	chatClient    ChatClient
	registrations []registration
	sources       []AgentSource
	eventHandlers []AgentEventHandler
}

// NewAgentRegistryBuilder creates a new registry builder
func NewAgentRegistryBuilder(logger *zap.Logger) AgentRegistryBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgentRegistryBuilderImpl{logger: logger}
}

// WithChatClient sets the shared chat client
func (b *AgentRegistryBuilderImpl) WithChatClient(chatClient ChatClient) AgentRegistryBuilder {
	b.chatClient = chatClient
	return b
}

// WithAgent registers an agent factory under key
func (b *AgentRegistryBuilderImpl) WithAgent(key string, factory AgentFactory) AgentRegistryBuilder {
	b.registrations = append(b.registrations, registration{key: key, factory: factory})
	return b
}

// WithDefinition registers a static agent definition
func (b *AgentRegistryBuilderImpl) WithDefinition(definition AgentDefinition) AgentRegistryBuilder {
	b.registrations = append(b.registrations, registration{
		key:     definition.Name,
		factory: staticFactory(definition),
	})
	return b
}

// WithEventHandler adds a registration event handler
func (b *AgentRegistryBuilderImpl) WithEventHandler(handler AgentEventHandler) AgentRegistryBuilder {
	if handler != nil {
		b.eventHandlers = append(b.eventHandlers, handler)
	}
	return b
}

// WithSource adds an external source of definitions
func (b *AgentRegistryBuilderImpl) WithSource(source AgentSource) AgentRegistryBuilder {
	if source != nil {
		b.sources = append(b.sources, source)
	}
	return b
}

// Build creates the registry
func (b *AgentRegistryBuilderImpl) Build(ctx context.Context) (*AgentRegistry, error) {
	registrations := make([]registration, 0, len(b.registrations))
	registrations = append(registrations, b.registrations...)

	for _, source := range b.sources {
		definitions, err := source.Load(ctx)
		if err != nil {
			return nil, NewAgentSourceError(source.Provider(), err)
		}
		b.logger.Info("loaded agent definitions",
			zap.String("provider", source.Provider()),
			zap.Int("count", len(definitions)))
		for _, definition := range definitions {
			registrations = append(registrations, registration{
				key:     definition.Name,
				factory: staticFactory(definition),
			})
		}
	}

	registry := &AgentRegistry{
		agents: make([]Agent, 0, len(registrations)),
		byName: make(map[string]Agent, len(registrations)),
	}

	for _, reg := range registrations {
		if reg.key == "" {
			return nil, ErrEmptyAgentKey
		}
		if reg.factory == nil {
			return nil, fmt.Errorf("agent %q has no factory", reg.key)
		}

		agent, err := reg.factory(reg.key, b.chatClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create agent %q: %w", reg.key, err)
		}
		if agent == nil {
			return nil, fmt.Errorf("factory for agent %q returned nil", reg.key)
		}

		if _, exists := registry.byName[reg.key]; exists {
			return nil, NewDuplicateAgentError(reg.key)
		}
		if name := agent.Name(); name != "" && name != reg.key {
			if _, exists := registry.byName[name]; exists {
				return nil, NewDuplicateAgentError(name)
			}
			registry.byName[name] = agent
		}

		registry.byName[reg.key] = agent
		registry.agents = append(registry.agents, agent)

		b.publish(types.NewAgentRegisteredEvent(reg.key, len(registry.agents)-1, agent.Properties()))
	}

	b.logger.Info("agent registry built", zap.Int("agents", len(registry.agents)))

	return registry, nil
}

func (b *AgentRegistryBuilderImpl) publish(event cloudevents.Event) {
	b.logger.Debug("agent registered",
		zap.String("event_id", event.ID()),
		zap.String("event_type", event.Type()),
		zap.String("event_source", event.Source()),
		zap.String("agent", event.Subject()),
		zap.Time("event_time", event.Time()),
		zap.ByteString("event_data", event.Data()))

	for _, handler := range b.eventHandlers {
		handler(event)
	}
}

func staticFactory(definition AgentDefinition) AgentFactory {
	return func(string, ChatClient) (Agent, error) {
		return NewStaticAgent(definition), nil
	}
}
