package server

import (
	types "github.com/inference-gateway/agent-catalog/types"
)

// Agent is a hosted agent as seen by the catalog. Implementations must be
// immutable once registered.
type Agent interface {
	// Name returns the unique name the agent is registered under
	Name() string

	// Description returns a human readable description of the agent
	Description() string

	// Instructions returns the system instructions used by the agent runtime
	Instructions() string

	// Properties returns the open-ended metadata attached at registration time
	Properties() types.Properties
}

// AgentDefinition is the static description of an agent
type AgentDefinition struct {
	Name         string
	Instructions string
	Description  string
	Properties   types.Properties
}

// AgentFactory creates the agent registered under key. The chat client is
// shared by every agent of the registry and may be nil.
type AgentFactory func(key string, chatClient ChatClient) (Agent, error)

var _ Agent = (*StaticAgent)(nil)
var _ Agent = (*ChatClientAgent)(nil)

// StaticAgent is an Agent backed only by its definition
type StaticAgent struct {
	definition AgentDefinition
}

// NewStaticAgent creates an agent from a definition. The property bag is copied.
func NewStaticAgent(definition AgentDefinition) *StaticAgent {
	definition.Properties = definition.Properties.Clone()
	return &StaticAgent{definition: definition}
}

func (a *StaticAgent) Name() string                 { return a.definition.Name }
func (a *StaticAgent) Description() string          { return a.definition.Description }
func (a *StaticAgent) Instructions() string         { return a.definition.Instructions }
func (a *StaticAgent) Properties() types.Properties { return a.definition.Properties }

// ChatClientAgent is an Agent that answers through a chat completion client.
// The catalog only reads its metadata.
type ChatClientAgent struct {
	StaticAgent
	chatClient ChatClient
}

// NewChatClientAgent creates a chat client backed agent
func NewChatClientAgent(chatClient ChatClient, definition AgentDefinition) *ChatClientAgent {
	return &ChatClientAgent{
		StaticAgent: *NewStaticAgent(definition),
		chatClient:  chatClient,
	}
}

// ChatClient returns the client the agent runtime talks to
func (a *ChatClientAgent) ChatClient() ChatClient {
	return a.chatClient
}

// ChatClientAgentFactory returns an AgentFactory that builds a ChatClientAgent
// named after its registration key.
func ChatClientAgentFactory(instructions, description string, properties map[string]any) AgentFactory {
	return func(key string, chatClient ChatClient) (Agent, error) {
		return NewChatClientAgent(chatClient, AgentDefinition{
			Name:         key,
			Instructions: instructions,
			Description:  description,
			Properties:   types.NewProperties(properties),
		}), nil
	}
}
