package types

import (
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	uuid "github.com/google/uuid"
)

// AgentRegisteredData is the payload of a catalog.agent.registered event
type AgentRegisteredData struct {
	Name       string         `json:"name"`
	Position   int            `json:"position"`
	Properties map[string]any `json:"properties,omitempty"`
}

// NewAgentRegisteredEvent creates a CloudEvent announcing that an agent entered the registry
func NewAgentRegisteredEvent(name string, position int, properties Properties) cloudevents.Event {
	event := cloudevents.NewEvent()
	event.SetID(uuid.New().String())
	event.SetType(EventAgentRegistered)
	event.SetSource(EventSourceRegistry)
	event.SetSubject(name)
	event.SetTime(time.Now())
	_ = event.SetData(cloudevents.ApplicationJSON, AgentRegisteredData{
		Name:       name,
		Position:   position,
		Properties: properties.Raw(),
	})

	return event
}
