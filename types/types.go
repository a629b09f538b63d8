package types

// Visibility controls whether an agent is advertised in catalog listings.
type Visibility string

// Visibility enum values
const (
	// VisibilityVisible is the default visibility of a registered agent
	VisibilityVisible Visibility = "Visible"

	// VisibilityUnlisted marks an agent that is reachable but should not be advertised
	VisibilityUnlisted Visibility = "Unlisted"
)

// String returns the string representation of the Visibility
func (v Visibility) String() string {
	return string(v)
}

// IsValid checks if the Visibility is one of the supported values
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityVisible, VisibilityUnlisted:
		return true
	default:
		return false
	}
}

// ParseVisibility matches s against the enum labels. The match is
// case-sensitive; "unlisted" is not a valid label.
func ParseVisibility(s string) (Visibility, bool) {
	v := Visibility(s)
	if !v.IsValid() {
		return "", false
	}
	return v, true
}

// UnknownAgentName is reported for agents registered without a name.
const UnknownAgentName = "Unknown"

// Well-known property keys read by the catalog listing
const (
	PropertyIcon       = "icon"
	PropertyBeta       = "beta"
	PropertyVisibility = "visibility"
)

// AgentInfo is the public projection of a registered agent returned by GET /agents.
type AgentInfo struct {
	Name       string     `json:"name"`
	Icon       *string    `json:"icon,omitempty"`
	Beta       bool       `json:"beta"`
	Visibility Visibility `json:"visibility"`
}

// Health status constants
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusDegraded  = "degraded"
	HealthStatusUnhealthy = "unhealthy"
)

// HealthResponse represents the response from the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}

// CloudEvent type constants for catalog lifecycle events
const (
	EventAgentRegistered = "catalog.agent.registered"
)

// EventSourceRegistry is the CloudEvent source of registry events
const EventSourceRegistry = "agent-catalog/registry"
