package server

import (
	"context"

	types "github.com/inference-gateway/agent-catalog/types"
)

// NewAgentInfo projects an agent onto its public listing shape. Missing or
// mistyped properties fall back to their defaults; they are never errors.
func NewAgentInfo(agent Agent) types.AgentInfo {
	info := types.AgentInfo{
		Name:       agent.Name(),
		Beta:       false,
		Visibility: types.VisibilityVisible,
	}
	if info.Name == "" {
		info.Name = types.UnknownAgentName
	}

	props := agent.Properties()

	if icon, ok := props.String(types.PropertyIcon); ok {
		info.Icon = &icon
	}

	if beta, ok := props.Bool(types.PropertyBeta); ok {
		info.Beta = beta
	}

	if label, ok := props.String(types.PropertyVisibility); ok {
		if visibility, ok := types.ParseVisibility(label); ok {
			info.Visibility = visibility
		}
	}

	return info
}

// CollectAgentInfos drains the catalog in order and projects every agent.
// Any enumeration error discards the partial list. An empty catalog yields
// an empty, non-nil slice.
func CollectAgentInfos(ctx context.Context, catalog AgentCatalog) ([]types.AgentInfo, error) {
	infos := make([]types.AgentInfo, 0)

	for agent, err := range catalog.Agents(ctx) {
		if err != nil {
			return nil, err
		}
		infos = append(infos, NewAgentInfo(agent))
	}

	return infos, nil
}
