package server

import (
	"context"
	"fmt"
	"os"

	"github.com/inference-gateway/agent-catalog/server/config"
	"github.com/inference-gateway/agent-catalog/types"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// agentManifest is the document format shared by the file and minio sources.
// JSON manifests are accepted as well since JSON is valid YAML.
type agentManifest struct {
	Agents []agentManifestEntry `yaml:"agents" json:"agents"`
}

type agentManifestEntry struct {
	Name         string         `yaml:"name" json:"name"`
	Instructions string         `yaml:"instructions" json:"instructions,omitempty"`
	Description  string         `yaml:"description" json:"description,omitempty"`
	Properties   map[string]any `yaml:"properties" json:"properties,omitempty"`
}

func (e agentManifestEntry) definition() AgentDefinition {
	return AgentDefinition{
		Name:         e.Name,
		Instructions: e.Instructions,
		Description:  e.Description,
		Properties:   types.NewProperties(e.Properties),
	}
}

// ParseAgentManifest decodes a YAML or JSON agents manifest
func ParseAgentManifest(data []byte) ([]AgentDefinition, error) {
	var manifest agentManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse agents manifest: %w", err)
	}

	definitions := make([]AgentDefinition, 0, len(manifest.Agents))
	for i, entry := range manifest.Agents {
		if entry.Name == "" {
			return nil, fmt.Errorf("agent at index %d has no name", i)
		}
		definitions = append(definitions, entry.definition())
	}

	return definitions, nil
}

// FileAgentSourceFactory implements AgentSourceFactory for manifest files
type FileAgentSourceFactory struct{}

// SupportedProvider returns the provider name
func (f *FileAgentSourceFactory) SupportedProvider() string {
	return config.RegistryProviderFile
}

// ValidateConfig validates the configuration for the file source
func (f *FileAgentSourceFactory) ValidateConfig(config config.RegistryConfig) error {
	if config.FilePath == "" {
		return fmt.Errorf("file path is required for file agent source provider")
	}
	return nil
}

// CreateSource creates a file source
func (f *FileAgentSourceFactory) CreateSource(ctx context.Context, config config.RegistryConfig, logger *zap.Logger) (AgentSource, error) {
	return NewFileAgentSource(config.FilePath, logger), nil
}

// FileAgentSource reads definitions from a manifest on the local filesystem
type FileAgentSource struct {
	path   string
	logger *zap.Logger
}

// NewFileAgentSource creates a new file source
func NewFileAgentSource(path string, logger *zap.Logger) *FileAgentSource {
	return &FileAgentSource{path: path, logger: logger}
}

// Load reads and parses the manifest
func (s *FileAgentSource) Load(ctx context.Context) ([]AgentDefinition, error) {
	s.logger.Info("loading agents manifest from file", zap.String("file_path", s.path))

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read agents manifest: %w", err)
	}

	return ParseAgentManifest(data)
}

// Provider returns the provider name
func (s *FileAgentSource) Provider() string {
	return config.RegistryProviderFile
}

// init registers the file source provider
func init() {
	RegisterAgentSourceProvider(config.RegistryProviderFile, &FileAgentSourceFactory{})
}
