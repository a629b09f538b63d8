package server

import (
	"context"
	"fmt"
	"io"

	"github.com/inference-gateway/agent-catalog/server/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinIOAgentSourceFactory implements AgentSourceFactory for MinIO/S3 manifests
type MinIOAgentSourceFactory struct{}

// SupportedProvider returns the provider name
func (f *MinIOAgentSourceFactory) SupportedProvider() string {
	return config.RegistryProviderMinIO
}

// ValidateConfig validates the configuration for the MinIO source
func (f *MinIOAgentSourceFactory) ValidateConfig(config config.RegistryConfig) error {
	store := config.ObjectStoreConfig
	if store.Endpoint == "" {
		return fmt.Errorf("endpoint is required for MinIO agent source provider")
	}
	if store.BucketName == "" {
		return fmt.Errorf("bucket name is required for MinIO agent source provider")
	}
	if store.ObjectName == "" {
		return fmt.Errorf("object name is required for MinIO agent source provider")
	}
	return nil
}

// CreateSource creates a MinIO source
func (f *MinIOAgentSourceFactory) CreateSource(ctx context.Context, config config.RegistryConfig, logger *zap.Logger) (AgentSource, error) {
	store := config.ObjectStoreConfig

	client, err := minio.New(store.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(store.AccessKey, store.SecretKey, ""),
		Secure: store.UseSSL,
		Region: store.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, store.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", store.BucketName)
	}

	logger.Info("connected to MinIO",
		zap.String("endpoint", store.Endpoint),
		zap.String("bucket", store.BucketName))

	return NewMinIOAgentSource(client, store.BucketName, store.ObjectName, logger), nil
}

// MinIOAgentSource reads a YAML or JSON agents manifest stored as an object
type MinIOAgentSource struct {
	client     *minio.Client
	bucketName string
	objectName string
	logger     *zap.Logger
}

// NewMinIOAgentSource creates a new MinIO source over an existing client
func NewMinIOAgentSource(client *minio.Client, bucketName, objectName string, logger *zap.Logger) *MinIOAgentSource {
	return &MinIOAgentSource{
		client:     client,
		bucketName: bucketName,
		objectName: objectName,
		logger:     logger,
	}
}

// Load downloads and parses the manifest
func (s *MinIOAgentSource) Load(ctx context.Context) ([]AgentDefinition, error) {
	s.logger.Info("loading agents manifest from object store",
		zap.String("bucket", s.bucketName),
		zap.String("object", s.objectName))

	object, err := s.client.GetObject(ctx, s.bucketName, s.objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve agents manifest from MinIO: %w", err)
	}
	defer func() {
		_ = object.Close()
	}()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read agents manifest from MinIO: %w", err)
	}

	return ParseAgentManifest(data)
}

// Provider returns the provider name
func (s *MinIOAgentSource) Provider() string {
	return config.RegistryProviderMinIO
}

// init registers the MinIO source provider
func init() {
	RegisterAgentSourceProvider(config.RegistryProviderMinIO, &MinIOAgentSourceFactory{})
}
