package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/inference-gateway/agent-catalog/server/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisAgentSourceFactory implements AgentSourceFactory for Redis
type RedisAgentSourceFactory struct{}

// SupportedProvider returns the provider name
func (f *RedisAgentSourceFactory) SupportedProvider() string {
	return config.RegistryProviderRedis
}

// ValidateConfig validates the configuration for the Redis source
func (f *RedisAgentSourceFactory) ValidateConfig(config config.RegistryConfig) error {
	if config.URL == "" {
		return fmt.Errorf("URL is required for Redis agent source provider")
	}
	if config.Key == "" {
		return fmt.Errorf("key is required for Redis agent source provider")
	}
	return nil
}

// CreateSource creates a Redis source
func (f *RedisAgentSourceFactory) CreateSource(ctx context.Context, config config.RegistryConfig, logger *zap.Logger) (AgentSource, error) {
	opt, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	if dbStr, exists := config.Options["db"]; exists {
		if db, err := strconv.Atoi(dbStr); err == nil {
			opt.DB = db
		}
	}

	if maxRetriesStr, exists := config.Options["max_retries"]; exists {
		if maxRetries, err := strconv.Atoi(maxRetriesStr); err == nil {
			opt.MaxRetries = maxRetries
		}
	}

	if timeoutStr, exists := config.Options["timeout"]; exists {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			opt.DialTimeout = timeout
			opt.ReadTimeout = timeout
			opt.WriteTimeout = timeout
		}
	}

	if username, exists := config.Credentials["username"]; exists {
		opt.Username = username
	}
	if password, exists := config.Credentials["password"]; exists {
		opt.Password = password
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis",
		zap.String("addr", opt.Addr),
		zap.Int("db", opt.DB))

	return NewRedisAgentSource(client, config.Key, logger), nil
}

// RedisAgentSource reads definitions from Redis. The list stored at key holds
// agent names in registration order; each definition is a JSON document
// stored at "<key>:<name>".
type RedisAgentSource struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRedisAgentSource creates a new Redis source over an existing client
func NewRedisAgentSource(client *redis.Client, key string, logger *zap.Logger) *RedisAgentSource {
	return &RedisAgentSource{
		client: client,
		key:    key,
		logger: logger,
	}
}

// RedisDefinitionKey returns the key holding the definition of name
func RedisDefinitionKey(key, name string) string {
	return key + ":" + name
}

// Load reads the ordered names and their definitions
func (s *RedisAgentSource) Load(ctx context.Context) ([]AgentDefinition, error) {
	names, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read agent names: %w", err)
	}

	if len(names) == 0 {
		s.logger.Warn("no agents found in Redis", zap.String("key", s.key))
		return []AgentDefinition{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(names))
	for i, name := range names {
		cmds[i] = pipe.Get(ctx, RedisDefinitionKey(s.key, name))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read agent definitions: %w", err)
	}

	definitions := make([]AgentDefinition, 0, len(names))
	for i, name := range names {
		data, err := cmds[i].Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("definition of agent %q not found", name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read definition of agent %q: %w", name, err)
		}

		var entry agentManifestEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("failed to parse definition of agent %q: %w", name, err)
		}
		if entry.Name == "" {
			entry.Name = name
		}

		definitions = append(definitions, entry.definition())
	}

	s.logger.Debug("agent definitions read from Redis",
		zap.String("key", s.key),
		zap.Int("count", len(definitions)))

	return definitions, nil
}

// Provider returns the provider name
func (s *RedisAgentSource) Provider() string {
	return config.RegistryProviderRedis
}

// Close releases the Redis connection
func (s *RedisAgentSource) Close() error {
	return s.client.Close()
}

// init registers the Redis source provider
func init() {
	RegisterAgentSourceProvider(config.RegistryProviderRedis, &RedisAgentSourceFactory{})
}
