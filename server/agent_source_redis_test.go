package server

import (
	"context"
	"testing"
	"time"

	"github.com/inference-gateway/agent-catalog/server/config"
	"github.com/inference-gateway/agent-catalog/types"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// Helper function to get Redis URL for testing
func getTestRedisURL() string {
	testURLs := []string{
		"redis://localhost:6379/15",
		"redis://127.0.0.1:6379/15",
	}

	for _, url := range testURLs {
		opt, err := redis.ParseURL(url)
		if err != nil {
			continue
		}
		client := redis.NewClient(opt)
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		err = client.Ping(ctx).Err()
		cancel()
		_ = client.Close()

		if err == nil {
			return url
		}
	}

	return ""
}

// Helper function to skip test if Redis is not available
func requireRedis(t *testing.T) string {
	url := getTestRedisURL()
	if url == "" {
		t.Skip("Redis not available for integration tests")
	}
	return url
}

// Helper function to clean up Redis test data
func cleanupRedisTestData(t *testing.T, url string) {
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	defer func() { _ = client.Close() }()

	err = client.FlushDB(context.Background()).Err()
	require.NoError(t, err)
}

func TestRedisAgentSourceFactory(t *testing.T) {
	factory := &RedisAgentSourceFactory{}

	assert.Equal(t, config.RegistryProviderRedis, factory.SupportedProvider())

	t.Run("ValidateConfig", func(t *testing.T) {
		err := factory.ValidateConfig(config.RegistryConfig{URL: "redis://localhost:6379", Key: "agents"})
		assert.NoError(t, err)

		err = factory.ValidateConfig(config.RegistryConfig{Key: "agents"})
		assert.Error(t, err)
	})

	t.Run("CreateSource with invalid URL", func(t *testing.T) {
		_, err := factory.CreateSource(context.Background(), config.RegistryConfig{
			URL: "not-a-redis-url",
			Key: "agents",
		}, zaptest.NewLogger(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid Redis URL")
	})
}

func TestRedisDefinitionKey(t *testing.T) {
	assert.Equal(t, "agent-catalog:agents:weather-agent", RedisDefinitionKey("agent-catalog:agents", "weather-agent"))
}

func TestRedisAgentSource_Load(t *testing.T) {
	url := requireRedis(t)
	defer cleanupRedisTestData(t, url)

	ctx := context.Background()
	key := "agent-catalog:agents"

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	seed := redis.NewClient(opt)
	defer func() { _ = seed.Close() }()

	require.NoError(t, seed.RPush(ctx, key, "weather-agent", "experimental-agent").Err())
	require.NoError(t, seed.Set(ctx, RedisDefinitionKey(key, "weather-agent"),
		`{"description":"weather","properties":{"icon":"https://example.com/icons/weather.png"}}`, 0).Err())
	require.NoError(t, seed.Set(ctx, RedisDefinitionKey(key, "experimental-agent"),
		`{"name":"experimental-agent","properties":{"beta":true,"visibility":"Unlisted"}}`, 0).Err())

	source, err := CreateAgentSource(ctx, config.RegistryConfig{
		Provider: config.RegistryProviderRedis,
		URL:      url,
		Key:      key,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer func() { _ = source.(*RedisAgentSource).Close() }()

	definitions, err := source.Load(ctx)
	require.NoError(t, err)
	require.Len(t, definitions, 2)

	assert.Equal(t, "weather-agent", definitions[0].Name, "missing name defaults to the list entry")
	assert.Equal(t, "weather", definitions[0].Description)
	assert.Equal(t, "experimental-agent", definitions[1].Name)

	visibility, ok := definitions[1].Properties.String(types.PropertyVisibility)
	assert.True(t, ok)
	assert.Equal(t, "Unlisted", visibility)
}

func TestRedisAgentSource_MissingDefinition(t *testing.T) {
	url := requireRedis(t)
	defer cleanupRedisTestData(t, url)

	ctx := context.Background()
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opt)

	require.NoError(t, client.RPush(ctx, "agents", "ghost-agent").Err())

	source := NewRedisAgentSource(client, "agents", zaptest.NewLogger(t))
	defer func() { _ = source.Close() }()

	_, err = source.Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `definition of agent "ghost-agent" not found`)
}

func TestRedisAgentSource_EmptyList(t *testing.T) {
	url := requireRedis(t)
	defer cleanupRedisTestData(t, url)

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)

	source := NewRedisAgentSource(redis.NewClient(opt), "agents", zaptest.NewLogger(t))
	defer func() { _ = source.Close() }()

	definitions, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, definitions)
}
