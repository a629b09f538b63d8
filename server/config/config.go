package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Supported agent registry source providers
const (
	RegistryProviderStatic = "static"
	RegistryProviderFile   = "file"
	RegistryProviderRedis  = "redis"
	RegistryProviderMinIO  = "minio"
	RegistryProviderSQLite = "sqlite"
)

// Config holds all application configuration
type Config struct {
	ServiceName      string           // Build-time metadata, not configurable via environment
	ServiceVersion   string           // Build-time metadata, not configurable via environment
	Environment      string           `env:"ENVIRONMENT,default=production" description:"Runtime environment (development, production)"`
	Debug            bool             `env:"DEBUG,default=false"`
	ServerConfig     ServerConfig     `env:",prefix=SERVER_"`
	TelemetryConfig  TelemetryConfig  `env:",prefix=TELEMETRY_"`
	RegistryConfig   RegistryConfig   `env:",prefix=REGISTRY_"`
	ChatClientConfig ChatClientConfig `env:",prefix=CHAT_CLIENT_"`
}

// ChatClientConfig holds the settings of the chat client shared by hosted agents
type ChatClientConfig struct {
	Provider      string            `env:"PROVIDER,default=openai" description:"LLM provider name"`
	Model         string            `env:"MODEL,default=gpt-4o-mini" description:"LLM model or deployment name"`
	BaseURL       string            `env:"BASE_URL" description:"Base URL of the inference endpoint"`
	APIKey        string            `env:"API_KEY" description:"API key for authentication"`
	Timeout       time.Duration     `env:"TIMEOUT,default=30s" description:"Client timeout for requests"`
	CustomHeaders map[string]string `env:"CUSTOM_HEADERS" description:"Custom headers to include in requests"`
}

// RegistryConfig selects where agent definitions are loaded from at startup
type RegistryConfig struct {
	Provider          string            `env:"PROVIDER,default=static" description:"Agent source provider (static, file, redis, minio, sqlite)"`
	FilePath          string            `env:"FILE_PATH" description:"Path to a YAML or JSON agents manifest (file provider)"`
	URL               string            `env:"URL" description:"Connection URL for the redis provider"`
	Key               string            `env:"KEY,default=agent-catalog:agents" description:"Redis list key holding agent names in registration order"`
	DSN               string            `env:"DSN" description:"Data source name for the sqlite provider"`
	LoadTimeout       time.Duration     `env:"LOAD_TIMEOUT,default=10s" description:"Timeout for loading definitions at startup"`
	Credentials       map[string]string `env:"CREDENTIALS" description:"Provider-specific credentials"`
	Options           map[string]string `env:"OPTIONS" description:"Provider-specific configuration options"`
	ObjectStoreConfig ObjectStoreConfig `env:",prefix=OBJECT_STORE_"`
}

// ObjectStoreConfig holds the minio provider settings
type ObjectStoreConfig struct {
	Endpoint   string `env:"ENDPOINT" description:"Object store endpoint (host:port)"`
	AccessKey  string `env:"ACCESS_KEY" description:"Object store access key"`
	SecretKey  string `env:"SECRET_KEY" description:"Object store secret key"`
	BucketName string `env:"BUCKET_NAME,default=agent-catalog" description:"Bucket holding the agents manifest"`
	ObjectName string `env:"OBJECT_NAME,default=agents.yaml" description:"Object name of the agents manifest"`
	Region     string `env:"REGION,default=us-east-1" description:"Object store region"`
	UseSSL     bool   `env:"USE_SSL,default=true" description:"Use SSL for object store connections"`
}

// TLSConfig holds TLS configuration
type TLSConfig struct {
	Enable   bool   `env:"ENABLE,default=false"`
	CertPath string `env:"CERT_PATH" description:"TLS certificate path"`
	KeyPath  string `env:"KEY_PATH" description:"TLS key path"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port                  string        `env:"PORT,default=8080" description:"HTTP server port"`
	ReadTimeout           time.Duration `env:"READ_TIMEOUT,default=120s" description:"HTTP server read timeout"`
	WriteTimeout          time.Duration `env:"WRITE_TIMEOUT,default=120s" description:"HTTP server write timeout"`
	IdleTimeout           time.Duration `env:"IDLE_TIMEOUT,default=120s" description:"HTTP server idle timeout"`
	DisableHealthcheckLog bool          `env:"DISABLE_HEALTHCHECK_LOG,default=true" description:"Disable logging for health check requests"`
	TLSConfig             TLSConfig     `env:",prefix=TLS_"`
}

// MetricsConfig holds metrics server configuration
type MetricsConfig struct {
	Port         string        `env:"PORT,default=9090" description:"Metrics server port"`
	Host         string        `env:"HOST,default=" description:"Metrics server host (empty for all interfaces)"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s" description:"Metrics server read timeout"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s" description:"Metrics server write timeout"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=60s" description:"Metrics server idle timeout"`
}

// TelemetryConfig holds telemetry configuration
type TelemetryConfig struct {
	Enable        bool          `env:"ENABLE,default=false" description:"Enable telemetry collection"`
	MetricsConfig MetricsConfig `env:",prefix=METRICS_"`
}

// Load loads configuration from environment variables, merging with the provided base config.
func Load(ctx context.Context, baseConfig *Config) (*Config, error) {
	return LoadWithLookuper(ctx, baseConfig, envconfig.OsLookuper())
}

// LoadWithLookuper creates and loads configuration using a custom lookuper and merges with user config
func LoadWithLookuper(ctx context.Context, baseConfig *Config, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config

	if baseConfig != nil {
		cfg = *baseConfig
	}

	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	})
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NewWithDefaults creates a new config with defaults applied from struct tags.
func NewWithDefaults(ctx context.Context, baseConfig *Config) (*Config, error) {
	return LoadWithLookuper(ctx, baseConfig, &emptyLookuper{})
}

// emptyLookuper ensures that only default values from struct tags are used
type emptyLookuper struct{}

func (e *emptyLookuper) Lookup(key string) (string, bool) {
	return "", false
}

// Validate reports invalid configuration values without modifying them
func (c *Config) Validate() error {
	switch c.RegistryConfig.Provider {
	case RegistryProviderStatic, RegistryProviderFile, RegistryProviderRedis, RegistryProviderMinIO, RegistryProviderSQLite:
	default:
		return fmt.Errorf("invalid registry provider '%s'", c.RegistryConfig.Provider)
	}

	if c.ChatClientConfig.Model == "" {
		return fmt.Errorf("chat client model is required")
	}

	if c.RegistryConfig.LoadTimeout < 0 {
		return fmt.Errorf("registry load timeout cannot be negative: %s", c.RegistryConfig.LoadTimeout)
	}

	return nil
}

// IsDevelopment reports whether the service runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.Debug || c.Environment == "development" || c.Environment == "dev"
}
