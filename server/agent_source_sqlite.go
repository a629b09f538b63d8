package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/inference-gateway/agent-catalog/server/config"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteAgentsSchema creates the table read by the sqlite source
const SQLiteAgentsSchema = `
CREATE TABLE IF NOT EXISTS agents (
	position INTEGER NOT NULL,
	name TEXT PRIMARY KEY,
	instructions TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	properties TEXT
);
`

// SQLiteAgentSourceFactory implements AgentSourceFactory for SQLite databases
type SQLiteAgentSourceFactory struct{}

// SupportedProvider returns the provider name
func (f *SQLiteAgentSourceFactory) SupportedProvider() string {
	return config.RegistryProviderSQLite
}

// ValidateConfig validates the configuration for the SQLite source
func (f *SQLiteAgentSourceFactory) ValidateConfig(config config.RegistryConfig) error {
	if config.DSN == "" {
		return fmt.Errorf("DSN is required for SQLite agent source provider")
	}
	return nil
}

// CreateSource opens the database and creates a SQLite source
func (f *SQLiteAgentSourceFactory) CreateSource(ctx context.Context, config config.RegistryConfig, logger *zap.Logger) (AgentSource, error) {
	db, err := sql.Open("sqlite3", config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	logger.Info("opened SQLite database", zap.String("dsn", config.DSN))

	return NewSQLiteAgentSource(db, logger), nil
}

// SQLiteAgentSource reads definitions from the agents table ordered by position.
// The properties column holds a JSON object or NULL.
type SQLiteAgentSource struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteAgentSource creates a new SQLite source over an open database
func NewSQLiteAgentSource(db *sql.DB, logger *zap.Logger) *SQLiteAgentSource {
	return &SQLiteAgentSource{db: db, logger: logger}
}

// Load queries the agents table
func (s *SQLiteAgentSource) Load(ctx context.Context) ([]AgentDefinition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, instructions, description, properties FROM agents ORDER BY position ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query agents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	definitions := []AgentDefinition{}
	for rows.Next() {
		var entry agentManifestEntry
		var properties sql.NullString

		if err := rows.Scan(&entry.Name, &entry.Instructions, &entry.Description, &properties); err != nil {
			return nil, fmt.Errorf("failed to scan agent row: %w", err)
		}

		if properties.Valid && properties.String != "" {
			if err := json.Unmarshal([]byte(properties.String), &entry.Properties); err != nil {
				return nil, fmt.Errorf("failed to parse properties of agent %q: %w", entry.Name, err)
			}
		}

		definitions = append(definitions, entry.definition())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate agents: %w", err)
	}

	s.logger.Debug("agent definitions read from SQLite", zap.Int("count", len(definitions)))

	return definitions, nil
}

// Provider returns the provider name
func (s *SQLiteAgentSource) Provider() string {
	return config.RegistryProviderSQLite
}

// Close closes the database
func (s *SQLiteAgentSource) Close() error {
	return s.db.Close()
}

// init registers the SQLite source provider
func init() {
	RegisterAgentSourceProvider(config.RegistryProviderSQLite, &SQLiteAgentSourceFactory{})
}
