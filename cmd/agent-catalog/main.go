package main

import (
	"os"
)

// Agent Catalog
//
// Serves GET /agents, the public listing of the hosted agents registered at
// startup. Three sample agents are registered in code; more can be loaded
// from the source selected by REGISTRY_PROVIDER.
//
// Configuration is read from environment variables:
//   - ENVIRONMENT: Runtime environment (default: production)
//   - DEBUG: Enable debug logging (default: false)
//   - SERVER_PORT: Server port (default: 8080)
//   - CHAT_CLIENT_PROVIDER / CHAT_CLIENT_MODEL: Shared chat client (default: openai / gpt-4o-mini)
//   - REGISTRY_PROVIDER: Agent source (static, file, redis, minio, sqlite)
//
// Build metadata is injected with:
//
//	go build -ldflags "-X github.com/inference-gateway/agent-catalog/server.BuildServiceVersion=v0.1.0 -X github.com/inference-gateway/agent-catalog/server.BuildCommit=$(git rev-parse --short HEAD)" ./cmd/agent-catalog
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
