package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	server "github.com/inference-gateway/agent-catalog/server"
	config "github.com/inference-gateway/agent-catalog/server/config"
	cobra "github.com/spf13/cobra"
	zap "go.uber.org/zap"
)

// runServe loads the configuration, builds the registry and serves it until
// SIGINT or SIGTERM
func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, &config.Config{
		ServiceName:    server.BuildServiceName,
		ServiceVersion: server.BuildServiceVersion,
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var logger *zap.Logger
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("agent catalog starting",
		zap.String("environment", cfg.Environment),
		zap.String("version", cfg.ServiceVersion),
		zap.String("port", cfg.ServerConfig.Port),
		zap.String("registry_provider", cfg.RegistryConfig.Provider),
		zap.Bool("debug", cfg.Debug),
	)

	chatClient, err := server.NewOpenAICompatibleChatClient(&cfg.ChatClientConfig, logger)
	if err != nil {
		logger.Error("failed to create chat client", zap.Error(err))
		return err
	}

	registry, err := buildRegistry(ctx, cfg, chatClient, logger)
	if err != nil {
		logger.Error("failed to build agent registry", zap.Error(err))
		return err
	}

	catalogServer, err := server.NewCatalogServerBuilder(*cfg, logger).
		WithCatalog(registry).
		Build()
	if err != nil {
		logger.Error("failed to create catalog server", zap.Error(err))
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := catalogServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	logger.Info("server running",
		zap.String("port", cfg.ServerConfig.Port),
		zap.Int("agents", registry.Len()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		logger.Info("shutting down server")
	case err := <-serverErr:
		logger.Error("server failed to start", zap.Error(err))
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := catalogServer.Stop(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
		return err
	}

	return nil
}

// buildRegistry registers the sample agents followed by the definitions of the
// configured source
func buildRegistry(ctx context.Context, cfg *config.Config, chatClient server.ChatClient, logger *zap.Logger) (*server.AgentRegistry, error) {
	loadCtx := ctx
	if cfg.RegistryConfig.LoadTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, cfg.RegistryConfig.LoadTimeout)
		defer cancel()
	}

	builder := server.NewAgentRegistryBuilder(logger).
		WithChatClient(chatClient).
		WithEventHandler(func(event cloudevents.Event) {
			logger.Info("agent available",
				zap.String("agent", event.Subject()),
				zap.String("event_id", event.ID()),
				zap.ByteString("data", event.Data()))
		})
	for _, sample := range sampleAgents {
		builder = builder.WithAgent(sample.key,
			server.ChatClientAgentFactory(sample.instructions, sample.description, sample.properties))
	}

	if cfg.RegistryConfig.Provider != config.RegistryProviderStatic {
		source, err := server.CreateAgentSource(loadCtx, cfg.RegistryConfig, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create agent source: %w", err)
		}
		if closer, ok := source.(io.Closer); ok {
			defer func() {
				if err := closer.Close(); err != nil {
					logger.Warn("failed to close agent source", zap.Error(err))
				}
			}()
		}
		builder = builder.WithSource(source)
	}

	return builder.Build(loadCtx)
}
