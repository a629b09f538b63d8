package server

import (
	"context"
	"fmt"
	"net/http"

	gin "github.com/gin-gonic/gin"
	config "github.com/inference-gateway/agent-catalog/server/config"
	middlewares "github.com/inference-gateway/agent-catalog/server/middlewares"
	otel "github.com/inference-gateway/agent-catalog/server/otel"
	types "github.com/inference-gateway/agent-catalog/types"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
	zap "go.uber.org/zap"
)

// StatusClientClosedRequest is written when the caller goes away before the
// listing completes. It is not part of net/http.
const StatusClientClosedRequest = 499

// CatalogServer defines the interface of the agent catalog HTTP service
type CatalogServer interface {
	// Start starts the catalog server on the configured port
	Start(ctx context.Context) error

	// Stop gracefully stops the catalog server
	Stop(ctx context.Context) error

	// GetCatalog returns the catalog served by GET /agents
	GetCatalog() AgentCatalog

	// Handler returns the HTTP handler with all catalog routes mounted
	Handler() http.Handler
}

type CatalogServerImpl struct {
	cfg     *config.Config
	logger  *zap.Logger
	catalog AgentCatalog
	otel    otel.OpenTelemetry

	router *gin.Engine

	// Server state
	httpServer    *http.Server
	metricsServer *http.Server
}

var _ CatalogServer = (*CatalogServerImpl)(nil)

// NewCatalogServer creates a new catalog server with the provided configuration and logger.
// The telemetry instance may be nil.
func NewCatalogServer(cfg *config.Config, logger *zap.Logger, catalog AgentCatalog, telemetry otel.OpenTelemetry) *CatalogServerImpl {
	if cfg.ServiceName == "" {
		cfg.ServiceName = BuildServiceName
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = BuildServiceVersion
	}

	s := &CatalogServerImpl{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog,
		otel:    telemetry,
	}
	s.router = s.setupRouter(cfg)

	return s
}

// GetCatalog returns the served catalog
func (s *CatalogServerImpl) GetCatalog() AgentCatalog {
	return s.catalog
}

// Handler returns the configured gin engine
func (s *CatalogServerImpl) Handler() http.Handler {
	return s.router
}

// setupRouter configures the HTTP router with the catalog endpoints
func (s *CatalogServerImpl) setupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.LoggingMiddleware(cfg.ServerConfig.DisableHealthcheckLog))

	r.GET(middlewares.HealthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, types.HealthResponse{Status: types.HealthStatusHealthy})
	})

	if cfg.TelemetryConfig.Enable && s.otel != nil {
		telemetryMw, err := middlewares.NewTelemetryMiddleware(*cfg, s.otel, s.logger)
		if err != nil {
			s.logger.Error("failed to create telemetry middleware", zap.Error(err))
		} else {
			r.GET("/agents", telemetryMw.Middleware(), s.handleListAgents)
			return r
		}
	}

	r.GET("/agents", s.handleListAgents)

	return r
}

// handleListAgents serves the public projection of every registered agent
func (s *CatalogServerImpl) handleListAgents(c *gin.Context) {
	ctx := c.Request.Context()

	infos, err := CollectAgentInfos(ctx, s.catalog)
	if err != nil {
		if IsCatalogCancelled(err) {
			s.logger.Info("agent listing cancelled by client", zap.Error(err))
			if s.otel != nil {
				s.otel.RecordListingCancelled(context.WithoutCancel(ctx))
			}
			c.AbortWithStatus(StatusClientClosedRequest)
			return
		}

		s.logger.Error("failed to list agents", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to list agents",
			"message": err.Error(),
		})
		return
	}

	if s.otel != nil {
		s.otel.RecordAgentsListed(ctx, len(infos))
	}

	s.logger.Debug("listed agents", zap.Int("count", len(infos)))
	c.JSON(http.StatusOK, infos)
}

// Start starts the catalog server
func (s *CatalogServerImpl) Start(ctx context.Context) error {
	if s.catalog == nil {
		return fmt.Errorf("agent catalog must be configured before starting the server")
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.cfg.ServerConfig.Port),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ServerConfig.ReadTimeout,
		WriteTimeout: s.cfg.ServerConfig.WriteTimeout,
		IdleTimeout:  s.cfg.ServerConfig.IdleTimeout,
	}

	s.logger.Info("starting agent catalog server",
		zap.String("port", s.cfg.ServerConfig.Port),
		zap.String("service_name", s.cfg.ServiceName),
		zap.String("service_version", s.cfg.ServiceVersion),
		zap.String("registry_provider", s.cfg.RegistryConfig.Provider))

	if s.cfg.TelemetryConfig.Enable && s.otel != nil {
		metricsRouter := gin.New()
		metricsRouter.Use(gin.Recovery())
		metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

		metricsAddr := s.cfg.TelemetryConfig.MetricsConfig.Host + ":" + s.cfg.TelemetryConfig.MetricsConfig.Port
		s.metricsServer = &http.Server{
			Addr:         metricsAddr,
			Handler:      metricsRouter,
			ReadTimeout:  s.cfg.TelemetryConfig.MetricsConfig.ReadTimeout,
			WriteTimeout: s.cfg.TelemetryConfig.MetricsConfig.WriteTimeout,
			IdleTimeout:  s.cfg.TelemetryConfig.MetricsConfig.IdleTimeout,
		}

		go func(metricsServer *http.Server) {
			s.logger.Info("starting metrics server", zap.String("port", s.cfg.TelemetryConfig.MetricsConfig.Port))
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				s.logger.Error("metrics server failed", zap.Error(err))
			}
		}(s.metricsServer)
	}

	if s.cfg.ServerConfig.TLSConfig.Enable {
		return s.httpServer.ListenAndServeTLS(s.cfg.ServerConfig.TLSConfig.CertPath, s.cfg.ServerConfig.TLSConfig.KeyPath)
	}

	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the catalog server
func (s *CatalogServerImpl) Stop(ctx context.Context) error {
	s.logger.Info("stopping agent catalog server")

	var err error

	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			s.logger.Error("error stopping HTTP server", zap.Error(shutdownErr))
			err = shutdownErr
		}
	}

	if s.metricsServer != nil {
		if shutdownErr := s.metricsServer.Shutdown(ctx); shutdownErr != nil {
			s.logger.Error("error stopping metrics server", zap.Error(shutdownErr))
			if err == nil {
				err = shutdownErr
			}
		}
	}

	if s.otel != nil {
		if shutdownErr := s.otel.ShutDown(ctx); shutdownErr != nil {
			s.logger.Error("error shutting down telemetry", zap.Error(shutdownErr))
			if err == nil {
				err = shutdownErr
			}
		}
	}

	defer func() {
		// Sync commonly fails on stdout/stderr; nothing left to report it to.
		_ = s.logger.Sync()
	}()

	return err
}
