package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"costream/internal/core/services"
	httphandlers "costream/internal/handlers/http"
	"costream/internal/infrastructure/matching"
	"costream/internal/infrastructure/middleware"
	"costream/internal/infrastructure/monitoring"
	"costream/internal/infrastructure/notify"
	"costream/internal/infrastructure/platforms"
	repositories "costream/internal/infrastructure/repositories"
	"costream/pkg/config"
	"costream/pkg/logger"
	"costream/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Try multiple config paths
	configPaths := []string{
		"configs/config.yaml",
		"./configs/config.yaml",
		"/etc/costream/config.yaml",
		"config.yaml",
	}

	var cfg *config.Config
	var err error

	for _, path := range configPaths {
		cfg, err = config.Load(path)
		if err == nil {
			break
		}
	}

	if err != nil {
		cfg = config.DefaultConfig()
	}

	// Initialize logger
	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()

	log := zapLogger.Sugar()

	// Initialize tracing
	tracerProvider, err := tracing.Init(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		JaegerURL:   cfg.Tracing.JaegerURL,
		Environment: cfg.Tracing.Environment,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		log.Fatalw("failed to initialize tracing", "error", err)
	}

	// Initialize repository factory
	repoFactory, err := repositories.NewRepositoryFactory(cfg, log)
	if err != nil {
		log.Fatalw("failed to create repository factory", "error", err)
	}
	defer repoFactory.Close()

	eventRepo := repoFactory.CreateEventRepository()
	collabRepo := repoFactory.CreateCollaboratorRepository()
	sessionRepo := repoFactory.CreateSessionRepository()

	// Platform clients
	handles := platforms.NewMemoryHandleDirectory()
	clientRegistry := platforms.NewRegistry()
	clientRegistry.Register(platforms.NewTwitchClient(cfg.Platforms["twitch"], handles, log))
	clientRegistry.Register(platforms.NewYouTubeClient(cfg.Platforms["youtube"], handles, log))
	clientRegistry.Register(platforms.NewKickClient(cfg.Platforms["kick"], handles, log))

	// Matching collaborator
	matcher := matching.NewHTTPMatchFinder(cfg.Matching.Endpoint, cfg.Matching.Timeout, log)

	// WebSocket notification hub
	hub := notify.NewHub(log)

	// Core services
	subs := services.NewSubscriptionIndex()
	metrics := services.NewCoordinationMetrics()

	eventRegistry := services.NewEventRegistry(eventRepo, collabRepo, subs, log)
	collabRegistry := services.NewCollaboratorRegistry(collabRepo, eventRepo, matcher, cfg.Matching.MaxResults, log)

	sessionCoordinator := services.NewSessionCoordinator(sessionRepo, eventRepo, collabRepo, metrics, hub, log)
	platformCoordinator := services.NewPlatformCoordinator(
		clientRegistry,
		sessionCoordinator,
		eventRepo,
		collabRepo,
		sessionRepo,
		metrics,
		log,
	)
	sessionCoordinator.AttachPlatformCoordinator(platformCoordinator)

	orchestrator := services.NewOrchestrator(eventRegistry, collabRegistry, sessionCoordinator)

	// Restore subscriptions for events that survived a restart
	rebuildCtx, rebuildCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := eventRegistry.RebuildSubscriptions(rebuildCtx); err != nil {
		log.Warnw("failed to rebuild subscriptions", "error", err)
	}
	rebuildCancel()

	authService := services.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	// Monitoring
	prometheusCollector := monitoring.NewPrometheusCollector()

	// HTTP handlers
	coordinationHandler := httphandlers.NewCoordinationHandler(orchestrator, handles, hub, prometheusCollector)

	// Configure Gin
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.ErrorHandlerMiddleware(log))
	router.Use(middleware.NewHTTPRateLimitMiddleware(cfg))
	if cfg.Tracing.Enabled {
		router.Use(middleware.TracingMiddleware())
	}

	// Dev-mode login issues tokens without credential checks; kept off unless
	// auth.allow_dev_login is set. Production deployments get tokens from an
	// external identity provider.
	if cfg.Auth.AllowDevLogin {
		authHandler := httphandlers.NewAuthHandler(authService, cfg.Auth.AccessTokenTTL)
		authHandler.SetupRoutes(router)
		log.Warn("dev-mode login enabled; tokens are issued without credential checks")
	}

	// Coordination routes behind authentication
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(authService))
	{
		api.POST("/events", coordinationHandler.CreateEvent)
		api.GET("/events/:id", coordinationHandler.GetEvent)
		api.POST("/events/:id/collaborators", coordinationHandler.AddCollaborator)
		api.GET("/events/:id/suggestions", coordinationHandler.GetSuggestions)
		api.POST("/events/:id/join", coordinationHandler.HandleCollaboratorJoin)

		api.POST("/events/:id/session", coordinationHandler.StartSession)
		api.PATCH("/events/:id/phase", coordinationHandler.UpdatePhase)
		api.GET("/events/:id/status", coordinationHandler.GetStatus)

		api.POST("/events/:id/subscribe", coordinationHandler.Subscribe)
		api.DELETE("/events/:id/subscribe", coordinationHandler.Unsubscribe)
	}

	// WebSocket notifications (token passed via query or subprotocol by clients)
	router.GET("/ws/events/:id", coordinationHandler.HandleWebSocket)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"uptime":    time.Since(startTime).String(),
		})
	})

	// Readiness endpoint
	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := repoFactory.HealthCheck(ctx); err != nil {
			c.JSON(503, gin.H{
				"status":       "not_ready",
				"timestamp":    time.Now(),
				"dependencies": "unhealthy",
				"error":        err.Error(),
			})
			return
		}

		c.JSON(200, gin.H{
			"status":       "ready",
			"timestamp":    time.Now(),
			"dependencies": "ok",
		})
	})

	// Prometheus metrics endpoint
	if cfg.Monitoring.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		log.Info("Prometheus metrics enabled")
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting CoStream coordinator on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalw("Server failed", "error", err)
	case sig := <-sigChan:
		log.Infow("Received shutdown signal", "signal", sig)
	}

	log.Info("Shutting down CoStream coordinator...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error during server shutdown", "error", err)
		if closeErr := srv.Close(); closeErr != nil {
			log.Errorw("Error force closing server", "error", closeErr)
		}
	} else {
		log.Info("Server shutdown gracefully")
	}

	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error shutting down tracer provider", "error", err)
	}

	if err := repoFactory.Close(); err != nil {
		log.Errorw("Error closing repository factory", "error", err)
	}

	log.Info("CoStream coordinator stopped")
}
