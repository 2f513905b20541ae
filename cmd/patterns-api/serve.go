package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/wellcoach/patterns-api/internal/config"
	"github.com/wellcoach/patterns-api/internal/handlers"
	"github.com/wellcoach/patterns-api/internal/logger"
	"github.com/wellcoach/patterns-api/internal/middleware"
	"github.com/wellcoach/patterns-api/internal/patterns"
	"github.com/wellcoach/patterns-api/internal/service"
	"github.com/wellcoach/patterns-api/pkg/supabase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

const shutdownTimeout = 15 * time.Second

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("")
	if err != nil {
		return err
	}

	if port != "" {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Default()
	log.Info("starting patterns api",
		logger.String("env", cfg.Server.Env),
		logger.String("source", cfg.Source.Driver),
	)

	source, err := openSource(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open insight source: %w", err)
	}
	defer source.close()

	loc, err := cfg.Patterns.Location()
	if err != nil {
		return fmt.Errorf("failed to load timezone: %w", err)
	}

	analyzer := patterns.NewAnalyzer(source.repo, patterns.Config{Location: loc})
	patternService := service.NewPatternService(analyzer, service.PatternServiceConfig{
		DefaultDaysBack: cfg.Patterns.DefaultDaysBack,
		MaxDaysBack:     cfg.Patterns.MaxDaysBack,
	})
	patternsHandler := handlers.NewPatternsHandler(patternService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))

	if cfg.Server.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, time.Minute, "api")
		defer limiter.Stop()
		router.Use(limiter.Middleware())
	}

	router.GET("/health", handlers.Health(cfg.Server.Env, source.driver))
	router.NoRoute(handlers.NotFound)

	auth, err := authMiddleware(cfg, source)
	if err != nil {
		return err
	}

	v1 := router.Group("/api/v1")
	v1.Use(auth)
	{
		v1.GET("/patterns", patternsHandler.GetPatterns)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

// authMiddleware verifies Supabase JWTs when a project is configured.
// Without one, development trusts the X-User-ID header.
func authMiddleware(cfg *config.Config, source *insightSource) (gin.HandlerFunc, error) {
	if source.client != nil {
		return middleware.Auth(source.client), nil
	}
	if cfg.Supabase.URL != "" && cfg.Supabase.ServiceKey != "" {
		client := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.Supabase.Timeout)
		return middleware.Auth(client), nil
	}
	if cfg.IsProduction() {
		return nil, fmt.Errorf("supabase must be configured to authenticate requests in production")
	}

	logger.Default().Warn("supabase not configured, trusting the " + middleware.DevUserHeader + " header")
	return middleware.HeaderAuth(), nil
}
