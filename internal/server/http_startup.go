package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resumelens/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// Start starts the HTTP server with all configured components
func (s *Server) Start() error {
	om, err := s.initializeObservability()
	if err != nil {
		return err
	}
	defer s.shutdownObservability(om)

	httpServer, err := s.setupHTTPServer(om)
	if err != nil {
		return err
	}

	if err := s.configureTLS(httpServer); err != nil {
		return err
	}

	if err := s.startKeywordsWatcher(om); err != nil {
		return err
	}

	s.displayServerInfo()

	return s.startWithGracefulShutdown(httpServer)
}

// initializeObservability sets up observability components
func (s *Server) initializeObservability() (*observability.Manager, error) {
	obsConfig := observability.FromConfig(s.AppConfig, s.Version)

	om, err := observability.NewManager(obsConfig, s.AppConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	return om, nil
}

// shutdownObservability handles observability cleanup
func (s *Server) shutdownObservability(om *observability.Manager) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := om.Shutdown(ctx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown observability")
	}
}

// setupHTTPServer creates and configures the HTTP server
func (s *Server) setupHTTPServer(om *observability.Manager) (*http.Server, error) {
	mux := s.setupRoutes(om)
	handler := om.HTTPMiddleware()(mux)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  s.IdleTimeout,
	}, nil
}

// startKeywordsWatcher starts the keywords file watcher when auto-reload
// is configured, hot-swapping the analyzer's matcher on file changes.
func (s *Server) startKeywordsWatcher(om *observability.Manager) error {
	autoReload := s.AppConfig.Matcher.AutoReload
	if !autoReload.Enabled || s.AppConfig.Matcher.KeywordsFile == "" {
		return nil
	}

	reload := func() {
		matcherCfg, err := s.AppConfig.ReloadKeywords()
		metrics := om.GetMetrics()
		if err != nil {
			s.Logger.LogError(err, "Failed to reload keywords file, keeping current matcher")
			metrics.RecordBusinessMetric(context.Background(), "keywords_reloaded", false,
				attribute.String("file", s.AppConfig.Matcher.KeywordsFile))
			return
		}
		s.Analyzer.SetMatcherConfig(matcherCfg)
		s.Logger.Info("Keyword configuration reloaded",
			"file", s.AppConfig.Matcher.KeywordsFile)
		metrics.RecordBusinessMetric(context.Background(), "keywords_reloaded", true,
			attribute.String("file", s.AppConfig.Matcher.KeywordsFile))
	}

	watcher, err := NewKeywordsWatcher(s.AppConfig.Matcher.KeywordsFile, autoReload.DebounceDelay, reload, s.Logger)
	if err != nil {
		return fmt.Errorf("failed to create keywords watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start keywords watcher: %w", err)
	}
	s.KeywordsWatcher = watcher

	return nil
}

// startWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func (s *Server) startWithGracefulShutdown(server *http.Server) error {
	// Channel to receive OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		s.Logger.Info("Starting HTTP server",
			"address", server.Addr,
			"tls_enabled", server.TLSConfig != nil)

		var err error
		if server.TLSConfig != nil {
			err = server.ListenAndServeTLS(s.TLSConfig.CertFile, s.TLSConfig.KeyFile)
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// Wait for either a signal or server error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-quit:
		s.Logger.Info("Received shutdown signal, starting graceful shutdown",
			"signal", sig.String())

		return s.performGracefulShutdown(server)
	}
}

// performGracefulShutdown handles the graceful shutdown process
func (s *Server) performGracefulShutdown(server *http.Server) error {
	// Create a context with timeout for graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop keywords watcher if running
	if err := s.stopKeywordsWatcher(); err != nil {
		s.Logger.LogError(err, "Failed to stop keywords watcher")
	}

	// Clean up rate limiter if enabled
	s.cleanupRateLimiter()

	// Attempt graceful shutdown of HTTP server
	s.Logger.Info("Shutting down HTTP server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown server gracefully, forcing close")
		return server.Close()
	}

	s.Logger.Info("Server shutdown completed successfully")
	return nil
}

// stopKeywordsWatcher stops the keywords watcher if it's running
func (s *Server) stopKeywordsWatcher() error {
	if s.KeywordsWatcher != nil {
		return s.KeywordsWatcher.Stop()
	}
	return nil
}

// cleanupRateLimiter cleans up the rate limiter resources
func (s *Server) cleanupRateLimiter() {
	if s.RateLimiter != nil {
		s.RateLimiter.Close()
		s.Logger.Info("Rate limiter cleaned up")
	}
}
