// Package server provides the HTTP server for the application.
// It handles server lifecycle, routes, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailscope/retailscope/consts"
	"github.com/retailscope/retailscope/internal/api/handler"
	"github.com/retailscope/retailscope/internal/api/router"
	"github.com/retailscope/retailscope/internal/config"
	"github.com/retailscope/retailscope/pkg/logger"
)

// HTTP server timeout configuration
const (
	defaultReadTimeout     = 30 * time.Second
	defaultWriteTimeout    = 90 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 30 * time.Second
	defaultStopTimeout     = 5 * time.Second
)

// Server represents the HTTP server
type Server struct {
	cfg        *config.Config
	handler    *handler.ReportHandler
	httpServer *http.Server
	listener   net.Listener
	router     *gin.Engine
	done       chan error
}

// New creates a new server instance
func New(cfg *config.Config, h *handler.ReportHandler) *Server {
	// Set Gin mode based on debug flag
	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	return &Server{
		cfg:     cfg,
		handler: h,
		router:  r,
	}
}

// SetupRoutes configures all routes
func (s *Server) SetupRoutes() {
	router.Setup(s.router, s.handler, s.cfg)
}

// Start binds the listen address and serves in the background.
// Bind errors are returned immediately.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Server.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Server.Address(), err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  orDefault(s.cfg.Server.ReadTimeout, defaultReadTimeout),
		WriteTimeout: orDefault(s.cfg.Server.WriteTimeout, defaultWriteTimeout),
		IdleTimeout:  defaultIdleTimeout,
	}
	s.done = make(chan error, 1)

	consts.SetStartedAt(time.Now())
	logger.Info("Starting HTTP server",
		zap.String("address", ln.Addr().String()),
		zap.Bool("debug", s.cfg.Server.Debug),
	)

	go func() {
		err := s.httpServer.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			logger.Error("HTTP server stopped with error", zap.Error(err))
		}
		s.done <- err
		close(s.done)
	}()

	return nil
}

// Addr returns the bound address, or the configured one before Start
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Server.Address()
}

// WaitForShutdown waits for shutdown signal and gracefully stops the server
// First signal triggers graceful shutdown, second signal forces immediate exit
func (s *Server) WaitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		logger.Info("Received shutdown signal, starting graceful shutdown (press Ctrl+C again to force exit)",
			zap.String("signal", sig.String()))
	case err := <-s.done:
		if err != nil {
			logger.Error("Server exited unexpectedly", zap.Error(err))
		}
		return
	}

	go func() {
		sig, ok := <-quit
		if !ok {
			return
		}
		logger.Warn("Received second shutdown signal, forcing exit",
			zap.String("signal", sig.String()))
		os.Exit(1)
	}()

	ctx, cancel := context.WithTimeout(context.Background(),
		orDefault(s.cfg.Server.ShutdownTimeout, defaultShutdownTimeout))
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	// Serve has returned once done is closed
	for range s.done {
	}
	return nil
}

// Stop stops the server with a short grace period
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultStopTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}

// Router returns the underlying Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
