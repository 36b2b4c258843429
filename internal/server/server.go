package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/osa911/contactrelay/internal/api/handlers"
	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/server/routes"
	"github.com/osa911/contactrelay/internal/service"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *logging.Logger
	mailer service.Mailer
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, mailer service.Mailer, logger *logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	// Request logging goes through our own logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	return &Server{
		router: gin.New(),
		cfg:    cfg,
		logger: logger,
		mailer: mailer,
	}
}

// Init wires middleware, handlers and routes
func (s *Server) Init() error {
	if s.mailer == nil {
		return fmt.Errorf("%w: no mailer", logging.ErrInvalidConfig)
	}

	if s.cfg.RecipientEmail == "" {
		s.logger.Warn("CONTACT_RECIPIENT_EMAIL is not set, contact submissions will be rejected")
	}

	contactService := service.NewContactService(s.mailer, s.cfg.RecipientEmail, s.cfg.MailTransport)

	routes.SetupGlobalMiddleware(s.router, s.cfg, s.logger)
	routes.Setup(s.router, s.cfg, &routes.Handlers{
		Contact: handlers.NewContactHandler(contactService),
		Health:  handlers.NewHealthHandler(contactService, s.cfg.MailTransport),
	})

	return nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}
