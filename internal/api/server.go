// Package api exposes the public site endpoints and the admin surface over
// HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tripdesk/internal/config"
	"tripdesk/internal/domain"
	"tripdesk/internal/service"
	"tripdesk/internal/uploads"

	"github.com/rs/zerolog"
)

type Server struct {
	cfg      *config.Config
	svc      *service.Service
	uploads  *uploads.Store
	limiter  domain.RateLimiter
	notifier domain.Notifier
	server   *http.Server
	log      zerolog.Logger
}

func NewServer(cfg *config.Config, svc *service.Service, uploadStore *uploads.Store,
	limiter domain.RateLimiter, notifier domain.Notifier, logger *zerolog.Logger) *Server {

	var log zerolog.Logger
	if logger != nil {
		log = logger.With().Str("component", "http").Logger()
	}

	s := &Server{
		cfg:      cfg,
		svc:      svc,
		uploads:  uploadStore,
		limiter:  limiter,
		notifier: notifier,
		log:      log,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/v1/booking", s.rateLimit(s.handleBooking))
	mux.HandleFunc("/api/v1/content", s.handleContent)
	mux.HandleFunc("/api/v1/contact", s.rateLimit(s.handleContact))
	mux.HandleFunc("/api/v1/analytics/track", s.rateLimit(s.handleTrack))

	mux.HandleFunc("/api/v1/admin/login", s.rateLimit(s.handleLogin))
	mux.HandleFunc("/api/v1/admin/forgot-password", s.rateLimit(s.handleForgotPassword))
	mux.HandleFunc("/api/v1/admin/reset-password", s.rateLimit(s.handleResetPassword))

	mux.HandleFunc("/api/v1/admin/bookings", s.requireAdmin(s.handleAdminBookings))
	mux.HandleFunc("/api/v1/admin/bookings/export", s.requireAdmin(s.handleAdminExport))
	mux.HandleFunc("/api/v1/admin/bookings/", s.requireAdmin(s.handleAdminBooking))
	mux.HandleFunc("/api/v1/admin/content", s.requireAdmin(s.handleAdminContent))
	mux.HandleFunc("/api/v1/admin/analytics/stats", s.requireAdmin(s.handleAdminStats))
	mux.HandleFunc("/api/v1/admin/upload-image", s.requireAdmin(s.handleUploadImage))

	if uploadStore != nil {
		fileServer := http.FileServer(http.Dir(uploadStore.Dir()))
		mux.Handle("/uploads/", http.StripPrefix("/uploads/", fileServer))
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           s.loggingMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return s
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler { return s.server.Handler }

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
