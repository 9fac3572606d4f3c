package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hostelhunt/internal/config"
	"hostelhunt/internal/domain"
	"hostelhunt/internal/models"

	"github.com/rs/zerolog"
)

// Services bundles the operations exposed over HTTP.
type Services struct {
	Account  domain.AccountService
	Catalog  domain.CatalogService
	Owner    domain.OwnerService
	Booking  domain.BookingService
	Admin    domain.AdminService
	Sessions domain.SessionStore
	// Checks are pinged by /readyz.
	Checks map[string]domain.Pinger
}

// HTTPServer serves the HTML pages and the JSON API.
type HTTPServer struct {
	cfg      config.APIConfig
	account  domain.AccountService
	catalog  domain.CatalogService
	owner    domain.OwnerService
	booking  domain.BookingService
	admin    domain.AdminService
	sessions domain.SessionStore
	checks   map[string]domain.Pinger
	limiter  *rateLimiter
	pages    *pageRenderer
	logger   *zerolog.Logger
	server   *http.Server
}

func NewHTTPServer(cfg config.APIConfig, svc Services, logger *zerolog.Logger) (*HTTPServer, error) {
	pages, err := newPageRenderer()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	srv := &HTTPServer{
		cfg:      cfg,
		account:  svc.Account,
		catalog:  svc.Catalog,
		owner:    svc.Owner,
		booking:  svc.Booking,
		admin:    svc.Admin,
		sessions: svc.Sessions,
		checks:   svc.Checks,
		pages:    pages,
		logger:   logger,
	}
	srv.limiter = newRateLimiter(&srv.cfg)

	mux := http.NewServeMux()

	// pages
	srv.handle(mux, "/", srv.handleIndexPage)
	srv.handle(mux, "/signup", srv.handleSignUpPage)
	srv.handle(mux, "/login", srv.handleLoginPage)
	srv.handle(mux, "/owner", srv.handleOwnerPage, models.RoleOwner, models.RoleAdmin)
	srv.handle(mux, "/booking", srv.handleBookingPage)
	srv.handle(mux, "/admin", srv.handleAdminPage, models.RoleAdmin)

	// JSON API
	srv.handle(mux, "/api/v1/signup", srv.handleSignUp)
	srv.handle(mux, "/api/v1/login", srv.handleLogin)
	srv.handle(mux, "/api/v1/logout", srv.handleLogout)
	srv.handle(mux, "/api/v1/session", srv.handleSession)
	srv.handle(mux, "/api/v1/hostels", srv.handleHostels)
	srv.handle(mux, "/api/v1/hostels/search", srv.handleSearch)
	srv.handle(mux, "/api/v1/hostels/select", srv.handleSelect)
	srv.handle(mux, "/api/v1/owner/hostels", srv.handleOwnerHostels, models.RoleOwner, models.RoleAdmin)
	srv.handle(mux, "/api/v1/bookings", srv.handleBookings)
	srv.handle(mux, "/api/v1/admin/users", srv.handleAdminUsers, models.RoleAdmin)
	srv.handle(mux, "/api/v1/admin/hostels", srv.handleAdminHostels, models.RoleAdmin)
	srv.handle(mux, "/api/v1/admin/users/delete", srv.handleDeleteUser, models.RoleAdmin)
	srv.handle(mux, "/api/v1/admin/hostels/delete", srv.handleDeleteHostel, models.RoleAdmin)
	srv.handle(mux, "/api/v1/admin/export", srv.handleExport, models.RoleAdmin)

	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.HandleFunc("/readyz", srv.handleReady)

	handler := loggingMiddleware(logger, srv.rateLimitMiddleware(srv.clientMiddleware(mux)))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv, nil
}

// Handler returns the fully wrapped handler.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// degradedReporter is implemented by stores serving from a fallback.
type degradedReporter interface {
	Degraded() bool
}

func (s *HTTPServer) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	failed := map[string]string{}
	degraded := map[string]string{}
	for name, check := range s.checks {
		if err := check.Ping(ctx); err != nil {
			failed[name] = err.Error()
			continue
		}
		if d, ok := check.(degradedReporter); ok && d.Degraded() {
			degraded[name] = "degraded"
		}
	}
	if len(failed) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "failed": failed})
		return
	}
	if len(degraded) > 0 {
		writeJSON(w, http.StatusOK, map[string]any{"status": "degraded", "degraded": degraded})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// fail reports err as JSON, or as a redirect with a notice for HTML forms.
func (s *HTTPServer) fail(w http.ResponseWriter, r *http.Request, err error, page string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("request_id", requestID(r.Context())).Str("path", r.URL.Path).Msg("request failed")
	}

	message := domain.UserMessage(err)
	if isFormRequest(r) {
		redirectNotice(w, r, page, message)
		return
	}
	writeError(w, status, message)
}

// succeed answers with payload as JSON, or redirects HTML forms to page with notice.
func (s *HTTPServer) succeed(w http.ResponseWriter, r *http.Request, status int, payload any, page, notice string) {
	if isFormRequest(r) {
		redirectNotice(w, r, page, notice)
		return
	}
	writeJSON(w, status, payload)
}
