package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"hostelhunt/internal/metrics"
	"hostelhunt/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	clientHeader    = "X-Client-ID"
	requestIDHeader = "X-Request-ID"
	clientCookieTTL = 30 * 24 * time.Hour
)

type ctxKey int

const (
	clientIDKey ctxKey = iota
	requestIDKey
)

// ClientID returns the client identifier resolved by the client middleware.
func ClientID(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey).(string)
	return id
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func loggingMiddleware(logger *zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, reqID))

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		logger.Info().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("dur", time.Since(start)).
			Msg("http request")
	})
}

func (s *HTTPServer) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(s.limiter.rateKey(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientMiddleware resolves the client id from the header or cookie and issues a new one when absent.
func (s *HTTPServer) clientMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(clientHeader))
		if id == "" {
			if c, err := r.Cookie(s.cfg.ClientCookie); err == nil {
				id = strings.TrimSpace(c.Value)
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     s.cfg.ClientCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(clientCookieTTL.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(clientHeader, id)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), clientIDKey, id)))
	})
}

// handle registers a route that counts requests under its pattern
// and, when role enforcement is on, requires one of roles.
func (s *HTTPServer) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc, roles ...models.Role) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		metrics.IncHTTP(pattern)

		if s.cfg.EnforceRoles && len(roles) > 0 {
			session, err := s.sessions.GetSession(r.Context(), ClientID(r.Context()))
			if err != nil {
				s.fail(w, r, err, "/")
				return
			}
			if !session.HasRole(roles...) {
				s.logger.Warn().Str("path", r.URL.Path).Str("client_id", ClientID(r.Context())).Msg("role check failed")
				if isFormRequest(r) || (r.Method == http.MethodGet && !strings.HasPrefix(r.URL.Path, "/api/")) {
					redirectNotice(w, r, "/login", "Please log in with the right account")
					return
				}
				writeError(w, http.StatusForbidden, "permission denied")
				return
			}
		}

		h(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
