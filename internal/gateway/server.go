package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

// userIDHeader identifies the calling user; the gateway validates it and the
// backend trusts it.
const userIDHeader = "X-Sharer-User-Id"

// Server validates incoming requests and rate limits callers before anything
// reaches the backend.
type Server struct {
	cfg     config.GatewayConfig
	client  *Client
	limiter domain.RateLimiter
	logger  *zerolog.Logger
	server  *http.Server
}

func NewServer(cfg config.GatewayConfig, client *Client, limiter domain.RateLimiter, logger *zerolog.Logger) *Server {
	srv := &Server{
		cfg:     cfg,
		client:  client,
		limiter: limiter,
		logger:  logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", srv.validated(nil, validateNewUserBody))
	mux.HandleFunc("PATCH /users/{id}", srv.validated(nil, validateUserPatchBody))
	mux.HandleFunc("GET /users/{id}", srv.forward)
	mux.HandleFunc("GET /users", srv.forward)
	mux.HandleFunc("DELETE /users/{id}", srv.forward)

	mux.HandleFunc("POST /items", srv.withCaller(validateNewItemBody))
	mux.HandleFunc("PATCH /items/{id}", srv.withCaller(nil))
	mux.HandleFunc("GET /items/{id}", srv.withCaller(nil))
	mux.HandleFunc("GET /items", srv.withCaller(validatePaging))
	mux.HandleFunc("GET /items/search", srv.validated(nil, validatePaging))
	mux.HandleFunc("POST /items/{id}/comment", srv.withCaller(validateCommentBody))

	mux.HandleFunc("POST /bookings", srv.withCaller(validateBookingBody))
	mux.HandleFunc("PATCH /bookings/{id}", srv.withCaller(validateApproved))
	mux.HandleFunc("GET /bookings/{id}", srv.withCaller(nil))
	mux.HandleFunc("GET /bookings", srv.withCaller(validateState, validatePaging))
	mux.HandleFunc("GET /bookings/owner", srv.withCaller(validateState, validatePaging))
	mux.HandleFunc("GET /bookings/owner/export", srv.withCaller(validateState, validatePaging))

	mux.HandleFunc("POST /requests", srv.withCaller(validateRequestBody))
	mux.HandleFunc("GET /requests", srv.withCaller(nil))
	mux.HandleFunc("GET /requests/all", srv.withCaller(validatePaging))
	mux.HandleFunc("GET /requests/{id}", srv.withCaller(nil))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           srv.loggingMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Str("backend", s.cfg.ServerURL).Msg("gateway listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the configured handler chain, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

type validator func(r *http.Request) error

// validated runs the header check (optional) and each body/query validator,
// then forwards.
func (s *Server) validated(headerCheck validator, validators ...validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if headerCheck != nil {
			if err := headerCheck(r); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		for _, validate := range validators {
			if validate == nil {
				continue
			}
			if err := validate(r); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		s.client.Forward(w, r)
	}
}

// withCaller requires a valid caller header and applies the per-user rate
// limit before any further validation.
func (s *Server) withCaller(validators ...validator) http.HandlerFunc {
	inner := s.validated(nil, validators...)
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if s.cfg.RateLimit.Requests > 0 {
			window := time.Duration(s.cfg.RateLimit.WindowSeconds) * time.Second
			allowed, err := s.limiter.CheckRateLimit(r.Context(), userID, s.cfg.RateLimit.Requests, window)
			if err != nil {
				s.logger.Error().Err(err).Int64("user_id", userID).Msg("rate limit check failed")
			} else if !allowed {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		}

		inner(w, r)
	}
}

func (s *Server) forward(w http.ResponseWriter, r *http.Request) {
	s.client.Forward(w, r)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("gateway request")
	})
}

func callerID(r *http.Request) (int64, error) {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return 0, fmt.Errorf("X-Sharer-User-Id header is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("X-Sharer-User-Id header is malformed")
	}
	return id, nil
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
