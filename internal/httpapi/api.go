package httpapi

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	authgate "github.com/tokenforge/authgate"
	"github.com/tokenforge/authgate/middleware"
)

// Config tunes the HTTP surface around the engine.
type Config struct {
	// CookieName names the refresh credential cookie. Empty selects
	// "refresh_token".
	CookieName string
	// SecureCookies marks the refresh cookie Secure. On in production.
	SecureCookies bool
}

// Server exposes the token lifecycle over HTTP: register, login, refresh,
// logout, and a gate-protected identity route.
type Server struct {
	engine  *authgate.Engine
	limiter *authgate.LoginLimiter
	logger  *zap.Logger
	config  Config
}

// NewServer wires the handlers. limiter may be nil (no login admission
// gate); logger may be nil (logging disabled).
func NewServer(engine *authgate.Engine, limiter *authgate.LoginLimiter, logger *zap.Logger, cfg Config) *Server {
	if cfg.CookieName == "" {
		cfg.CookieName = "refresh_token"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine:  engine,
		limiter: limiter,
		logger:  logger,
		config:  cfg,
	}
}

// Router returns the fully wired route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/register", http.HandlerFunc(s.handleRegister)).Methods(http.MethodPost)
	r.Handle("/login", s.admitLogin(http.HandlerFunc(s.handleLogin))).Methods(http.MethodPost)
	r.Handle("/refresh", http.HandlerFunc(s.handleRefresh)).Methods(http.MethodPost)
	r.Handle("/logout", http.HandlerFunc(s.handleLogout)).Methods(http.MethodPost)
	r.Handle("/me", middleware.Gate(s.engine)(http.HandlerFunc(s.handleMe))).Methods(http.MethodGet)
	return r
}

// admitLogin applies the fixed-window admission gate in front of login.
// Ledger outages fail open here: the limiter is a precondition, not an
// authentication decision, and login still requires the password.
func (s *Server) admitLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		err := s.limiter.Allow(r.Context(), clientOrigin(r))
		switch {
		case err == nil:
			next.ServeHTTP(w, r)
		case errors.Is(err, authgate.ErrLoginRateLimited):
			s.logger.Warn("login attempt rate limited", zap.String("origin", clientOrigin(r)))
			writeError(w, http.StatusTooManyRequests, "Too many login attempts, please try again after an hour")
		default:
			s.logger.Warn("login limiter unavailable, admitting request", zap.Error(err))
			next.ServeHTTP(w, r)
		}
	})
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return credentialsRequest{}, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"message": message,
		"success": false,
	})
}

// clientOrigin derives the rate-limit key for a request: the first
// X-Forwarded-For hop when present, the remote address otherwise.
func clientOrigin(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
