package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	authgate "github.com/tokenforge/authgate"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	result, err := s.engine.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, authgate.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	case errors.Is(err, authgate.ErrUserNotFound):
		s.logger.Warn("login rejected, unknown user", zap.String("email", req.Email))
		writeError(w, http.StatusNotFound, "No user exists")
		return
	case errors.Is(err, authgate.ErrInvalidCredentials):
		s.logger.Warn("login rejected, bad credentials", zap.String("email", req.Email))
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	default:
		s.logger.Error("login failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.setRefreshCookie(w, result.Tokens.RefreshToken)

	s.logger.Info("user logged in", zap.String("user_id", result.UserID))
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Login successful",
		"success":     true,
		"accessToken": result.Tokens.AccessToken,
	})
}
