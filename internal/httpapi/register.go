package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	authgate "github.com/tokenforge/authgate"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	result, err := s.engine.Register(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, authgate.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	case errors.Is(err, authgate.ErrAccountExists):
		s.logger.Warn("register rejected, account exists", zap.String("email", req.Email))
		writeError(w, http.StatusConflict, "User already exists")
		return
	default:
		s.logger.Error("register failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	s.setRefreshCookie(w, result.Tokens.RefreshToken)

	s.logger.Info("user registered", zap.String("user_id", result.UserID))
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "User created",
		"success":     true,
		"accessToken": result.Tokens.AccessToken,
	})
}
