package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	authgate "github.com/tokenforge/authgate"
)

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(s.config.CookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "Refresh token is required")
		return
	}

	access, err := s.engine.Refresh(r.Context(), cookie.Value)
	if err != nil {
		s.logger.Warn("refresh rejected", zap.Error(err))
		// The ledger-unreachable case lands here too: refresh fails
		// closed rather than skipping the revocation check.
		switch {
		case errors.Is(err, authgate.ErrTokenRevoked):
			writeError(w, http.StatusForbidden, "Token has been revoked")
		case errors.Is(err, authgate.ErrTokenExpired):
			writeError(w, http.StatusForbidden, "Refresh token expired")
		default:
			writeError(w, http.StatusForbidden, "Invalid refresh token")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"accessToken": access,
	})
}
