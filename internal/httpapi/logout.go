package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(s.config.CookieName); err == nil {
		token = cookie.Value
	}

	revokeErr := s.engine.Revoke(r.Context(), token)

	// The cookie is cleared regardless: the user's intent to end the
	// session on this device is satisfiable without the ledger.
	s.clearRefreshCookie(w)

	if revokeErr != nil {
		s.logger.Error("logout revocation failed", zap.Error(revokeErr))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Logged out successfully",
		"success": true,
	})
}
