package httpapi

import (
	"net/http"

	"github.com/tokenforge/authgate/middleware"
)

// handleMe is the protected-route exemplar: it runs only after the gate has
// admitted the request and attached the subject.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"userId":  subject,
	})
}
