package httpapi

import "net/http"

// setRefreshCookie scopes the refresh credential to a strict, http-only
// cookie with max-age equal to the credential's nominal lifetime.
func (s *Server) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.engine.RefreshTTL().Seconds()),
		HttpOnly: true,
		Secure:   s.config.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearRefreshCookie expires the cookie with matching attributes. Cookie
// clearing is independent of revocation outcome: the client-side session
// ends even when the ledger write failed.
func (s *Server) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}
