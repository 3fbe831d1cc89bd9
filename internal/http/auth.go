package httpapi

import (
	"context"
	"net/http"

	"rvce-fee-backend-go/internal/services"
)

type contextKey string

const ctxSession contextKey = "session"

const SessionCookieName = "fee_session"

// WithSession resolves the signed session cookie to a server-side session and
// threads it through the request context. Requests without a valid cookie
// pass through as anonymous; the guards below enforce access.
func WithSession(tokens services.TokenService, sessions *services.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				if sessionID, err := tokens.ParseSessionToken(cookie.Value); err == nil {
					if session, ok := sessions.Get(sessionID); ok {
						ctx := context.WithValue(r.Context(), ctxSession, session)
						r = r.WithContext(ctx)
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func CurrentSession(r *http.Request) (services.Session, bool) {
	session, ok := r.Context().Value(ctxSession).(services.Session)
	return session, ok
}

func CurrentRole(r *http.Request) string {
	session, _ := CurrentSession(r)
	return session.Role
}

func isAuthenticated(r *http.Request) bool {
	return CurrentRole(r) != ""
}

func isAdminOwner(r *http.Request) bool {
	role := CurrentRole(r)
	return role == services.RoleAdmin || role == services.RoleOwner
}

// RequireAdminOwner guards admin/owner pages with a literal 403 body, no
// redirect.
func RequireAdminOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAdminOwner(r) {
			WriteText(w, http.StatusForbidden, "Access Denied. This page is for Admin/Owner only.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(s.Config.SessionTTLSeconds),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
