package httpd

import (
	"context"
	"net/http"

	"github.com/brunomarqs/studycash/internal/auth"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionFromContext returns the session loaded by SessionLoader, or nil
// when the request carried no valid session cookie.
func SessionFromContext(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// SessionLoader decodes the session cookie, if any, and stores the resulting
// session in the request context. An invalid or expired cookie is the same
// as no cookie at all.
func (h *Handler) SessionLoader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.cookieName)
		if err == nil {
			if session := h.tokens.Parse(cookie.Value); session != nil {
				ctx := context.WithValue(r.Context(), sessionContextKey, session)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) RequireProfessor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := SessionFromContext(r.Context())
		if session == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !session.IsProfessor() {
			writeError(w, http.StatusForbidden, "professor access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) RequireStudent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := SessionFromContext(r.Context())
		if session == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !session.IsStudent() {
			writeError(w, http.StatusForbidden, "student access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
