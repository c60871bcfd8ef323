package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const sessionCookie = "rp_session"

type ctxKey int

const tokenCtxKey ctxKey = iota

// withSession resolves the session cookie to a backend token and stores it in
// the request context. Missing or expired sessions simply leave it absent.
func (h *Handlers) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			token, ok, err := h.Sessions.Token(r.Context(), c.Value)
			if err != nil {
				log.Error().Err(err).Msg("session lookup failed")
			} else if ok {
				r = r.WithContext(context.WithValue(r.Context(), tokenCtxKey, token))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// redirectSession keeps the auth screens for anonymous visitors; an existing
// session lands on the dashboard instead.
func redirectSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tokenFrom(r.Context()) != "" {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireSession gates authenticated views; anything else goes back to /login.
func requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tokenFrom(r.Context()) == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func tokenFrom(ctx context.Context) string {
	if v, ok := ctx.Value(tokenCtxKey).(string); ok {
		return v
	}
	return ""
}

func setSessionCookie(w http.ResponseWriter, sid string, remember bool, rememberTTL time.Duration) {
	c := &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		c.Expires = time.Now().Add(rememberTTL)
	}
	http.SetCookie(w, c)
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
}
