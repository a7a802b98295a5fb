package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sobnin/sobnin-backend/pkg/logger"
)

const (
	// SessionCookieName is the cookie carrying the visitor's opaque cart key.
	SessionCookieName = "sobnin_session"

	sessionCookieTTL = 30 * 24 * time.Hour
)

// Session guarantees each visitor carries a session cookie and seeds the
// request context with its value. The key is an opaque identifier; carts are
// looked up by it lazily, so issuing one here creates no database rows.
func Session(secure bool, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ""
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
					key = cookie.Value
				}
			}

			if key == "" {
				key = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    key,
					Path:     "/",
					MaxAge:   int(sessionCookieTTL.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSessionKey(r.Context(), key)
			if logg != nil {
				ctx = logg.WithSessionKey(ctx, key)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
