package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/Smartstaychur/smartstaychur-website/internal/domain/identity"
	authuc "github.com/Smartstaychur/smartstaychur-website/internal/usecase/auth"
)

// SessionCookie is the session token cookie name.
const SessionCookie = "smartstay_session"

type identityCtxKey struct{}

// SessionMiddleware resolves the caller identity from the session cookie
// and stores it in the request context. Requests without a valid session
// pass through with a nil identity; the guarded handlers reject them.
func SessionMiddleware(auth *authuc.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			caller, err := auth.IdentityFromToken(r.Context(), cookie.Value)
			if err != nil {
				// Expired, tampered or deactivated. Treat as anonymous.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityCtxKey{}, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// callerFromContext returns the resolved identity, or nil for anonymous
// requests.
func callerFromContext(ctx context.Context) *identity.Identity {
	if id, ok := ctx.Value(identityCtxKey{}).(*identity.Identity); ok {
		return id
	}
	return nil
}

// setSessionCookie writes the session token as an HttpOnly cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
