package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/thecodedeck/cookie-server/internal/httputil"
	"github.com/thecodedeck/cookie-server/internal/logger"
	"github.com/thecodedeck/cookie-server/internal/session"
	"github.com/thecodedeck/cookie-server/internal/utils"
)

// SessionFetcher loads the session payload for an opaque session id.
type SessionFetcher interface {
	FindSessionByID(ctx context.Context, id string) (utils.SessionData, error)
}

// SessionResolver verifies the signed session cookie and, when it maps to a
// live non-expired session, attaches the payload to the request context. It
// never rejects: requests without a usable session simply continue without a
// payload, and the gate downstream decides what that means.
func SessionResolver(fetcher SessionFetcher, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			sessionID, err := session.VerifySessionID(cookie.Value, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			data, err := fetcher.FindSessionByID(r.Context(), sessionID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if data.ExpiresAt.Before(time.Now()) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.WithSession(r.Context(), data)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth is the authentication gate. It allows the request through only
// when the resolver attached a session payload with a non-empty user
// reference. Pure predicate: no store access, no side effects on either path.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := utils.GetSessionFromContext(r.Context())
		if !ok || data.UserID == "" {
			httputil.Message(w, http.StatusUnauthorized, "You must be logged in to access this")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CORSMiddleware echoes the origin back only when it is on the allow-list,
// with credentials enabled so the session cookie crosses origins.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods",
					"GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers",
					"Content-Type, Authorization")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger attaches the logger to the request context and emits one
// line per request with method, path, and duration.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := log.WithContext(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
