package utils

import (
	"context"
	"time"
)

// SessionData is the resolved session payload carried on the request context
// once the session middleware has validated the cookie. It weakly references
// the user; handlers that need the full user record re-fetch it.
type SessionData struct {
	SessionID string
	UserID    string
	Username  string
	ExpiresAt time.Time
}

type contextKey string

const ContextSessionKey contextKey = "session"

// WithSession returns a child context carrying the resolved session payload.
func WithSession(ctx context.Context, s SessionData) context.Context {
	return context.WithValue(ctx, ContextSessionKey, s)
}

// GetSessionFromContext returns the resolved session payload, if any.
func GetSessionFromContext(ctx context.Context) (SessionData, bool) {
	s, ok := ctx.Value(ContextSessionKey).(SessionData)
	return s, ok
}
