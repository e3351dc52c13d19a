package auth

import (
	"context"

	"github.com/thecodedeck/cookie-server/internal/utils"
)

// SessionInfo adapts a SessionStore to the middleware's SessionFetcher
// interface, translating the store record into the transport-neutral payload
// the guard inspects.
type SessionInfo struct {
	Sessions SessionStore
}

func (si SessionInfo) FindSessionByID(ctx context.Context, id string) (utils.SessionData, error) {
	session, err := si.Sessions.FindByID(ctx, id)
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		SessionID: session.SessionID,
		UserID:    session.UserID,
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
