package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/thecodedeck/cookie-server/internal/logger"
)

// Service orchestrates sign-up, sign-in, logout and privileged deletion over
// the injected collaborators. All state is read-only after construction, so a
// single Service is safe for concurrent use.
type Service struct {
	users    CredentialStore
	sessions SessionStore
	hasher   PasswordHasher
	ttl      time.Duration
	log      *logger.Logger
}

func NewService(users CredentialStore, sessions SessionStore, hasher PasswordHasher, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		ttl:      ttl,
		log:      log,
	}
}

// SessionTTL returns the fixed session lifetime, for cookie expiry.
func (s *Service) SessionTTL() time.Duration {
	return s.ttl
}

// SignUp registers a new standard-role user.
//
// Returns ErrMissingFields, ErrUsernameTaken (from the lookup or from the
// unique index when two sign-ups race), or a wrapped store error.
func (s *Service) SignUp(ctx context.Context, username, password string) error {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return ErrMissingFields
	}

	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return fmt.Errorf("sign-up lookup: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := User{
		UserID:         uuid.New().String(),
		Username:       username,
		HashedPassword: hashed,
		Role:           RoleStandard,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("username", username).Msg("user registered")
	return nil
}

// SignIn verifies the credentials and establishes a fresh session.
//
// An unknown username and a wrong password both return ErrInvalidCredentials;
// callers surface the two identically so responses cannot be used to probe
// which usernames exist.
func (s *Service) SignIn(ctx context.Context, username, password string) (Session, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("sign-in lookup: %w", err)
	}

	if !s.hasher.Compare(user.HashedPassword, password) {
		return Session{}, ErrInvalidCredentials
	}

	now := time.Now()
	session := Session{
		SessionID: uuid.New().String(),
		UserID:    user.UserID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return Session{}, err
	}

	s.log.Info().Str("username", username).Msg("user signed in")
	return session, nil
}

// Logout destroys the session record. The cookie becomes useless once the
// store no longer recognises the id.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	return nil
}

// DeleteUser removes the target user on behalf of an admin actor.
//
// The role check is a fresh read of the acting user, layered on top of the
// session check the caller already passed: authentication proved who the
// actor is, this proves what they may do. An actor whose own record is gone
// gets ErrSessionInvalid and is treated as unauthenticated.
//
// The target's sessions are invalidated eagerly so a deleted user's cookies
// stop working immediately instead of lingering until TTL expiry.
func (s *Service) DeleteUser(ctx context.Context, actorUserID, targetID string) error {
	actor, err := s.users.FindByID(ctx, actorUserID)
	if errors.Is(err, ErrUserNotFound) {
		return ErrSessionInvalid
	}
	if err != nil {
		return fmt.Errorf("resolve acting user: %w", err)
	}

	if actor.Role != RoleAdmin {
		return ErrNotAdmin
	}

	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("resolve target user: %w", err)
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}
	if err := s.sessions.DeleteByUserID(ctx, targetID); err != nil {
		// The user row is already gone; stale sessions fail the dereference
		// check anyway, so log and carry on.
		s.log.Err(err).Str("user_id", targetID).Msg("failed to invalidate sessions of deleted user")
	}

	s.log.Info().Str("actor", actor.Username).Str("target_id", targetID).Msg("user deleted")
	return nil
}

// CurrentUser resolves a session's user reference to the full record.
// ErrSessionInvalid means the user was deleted out from under the session.
func (s *Service) CurrentUser(ctx context.Context, userID string) (User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return User{}, ErrSessionInvalid
	}
	if err != nil {
		return User{}, fmt.Errorf("resolve session user: %w", err)
	}
	return user, nil
}

// normalizeUsername puts the identity into NFC so visually identical
// usernames compare equal regardless of how the client composed them.
func normalizeUsername(username string) string {
	return norm.NFC.String(username)
}
