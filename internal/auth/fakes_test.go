package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/thecodedeck/cookie-server/internal/auth"
)

// memCredentialStore is an in-memory CredentialStore for tests.
type memCredentialStore struct {
	mu    sync.Mutex
	users map[string]auth.User // keyed by user id

	failWith error // when set, every call fails with this error
}

func newMemCredentialStore() *memCredentialStore {
	return &memCredentialStore{users: make(map[string]auth.User)}
}

func (m *memCredentialStore) FindByUsername(_ context.Context, username string) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return auth.User{}, m.failWith
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrUserNotFound
}

func (m *memCredentialStore) FindByID(_ context.Context, userID string) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return auth.User{}, m.failWith
	}
	u, ok := m.users[userID]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

func (m *memCredentialStore) Create(_ context.Context, user auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return auth.ErrUsernameTaken
		}
	}
	m.users[user.UserID] = user
	return nil
}

func (m *memCredentialStore) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.users[userID]; !ok {
		return auth.ErrUserNotFound
	}
	delete(m.users, userID)
	return nil
}

// remove deletes a user directly, bypassing the service. Used to simulate a
// user vanishing underneath a live session.
func (m *memCredentialStore) remove(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
}

// memSessionStore is an in-memory SessionStore for tests.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]auth.Session

	failWith error
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]auth.Session)}
}

func (m *memSessionStore) Create(_ context.Context, session auth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *memSessionStore) FindByID(_ context.Context, sessionID string) (auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return auth.Session{}, m.failWith
	}
	s, ok := m.sessions[sessionID]
	if !ok {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	return s, nil
}

func (m *memSessionStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.sessions[sessionID]; !ok {
		return auth.ErrSessionNotFound
	}
	delete(m.sessions, sessionID)
	return nil
}

func (m *memSessionStore) DeleteByUserID(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for id, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

// expire backdates a session's expiry, simulating natural TTL lapse.
func (m *memSessionStore) expire(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return
	}
	s.ExpiresAt = time.Now().Add(-1 * time.Hour)
	m.sessions[sessionID] = s
}

func (m *memSessionStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
