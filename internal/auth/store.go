package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/thecodedeck/cookie-server/internal/db"
)

// CredentialStore persists user records.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByID(ctx context.Context, userID string) (User, error)
	Create(ctx context.Context, user User) error
	Delete(ctx context.Context, userID string) error
}

// SessionStore persists session records keyed by opaque session id.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	FindByID(ctx context.Context, sessionID string) (Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// GormCredentialStore implements CredentialStore over an injected GORM handle.
type GormCredentialStore struct {
	db *gorm.DB
}

func NewGormCredentialStore(gdb *gorm.DB) *GormCredentialStore {
	return &GormCredentialStore{db: gdb}
}

func (s *GormCredentialStore) FindByUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("find user by username: %w", err)
	}
	return user, nil
}

func (s *GormCredentialStore) FindByID(ctx context.Context, userID string) (User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("find user by id: %w", err)
	}
	return user, nil
}

func (s *GormCredentialStore) Create(ctx context.Context, user User) error {
	err := s.db.WithContext(ctx).Create(&user).Error
	if db.IsUniqueViolation(err) {
		// Lost the race against a concurrent sign-up with the same username.
		return ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormCredentialStore) Delete(ctx context.Context, userID string) error {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&User{})
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// GormSessionStore implements SessionStore over an injected GORM handle.
type GormSessionStore struct {
	db *gorm.DB
}

func NewGormSessionStore(gdb *gorm.DB) *GormSessionStore {
	return &GormSessionStore{db: gdb}
}

func (s *GormSessionStore) Create(ctx context.Context, session Session) error {
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *GormSessionStore) FindByID(ctx context.Context, sessionID string) (Session, error) {
	var session Session
	err := s.db.WithContext(ctx).First(&session, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("find session: %w", err)
	}
	return session, nil
}

func (s *GormSessionStore) Delete(ctx context.Context, sessionID string) error {
	res := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&Session{})
	if res.Error != nil {
		return fmt.Errorf("delete session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *GormSessionStore) DeleteByUserID(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Session{}).Error
	if err != nil {
		return fmt.Errorf("delete sessions for user: %w", err)
	}
	return nil
}
