package auth

import "time"

const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
)

// User is a registered account. Username carries a store-level unique index
// so two concurrent sign-ups with the same name cannot both succeed; the
// pre-insert lookup in the service is only a fast path for the common case.
type User struct {
	UserID         string `gorm:"primaryKey" json:"user_id"`
	Username       string `gorm:"not null;uniqueIndex" json:"username"`
	Password       string `gorm:"-" json:"password"`
	HashedPassword string `json:"-"`
	Role           string `gorm:"default:'standard'" json:"role"`
}

// Session is the server-side session record. It weakly references its User:
// the user may be deleted while the session row remains, and dereferencing
// operations must treat that as an unauthenticated request.
type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;index" json:"-"`
	Username  string    `json:"-"`
	CreatedAt time.Time `json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"-"`
}

func (User) TableName() string    { return "app_auth.users" }
func (Session) TableName() string { return "app_auth.sessions" }
