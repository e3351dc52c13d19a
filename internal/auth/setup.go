package auth

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/thecodedeck/cookie-server/internal/db"
)

// Migrate creates the app_auth schema and keeps the user and session tables
// in sync with the models. Idempotent; run on every boot.
func Migrate(gdb *gorm.DB) error {
	if err := db.EnsureSchema(gdb, "app_auth"); err != nil {
		return fmt.Errorf("ensure schema app_auth: %w", err)
	}

	if err := gdb.AutoMigrate(&User{}, &Session{}); err != nil {
		return fmt.Errorf("auto-migrate auth tables: %w", err)
	}

	return nil
}
