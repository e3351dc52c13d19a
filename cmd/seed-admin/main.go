// seed-admin creates or promotes an admin user. Sign-up only ever produces
// standard-role accounts, so the first admin has to come from here.
//
// Usage:
//
//	seed-admin -username alice -password secret
package main

import (
	"context"
	"errors"
	"flag"

	"github.com/google/uuid"

	"github.com/thecodedeck/cookie-server/internal/auth"
	"github.com/thecodedeck/cookie-server/internal/config"
	"github.com/thecodedeck/cookie-server/internal/db"
	"github.com/thecodedeck/cookie-server/internal/logger"
)

func main() {
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password (ignored when promoting an existing user)")
	flag.Parse()

	log := logger.New("seed-admin")

	if *username == "" {
		log.Fatal().Msg("-username is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := auth.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate auth tables")
	}

	ctx := context.Background()
	users := auth.NewGormCredentialStore(gdb)

	existing, err := users.FindByUsername(ctx, *username)
	switch {
	case err == nil:
		// Promote in place.
		if err := gdb.WithContext(ctx).Model(&existing).Update("role", auth.RoleAdmin).Error; err != nil {
			log.Fatal().Err(err).Msg("failed to promote user")
		}
		log.Info().Str("username", existing.Username).Msg("existing user promoted to admin")

	case errors.Is(err, auth.ErrUserNotFound):
		if *password == "" {
			log.Fatal().Msg("-password is required when creating a new admin")
		}
		hashed, err := auth.BcryptHasher{}.Hash(*password)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to hash password")
		}
		user := auth.User{
			UserID:         uuid.New().String(),
			Username:       *username,
			HashedPassword: hashed,
			Role:           auth.RoleAdmin,
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatal().Err(err).Msg("failed to create admin user")
		}
		log.Info().Str("username", user.Username).Msg("admin user created")

	default:
		log.Fatal().Err(err).Msg("failed to look up user")
	}
}
