package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/logger"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

// EnsureSchema creates the tables this service reads and writes. The unique
// indexes here are the actual safety net behind the handlers' uniqueness
// pre-checks. Real deployments run migrations; this keeps a fresh dev
// database usable.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  username TEXT NOT NULL,
  name TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  CONSTRAINT users_email_key UNIQUE (email),
  CONSTRAINT users_username_key UNIQUE (username)
);`,
		`CREATE TABLE IF NOT EXISTS credentials (
  user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
  password_hash TEXT NOT NULL
);`,
		`CREATE TABLE IF NOT EXISTS roles (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NULL,
  CONSTRAINT roles_name_key UNIQUE (name)
);`,
		`CREATE TABLE IF NOT EXISTS user_roles (
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  role_id TEXT NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
  PRIMARY KEY (user_id, role_id)
);`,
	}

	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Seed inserts the reserved roles and a bootstrap admin account so the
// admin gate is passable on a fresh database. Duplicates are ignored,
// restart safe.
func Seed(ctx context.Context, db *sql.DB, hasher SeederHasher, adminEmail, adminPassword string) {
	roles := NewRoleRepo(db)
	users := NewUserRepo(db)

	for _, name := range []string{domain.RoleAdmin, domain.RoleUser} {
		_, err := roles.Create(ctx, domain.Role{ID: uuid.NewString(), Name: name})
		if err != nil && !domain.Is(err, "duplicate_roleName") {
			logger.Logger.Warn().Err(err).Str("role", name).Msg("seed role failed")
		}
	}

	if _, err := users.GetByEmail(ctx, adminEmail); err == nil {
		return
	}

	hash, err := hasher.Hash(adminPassword)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("seed admin hash failed")
		return
	}

	u := domain.User{
		ID:       uuid.NewString(),
		Email:    adminEmail,
		Username: "admin",
		Name:     "Administrator",
		Roles:    []string{domain.RoleAdmin, domain.RoleUser},
	}
	if _, err := users.Create(ctx, u, domain.Credential{UserID: u.ID, PasswordHash: hash}); err != nil {
		// ignore duplicates (restart safe)
		return
	}

	logger.Logger.Info().Str("email", adminEmail).Msg("seeded bootstrap admin")
}
