package admin

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for users. Only describes WHAT the admin service needs,
not HOW it's stored.
*/
type UserRepo interface {
	// List returns all users with their role names, newest first.
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// Create persists the user, its owned credential and its role links
	// as one transaction.
	Create(ctx context.Context, u domain.User, c domain.Credential) (domain.User, error)

	// Update overwrites the scalar fields and replaces the full role-link
	// set (clear then reconnect) as one transaction. Role names in u.Roles
	// that do not exist as rows are skipped by the store.
	Update(ctx context.Context, u domain.User) (domain.User, error)
}

/*
RoleRepo
--------
Persistence port for roles. Role name is the natural key.
*/
type RoleRepo interface {
	List(ctx context.Context) ([]domain.Role, error)
	GetByName(ctx context.Context, name string) (domain.Role, error)
	Create(ctx context.Context, r domain.Role) (domain.Role, error)
	Delete(ctx context.Context, name string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2. The plaintext never leaves this boundary.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
}

/*
EventPublisher
--------------
Publishes lifecycle events to the message bus so other services can react
(cache invalidation, audit trail, welcome emails). The admin service does
not consume any of these itself.
*/
type EventPublisher interface {
	PublishUserCreated(ctx context.Context, evt UserEvent) error
	PublishUserUpdated(ctx context.Context, evt UserEvent) error
	PublishRoleCreated(ctx context.Context, evt RoleEvent) error
	PublishRoleDeleted(ctx context.Context, evt RoleEvent) error
}

type UserEvent struct {
	UserID   string
	Email    string
	Username string
	Roles    []string
	ActorID  string
}

type RoleEvent struct {
	Name    string
	ActorID string
}
