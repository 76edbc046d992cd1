package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

type CreateUserInput struct {
	Email    string
	Username string
	Password string
	Name     string
	Roles    []string
}

// CreateUser inserts a new user, its owned credential and its role links.
// Email and username are lowercased here, at the write step; uniqueness is
// pre-checked email first, short-circuiting before the username lookup.
// The store's unique constraints remain the safety net against a concurrent
// duplicate that slips past the pre-check.
func (s *Service) CreateUser(ctx context.Context, actorID string, in CreateUserInput) (domain.User, error) {
	const action = "admin.create_user"

	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.ToLower(strings.TrimSpace(in.Username))

	if err := s.checkEmailFree(ctx, email, ""); err != nil {
		s.auditErr(action, actorID, err)
		return domain.User{}, err
	}
	if err := s.checkUsernameFree(ctx, username, ""); err != nil {
		s.auditErr(action, actorID, err)
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		err = domain.ErrHashFailed(err)
		s.auditErr(action, actorID, err)
		return domain.User{}, err
	}

	u := domain.User{
		ID:       uuid.NewString(),
		Email:    email,
		Username: username,
		Name:     in.Name,
		Roles:    in.Roles,
	}

	created, err := s.users.Create(ctx, u, domain.Credential{
		UserID:       u.ID,
		PasswordHash: hash,
	})
	if err != nil {
		s.auditErr(action, actorID, err)
		return domain.User{}, err
	}

	_ = s.pub.PublishUserCreated(ctx, UserEvent{
		UserID:   created.ID,
		Email:    created.Email,
		Username: created.Username,
		Roles:    created.Roles,
		ActorID:  actorID,
	})

	s.audit(action, map[string]string{
		"actor_id":  actorID,
		"target_id": created.ID,
		"result":    "success",
	})
	return created, nil
}

// checkEmailFree rejects the write when another user already owns the email.
// excludeID is empty for creation and the target's id for edits; the conflict
// message differs between the two flows.
func (s *Service) checkEmailFree(ctx context.Context, email, excludeID string) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID == excludeID && excludeID != "" {
		return nil
	}
	if excludeID == "" {
		return domain.ErrFieldConflict("email", "A user with this email already exists")
	}
	return domain.ErrFieldConflict("email", "This email is already taken")
}

func (s *Service) checkUsernameFree(ctx context.Context, username, excludeID string) error {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID == excludeID && excludeID != "" {
		return nil
	}
	if excludeID == "" {
		return domain.ErrFieldConflict("username", "A user with this username already exists")
	}
	return domain.ErrFieldConflict("username", "This username is already taken")
}

func isNotFound(err error) bool {
	var de *domain.Error
	return errors.As(err, &de) && de.Kind == domain.KindNotFound
}

func (s *Service) auditErr(action, actorID string, err error) {
	s.audit(action, map[string]string{
		"actor_id":   actorID,
		"result":     "error",
		"error_code": domainCode(err),
	})
}
