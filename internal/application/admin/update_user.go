package admin

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

type UpdateUserInput struct {
	Email    string
	Username string
	Name     string
	Roles    []string
}

// UpdateUser overwrites the target's profile fields and replaces its entire
// role-association set with exactly in.Roles. Submitting an empty role set
// removes every role; there is no additive-only mode.
func (s *Service) UpdateUser(ctx context.Context, actorID, id string, in UpdateUserInput) (domain.User, error) {
	const action = "admin.update_user"

	id = strings.TrimSpace(id)
	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		s.auditErr(action, actorID, err)
		return domain.User{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.ToLower(strings.TrimSpace(in.Username))

	if err := s.checkEmailFree(ctx, email, target.ID); err != nil {
		s.auditErr(action, actorID, err)
		return domain.User{}, err
	}
	if err := s.checkUsernameFree(ctx, username, target.ID); err != nil {
		s.auditErr(action, actorID, err)
		return domain.User{}, err
	}

	target.Email = email
	target.Username = username
	target.Name = in.Name
	target.Roles = in.Roles

	updated, err := s.users.Update(ctx, target)
	if err != nil {
		s.auditErr(action, actorID, err)
		return domain.User{}, err
	}

	_ = s.pub.PublishUserUpdated(ctx, UserEvent{
		UserID:   updated.ID,
		Email:    updated.Email,
		Username: updated.Username,
		Roles:    updated.Roles,
		ActorID:  actorID,
	})

	s.audit(action, map[string]string{
		"actor_id":  actorID,
		"target_id": updated.ID,
		"result":    "success",
	})
	return updated, nil
}
