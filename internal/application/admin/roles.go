package admin

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

// CreateRole inserts a role under its lowercased name. No description is set
// through this path.
func (s *Service) CreateRole(ctx context.Context, actorID, name string) (domain.Role, error) {
	const action = "admin.create_role"

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		err := domain.ErrFieldRequired("roleName", "Role name is required")
		s.auditErr(action, actorID, err)
		return domain.Role{}, err
	}
	// names are comma-aggregated in the user listing
	if strings.Contains(name, ",") {
		err := domain.ErrInvalidFields(map[string][]string{
			"roleName": {"Role name cannot contain commas"},
		})
		s.auditErr(action, actorID, err)
		return domain.Role{}, err
	}

	if _, err := s.roles.GetByName(ctx, name); err == nil {
		err = domain.ErrFieldConflict("roleName", "This role already exists")
		s.auditErr(action, actorID, err)
		return domain.Role{}, err
	} else if !isNotFound(err) {
		s.auditErr(action, actorID, err)
		return domain.Role{}, err
	}

	created, err := s.roles.Create(ctx, domain.Role{
		ID:   uuid.NewString(),
		Name: name,
	})
	if err != nil {
		s.auditErr(action, actorID, err)
		return domain.Role{}, err
	}

	_ = s.pub.PublishRoleCreated(ctx, RoleEvent{Name: created.Name, ActorID: actorID})

	s.audit(action, map[string]string{
		"actor_id": actorID,
		"role":     created.Name,
		"result":   "success",
	})
	return created, nil
}

// DeleteRole removes the role row matching the submitted name verbatim
// (the create path lowercases, this one does not). Reserved roles are
// rejected regardless of the caller; associations held by users go away
// with the row.
func (s *Service) DeleteRole(ctx context.Context, actorID, name string) error {
	const action = "admin.delete_role"

	name = strings.TrimSpace(name)
	if name == "" {
		err := domain.ErrFieldRequired("roleName", "Role name is required")
		s.auditErr(action, actorID, err)
		return err
	}
	if domain.IsReservedRole(name) {
		err := domain.ErrReservedRole()
		s.auditErr(action, actorID, err)
		return err
	}

	if err := s.roles.Delete(ctx, name); err != nil {
		s.auditErr(action, actorID, err)
		return err
	}

	_ = s.pub.PublishRoleDeleted(ctx, RoleEvent{Name: name, ActorID: actorID})

	s.audit(action, map[string]string{
		"actor_id": actorID,
		"role":     name,
		"result":   "success",
	})
	return nil
}
