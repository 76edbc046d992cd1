package admin

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

// ListUsers returns every user with role names, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetUser loads one user for the edit form. A missing target fails with
// a not-found error before any form is shown.
func (s *Service) GetUser(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return s.users.GetByID(ctx, id)
}

// ListRoles returns all roles for form option lists.
func (s *Service) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}
