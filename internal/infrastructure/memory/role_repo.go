package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

// ---------- admin.RoleRepo ----------

func (s *Store) ListRoles(ctx context.Context) ([]domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roles := make([]domain.Role, 0, len(s.roles))
	for _, r := range s.roles {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}

func (s *Store) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.roles[strings.TrimSpace(name)]
	if !ok {
		return domain.Role{}, domain.ErrRoleNotFound()
	}
	return r, nil
}

func (s *Store) CreateRole(ctx context.Context, r domain.Role) (domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.roles[r.Name]; taken {
		return domain.Role{}, domain.ErrFieldConflict("roleName", "This role already exists")
	}
	s.roles[r.Name] = r
	return r, nil
}

// DeleteRole removes the role and cascades into every user's association set.
func (s *Store) DeleteRole(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[name]; !ok {
		return domain.ErrRoleNotFound()
	}
	delete(s.roles, name)

	for id, u := range s.users {
		kept := u.Roles[:0]
		for _, n := range u.Roles {
			if n != name {
				kept = append(kept, n)
			}
		}
		u.Roles = kept
		s.users[id] = u
	}
	return nil
}

// RoleRepoAdapter exposes the store under the admin.RoleRepo method set
// (the user methods live directly on Store).
type RoleRepoAdapter struct{ *Store }

func (a RoleRepoAdapter) List(ctx context.Context) ([]domain.Role, error) {
	return a.ListRoles(ctx)
}

func (a RoleRepoAdapter) GetByName(ctx context.Context, name string) (domain.Role, error) {
	return a.GetRoleByName(ctx, name)
}

func (a RoleRepoAdapter) Create(ctx context.Context, r domain.Role) (domain.Role, error) {
	return a.CreateRole(ctx, r)
}

func (a RoleRepoAdapter) Delete(ctx context.Context, name string) error {
	return a.DeleteRole(ctx, name)
}
