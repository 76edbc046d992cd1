package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

// ---------- admin.UserRepo ----------

func (s *Store) List(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, cloneUser(u))
	}
	// newest first; the ordinal breaks ties between same-timestamp inserts
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return s.ord[users[i].ID] > s.ord[users[j].ID]
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return cloneUser(u), nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return cloneUser(s.users[id]), nil
}

func (s *Store) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return cloneUser(s.users[id]), nil
}

func (s *Store) Create(ctx context.Context, u domain.User, c domain.Credential) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))

	if _, taken := s.byEmail[u.Email]; taken {
		return domain.User{}, domain.ErrFieldConflict("email", "A user with this email already exists")
	}
	if _, taken := s.byUsername[u.Username]; taken {
		return domain.User{}, domain.ErrFieldConflict("username", "A user with this username already exists")
	}

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.Roles = s.existingRoleNames(u.Roles)

	s.seq++
	s.ord[u.ID] = s.seq
	s.users[u.ID] = cloneUser(u)
	s.credentials[u.ID] = c
	s.byEmail[u.Email] = u.ID
	s.byUsername[u.Username] = u.ID
	return cloneUser(u), nil
}

func (s *Store) Update(ctx context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.users[u.ID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))

	if id, taken := s.byEmail[u.Email]; taken && id != u.ID {
		return domain.User{}, domain.ErrFieldConflict("email", "This email is already taken")
	}
	if id, taken := s.byUsername[u.Username]; taken && id != u.ID {
		return domain.User{}, domain.ErrFieldConflict("username", "This username is already taken")
	}

	delete(s.byEmail, prev.Email)
	delete(s.byUsername, prev.Username)

	u.CreatedAt = prev.CreatedAt
	u.Roles = s.existingRoleNames(u.Roles)

	s.users[u.ID] = cloneUser(u)
	s.byEmail[u.Email] = u.ID
	s.byUsername[u.Username] = u.ID
	return cloneUser(u), nil
}

// existingRoleNames keeps only names with a matching role row, mirroring the
// SQL insert-select link semantics.
func (s *Store) existingRoleNames(names []string) []string {
	kept := []string{}
	for _, n := range names {
		if _, ok := s.roles[n]; ok {
			kept = append(kept, n)
		}
	}
	sort.Strings(kept)
	return kept
}
