package memory

import (
	"sync"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

// Store backs both repo ports from one mutex so role deletion cascades into
// user associations the same way the SQL schema does. Used by tests and by
// DB-less dev boot.
type Store struct {
	mu sync.RWMutex

	users       map[string]domain.User       // id -> user
	credentials map[string]domain.Credential // user id -> credential
	byEmail     map[string]string            // email -> user id
	byUsername  map[string]string            // username -> user id
	roles       map[string]domain.Role       // name -> role

	seq int64 // creation ordering tiebreaker
	ord map[string]int64
}

func NewStore() *Store {
	return &Store{
		users:       make(map[string]domain.User),
		credentials: make(map[string]domain.Credential),
		byEmail:     make(map[string]string),
		byUsername:  make(map[string]string),
		roles:       make(map[string]domain.Role),
		ord:         make(map[string]int64),
	}
}

// CredentialHash exposes the stored hash for assertions in tests.
func (s *Store) CredentialHash(userID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.credentials[userID]
	return c.PasswordHash, ok
}

func cloneUser(u domain.User) domain.User {
	roles := make([]string, len(u.Roles))
	copy(roles, u.Roles)
	u.Roles = roles
	return u
}
