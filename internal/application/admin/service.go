package admin

import (
	"errors"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

type Service struct {
	users  UserRepo
	roles  RoleRepo
	hasher PasswordHasher
	pub    EventPublisher

	audit func(action string, fields map[string]string)
}

func NewService(users UserRepo, roles RoleRepo, hasher PasswordHasher, pub EventPublisher) *Service {
	return &Service{
		users:  users,
		roles:  roles,
		hasher: hasher,
		pub:    pub,
		audit:  func(string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// domainCode extracts the stable error code for audit fields.
func domainCode(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Code
	}
	return "unknown"
}
