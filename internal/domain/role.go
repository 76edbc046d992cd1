package domain

type Role struct {
	ID          string
	Name        string
	Description string
}

const (
	// RoleAdmin grants access to the admin surface: user and role management.
	RoleAdmin = "admin"
	// RoleUser is the default role pre-selected for new accounts.
	RoleUser = "user"
)

// IsReservedRole reports whether name is a system role that must never be
// deleted. Reserved roles may still be assigned and unassigned freely.
func IsReservedRole(name string) bool {
	return name == RoleAdmin || name == RoleUser
}
