package domain

import "time"

// User is an administrable account. Email and username are stored lowercased;
// uniqueness on both is case-insensitive by construction.
type User struct {
	ID        string
	Email     string
	Username  string
	Name      string
	Roles     []string
	CreatedAt time.Time
}

// HasRole reports whether the user holds the named role.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// Credential is the password record owned one-to-one by a User.
// Only the hash is ever persisted.
type Credential struct {
	UserID       string
	PasswordHash string
}
