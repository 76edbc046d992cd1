package dto

import (
	"time"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserView(u domain.User) UserView {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Name:      u.Name,
		Roles:     roles,
		CreatedAt: u.CreatedAt,
	}
}

type RoleView struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func NewRoleViews(roles []domain.Role) []RoleView {
	views := make([]RoleView, 0, len(roles))
	for _, r := range roles {
		views = append(views, RoleView{Name: r.Name, Description: r.Description})
	}
	return views
}

type UserListData struct {
	Users []UserView `json:"users"`
}

// UserFormData feeds the create/edit forms: the role options and, for
// edits, the user being edited.
type UserFormData struct {
	User  *UserView  `json:"user,omitempty"`
	Roles []RoleView `json:"roles"`
}

// SubmitData is the success payload of the multiplexed write endpoint.
// Result discriminates which variant ran ("user", "role", "delete-role")
// so the caller can react without a full page navigation.
type SubmitData struct {
	Result   string    `json:"result"`
	User     *UserView `json:"user,omitempty"`
	Role     *RoleView `json:"role,omitempty"`
	Redirect string    `json:"redirect,omitempty"`
}
