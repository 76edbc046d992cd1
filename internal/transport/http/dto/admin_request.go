package dto

import (
	"net/url"
	"strings"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
)

// Intent selects which behavior the shared write endpoint performs.
// Parsed into a variant before any branch logic runs.
type Intent string

const (
	IntentCreateUser Intent = "create-user"
	IntentCreateRole Intent = "create-role"
	IntentDeleteRole Intent = "delete-role"
)

// ParseIntent maps the hidden form discriminant to a variant. An absent
// intent means the plain user-creation submit.
func ParseIntent(s string) (Intent, error) {
	switch Intent(strings.TrimSpace(s)) {
	case "", IntentCreateUser:
		return IntentCreateUser, nil
	case IntentCreateRole:
		return IntentCreateRole, nil
	case IntentDeleteRole:
		return IntentDeleteRole, nil
	default:
		return "", domain.ErrInvalidIntent(s)
	}
}

// UserFormSubmission is the raw multiplexed payload of the creation endpoint:
// user fields, role sub-form fields and the intent discriminant in one body.
type UserFormSubmission struct {
	Intent   string    `json:"intent"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	Name     string    `json:"name"`
	Roles    *[]string `json:"roles"`
	RoleName string    `json:"roleName"`
}

// SubmissionFromForm maps posted form values onto the submission shape.
// A wholly absent roles key stays nil so the default can apply; submitted
// but empty checkboxes yield an empty set.
func SubmissionFromForm(v url.Values) UserFormSubmission {
	sub := UserFormSubmission{
		Intent:   v.Get("intent"),
		Email:    v.Get("email"),
		Username: v.Get("username"),
		Password: v.Get("password"),
		Name:     v.Get("name"),
		RoleName: v.Get("roleName"),
	}
	if roles, ok := v["roles"]; ok {
		rs := append([]string(nil), roles...)
		sub.Roles = &rs
	}
	return sub
}

// CreateUserRequest is the validated shape of the create-user variant.
type CreateUserRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Username string   `json:"username" validate:"required,min=3,max=20,username_format"`
	Password string   `json:"password" validate:"required,min=8,password_strength"`
	Name     string   `json:"name" validate:"required"`
	Roles    []string `json:"roles"`
}

// CreateUserFromSubmission normalizes the submission into the create-user
// variant. Roles default to ["user"] when the field was omitted entirely.
func CreateUserFromSubmission(sub UserFormSubmission) CreateUserRequest {
	req := CreateUserRequest{
		Email:    strings.TrimSpace(sub.Email),
		Username: strings.TrimSpace(sub.Username),
		Password: sub.Password,
		Name:     strings.TrimSpace(sub.Name),
		Roles:    []string{domain.RoleUser},
	}
	if sub.Roles != nil {
		req.Roles = append([]string{}, (*sub.Roles)...)
	}
	return req
}

func (r *CreateUserRequest) Validate() error {
	return runValidation(r)
}

// UpdateUserRequest is the edit-form payload; password changes are a
// different surface and have no field here.
type UpdateUserRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Username string   `json:"username" validate:"required,min=3,max=20,username_format"`
	Name     string   `json:"name" validate:"required"`
	Roles    []string `json:"roles"`
}

// UpdateUserFromForm maps the edit form. Unchecking every role box submits
// no roles key and clears the whole association set; no default applies.
func UpdateUserFromForm(v url.Values) UpdateUserRequest {
	return UpdateUserRequest{
		Email:    strings.TrimSpace(v.Get("email")),
		Username: strings.TrimSpace(v.Get("username")),
		Name:     strings.TrimSpace(v.Get("name")),
		Roles:    append([]string{}, v["roles"]...),
	}
}

func (r *UpdateUserRequest) Validate() error {
	if r.Roles == nil {
		r.Roles = []string{}
	}
	return runValidation(r)
}
