package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/application/admin"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/transport/http/response"
)

// userListRedirect is where the rendering layer navigates after a
// successful create or edit.
const userListRedirect = "/admin/users"

type AdminHandler struct {
	svc *admin.Service
}

func NewAdminHandler(svc *admin.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ListUsers serves the user index: every user with role names, newest first.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	views := make([]dto.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, dto.NewUserView(u))
	}
	response.OK(w, dto.UserListData{Users: views})
}

// NewUserForm serves the role options for the creation form.
func (h *AdminHandler) NewUserForm(w http.ResponseWriter, r *http.Request) {
	roles, err := h.svc.ListRoles(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.UserFormData{Roles: dto.NewRoleViews(roles)})
}

// Submit is the multiplexed write endpoint. The intent discriminant is
// parsed into a variant first; each variant then runs independently.
func (h *AdminHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	intent, err := dto.ParseIntent(sub.Intent)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	switch intent {
	case dto.IntentCreateUser:
		h.createUser(w, r, sub)
	case dto.IntentCreateRole:
		h.createRole(w, r, sub)
	case dto.IntentDeleteRole:
		h.deleteRole(w, r, sub)
	}
}

func (h *AdminHandler) createUser(w http.ResponseWriter, r *http.Request, sub dto.UserFormSubmission) {
	req := dto.CreateUserFromSubmission(sub)
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	created, err := h.svc.CreateUser(r.Context(), actorID, admin.CreateUserInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Roles:    req.Roles,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", created.ID).
		Str("email", created.Email).
		Msg("user_created")

	view := dto.NewUserView(created)
	response.Created(w, dto.SubmitData{
		Result:   "user",
		User:     &view,
		Redirect: userListRedirect,
	})
}

func (h *AdminHandler) createRole(w http.ResponseWriter, r *http.Request, sub dto.UserFormSubmission) {
	actorID, _ := middleware.UserIDFromContext(r.Context())
	created, err := h.svc.CreateRole(r.Context(), actorID, sub.RoleName)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("role", created.Name).
		Msg("role_created")

	response.Created(w, dto.SubmitData{
		Result: "role",
		Role:   &dto.RoleView{Name: created.Name},
	})
}

func (h *AdminHandler) deleteRole(w http.ResponseWriter, r *http.Request, sub dto.UserFormSubmission) {
	actorID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.svc.DeleteRole(r.Context(), actorID, sub.RoleName); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("role", sub.RoleName).
		Msg("role_deleted")

	response.OK(w, dto.SubmitData{Result: "delete-role"})
}

// EditUserForm loads one user plus the role options. A missing target is a
// not-found failure before any form data is returned.
func (h *AdminHandler) EditUserForm(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	roles, err := h.svc.ListRoles(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	view := dto.NewUserView(u)
	response.OK(w, dto.UserFormData{User: &view, Roles: dto.NewRoleViews(roles)})
}

// UpdateUser overwrites the target's profile fields and replaces its role
// set with exactly the submitted names.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateUserRequest
	if response.IsJSON(r) {
		if err := response.DecodeJSON(r, &req); err != nil {
			response.WriteError(w, r, err)
			return
		}
	} else {
		values, err := response.FormValues(r)
		if err != nil {
			response.WriteError(w, r, err)
			return
		}
		req = dto.UpdateUserFromForm(values)
	}

	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	updated, err := h.svc.UpdateUser(r.Context(), actorID, chi.URLParam(r, "id"), admin.UpdateUserInput{
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
		Roles:    req.Roles,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", updated.ID).
		Msg("user_updated")

	view := dto.NewUserView(updated)
	response.OK(w, dto.SubmitData{
		Result:   "user",
		User:     &view,
		Redirect: userListRedirect,
	})
}

func decodeSubmission(r *http.Request) (dto.UserFormSubmission, error) {
	if response.IsJSON(r) {
		var sub dto.UserFormSubmission
		if err := response.DecodeJSON(r, &sub); err != nil {
			return dto.UserFormSubmission{}, err
		}
		return sub, nil
	}

	values, err := response.FormValues(r)
	if err != nil {
		return dto.UserFormSubmission{}, err
	}
	return dto.SubmissionFromForm(values), nil
}
