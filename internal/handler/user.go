package handler

import (
	"github.com/deppfellow/skillhub/internal/model"
	"github.com/deppfellow/skillhub/internal/query"
	"github.com/deppfellow/skillhub/internal/server"
	"github.com/deppfellow/skillhub/internal/service"

	"github.com/labstack/echo/v4"
)

// UserHandler serves /v1/user.
type UserHandler struct {
	Handler
	users *service.UserService
}

// NewUserHandler returns a UserHandler.
func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// List pages through accounts using the query string.
func (h *UserHandler) List(c echo.Context, _ *model.ListRequest) (*query.Page[model.User], error) {
	spec, err := h.listSpec(c)
	if err != nil {
		return nil, err
	}
	return h.users.List(c.Request().Context(), spec)
}

// Get returns one account.
func (h *UserHandler) Get(c echo.Context, req *model.UserIDParam) (*model.User, error) {
	return h.users.Get(c.Request().Context(), req.ID())
}

// Create adds an account on behalf of an administrator.
func (h *UserHandler) Create(c echo.Context, req *model.CreateUserRequest) (*model.User, error) {
	return h.users.Create(c.Request().Context(), req)
}

// Update applies a partial change to an account.
func (h *UserHandler) Update(c echo.Context, req *model.UpdateUserRequest) (*model.User, error) {
	return h.users.Update(c.Request().Context(), req)
}

// ChangeRole sets an account's role.
func (h *UserHandler) ChangeRole(c echo.Context, req *model.ChangeRoleRequest) (*model.User, error) {
	return h.users.ChangeRole(c.Request().Context(), req.ID(), req.Role)
}

// Disable deactivates an account.
func (h *UserHandler) Disable(c echo.Context, req *model.UserIDParam) (*model.Message, error) {
	return h.users.Disable(c.Request().Context(), req.ID())
}

// Enable reactivates an account.
func (h *UserHandler) Enable(c echo.Context, req *model.UserIDParam) (*model.User, error) {
	return h.users.Enable(c.Request().Context(), req.ID())
}

// Delete removes an account.
func (h *UserHandler) Delete(c echo.Context, req *model.UserIDParam) (*model.Message, error) {
	return h.users.Delete(c.Request().Context(), req.ID())
}
