package handler

import (
	"github.com/deppfellow/skillhub/internal/errs"
	"github.com/deppfellow/skillhub/internal/middleware"
	"github.com/deppfellow/skillhub/internal/model"
	"github.com/deppfellow/skillhub/internal/query"
	"github.com/deppfellow/skillhub/internal/server"
	"github.com/deppfellow/skillhub/internal/service"

	"github.com/labstack/echo/v4"
)

// UserSkillHandler serves /v1/user-skill.
type UserSkillHandler struct {
	Handler
	userSkills *service.UserSkillService
}

// NewUserSkillHandler returns a UserSkillHandler.
func NewUserSkillHandler(s *server.Server, userSkills *service.UserSkillService) *UserSkillHandler {
	return &UserSkillHandler{
		Handler:    NewHandler(s),
		userSkills: userSkills,
	}
}

// List pages through every association.
func (h *UserSkillHandler) List(c echo.Context, _ *model.ListRequest) (*query.Page[model.UserSkill], error) {
	spec, err := h.listSpec(c)
	if err != nil {
		return nil, err
	}
	return h.userSkills.List(c.Request().Context(), spec)
}

// ListByUser pages through one account's associations.
func (h *UserSkillHandler) ListByUser(c echo.Context, req *model.ListUserSkillsRequest) (*query.Page[model.UserSkill], error) {
	spec, err := h.listSpec(c)
	if err != nil {
		return nil, err
	}
	return h.userSkills.ListByUser(c.Request().Context(), req.ID(), spec)
}

// Get returns one association.
func (h *UserSkillHandler) Get(c echo.Context, req *model.UserSkillKey) (*model.UserSkill, error) {
	return h.userSkills.Get(c.Request().Context(), req.UserUUID(), req.SkillID)
}

// Create associates a skill with the account named in the body.
func (h *UserSkillHandler) Create(c echo.Context, req *model.CreateUserSkillRequest) (*model.UserSkill, error) {
	caller := middleware.GetUser(c)
	if caller == nil {
		return nil, errs.NewUnauthorizedError(service.MsgNotAuthenticated, true)
	}
	return h.userSkills.Create(c.Request().Context(), caller, req)
}

// Update sets an association's level and experience.
func (h *UserSkillHandler) Update(c echo.Context, req *model.UpdateUserSkillRequest) (*model.UserSkill, error) {
	return h.userSkills.Update(c.Request().Context(), req)
}

// Delete removes an association.
func (h *UserSkillHandler) Delete(c echo.Context, req *model.UserSkillKey) error {
	return h.userSkills.Delete(c.Request().Context(), req.UserUUID(), req.SkillID)
}
