package handler

import (
	"github.com/deppfellow/skillhub/internal/model"
	"github.com/deppfellow/skillhub/internal/query"
	"github.com/deppfellow/skillhub/internal/server"
	"github.com/deppfellow/skillhub/internal/service"

	"github.com/labstack/echo/v4"
)

// SkillHandler serves /v1/skill.
type SkillHandler struct {
	Handler
	skills *service.SkillService
}

// NewSkillHandler returns a SkillHandler.
func NewSkillHandler(s *server.Server, skills *service.SkillService) *SkillHandler {
	return &SkillHandler{
		Handler: NewHandler(s),
		skills:  skills,
	}
}

// List pages through skills using the query string.
func (h *SkillHandler) List(c echo.Context, _ *model.ListRequest) (*query.Page[model.Skill], error) {
	spec, err := h.listSpec(c)
	if err != nil {
		return nil, err
	}
	return h.skills.List(c.Request().Context(), spec)
}

// Get returns one skill.
func (h *SkillHandler) Get(c echo.Context, req *model.SkillIDParam) (*model.Skill, error) {
	return h.skills.Get(c.Request().Context(), req.SkillID)
}

// Create adds a skill.
func (h *SkillHandler) Create(c echo.Context, req *model.CreateSkillRequest) (*model.Skill, error) {
	return h.skills.Create(c.Request().Context(), req)
}

// Update replaces a skill's name and category.
func (h *SkillHandler) Update(c echo.Context, req *model.UpdateSkillRequest) (*model.Skill, error) {
	return h.skills.Update(c.Request().Context(), req)
}

// ChangeCategory sets a skill's category.
func (h *SkillHandler) ChangeCategory(c echo.Context, req *model.ChangeCategoryRequest) (*model.Skill, error) {
	return h.skills.ChangeCategory(c.Request().Context(), req.SkillID, req.Category)
}

// ChangeSkillName renames a skill.
func (h *SkillHandler) ChangeSkillName(c echo.Context, req *model.ChangeSkillNameRequest) (*model.Skill, error) {
	return h.skills.ChangeSkillName(c.Request().Context(), req.SkillID, req.SkillName)
}

// Delete removes a skill.
func (h *SkillHandler) Delete(c echo.Context, req *model.SkillIDParam) error {
	return h.skills.Delete(c.Request().Context(), req.SkillID)
}
