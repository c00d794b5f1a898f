package handler

import (
	"github.com/deppfellow/skillhub/internal/server"
	"github.com/deppfellow/skillhub/internal/service"
)

// Handlers groups every HTTP handler so router setup receives one value.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Auth       *AuthHandler
	Users      *UserHandler
	Skills     *SkillHandler
	UserSkills *UserSkillHandler
}

// NewHandlers builds every handler over services.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Auth:       NewAuthHandler(s, services.Auth),
		Users:      NewUserHandler(s, services.Users),
		Skills:     NewSkillHandler(s, services.Skills),
		UserSkills: NewUserSkillHandler(s, services.UserSkills),
	}
}
