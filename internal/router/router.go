// Package router builds the echo instance: global middleware, the error
// handler, and the /v1 route groups.
package router

import (
	"net/http"

	"github.com/deppfellow/skillhub/internal/authz"
	"github.com/deppfellow/skillhub/internal/handler"
	"github.com/deppfellow/skillhub/internal/middleware"

	"github.com/labstack/echo/v4"
)

// NewRouter registers every route and returns the echo instance.
func NewRouter(m *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	router.Use(
		m.Global.CORS(),
		m.Global.Secure(),
		middleware.RequestID(),
		m.ContextEnhancer.EnhanceContext(),
		middleware.Metrics(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/v1")
	v1.GET("/ping", handler.Handle(handler.Ping, http.StatusOK))

	registerAuthRoutes(v1, m, h)
	registerUserRoutes(v1, m, h)
	registerSkillRoutes(v1, m, h)
	registerUserSkillRoutes(v1, m, h)

	return router
}

// authenticated returns the middleware chain for routes that need a caller.
// EnhanceContext runs again so the request logger carries the caller.
func authenticated(m *middleware.Middlewares, active bool) []echo.MiddlewareFunc {
	chain := []echo.MiddlewareFunc{m.Auth.RequireAuth, m.ContextEnhancer.EnhanceContext()}
	if active {
		chain = append(chain, m.Auth.RequireActive)
	}
	return chain
}

func registerAuthRoutes(v1 *echo.Group, m *middleware.Middlewares, h *handler.Handlers) {
	auth := v1.Group("/auth")

	throttle := m.RateLimit.Auth()
	auth.POST("/sign-up", handler.Handle(h.Auth.SignUp, http.StatusCreated), throttle)
	auth.POST("/sign-in", handler.Handle(h.Auth.SignIn, http.StatusOK), throttle)
	auth.GET("/me", handler.Handle(h.Auth.Me, http.StatusOK), authenticated(m, false)...)
}

func registerUserRoutes(v1 *echo.Group, m *middleware.Middlewares, h *handler.Handlers) {
	users := v1.Group("/user", authenticated(m, true)...)

	users.GET("", handler.Handle(h.Users.List, http.StatusOK))
	users.GET("/:user_id", handler.Handle(h.Users.Get, http.StatusOK))
	users.POST("", handler.Handle(h.Users.Create, http.StatusCreated),
		m.Auth.Authorize(authz.Admin, ""))
	users.PATCH("/:user_id", handler.Handle(h.Users.Update, http.StatusOK),
		m.Auth.Authorize(authz.StaffOrSelf, "user_id"))
	users.PATCH("/:user_id/role/:role", handler.Handle(h.Users.ChangeRole, http.StatusOK),
		m.Auth.Authorize(authz.Admin, ""))
	users.DELETE("/disable/:user_id", handler.Handle(h.Users.Disable, http.StatusOK),
		m.Auth.Authorize(authz.StaffOrSelf, "user_id"))
	users.PATCH("/enable/:user_id", handler.Handle(h.Users.Enable, http.StatusOK),
		m.Auth.Authorize(authz.Staff, ""))
	users.DELETE("/:user_id", handler.Handle(h.Users.Delete, http.StatusOK),
		m.Auth.Authorize(authz.Admin, ""))
}

func registerSkillRoutes(v1 *echo.Group, m *middleware.Middlewares, h *handler.Handlers) {
	skills := v1.Group("/skill")

	skills.GET("", handler.Handle(h.Skills.List, http.StatusOK))
	skills.GET("/:skill_id", handler.Handle(h.Skills.Get, http.StatusOK))

	admin := append(authenticated(m, true), m.Auth.Authorize(authz.Admin, ""))
	skills.POST("", handler.Handle(h.Skills.Create, http.StatusCreated), admin...)
	skills.PUT("/:skill_id", handler.Handle(h.Skills.Update, http.StatusOK), admin...)
	skills.PATCH("/change_category/:skill_id/category/:category",
		handler.Handle(h.Skills.ChangeCategory, http.StatusOK), admin...)
	skills.PATCH("/change_skill_name/:skill_id/skill_name/:skill_name",
		handler.Handle(h.Skills.ChangeSkillName, http.StatusOK), admin...)
	skills.DELETE("/:skill_id", handler.HandleNoContent(h.Skills.Delete, http.StatusNoContent), admin...)
}

func registerUserSkillRoutes(v1 *echo.Group, m *middleware.Middlewares, h *handler.Handlers) {
	userSkills := v1.Group("/user-skill", authenticated(m, true)...)
	staffOrSelf := m.Auth.Authorize(authz.StaffOrSelf, "user_id")

	userSkills.GET("", handler.Handle(h.UserSkills.List, http.StatusOK),
		m.Auth.Authorize(authz.Staff, ""))
	// Ownership of the body's users_id is checked by the service.
	userSkills.POST("", handler.Handle(h.UserSkills.Create, http.StatusCreated))

	userSkills.GET("/user/:user_id", handler.Handle(h.UserSkills.ListByUser, http.StatusOK), staffOrSelf)
	userSkills.GET("/user/:user_id/skill/:skill_id", handler.Handle(h.UserSkills.Get, http.StatusOK), staffOrSelf)
	userSkills.PUT("/user/:user_id/skill/:skill_id", handler.Handle(h.UserSkills.Update, http.StatusOK), staffOrSelf)
	userSkills.DELETE("/user/:user_id/skill/:skill_id",
		handler.HandleNoContent(h.UserSkills.Delete, http.StatusNoContent), staffOrSelf)
}
