package handler

import (
	"github.com/deppfellow/skillhub/internal/middleware"
	"github.com/deppfellow/skillhub/internal/model"
	"github.com/deppfellow/skillhub/internal/server"
	"github.com/deppfellow/skillhub/internal/service"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves /v1/auth.
type AuthHandler struct {
	Handler
	auth *service.AuthService
}

// NewAuthHandler returns an AuthHandler.
func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

// SignUp registers a new account.
func (h *AuthHandler) SignUp(c echo.Context, req *model.SignUpRequest) (*model.User, error) {
	return h.auth.SignUp(c.Request().Context(), req)
}

// SignIn exchanges credentials for a bearer token.
func (h *AuthHandler) SignIn(c echo.Context, req *model.SignInRequest) (*model.SignInResponse, error) {
	return h.auth.SignIn(c.Request().Context(), req)
}

// Me returns the caller resolved by RequireAuth.
func (h *AuthHandler) Me(c echo.Context, _ *model.ListRequest) (*model.User, error) {
	return middleware.GetUser(c), nil
}
