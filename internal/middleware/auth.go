package middleware

import (
	"context"
	"strings"

	"github.com/deppfellow/skillhub/internal/authz"
	"github.com/deppfellow/skillhub/internal/errs"
	"github.com/deppfellow/skillhub/internal/metrics"
	"github.com/deppfellow/skillhub/internal/model"
	"github.com/deppfellow/skillhub/internal/server"
	"github.com/deppfellow/skillhub/internal/service"

	"github.com/labstack/echo/v4"
)

// Resolver maps a bearer token to the account it identifies.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*model.User, error)
}

// AuthMiddleware authenticates callers and applies authorization rules.
type AuthMiddleware struct {
	server   *server.Server
	resolver Resolver
}

// NewAuthMiddleware returns an AuthMiddleware that resolves tokens with resolver.
func NewAuthMiddleware(s *server.Server, resolver Resolver) *AuthMiddleware {
	return &AuthMiddleware{
		server:   s,
		resolver: resolver,
	}
}

// RequireAuth resolves the Authorization bearer token and stores the caller
// in the echo context under UserKey, UserIDKey, and UserRoleKey.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return errs.NewUnauthorizedError(service.MsgNotAuthenticated, true)
		}

		user, err := auth.resolver.Resolve(c.Request().Context(), raw)
		if err != nil {
			return err
		}

		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID.String())
		c.Set(UserRoleKey, string(user.Role))

		GetLogger(c).Debug().
			Str("function", "RequireAuth").
			Str("user_id", user.ID.String()).
			Msg("user authenticated successfully")

		return next(c)
	}
}

// RequireActive rejects disabled accounts. It must run after RequireAuth.
func (auth *AuthMiddleware) RequireActive(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := GetUser(c)
		if user == nil {
			return errs.NewUnauthorizedError(service.MsgNotAuthenticated, true)
		}
		if !user.IsActive {
			return errs.NewForbiddenError(service.MsgInactiveUser, true)
		}
		return next(c)
	}
}

// Authorize applies rule to the caller. param names the path parameter
// holding the target account id; it is only read when the rule allows self.
func (auth *AuthMiddleware) Authorize(rule authz.Rule, param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetUser(c)
			if user == nil {
				return errs.NewUnauthorizedError(service.MsgNotAuthenticated, true)
			}

			isSelf := param != "" && strings.EqualFold(c.Param(param), user.ID.String())
			decision := rule.Decide(user.Role, isSelf)
			metrics.RecordAuthorization(c.Path(), decision.Reason)

			if !decision.Allowed {
				return errs.NewForbiddenError(authz.MessageDenied, true)
			}
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
