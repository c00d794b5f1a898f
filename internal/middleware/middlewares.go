package middleware

import (
	"github.com/deppfellow/skillhub/internal/server"
)

// Middlewares groups every middleware component so router setup builds
// them once.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Auth            *AuthMiddleware
	ContextEnhancer *ContextEnhancer
	RateLimit       *RateLimitMiddleware
}

// NewMiddlewares builds every middleware over the shared server.
func NewMiddlewares(s *server.Server, resolver Resolver) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s, resolver),
		ContextEnhancer: NewContextEnhancer(s),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
