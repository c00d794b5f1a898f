// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// requests from handlers, applies the rules of each operation, and calls
// the record stores.
package service

import (
	"context"
	"time"

	"github.com/deppfellow/skillhub/internal/lib/cache"
	"github.com/deppfellow/skillhub/internal/lib/job"
	"github.com/deppfellow/skillhub/internal/lib/password"
	"github.com/deppfellow/skillhub/internal/lib/token"
	"github.com/deppfellow/skillhub/internal/repository"
	"github.com/deppfellow/skillhub/internal/server"
)

// WelcomeMailer schedules the welcome email of a new account.
type WelcomeMailer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, username string) error
}

// Services groups the domain services the handlers call.
type Services struct {
	Auth       *AuthService
	Users      *UserService
	Skills     *SkillService
	UserSkills *UserSkillService
	Job        *job.JobService
}

// NewService builds every service from the shared server dependencies.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	hasher := password.Hasher{}
	tokens := token.NewManager(s.Config.Auth.SecretKey, s.Config.Auth.AccessTokenTTL())
	skillCache := cache.New(s.Redis, s.Logger)

	var mailer WelcomeMailer
	if s.Job != nil {
		mailer = s.Job
	}

	return &Services{
		Auth:       NewAuthService(repos.Users, hasher, tokens, mailer),
		Users:      NewUserService(repos.Users, hasher),
		Skills:     NewSkillService(repos.Skills, skillCache, s.Config.Cache.SkillTTL),
		UserSkills: NewUserSkillService(repos.UserSkills),
		Job:        s.Job,
	}, nil
}

// ExpirationLayout formats token expiry timestamps.
const ExpirationLayout = "2006-01-02T15:04:05"

func formatExpiration(t time.Time) string {
	return t.UTC().Format(ExpirationLayout)
}
