package service

import (
	"context"

	"github.com/deppfellow/skillhub/internal/errs"
	"github.com/deppfellow/skillhub/internal/lib/password"
	"github.com/deppfellow/skillhub/internal/lib/token"
	"github.com/deppfellow/skillhub/internal/model"
	"github.com/deppfellow/skillhub/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Authentication failure messages.
const (
	MsgNotAuthenticated   = "Not authenticated"
	MsgInvalidCredentials = "Could not validate credentials"
	MsgUserNotFound       = "User not found"
	MsgIncorrectPassword  = "Incorrect password"
	MsgIncorrectLogin     = "Incorrect email or password"
	MsgInactiveUser       = "Inactive user"
)

// AuthService registers accounts, signs them in, and resolves bearer tokens.
type AuthService struct {
	users  *repository.UserRepository
	hasher password.Hasher
	tokens *token.Manager
	mailer WelcomeMailer
}

// NewAuthService returns an AuthService. mailer may be nil, in which case no welcome email is queued.
func NewAuthService(users *repository.UserRepository, hasher password.Hasher, tokens *token.Manager, mailer WelcomeMailer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		mailer: mailer,
	}
}

// SignUp registers a BASE_USER account and schedules its welcome email.
// A failed enqueue is logged; the account is created regardless.
func (s *AuthService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error) {
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, []repository.Assignment{
		repository.Set("email", req.Email),
		repository.Set("username", req.Username),
		repository.Set("password", hashed),
		repository.Set("role", string(model.RoleBaseUser)),
	})
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.EnqueueWelcomeEmail(ctx, user.Email, user.Username); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to enqueue welcome email")
		}
	}

	return user, nil
}

// SignIn checks credentials and issues a bearer token.
func (s *AuthService) SignIn(ctx context.Context, req *model.SignInRequest) (*model.SignInResponse, error) {
	found, err := s.users.GetByEmail(ctx, req.EmailEq, true)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, errs.NewUnauthorizedError(MsgIncorrectLogin, true)
	}

	user := found[0]
	if !s.hasher.Verify(req.Password, user.Password) {
		return nil, errs.NewUnauthorizedError(MsgIncorrectPassword, true)
	}
	if !user.IsActive {
		return nil, errs.NewForbiddenError(MsgInactiveUser, true)
	}

	accessToken, expiresAt, err := s.tokens.Issue(user.ID.String(), user.Email, user.Username)
	if err != nil {
		return nil, err
	}

	return &model.SignInResponse{
		AccessToken: accessToken,
		Expiration:  formatExpiration(expiresAt),
		UserInfo:    &user,
	}, nil
}

// Resolve maps a bearer token to the account it was issued for.
func (s *AuthService) Resolve(ctx context.Context, raw string) (*model.User, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, errs.NewUnauthorizedError(MsgInvalidCredentials, true)
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, errs.NewUnauthorizedError(MsgInvalidCredentials, true)
	}

	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, errs.NewNotFoundError("", false, nil)) {
		return nil, errs.NewUnauthorizedError(MsgUserNotFound, true)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
