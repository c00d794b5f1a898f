package service

import (
	"context"

	"github.com/deppfellow/skillhub/internal/lib/password"
	"github.com/deppfellow/skillhub/internal/model"
	"github.com/deppfellow/skillhub/internal/query"
	"github.com/deppfellow/skillhub/internal/repository"

	"github.com/google/uuid"
)

const (
	MsgUserDisabled = "User has been disabled successfully"
	MsgUserDeleted  = "User has been deleted successfully"
)

// UserService manages user accounts.
type UserService struct {
	users  *repository.UserRepository
	hasher password.Hasher
}

// NewUserService returns a UserService that hashes passwords with hasher.
func NewUserService(users *repository.UserRepository, hasher password.Hasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// List pages through accounts.
func (s *UserService) List(ctx context.Context, spec query.Spec) (*query.Page[model.User], error) {
	return s.users.List(ctx, spec, query.Options{})
}

// Get returns the account with id.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create is the administrative create; the role defaults to BASE_USER.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	role := req.Role
	if role == "" {
		role = model.RoleBaseUser
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, []repository.Assignment{
		repository.Set("email", req.Email),
		repository.Set("username", req.Username),
		repository.Set("password", hashed),
		repository.Set("role", string(role)),
	})
}

// Update changes the supplied profile fields. A password equal to the
// current one counts as unchanged.
func (s *UserService) Update(ctx context.Context, req *model.UpdateUserRequest) (*model.User, error) {
	var values []repository.Assignment

	if req.Email != nil {
		values = append(values, repository.Set("email", *req.Email))
	}
	if req.Username != nil {
		values = append(values, repository.Set("username", *req.Username))
	}

	if req.Password != nil {
		current, err := s.users.GetByID(ctx, req.ID())
		if err != nil {
			return nil, err
		}
		if !s.hasher.Verify(*req.Password, current.Password) {
			hashed, err := s.hasher.Hash(*req.Password)
			if err != nil {
				return nil, err
			}
			values = append(values, repository.Set("password", hashed))
		}
	}

	return s.users.Update(ctx, repository.ByID(req.ID()), values)
}

// ChangeRole sets the role of the account with id.
func (s *UserService) ChangeRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error) {
	return s.users.UpdateAttribute(ctx, repository.ByID(id), "role", string(role))
}

// Disable deactivates the account with id.
func (s *UserService) Disable(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	if _, err := s.users.UpdateAttribute(ctx, repository.ByID(id), "is_active", false); err != nil {
		return nil, err
	}
	return &model.Message{Detail: MsgUserDisabled}, nil
}

// Enable reactivates the account with id.
func (s *UserService) Enable(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.UpdateAttribute(ctx, repository.ByID(id), "is_active", true)
}

// Delete removes the account with id and its associations.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	if err := s.users.Delete(ctx, repository.ByID(id)); err != nil {
		return nil, err
	}
	return &model.Message{Detail: MsgUserDeleted}, nil
}
