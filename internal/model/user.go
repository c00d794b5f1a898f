package model

import (
	"github.com/google/uuid"
)

// User is an account. The password hash never leaves the process.
type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Password string    `json:"-"`
	IsActive bool      `json:"is_active"`
	Role     Role      `json:"role"`
	Base
}

// UserIDParam addresses a single account by path parameter.
type UserIDParam struct {
	UserID string `param:"user_id" json:"-" validate:"required,uuid"`
}

func (p *UserIDParam) Validate() error {
	return validate.Struct(p)
}

func (p *UserIDParam) ID() uuid.UUID {
	return uuid.MustParse(p.UserID)
}

// SignUpRequest creates a BASE_USER account.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

func (r *SignUpRequest) Validate() error {
	return validate.Struct(r)
}

// SignInRequest mirrors the list filter syntax for the email lookup.
type SignInRequest struct {
	EmailEq  string `json:"email__eq" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *SignInRequest) Validate() error {
	return validate.Struct(r)
}

// SignInResponse carries the access token and the signed-in account.
type SignInResponse struct {
	AccessToken string `json:"access_token"`
	Expiration  string `json:"expiration"`
	UserInfo    *User  `json:"user_info"`
}

// CreateUserRequest is the administrative create, which may set the role.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
	Role     Role   `json:"role" validate:"omitempty,oneof=BASE_USER MODERATOR ADMIN"`
}

func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	UserIDParam
	Email    *string `json:"email" validate:"omitempty,email"`
	Username *string `json:"username" validate:"omitempty,min=1,max=64"`
	Password *string `json:"password" validate:"omitempty,min=1,max=72"`
}

func (r *UpdateUserRequest) Validate() error {
	return validate.Struct(r)
}

type ChangeRoleRequest struct {
	UserIDParam
	Role Role `param:"role" json:"-" validate:"required,oneof=BASE_USER MODERATOR ADMIN"`
}

func (r *ChangeRoleRequest) Validate() error {
	return validate.Struct(r)
}
