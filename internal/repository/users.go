package repository

import (
	"context"

	"github.com/deppfellow/skillhub/internal/database"
	"github.com/deppfellow/skillhub/internal/model"
	"github.com/deppfellow/skillhub/internal/query"
)

// UserEntity is the field registry of the users table.
var UserEntity = query.NewEntity("users", "id", []query.Field[model.User]{
	{Name: "id", Kind: query.KindUUID,
		Ptr: func(u *model.User) any { return &u.ID },
		Get: func(u *model.User) any { return u.ID.String() }},
	{Name: "email", Kind: query.KindText,
		Ptr: func(u *model.User) any { return &u.Email },
		Get: func(u *model.User) any { return u.Email }},
	{Name: "username", Kind: query.KindText,
		Ptr: func(u *model.User) any { return &u.Username },
		Get: func(u *model.User) any { return u.Username }},
	{Name: "password", Kind: query.KindText, Hidden: true,
		Ptr: func(u *model.User) any { return &u.Password },
		Get: func(u *model.User) any { return u.Password }},
	{Name: "is_active", Kind: query.KindBool,
		Ptr: func(u *model.User) any { return &u.IsActive },
		Get: func(u *model.User) any { return u.IsActive }},
	{Name: "role", Kind: query.KindEnum, Enum: model.EnumValues(model.Roles),
		Ptr: func(u *model.User) any { return &u.Role },
		Get: func(u *model.User) any { return string(u.Role) }},
	{Name: "created_at", Kind: query.KindTimestamp,
		Ptr: func(u *model.User) any { return &u.CreatedAt },
		Get: func(u *model.User) any { return u.CreatedAt }},
	{Name: "updated_at", Kind: query.KindTimestamp,
		Ptr: func(u *model.User) any { return &u.UpdatedAt },
		Get: func(u *model.User) any { return u.UpdatedAt }},
})

var userConflicts = Conflicts{
	ByConstraint: map[string]string{
		"users_email_key":    "Email already registered",
		"users_username_key": "Username already registered",
	},
	Fallback: "User already registered",
}

// UserRepository stores user accounts.
type UserRepository struct {
	*Store[model.User]
}

// NewUserRepository returns a UserRepository backed by db.
func NewUserRepository(db database.TxBeginner) *UserRepository {
	return &UserRepository{Store: NewStore(db, UserEntity, userConflicts)}
}

// GetByEmail returns the accounts with this email: zero or one in practice.
func (r *UserRepository) GetByEmail(ctx context.Context, email string, unique bool) ([]model.User, error) {
	return r.FindBy(ctx, "email", email, unique)
}
