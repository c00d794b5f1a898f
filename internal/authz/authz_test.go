package authz

import (
	"testing"

	"github.com/deppfellow/skillhub/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	moderatorOnly := []model.Role{model.RoleModerator}

	tests := []struct {
		name      string
		role      model.Role
		required  []model.Role
		isSelf    bool
		allowSelf bool
		want      Decision
	}{
		{"base user on own id", model.RoleBaseUser, moderatorOnly, true, true, Decision{true, ReasonSelf}},
		{"base user on other id", model.RoleBaseUser, moderatorOnly, false, true, Decision{false, ReasonDenied}},
		{"moderator on other id", model.RoleModerator, moderatorOnly, false, true, Decision{true, ReasonRole}},
		{"moderator on own id", model.RoleModerator, moderatorOnly, true, true, Decision{true, ReasonRole}},
		{"self without allow", model.RoleBaseUser, moderatorOnly, true, false, Decision{false, ReasonDenied}},
		{"admin not in set", model.RoleAdmin, moderatorOnly, false, false, Decision{false, ReasonDenied}},
		{"empty set self allowed", model.RoleAdmin, nil, true, true, Decision{true, ReasonSelf}},
		{"empty set", model.RoleAdmin, nil, false, true, Decision{false, ReasonDenied}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Decide(tt.role, tt.required, tt.isSelf, tt.allowSelf))
		})
	}
}

func TestRules(t *testing.T) {
	t.Parallel()

	assert.True(t, Admin.Decide(model.RoleAdmin, false).Allowed)
	assert.False(t, Admin.Decide(model.RoleModerator, true).Allowed)

	assert.True(t, Staff.Decide(model.RoleModerator, false).Allowed)
	assert.False(t, Staff.Decide(model.RoleBaseUser, true).Allowed)

	assert.True(t, StaffOrSelf.Decide(model.RoleBaseUser, true).Allowed)
	assert.False(t, StaffOrSelf.Decide(model.RoleBaseUser, false).Allowed)

	assert.True(t, AdminOrSelf.Decide(model.RoleBaseUser, true).Allowed)
	assert.False(t, AdminOrSelf.Decide(model.RoleModerator, false).Allowed)
}
