// Package authz decides whether a caller may act on a target.
//
// The rule is an OR: holding a required role, or acting on one's own record
// when the call allows it, is each sufficient on its own.
package authz

import (
	"slices"

	"github.com/deppfellow/skillhub/internal/model"
)

const (
	ReasonRole   = "ROLE"
	ReasonSelf   = "SELF"
	ReasonDenied = "DENIED"
)

// MessageDenied is shown to rejected callers.
const MessageDenied = "Not enough permissions"

// Decision is the outcome of a rule check. Reason is recorded as a metric label.
type Decision struct {
	Allowed bool
	Reason  string
}

// Rule is the requirement attached to one operation.
type Rule struct {
	Roles     []model.Role
	AllowSelf bool
}

// Decide evaluates the rule for a caller. isSelf reports whether the caller
// id equals the target id.
func Decide(role model.Role, required []model.Role, isSelf, allowSelf bool) Decision {
	if slices.Contains(required, role) {
		return Decision{Allowed: true, Reason: ReasonRole}
	}
	if allowSelf && isSelf {
		return Decision{Allowed: true, Reason: ReasonSelf}
	}
	return Decision{Allowed: false, Reason: ReasonDenied}
}

// Decide evaluates r for a caller.
func (r Rule) Decide(role model.Role, isSelf bool) Decision {
	return Decide(role, r.Roles, isSelf, r.AllowSelf)
}

// Common rules.
var (
	Admin       = Rule{Roles: []model.Role{model.RoleAdmin}}
	Staff       = Rule{Roles: []model.Role{model.RoleModerator, model.RoleAdmin}}
	StaffOrSelf = Rule{Roles: []model.Role{model.RoleModerator, model.RoleAdmin}, AllowSelf: true}
	AdminOrSelf = Rule{Roles: []model.Role{model.RoleAdmin}, AllowSelf: true}
)
