package model

import "slices"

type Role string

const (
	RoleBaseUser  Role = "BASE_USER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

var Roles = []Role{RoleBaseUser, RoleModerator, RoleAdmin}

func (r Role) Valid() bool {
	return slices.Contains(Roles, r)
}

// Category groups skills in the catalogue.
type Category string

const (
	CategoryBackend   Category = "BACKEND"
	CategoryFrontend  Category = "FRONTEND"
	CategoryDatabase  Category = "DATABASE"
	CategoryDevOps    Category = "DEVOPS"
	CategoryCloud     Category = "CLOUD"
	CategoryMobile    Category = "MOBILE"
	CategoryData      Category = "DATA"
	CategorySoftSkill Category = "SOFT_SKILL"
)

var Categories = []Category{
	CategoryBackend, CategoryFrontend, CategoryDatabase, CategoryDevOps,
	CategoryCloud, CategoryMobile, CategoryData, CategorySoftSkill,
}

func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// SkillLevel is the proficiency recorded on a user-skill association.
type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "BEGINNER"
	SkillLevelIntermediate SkillLevel = "INTERMEDIATE"
	SkillLevelAdvanced     SkillLevel = "ADVANCED"
	SkillLevelExpert       SkillLevel = "EXPERT"
)

var SkillLevels = []SkillLevel{
	SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced, SkillLevelExpert,
}

func (l SkillLevel) Valid() bool {
	return slices.Contains(SkillLevels, l)
}

// EnumValues renders an enum set as strings, in declaration order.
func EnumValues[E ~string](values []E) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
