package model

import (
	"github.com/google/uuid"
)

// UserSkill associates one account with one skill.
// User and Skill are only populated by eager listing.
type UserSkill struct {
	ID                   uuid.UUID  `json:"id"`
	UsersID              uuid.UUID  `json:"users_id"`
	SkillID              int        `json:"skill_id"`
	SkillLevel           SkillLevel `json:"skill_level"`
	SkillYearsExperience int        `json:"skill_years_experience"`
	User                 *User      `json:"user,omitempty"`
	Skill                *Skill     `json:"skill,omitempty"`
	Base
}

// UserSkillKey addresses an association by its business key.
type UserSkillKey struct {
	UserID  string `param:"user_id" json:"-" validate:"required,uuid"`
	SkillID int    `param:"skill_id" json:"-" validate:"required,gt=0"`
}

func (k *UserSkillKey) Validate() error {
	return validate.Struct(k)
}

func (k *UserSkillKey) UserUUID() uuid.UUID {
	return uuid.MustParse(k.UserID)
}

type CreateUserSkillRequest struct {
	UsersID              string     `json:"users_id" validate:"required,uuid"`
	SkillID              int        `json:"skill_id" validate:"required,gt=0"`
	SkillLevel           SkillLevel `json:"skill_level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
	SkillYearsExperience int        `json:"skill_years_experience" validate:"gte=0,lte=70"`
}

func (r *CreateUserSkillRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CreateUserSkillRequest) UserUUID() uuid.UUID {
	return uuid.MustParse(r.UsersID)
}

type UpdateUserSkillRequest struct {
	UserSkillKey
	SkillLevel           SkillLevel `json:"skill_level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
	SkillYearsExperience int        `json:"skill_years_experience" validate:"gte=0,lte=70"`
}

func (r *UpdateUserSkillRequest) Validate() error {
	return validate.Struct(r)
}
