package model

// Skill is a catalogue entry. Holders is only populated by eager listing.
type Skill struct {
	ID        int         `json:"id"`
	SkillName string      `json:"skill_name"`
	Category  Category    `json:"category"`
	Holders   []UserSkill `json:"holders,omitempty"`
	Base
}

type SkillIDParam struct {
	SkillID int `param:"skill_id" json:"-" validate:"required,gt=0"`
}

func (p *SkillIDParam) Validate() error {
	return validate.Struct(p)
}

// CreateSkillRequest is the body of POST /skill.
type CreateSkillRequest struct {
	SkillName string   `json:"skill_name" validate:"required,max=128"`
	Category  Category `json:"category" validate:"required,oneof=BACKEND FRONTEND DATABASE DEVOPS CLOUD MOBILE DATA SOFT_SKILL"`
}

func (r *CreateSkillRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateSkillRequest struct {
	SkillIDParam
	SkillName string   `json:"skill_name" validate:"required,max=128"`
	Category  Category `json:"category" validate:"required,oneof=BACKEND FRONTEND DATABASE DEVOPS CLOUD MOBILE DATA SOFT_SKILL"`
}

func (r *UpdateSkillRequest) Validate() error {
	return validate.Struct(r)
}

type ChangeCategoryRequest struct {
	SkillIDParam
	Category Category `param:"category" json:"-" validate:"required,oneof=BACKEND FRONTEND DATABASE DEVOPS CLOUD MOBILE DATA SOFT_SKILL"`
}

func (r *ChangeCategoryRequest) Validate() error {
	return validate.Struct(r)
}

type ChangeSkillNameRequest struct {
	SkillIDParam
	SkillName string `param:"skill_name" json:"-" validate:"required,max=128"`
}

func (r *ChangeSkillNameRequest) Validate() error {
	return validate.Struct(r)
}
