package repository

import (
	"context"
	"encoding/json"

	"github.com/deppfellow/skillhub/internal/database"
	"github.com/deppfellow/skillhub/internal/model"
	"github.com/deppfellow/skillhub/internal/query"

	"github.com/google/uuid"
)

// UserSkillEntity is the field registry of the user_skills table. Eager
// reads join the owning account (without its password) and the skill.
var UserSkillEntity = query.NewEntity("user_skills", "id", []query.Field[model.UserSkill]{
	{Name: "id", Kind: query.KindUUID,
		Ptr: func(us *model.UserSkill) any { return &us.ID },
		Get: func(us *model.UserSkill) any { return us.ID.String() }},
	{Name: "users_id", Kind: query.KindUUID,
		Ptr: func(us *model.UserSkill) any { return &us.UsersID },
		Get: func(us *model.UserSkill) any { return us.UsersID.String() }},
	{Name: "skill_id", Kind: query.KindInt,
		Ptr: func(us *model.UserSkill) any { return &us.SkillID },
		Get: func(us *model.UserSkill) any { return us.SkillID }},
	{Name: "skill_level", Kind: query.KindEnum, Enum: model.EnumValues(model.SkillLevels),
		Ptr: func(us *model.UserSkill) any { return &us.SkillLevel },
		Get: func(us *model.UserSkill) any { return string(us.SkillLevel) }},
	{Name: "skill_years_experience", Kind: query.KindInt,
		Ptr: func(us *model.UserSkill) any { return &us.SkillYearsExperience },
		Get: func(us *model.UserSkill) any { return us.SkillYearsExperience }},
	{Name: "created_at", Kind: query.KindTimestamp,
		Ptr: func(us *model.UserSkill) any { return &us.CreatedAt },
		Get: func(us *model.UserSkill) any { return us.CreatedAt }},
	{Name: "updated_at", Kind: query.KindTimestamp,
		Ptr: func(us *model.UserSkill) any { return &us.UpdatedAt },
		Get: func(us *model.UserSkill) any { return us.UpdatedAt }},
},
	query.Relation[model.UserSkill]{
		Name:   "user",
		Table:  "users",
		Alias:  "owner",
		On:     "owner.id = t.users_id",
		Select: "CASE WHEN owner.id IS NULL THEN NULL ELSE to_jsonb(owner.*) - 'password' END",
		Attach: func(us *model.UserSkill, doc []byte) error {
			if doc == nil {
				return nil
			}
			us.User = &model.User{}
			return json.Unmarshal(doc, us.User)
		},
	},
	query.Relation[model.UserSkill]{
		Name:   "skill",
		Table:  "skills",
		Alias:  "skill",
		On:     "skill.id = t.skill_id",
		Select: "CASE WHEN skill.id IS NULL THEN NULL ELSE to_jsonb(skill.*) END",
		Attach: func(us *model.UserSkill, doc []byte) error {
			if doc == nil {
				return nil
			}
			us.Skill = &model.Skill{}
			return json.Unmarshal(doc, us.Skill)
		},
	},
)

var userSkillConflicts = Conflicts{
	ByConstraint: map[string]string{
		"user_skills_users_id_skill_id_key": "Association already created",
	},
	Fallback: "Association already created",
}

// UserSkillRepository stores the account to skill associations.
type UserSkillRepository struct {
	*Store[model.UserSkill]
}

// NewUserSkillRepository returns a UserSkillRepository backed by db.
func NewUserSkillRepository(db database.TxBeginner) *UserSkillRepository {
	return &UserSkillRepository{Store: NewStore(db, UserSkillEntity, userSkillConflicts)}
}

// Key addresses an association by (users_id, skill_id).
func (r *UserSkillRepository) Key(userID uuid.UUID, skillID int) Key {
	return Key{
		{Column: "users_id", Value: userID},
		{Column: "skill_id", Value: skillID},
	}
}

// GetByKey fetches the association of userID with skillID.
func (r *UserSkillRepository) GetByKey(ctx context.Context, userID uuid.UUID, skillID int) (*model.UserSkill, error) {
	return r.GetBy(ctx, r.Key(userID, skillID))
}
