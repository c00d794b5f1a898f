package repository

import (
	"encoding/json"

	"github.com/deppfellow/skillhub/internal/database"
	"github.com/deppfellow/skillhub/internal/model"
	"github.com/deppfellow/skillhub/internal/query"
)

// SkillEntity is the field registry of the skills table. Eager reads join
// every association holding the skill.
var SkillEntity = query.NewEntity("skills", "id", []query.Field[model.Skill]{
	{Name: "id", Kind: query.KindInt,
		Ptr: func(s *model.Skill) any { return &s.ID },
		Get: func(s *model.Skill) any { return s.ID }},
	{Name: "skill_name", Kind: query.KindText,
		Ptr: func(s *model.Skill) any { return &s.SkillName },
		Get: func(s *model.Skill) any { return s.SkillName }},
	{Name: "category", Kind: query.KindEnum, Enum: model.EnumValues(model.Categories),
		Ptr: func(s *model.Skill) any { return &s.Category },
		Get: func(s *model.Skill) any { return string(s.Category) }},
	{Name: "created_at", Kind: query.KindTimestamp,
		Ptr: func(s *model.Skill) any { return &s.CreatedAt },
		Get: func(s *model.Skill) any { return s.CreatedAt }},
	{Name: "updated_at", Kind: query.KindTimestamp,
		Ptr: func(s *model.Skill) any { return &s.UpdatedAt },
		Get: func(s *model.Skill) any { return s.UpdatedAt }},
}, query.Relation[model.Skill]{
	Name:   "holders",
	Table:  "user_skills",
	Alias:  "holders",
	On:     "holders.skill_id = t.id",
	Select: "CASE WHEN holders.id IS NULL THEN NULL ELSE to_jsonb(holders.*) END",
	Many:   true,
	Attach: func(s *model.Skill, doc []byte) error {
		if s.Holders == nil {
			s.Holders = []model.UserSkill{}
		}
		if doc == nil {
			return nil
		}
		var holder model.UserSkill
		if err := json.Unmarshal(doc, &holder); err != nil {
			return err
		}
		s.Holders = append(s.Holders, holder)
		return nil
	},
})

var skillConflicts = Conflicts{
	ByConstraint: map[string]string{
		"skills_skill_name_key": "Skill already registered",
	},
	Fallback: "Skill already registered",
}

// SkillRepository stores skills and reads them with their holders.
type SkillRepository struct {
	*Store[model.Skill]
}

// NewSkillRepository returns a SkillRepository backed by db.
func NewSkillRepository(db database.TxBeginner) *SkillRepository {
	return &SkillRepository{Store: NewStore(db, SkillEntity, skillConflicts)}
}
