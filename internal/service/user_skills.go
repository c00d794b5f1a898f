package service

import (
	"context"

	"github.com/deppfellow/skillhub/internal/authz"
	"github.com/deppfellow/skillhub/internal/errs"
	"github.com/deppfellow/skillhub/internal/metrics"
	"github.com/deppfellow/skillhub/internal/model"
	"github.com/deppfellow/skillhub/internal/query"
	"github.com/deppfellow/skillhub/internal/repository"

	"github.com/google/uuid"
)

// UserSkillService manages which accounts hold which skills.
type UserSkillService struct {
	userSkills *repository.UserSkillRepository
}

// NewUserSkillService returns a UserSkillService backed by userSkills.
func NewUserSkillService(userSkills *repository.UserSkillRepository) *UserSkillService {
	return &UserSkillService{userSkills: userSkills}
}

// List returns associations with their account and skill.
func (s *UserSkillService) List(ctx context.Context, spec query.Spec) (*query.Page[model.UserSkill], error) {
	return s.userSkills.List(ctx, spec, query.Options{Eager: true})
}

// ListByUser narrows spec to one account's associations.
func (s *UserSkillService) ListByUser(ctx context.Context, userID uuid.UUID, spec query.Spec) (*query.Page[model.UserSkill], error) {
	spec.Filters = append(spec.Filters, query.Filter{Field: "users_id", Op: query.OpEq, Value: userID.String()})
	return s.userSkills.List(ctx, spec, query.Options{Eager: true})
}

// Get returns the association between userID and skillID.
func (s *UserSkillService) Get(ctx context.Context, userID uuid.UUID, skillID int) (*model.UserSkill, error) {
	return s.userSkills.GetByKey(ctx, userID, skillID)
}

// Create records that the account in the body holds a skill. Only an
// admin or the account itself may do so.
func (s *UserSkillService) Create(ctx context.Context, caller *model.User, req *model.CreateUserSkillRequest) (*model.UserSkill, error) {
	owner := req.UserUUID()

	decision := authz.AdminOrSelf.Decide(caller.Role, caller.ID == owner)
	metrics.RecordAuthorization("user_skills.create", decision.Reason)
	if !decision.Allowed {
		return nil, errs.NewForbiddenError(authz.MessageDenied, true)
	}

	return s.userSkills.Create(ctx, []repository.Assignment{
		repository.Set("users_id", owner.String()),
		repository.Set("skill_id", req.SkillID),
		repository.Set("skill_level", string(req.SkillLevel)),
		repository.Set("skill_years_experience", req.SkillYearsExperience),
	})
}

// Update sets the level and experience of an association.
func (s *UserSkillService) Update(ctx context.Context, req *model.UpdateUserSkillRequest) (*model.UserSkill, error) {
	return s.userSkills.Update(ctx, s.userSkills.Key(req.UserUUID(), req.SkillID), []repository.Assignment{
		repository.Set("skill_level", string(req.SkillLevel)),
		repository.Set("skill_years_experience", req.SkillYearsExperience),
	})
}

// Delete removes the association between userID and skillID.
func (s *UserSkillService) Delete(ctx context.Context, userID uuid.UUID, skillID int) error {
	return s.userSkills.Delete(ctx, s.userSkills.Key(userID, skillID))
}
