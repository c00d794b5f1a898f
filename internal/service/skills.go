package service

import (
	"context"
	"time"

	"github.com/deppfellow/skillhub/internal/lib/cache"
	"github.com/deppfellow/skillhub/internal/model"
	"github.com/deppfellow/skillhub/internal/query"
	"github.com/deppfellow/skillhub/internal/repository"
)

// SkillService serves the catalogue. Point reads go through the cache and
// every mutation drops the cached entry.
type SkillService struct {
	skills *repository.SkillRepository
	cache  *cache.Cache
	ttl    time.Duration
}

// NewSkillService returns a SkillService. A nil cache disables caching.
func NewSkillService(skills *repository.SkillRepository, c *cache.Cache, ttl time.Duration) *SkillService {
	return &SkillService{skills: skills, cache: c, ttl: ttl}
}

// List returns skills with their holders, one entry per skill.
func (s *SkillService) List(ctx context.Context, spec query.Spec) (*query.Page[model.Skill], error) {
	return s.skills.List(ctx, spec, query.Options{Eager: true, Unique: true})
}

// Get returns the skill with id, from the cache when possible.
func (s *SkillService) Get(ctx context.Context, id int) (*model.Skill, error) {
	return cache.ReadThrough(ctx, s.cache, cache.SkillKey(id), s.ttl, func(ctx context.Context) (*model.Skill, error) {
		return s.skills.GetByID(ctx, id)
	})
}

// Create adds a skill to the catalogue.
func (s *SkillService) Create(ctx context.Context, req *model.CreateSkillRequest) (*model.Skill, error) {
	return s.skills.Create(ctx, []repository.Assignment{
		repository.Set("skill_name", req.SkillName),
		repository.Set("category", string(req.Category)),
	})
}

// Update replaces a skill's name and category.
func (s *SkillService) Update(ctx context.Context, req *model.UpdateSkillRequest) (*model.Skill, error) {
	defer s.cache.Invalidate(ctx, cache.SkillKey(req.SkillID))

	return s.skills.Update(ctx, repository.ByID(req.SkillID), []repository.Assignment{
		repository.Set("skill_name", req.SkillName),
		repository.Set("category", string(req.Category)),
	})
}

// ChangeCategory sets the category of the skill with id.
func (s *SkillService) ChangeCategory(ctx context.Context, id int, category model.Category) (*model.Skill, error) {
	defer s.cache.Invalidate(ctx, cache.SkillKey(id))

	return s.skills.UpdateAttribute(ctx, repository.ByID(id), "category", string(category))
}

// ChangeSkillName renames the skill with id.
func (s *SkillService) ChangeSkillName(ctx context.Context, id int, name string) (*model.Skill, error) {
	defer s.cache.Invalidate(ctx, cache.SkillKey(id))

	return s.skills.UpdateAttribute(ctx, repository.ByID(id), "skill_name", name)
}

// Delete removes the skill with id.
func (s *SkillService) Delete(ctx context.Context, id int) error {
	defer s.cache.Invalidate(ctx, cache.SkillKey(id))

	return s.skills.Delete(ctx, repository.ByID(id))
}
