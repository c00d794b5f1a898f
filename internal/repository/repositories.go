// Package repository holds the record stores: one generic Store per entity,
// built on the query engine for listing and on keyed lookups for point reads.
package repository

import (
	"github.com/deppfellow/skillhub/internal/database"
)

// Repositories is the container of every store.
type Repositories struct {
	Users      *UserRepository
	Skills     *SkillRepository
	UserSkills *UserSkillRepository
}

// NewRepositories wires every store to db, normally the server's pool.
func NewRepositories(db database.TxBeginner) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Skills:     NewSkillRepository(db),
		UserSkills: NewUserSkillRepository(db),
	}
}
