package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/skillhub/internal/database"
	"github.com/deppfellow/skillhub/internal/errs"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
)

// parentAlias names the paged parent subquery in eager reads.
const parentAlias = "t"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Options tune a single Find.
type Options struct {
	// Eager joins every relation in the entity's Eager set.
	Eager bool
	// Unique collapses fan-out rows with the same identity, keeping the
	// first occurrence and merging the related rows into it.
	Unique bool
}

// Engine compiles and runs list queries for one entity.
type Engine[T any] struct {
	entity *Entity[T]
}

// NewEngine returns an Engine over entity's field registry.
func NewEngine[T any](entity *Entity[T]) *Engine[T] {
	return &Engine[T]{entity: entity}
}

func attributeMissing(name string) error {
	return errs.NewValidationError(
		fmt.Sprintf("Unprocessable Entity, attribute '%s' does not exist", name),
		nil,
	)
}

// orderBy resolves the spec ordering. Ties break on the key, ascending.
func (e *Engine[T]) orderBy(spec Spec, alias string) ([]string, error) {
	field, ok := e.entity.Field(spec.OrderField())
	if !ok || field.Hidden {
		return nil, attributeMissing(spec.Ordering)
	}

	direction := "ASC"
	if spec.Descending() {
		direction = "DESC"
	}

	clauses := []string{qualify(alias, field.Name) + " " + direction}
	if field.Name != e.entity.Key {
		clauses = append(clauses, qualify(alias, e.entity.Key)+" ASC")
	}
	return clauses, nil
}

func (e *Engine[T]) where(spec Spec) (sq.And, error) {
	conds := sq.And{}

	for _, f := range spec.Filters {
		field, ok := e.entity.Field(f.Field)
		if !ok || field.Hidden {
			return nil, attributeMissing(f.Field)
		}

		cond, err := condition(field, f)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}

	return conds, nil
}

func condition[T any](field Field[T], f Filter) (sq.Sqlizer, error) {
	col := field.Name

	switch f.Op {
	case OpIsNull:
		isNull, err := Field[T]{Name: field.Name, Kind: KindBool}.Parse(f.Value)
		if err != nil {
			return nil, err
		}
		if isNull.(bool) {
			return sq.Eq{col: nil}, nil
		}
		return sq.NotEq{col: nil}, nil

	case OpIn:
		parts := strings.Split(f.Value, ",")
		values := make([]any, 0, len(parts))
		for _, p := range parts {
			v, err := field.Parse(strings.TrimSpace(p))
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return sq.Eq{col: values}, nil
	}

	if f.Op == OpBare && field.Kind == KindText {
		return sq.ILike{col: "%" + likeEscaper.Replace(f.Value) + "%"}, nil
	}

	v, err := field.Parse(f.Value)
	if err != nil {
		return nil, err
	}

	switch f.Op {
	case OpNe:
		return sq.NotEq{col: v}, nil
	case OpLt:
		return sq.Lt{col: v}, nil
	case OpLte:
		return sq.LtOrEq{col: v}, nil
	case OpGt:
		return sq.Gt{col: v}, nil
	case OpGte:
		return sq.GtOrEq{col: v}, nil
	default:
		return sq.Eq{col: v}, nil
	}
}

// Build compiles spec into a SELECT with dollar placeholders.
//
// Eager reads page the parents in a subquery first, so LIMIT counts parents
// and not fan-out rows.
func (e *Engine[T]) Build(spec Spec, opts Options) (string, []any, error) {
	conds, err := e.where(spec)
	if err != nil {
		return "", nil, err
	}

	eager := opts.Eager && len(e.entity.Eager) > 0

	order, err := e.orderBy(spec, "")
	if err != nil {
		return "", nil, err
	}

	base := sq.Select(e.entity.Columns("")...).
		From(e.entity.Table).
		OrderBy(order...)

	if len(conds) > 0 {
		base = base.Where(conds)
	}

	if !spec.All {
		base = base.Limit(uint64(spec.PageSize)).Offset(uint64(spec.Offset()))
	}

	if !eager {
		return base.PlaceholderFormat(sq.Dollar).ToSql()
	}

	columns := e.entity.Columns(parentAlias)
	for _, rel := range e.entity.Eager {
		columns = append(columns, rel.Select)
	}

	outerOrder, err := e.orderBy(spec, parentAlias)
	if err != nil {
		return "", nil, err
	}

	outer := sq.Select(columns...).FromSelect(base, parentAlias)
	for _, rel := range e.entity.Eager {
		outer = outer.LeftJoin(fmt.Sprintf("%s AS %s ON %s", rel.Table, rel.Alias, rel.On))
		if rel.Many {
			outerOrder = append(outerOrder, rel.Alias+".created_at ASC")
		}
	}

	return outer.OrderBy(outerOrder...).PlaceholderFormat(sq.Dollar).ToSql()
}

// Find runs spec and returns the page.
func (e *Engine[T]) Find(ctx context.Context, db database.DBTX, spec Spec, opts Options) (*Page[T], error) {
	query, args, err := e.Build(spec, opts)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", e.entity.Table)
	}
	defer rows.Close()

	eager := opts.Eager && len(e.entity.Eager) > 0
	founds := make([]T, 0)
	seen := make(map[any]int)

	for rows.Next() {
		var item T
		dest := e.entity.Targets(&item)

		var docs [][]byte
		if eager {
			docs = make([][]byte, len(e.entity.Eager))
			for i := range docs {
				dest = append(dest, &docs[i])
			}
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "scan %s", e.entity.Table)
		}

		target, duplicate := &item, false
		if opts.Unique {
			id := e.entity.Identity(&item)
			if idx, ok := seen[id]; ok {
				target, duplicate = &founds[idx], true
			} else {
				seen[id] = len(founds)
			}
		}

		if eager {
			for i, rel := range e.entity.Eager {
				if duplicate && !rel.Many {
					continue
				}
				if err := rel.Attach(target, docs[i]); err != nil {
					return nil, errors.Wrapf(err, "attach %s.%s", e.entity.Table, rel.Name)
				}
			}
		}

		if !duplicate {
			founds = append(founds, item)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "list %s", e.entity.Table)
	}

	return &Page[T]{
		Founds: founds,
		SearchOptions: SearchOptions{
			Ordering:   spec.Ordering,
			Page:       spec.Page,
			PageSize:   spec.PageSizeValue(),
			TotalCount: len(founds),
		},
	}, nil
}
