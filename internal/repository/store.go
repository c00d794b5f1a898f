package repository

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/skillhub/internal/database"
	"github.com/deppfellow/skillhub/internal/errs"
	"github.com/deppfellow/skillhub/internal/query"
	"github.com/deppfellow/skillhub/internal/sqlerr"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Conflicts maps unique constraint names to the Duplicated message shown
// to clients. Fallback is used for unknown constraints.
type Conflicts struct {
	ByConstraint map[string]string
	Fallback     string
}

func (c Conflicts) message(constraint string) string {
	if msg, ok := c.ByConstraint[constraint]; ok {
		return msg
	}
	return c.Fallback
}

// Store is the generic record store for one entity.
//
// Mutations read the current row and write inside one transaction, so the
// no-change check and the write see the same snapshot. Uniqueness races are
// left to the database constraints.
type Store[T any] struct {
	db        database.TxBeginner
	entity    *query.Entity[T]
	engine    *query.Engine[T]
	conflicts Conflicts
}

// NewStore returns a Store for entity. conflicts names the message for each unique constraint.
func NewStore[T any](db database.TxBeginner, entity *query.Entity[T], conflicts Conflicts) *Store[T] {
	return &Store[T]{
		db:        db,
		entity:    entity,
		engine:    query.NewEngine(entity),
		conflicts: conflicts,
	}
}

// List runs a paged query.
func (s *Store[T]) List(ctx context.Context, spec query.Spec, opts query.Options) (*query.Page[T], error) {
	return s.engine.Find(ctx, s.db, spec, opts)
}

// GetByID fetches the row with primary key id.
func (s *Store[T]) GetByID(ctx context.Context, id any) (*T, error) {
	return s.get(ctx, s.db, ByID(id), false)
}

// GetBy fetches the first row matching key, ordered by identity. It serves
// call sites whose key is not guaranteed unique.
func (s *Store[T]) GetBy(ctx context.Context, key Key) (*T, error) {
	return s.get(ctx, s.db, key, true)
}

func (s *Store[T]) get(ctx context.Context, db database.DBTX, key Key, notUniquePK bool) (*T, error) {
	b := psql.Select(s.entity.Columns("")...).
		From(s.entity.Table).
		Where(key.where())
	if notUniquePK {
		b = b.OrderBy(s.entity.Key + " ASC").Limit(1)
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build select")
	}

	item, err := s.entity.Scan(db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NewNotFoundError(fmt.Sprintf("id not found: %s", key), true, nil)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", s.entity.Table)
	}
	return item, nil
}

// FindBy returns every row whose column equals value. No match is an empty
// slice, not an error. With unique set, rows repeating an identity are dropped.
func (s *Store[T]) FindBy(ctx context.Context, column string, value any, unique bool) ([]T, error) {
	if _, ok := s.entity.Field(column); !ok {
		return nil, errors.Errorf("find %s: unknown column %q", s.entity.Table, column)
	}

	sql, args, err := psql.Select(s.entity.Columns("")...).
		From(s.entity.Table).
		Where(sq.Eq{column: arg(value)}).
		OrderBy(s.entity.Key + " ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build select")
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "find %s", s.entity.Table)
	}
	defer rows.Close()

	found := make([]T, 0, 1)
	seen := make(map[any]struct{})
	for rows.Next() {
		var item T
		if err := rows.Scan(s.entity.Targets(&item)...); err != nil {
			return nil, errors.Wrapf(err, "scan %s", s.entity.Table)
		}
		if unique {
			id := s.entity.Identity(&item)
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
		}
		found = append(found, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "find %s", s.entity.Table)
	}
	return found, nil
}

// Create inserts a row and returns it with server-assigned columns.
func (s *Store[T]) Create(ctx context.Context, values []Assignment) (*T, error) {
	b := psql.Insert(s.entity.Table).Suffix("RETURNING " + strings.Join(s.entity.Columns(""), ", "))

	cols := make([]string, len(values))
	vals := make([]any, len(values))
	for i, a := range values {
		cols[i], vals[i] = a.Column, a.Value
	}

	sql, args, err := b.Columns(cols...).Values(vals...).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build insert")
	}

	item, err := s.entity.Scan(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, s.translate(err, "create")
	}
	return item, nil
}

// Update applies values to the row at key. Values identical to the stored
// row are rejected with "No changes detected" and nothing is written.
func (s *Store[T]) Update(ctx context.Context, key Key, values []Assignment) (*T, error) {
	var updated *T

	err := database.WithTx(ctx, s.db, func(ctx context.Context, tx database.DBTX) error {
		current, err := s.get(ctx, tx, key, len(key) > 1)
		if err != nil {
			return err
		}

		if s.unchanged(current, values) {
			return errs.NewBadRequestError("No changes detected", true, nil, nil, nil)
		}

		b := psql.Update(s.entity.Table).
			Set("updated_at", sq.Expr("now()")).
			Where(key.where()).
			Suffix("RETURNING " + strings.Join(s.entity.Columns(""), ", "))
		for _, a := range values {
			b = b.Set(a.Column, a.Value)
		}

		sql, args, err := b.ToSql()
		if err != nil {
			return errors.Wrap(err, "build update")
		}

		updated, err = s.entity.Scan(tx.QueryRow(ctx, sql, args...))
		if err != nil {
			return s.translate(err, "update")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateAttribute is Update for a single column.
func (s *Store[T]) UpdateAttribute(ctx context.Context, key Key, column string, value any) (*T, error) {
	if _, ok := s.entity.Field(column); !ok {
		return nil, errors.Errorf("update %s: unknown column %q", s.entity.Table, column)
	}
	return s.Update(ctx, key, []Assignment{Set(column, value)})
}

// Delete removes the row at key.
func (s *Store[T]) Delete(ctx context.Context, key Key) error {
	return database.WithTx(ctx, s.db, func(ctx context.Context, tx database.DBTX) error {
		if _, err := s.get(ctx, tx, key, len(key) > 1); err != nil {
			if errors.Is(err, errs.NewNotFoundError("", false, nil)) {
				return errs.NewNotFoundError(fmt.Sprintf("not found id: %s", key), true, nil)
			}
			return err
		}

		sql, args, err := psql.Delete(s.entity.Table).Where(key.where()).ToSql()
		if err != nil {
			return errors.Wrap(err, "build delete")
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return s.translate(err, "delete")
		}
		return nil
	})
}

func (s *Store[T]) unchanged(current *T, values []Assignment) bool {
	for _, a := range values {
		field, ok := s.entity.Field(a.Column)
		if !ok {
			return false
		}
		if !reflect.DeepEqual(normalize(field.Get(current)), normalize(a.Value)) {
			return false
		}
	}
	return true
}

// normalize folds named string and integer types onto their base kinds so
// an enum value compares equal to its stored string.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	}
	return arg(v)
}

// translate maps uniqueness violations to Duplicated and other constraint
// violations through sqlerr; anything else keeps its stack.
func (s *Store[T]) translate(err error, op string) error {
	if sqlErr, ok := sqlerr.AsError(err); ok {
		if sqlErr.Code == sqlerr.UniqueViolation {
			return errs.NewConflictError(s.conflicts.message(sqlErr.ConstraintName), nil)
		}
		return sqlerr.HandleError(sqlErr)
	}
	return errors.Wrapf(err, "%s %s", op, s.entity.Table)
}
