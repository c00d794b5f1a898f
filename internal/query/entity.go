package query

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/deppfellow/skillhub/internal/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Kind decides how a raw filter value is parsed and compared.
type Kind int

const (
	KindText Kind = iota
	KindUUID
	KindInt
	KindBool
	KindTimestamp
	KindEnum
)

// Field registers one column of an entity.
type Field[T any] struct {
	Name string
	Kind Kind
	// Enum lists the accepted values for KindEnum.
	Enum []string
	// Hidden fields are read and written but never filtered or ordered on.
	Hidden bool
	// Ptr returns the scan destination inside item.
	Ptr func(item *T) any
	// Get returns the current value in the same shape Parse produces.
	Get func(item *T) any
}

// Parse converts a raw query-string value into a typed SQL argument.
func (f Field[T]) Parse(raw string) (any, error) {
	var (
		v   any
		err error
	)

	switch f.Kind {
	case KindText:
		v = raw
	case KindUUID:
		var id uuid.UUID
		if id, err = uuid.Parse(raw); err == nil {
			v = id.String()
		}
	case KindInt:
		v, err = strconv.Atoi(raw)
	case KindBool:
		v, err = strconv.ParseBool(raw)
	case KindTimestamp:
		v, err = parseTime(raw)
	case KindEnum:
		if slices.Contains(f.Enum, raw) {
			v = raw
		} else {
			err = fmt.Errorf("must be one of %v", f.Enum)
		}
	}

	if err != nil {
		return nil, errs.NewValidationError(
			fmt.Sprintf("Unprocessable Entity, invalid value '%s' for attribute '%s'", raw, f.Name),
			[]errs.FieldError{{Field: f.Name, Error: err.Error()}},
		)
	}
	return v, nil
}

func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}

// Relation is a related row set joined in during eager listing.
//
// The parent query is aliased "t". Select must evaluate to a JSON document
// per joined row, or NULL when the LEFT JOIN found nothing.
type Relation[T any] struct {
	Name  string
	Table string
	Alias string
	On    string
	// Select is the JSON expression for one related row.
	Select string
	// Many relations fan out, producing one parent row per child.
	Many bool
	// Attach decodes doc into item. doc is nil for unmatched joins.
	Attach func(item *T, doc []byte) error
}

// Entity is the static registry of one table.
type Entity[T any] struct {
	Table string
	// Key is the identity column; it breaks ordering ties and drives de-duplication.
	Key    string
	Fields []Field[T]
	Eager  []Relation[T]

	index map[string]int
}

// NewEntity builds an Entity and indexes its fields by name.
func NewEntity[T any](table, key string, fields []Field[T], eager ...Relation[T]) *Entity[T] {
	e := &Entity[T]{
		Table:  table,
		Key:    key,
		Fields: fields,
		Eager:  eager,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		e.index[f.Name] = i
	}
	if _, ok := e.index[key]; !ok {
		panic(fmt.Sprintf("query: key %q is not a field of %s", key, table))
	}
	return e
}

// Field looks a field up by name.
func (e *Entity[T]) Field(name string) (Field[T], bool) {
	i, ok := e.index[name]
	if !ok {
		return Field[T]{}, false
	}
	return e.Fields[i], true
}

// Columns lists every column, prefixed with alias when it is not empty.
func (e *Entity[T]) Columns(alias string) []string {
	cols := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		cols[i] = qualify(alias, f.Name)
	}
	return cols
}

// Targets lists scan destinations in Columns order.
func (e *Entity[T]) Targets(item *T) []any {
	dest := make([]any, len(e.Fields))
	for i, f := range e.Fields {
		dest[i] = f.Ptr(item)
	}
	return dest
}

// Identity returns the value of the key column.
func (e *Entity[T]) Identity(item *T) any {
	return e.Fields[e.index[e.Key]].Get(item)
}

// Scan reads one row selected with Columns.
func (e *Entity[T]) Scan(row pgx.Row) (*T, error) {
	var item T
	if err := row.Scan(e.Targets(&item)...); err != nil {
		return nil, err
	}
	return &item, nil
}

func qualify(alias, column string) string {
	if alias == "" {
		return column
	}
	return alias + "." + column
}
