package repository

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// Part is one column of a lookup key.
type Part struct {
	Column string
	Value  any
}

// Key addresses rows by one or more columns. A single "id" part is the
// primary key; anything else is a business key that may match several rows.
type Key []Part

// ByID addresses a row by primary key.
func ByID(id any) Key {
	return Key{{Column: "id", Value: id}}
}

func (k Key) where() sq.Eq {
	eq := make(sq.Eq, len(k))
	for _, p := range k {
		eq[p.Column] = arg(p.Value)
	}
	return eq
}

// String renders the key for error details: the bare value for a single
// part, "col=value" pairs otherwise.
func (k Key) String() string {
	if len(k) == 1 {
		return fmt.Sprint(k[0].Value)
	}
	parts := make([]string, len(k))
	for i, p := range k {
		parts[i] = fmt.Sprintf("%s=%v", p.Column, p.Value)
	}
	return strings.Join(parts, ", ")
}

// Assignment sets one column on create or update.
type Assignment struct {
	Column string
	Value  any
}

// Set is shorthand for building an Assignment.
func Set(column string, value any) Assignment {
	return Assignment{Column: column, Value: value}
}

// arg makes a value safe for squirrel predicates, which would otherwise
// expand array types such as uuid.UUID into IN lists.
func arg(v any) any {
	if id, ok := v.(uuid.UUID); ok {
		return id.String()
	}
	return v
}
