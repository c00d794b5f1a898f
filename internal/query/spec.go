// Package query turns list requests into paged reads.
//
// A Spec is the entity-agnostic description of a list request (ordering,
// paging, filters). An Engine resolves a Spec against a static per-entity
// field registry and compiles it into SQL; names outside the registry are
// rejected instead of being looked up dynamically.
package query

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/deppfellow/skillhub/internal/errs"
)

// PageSizeAll disables pagination.
const PageSizeAll = "all"

// Op is a filter comparison, written as a "__op" suffix on the field name.
type Op string

const (
	OpBare   Op = ""
	OpEq     Op = "eq"
	OpNe     Op = "ne"
	OpLt     Op = "lt"
	OpLte    Op = "lte"
	OpGt     Op = "gt"
	OpGte    Op = "gte"
	OpIn     Op = "in"
	OpIsNull Op = "isnull"
)

var ops = []Op{OpEq, OpNe, OpLt, OpLte, OpGt, OpGte, OpIn, OpIsNull}

const opSeparator = "__"

var reserved = []string{"ordering", "page", "page_size"}

// Filter is one "field__op=value" condition. Filters are ANDed.
type Filter struct {
	Field string
	Op    Op
	Value string
}

// Defaults supplies values for parameters the caller omitted.
type Defaults struct {
	Ordering string
	Page     int
	PageSize int
}

// Spec describes a single list query.
type Spec struct {
	// Ordering is a field name, descending when prefixed with "-".
	Ordering string
	Page     int
	PageSize int
	// All is set when page_size was "all"; PageSize is then ignored.
	All     bool
	Filters []Filter
}

// New builds a validated Spec. pageSize is a non-negative integer or "all".
func New(ordering string, page int, pageSize string, filters ...Filter) (Spec, error) {
	if page <= 0 {
		return Spec{}, errs.NewValidationError("Page must be a positive integer", []errs.FieldError{
			{Field: "page", Error: "must be greater than 0"},
		})
	}

	spec := Spec{
		Ordering: ordering,
		Page:     page,
		Filters:  filters,
	}

	size, err := strconv.Atoi(pageSize)
	switch {
	case err != nil && pageSize == PageSizeAll:
		spec.All = true
	case err != nil:
		return Spec{}, errs.NewValidationError("Page size must be 'all' or a positive integer", []errs.FieldError{
			{Field: "page_size", Error: "must be 'all' or a positive integer"},
		})
	case size < 0:
		return Spec{}, errs.NewValidationError("Page size must be a positive integer", []errs.FieldError{
			{Field: "page_size", Error: "must be a positive integer"},
		})
	default:
		spec.PageSize = size
	}

	// Offset must not overflow int.
	if !spec.All && spec.PageSize > 0 && page-1 > math.MaxInt/spec.PageSize {
		return Spec{}, errs.NewValidationError("Page is out of range", []errs.FieldError{
			{Field: "page", Error: "too large for the page size"},
		})
	}

	return spec, nil
}

// FromValues reads a Spec from URL query parameters.
//
//	?ordering=-created_at&page=2&page_size=10&email__eq=a@x.com&username=ann
//
// Every parameter other than ordering, page, and page_size is a filter.
func FromValues(values url.Values, d Defaults) (Spec, error) {
	ordering := values.Get("ordering")
	if ordering == "" {
		ordering = d.Ordering
	}

	page := d.Page
	if raw := values.Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return Spec{}, errs.NewValidationError("Page must be a positive integer", []errs.FieldError{
				{Field: "page", Error: "must be an integer"},
			})
		}
		page = p
	}

	pageSize := strconv.Itoa(d.PageSize)
	if raw := values.Get("page_size"); raw != "" {
		pageSize = raw
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		if !slices.Contains(reserved, key) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	var filters []Filter
	for _, key := range keys {
		field, op := splitKey(key)
		for _, v := range values[key] {
			filters = append(filters, Filter{Field: field, Op: op, Value: v})
		}
	}

	return New(ordering, page, pageSize, filters...)
}

func splitKey(key string) (string, Op) {
	i := strings.LastIndex(key, opSeparator)
	if i <= 0 {
		return key, OpBare
	}
	op := Op(key[i+len(opSeparator):])
	if !slices.Contains(ops, op) {
		return key, OpBare
	}
	return key[:i], op
}

// Descending reports whether the ordering starts with "-".
func (s Spec) Descending() bool {
	return strings.HasPrefix(s.Ordering, "-")
}

// OrderField is the ordering without its direction prefix.
func (s Spec) OrderField() string {
	return strings.TrimPrefix(s.Ordering, "-")
}

// Offset is the number of rows skipped before the current page.
func (s Spec) Offset() int {
	return (s.Page - 1) * s.PageSize
}

// PageSizeValue is the page size as echoed to clients: an int or "all".
func (s Spec) PageSizeValue() any {
	if s.All {
		return PageSizeAll
	}
	return s.PageSize
}

func (f Filter) String() string {
	if f.Op == OpBare {
		return fmt.Sprintf("%s=%s", f.Field, f.Value)
	}
	return fmt.Sprintf("%s%s%s=%s", f.Field, opSeparator, f.Op, f.Value)
}
