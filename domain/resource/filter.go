package resource

import (
	"strings"

	"horseadmin/domain/shared"
)

// Accessor reads an optional text attribute. A nil result means the
// attribute is absent on that record.
type Accessor[R any] func(R) *string

// Contains is satisfied when the attribute contains term, ignoring case.
// An absent attribute never matches.
func Contains[R any](field Accessor[R], term string) shared.Specification[R] {
	needle := strings.ToLower(term)
	return shared.SpecFunc[R](func(r R) bool {
		v := field(r)
		if v == nil {
			return false
		}
		return strings.Contains(strings.ToLower(*v), needle)
	})
}

// Filter keeps the rows where any designated field contains term.
// The empty term returns rows itself. Order is preserved.
func Filter[R any](rows []R, term string, fields ...Accessor[R]) []R {
	if term == "" {
		return rows
	}
	specs := make([]shared.Specification[R], 0, len(fields))
	for _, f := range fields {
		specs = append(specs, Contains(f, term))
	}
	return shared.Select(rows, shared.Or(specs...))
}

// Text returns an accessor for a plain string attribute.
func Text[R any](get func(R) string) Accessor[R] {
	return func(r R) *string {
		s := get(r)
		return &s
	}
}
