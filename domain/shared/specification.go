package shared

// Specification encapsulates a predicate over T.
// Used for in-memory filtering: search terms, owner scoping in the memory store.
type Specification[T any] interface {
	IsSatisfiedBy(entity T) bool
}

// SpecFunc adapts a plain function to Specification.
type SpecFunc[T any] func(T) bool

// IsSatisfiedBy calls f.
func (f SpecFunc[T]) IsSatisfiedBy(entity T) bool { return f(entity) }

// ============================================================================
// Composite Specifications
// ============================================================================

type andSpec[T any] []Specification[T]

func (s andSpec[T]) IsSatisfiedBy(entity T) bool {
	for _, spec := range s {
		if !spec.IsSatisfiedBy(entity) {
			return false
		}
	}
	return true
}

// And is satisfied when every spec is. An empty And is always satisfied.
func And[T any](specs ...Specification[T]) Specification[T] {
	return andSpec[T](specs)
}

type orSpec[T any] []Specification[T]

func (s orSpec[T]) IsSatisfiedBy(entity T) bool {
	for _, spec := range s {
		if spec.IsSatisfiedBy(entity) {
			return true
		}
	}
	return false
}

// Or is satisfied when any spec is. An empty Or is never satisfied.
func Or[T any](specs ...Specification[T]) Specification[T] {
	return orSpec[T](specs)
}

// Not negates spec.
func Not[T any](spec Specification[T]) Specification[T] {
	return SpecFunc[T](func(entity T) bool { return !spec.IsSatisfiedBy(entity) })
}

// Select returns the entities satisfying spec, preserving order.
func Select[T any](entities []T, spec Specification[T]) []T {
	out := make([]T, 0, len(entities))
	for _, e := range entities {
		if spec.IsSatisfiedBy(e) {
			out = append(out, e)
		}
	}
	return out
}
