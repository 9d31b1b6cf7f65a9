package resource

import (
	"context"
	"slices"

	"horseadmin/domain/shared"
)

// ListOptions controls the order of a list call.
type ListOptions struct {
	OrderBy   string
	Ascending bool
}

// Gateway binds one collection of the store. Every call receives the
// acting session explicitly.
//
// List fails with a fetch error; an empty collection is an empty slice.
// Create assigns ID (unless rec already carries one) and CreatedAt on rec. Update and Delete fail with a
// write error when the store rejects the call or when no row matched the
// id (and owner, for owner-scoped collections).
type Gateway[R Entity] interface {
	List(ctx context.Context, sess shared.Session, opts ListOptions) ([]R, error)
	Create(ctx context.Context, sess shared.Session, rec R) error
	Update(ctx context.Context, sess shared.Session, id string, rec R) error
	Delete(ctx context.Context, sess shared.Session, id string) error
}

// Finder is implemented by gateways that can read a single record.
// Find fails with shared.ErrNotFound when no visible record has id.
type Finder[R Entity] interface {
	Find(ctx context.Context, sess shared.Session, id string) (R, error)
}

// Mutation describes a completed write, handed to a Reloader.
type Mutation[R Entity] struct {
	Op     string // OpCreate, OpUpdate, OpDelete
	ID     string
	Record R // zero for OpDelete
}

// Reloader produces the rows a screen shows after a successful mutation.
type Reloader[R Entity] interface {
	Reload(ctx context.Context, sess shared.Session, current []R, m Mutation[R]) ([]R, error)
}

// FullReload re-fetches the whole collection.
type FullReload[R Entity] struct {
	Gateway Gateway[R]
	Options ListOptions
}

// Reload ignores current and lists again.
func (f FullReload[R]) Reload(ctx context.Context, sess shared.Session, _ []R, _ Mutation[R]) ([]R, error) {
	return f.Gateway.List(ctx, sess, f.Options)
}

// LocalPatch applies the mutation to the rows already held, keeping list order.
type LocalPatch[R Entity] struct {
	Order Order[R]
}

// Reload never touches the store.
func (p LocalPatch[R]) Reload(_ context.Context, _ shared.Session, current []R, m Mutation[R]) ([]R, error) {
	rows := slices.Clone(current)
	switch m.Op {
	case OpCreate:
		rows = append(rows, m.Record)
	case OpUpdate:
		for i, r := range rows {
			if r.GetID() == m.ID {
				m.Record.SetID(m.ID)
				m.Record.SetCreatedAt(r.GetCreatedAt())
				rows[i] = m.Record
			}
		}
	case OpDelete:
		rows = slices.DeleteFunc(rows, func(r R) bool { return r.GetID() == m.ID })
	}
	if p.Order.Compare != nil {
		slices.SortStableFunc(rows, p.Order.Cmp)
	}
	return rows, nil
}
