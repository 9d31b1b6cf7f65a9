// Package memory is an in-process store for development and tests.
// Records are kept as JSON documents so callers never share memory with
// the store.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"time"

	"horseadmin/domain/resource"
	"horseadmin/domain/shared"

	"github.com/google/uuid"
)

var errDuplicateID = errors.New("duplicate id")

// Gateway holds one collection.
type Gateway[R resource.Entity] struct {
	mu     sync.RWMutex
	schema *resource.Schema[R]
	docs   map[string]document

	// FailList makes List fail; tests use it to simulate an unreachable store.
	FailList error
}

type document struct {
	owner string
	data  []byte
}

var (
	_ resource.Gateway[*stub] = (*Gateway[*stub])(nil)
	_ resource.Finder[*stub]  = (*Gateway[*stub])(nil)
)

type stub struct{ resource.Base }

// New returns an empty collection described by schema.
func New[R resource.Entity](schema *resource.Schema[R]) *Gateway[R] {
	return &Gateway[R]{schema: schema, docs: make(map[string]document)}
}

// Seed stores recs as they are, assigning ids and timestamps only where missing.
func (g *Gateway[R]) Seed(recs ...R) *Gateway[R] {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, rec := range recs {
		if rec.GetID() == "" {
			rec.SetID(uuid.NewString())
		}
		if rec.GetCreatedAt().IsZero() {
			rec.SetCreatedAt(time.Now().UTC())
		}
		owner := ""
		if o, ok := any(rec).(resource.Owned); ok {
			owner = o.GetUserID()
		}
		data, _ := json.Marshal(rec)
		g.docs[rec.GetID()] = document{owner: owner, data: data}
	}
	return g
}

func (g *Gateway[R]) List(ctx context.Context, sess shared.Session, opts resource.ListOptions) ([]R, error) {
	if err := ctx.Err(); err != nil {
		return nil, resource.NewFetchError(g.schema.Collection, err)
	}
	owner, err := g.schema.Owner(sess)
	if err != nil {
		return nil, resource.NewFetchError(g.schema.Collection, err)
	}
	if g.FailList != nil {
		return nil, resource.NewFetchError(g.schema.Collection, g.FailList)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	rows := make([]R, 0, len(g.docs))
	for _, doc := range g.docs {
		if g.schema.OwnerScoped && doc.owner != owner {
			continue
		}
		rec, err := g.decode(doc)
		if err != nil {
			return nil, resource.NewFetchError(g.schema.Collection, err)
		}
		rows = append(rows, rec)
	}
	order := g.schema.Order
	order.Ascending = opts.Ascending
	slices.SortStableFunc(rows, order.Cmp)
	return rows, nil
}

func (g *Gateway[R]) Find(ctx context.Context, sess shared.Session, id string) (R, error) {
	var zero R
	owner, err := g.schema.Owner(sess)
	if err != nil {
		return zero, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	doc, ok := g.docs[id]
	if !ok || (g.schema.OwnerScoped && doc.owner != owner) {
		return zero, shared.NewNotFoundError(g.schema.Entity)
	}
	return g.decode(doc)
}

func (g *Gateway[R]) Create(ctx context.Context, sess shared.Session, rec R) error {
	owner, err := g.schema.Owner(sess)
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpCreate, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if rec.GetID() == "" {
		rec.SetID(uuid.NewString())
	}
	if _, exists := g.docs[rec.GetID()]; exists {
		return resource.NewWriteError(g.schema.Entity, resource.OpCreate, errDuplicateID)
	}
	rec.SetCreatedAt(time.Now().UTC())
	g.schema.StampOwner(rec, owner)

	data, err := json.Marshal(rec)
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpCreate, err)
	}
	g.docs[rec.GetID()] = document{owner: owner, data: data}
	return nil
}

func (g *Gateway[R]) Update(ctx context.Context, sess shared.Session, id string, rec R) error {
	owner, err := g.schema.Owner(sess)
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpUpdate, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	prev, err := g.match(id, owner)
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpUpdate, err)
	}
	old, err := g.decode(prev)
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpUpdate, err)
	}

	rec.SetID(id)
	rec.SetCreatedAt(old.GetCreatedAt())
	g.schema.StampOwner(rec, owner)
	data, err := json.Marshal(rec)
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpUpdate, err)
	}
	g.docs[id] = document{owner: prev.owner, data: data}
	return nil
}

func (g *Gateway[R]) Delete(ctx context.Context, sess shared.Session, id string) error {
	owner, err := g.schema.Owner(sess)
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpDelete, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.match(id, owner); err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpDelete, err)
	}
	delete(g.docs, id)
	return nil
}

// match applies the id (and owner) predicate of update and delete.
func (g *Gateway[R]) match(id, owner string) (document, error) {
	doc, ok := g.docs[id]
	if !ok {
		return document{}, shared.NewNotFoundError(g.schema.Entity)
	}
	if g.schema.OwnerScoped && doc.owner != owner {
		return document{}, shared.NewForbiddenError(g.schema.Entity, g.schema.Entity+" belongs to another user")
	}
	return doc, nil
}

func (g *Gateway[R]) decode(doc document) (R, error) {
	rec := g.schema.New()
	err := json.Unmarshal(doc.data, rec)
	return rec, err
}
