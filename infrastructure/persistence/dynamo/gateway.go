// Package dynamo stores collections in DynamoDB through TableTheory. Each
// collection is one table keyed by id; owner scoping is a filter on reads
// and a condition on writes.
package dynamo

import (
	"context"
	"errors"
	"slices"
	"time"

	"horseadmin/domain/resource"
	"horseadmin/domain/shared"

	"github.com/google/uuid"
	"github.com/theory-cloud/tabletheory/pkg/core"
	theorydbErrors "github.com/theory-cloud/tabletheory/pkg/errors"
)

var errDuplicateID = errors.New("duplicate id")

// Gateway binds one collection to its table.
type Gateway[R resource.Entity] struct {
	db     core.DB
	schema *resource.Schema[R]
}

// NewGateway binds schema's collection to db.
func NewGateway[R resource.Entity](db core.DB, schema *resource.Schema[R]) *Gateway[R] {
	return &Gateway[R]{db: db, schema: schema}
}

func (g *Gateway[R]) model(ctx context.Context, rec any) core.Query {
	return g.db.WithContext(ctx).Model(rec)
}

// List scans the table. DynamoDB has no server-side order for a scan, so
// rows are sorted here by the schema's order.
func (g *Gateway[R]) List(ctx context.Context, sess shared.Session, opts resource.ListOptions) ([]R, error) {
	owner, err := g.schema.Owner(sess)
	if err != nil {
		return nil, resource.NewFetchError(g.schema.Collection, err)
	}

	q := g.model(ctx, g.schema.New())
	if g.schema.OwnerScoped {
		q = q.Filter("UserID", "=", owner)
	}
	var rows []R
	if err := q.Scan(&rows); err != nil {
		return nil, resource.NewFetchError(g.schema.Collection, err)
	}
	if rows == nil {
		rows = []R{}
	}

	order := g.schema.Order
	order.Ascending = opts.Ascending
	slices.SortStableFunc(rows, order.Cmp)
	return rows, nil
}

func (g *Gateway[R]) Find(ctx context.Context, sess shared.Session, id string) (R, error) {
	rec := g.schema.New()
	owner, err := g.schema.Owner(sess)
	if err != nil {
		return rec, err
	}

	err = g.model(ctx, g.schema.New()).Where("ID", "=", id).First(rec)
	if theorydbErrors.IsNotFound(err) {
		return rec, shared.NewNotFoundError(g.schema.Entity)
	}
	if err != nil {
		return rec, resource.NewFetchError(g.schema.Collection, err)
	}
	if g.schema.OwnerScoped && ownerOf(rec) != owner {
		return rec, shared.NewNotFoundError(g.schema.Entity)
	}
	return rec, nil
}

func (g *Gateway[R]) Create(ctx context.Context, sess shared.Session, rec R) error {
	owner, err := g.schema.Owner(sess)
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpCreate, err)
	}

	if rec.GetID() == "" {
		rec.SetID(uuid.NewString())
	}
	rec.SetCreatedAt(time.Now().UTC())
	g.schema.StampOwner(rec, owner)

	err = g.model(ctx, rec).IfNotExists().Create()
	if theorydbErrors.IsConditionFailed(err) {
		return resource.NewWriteError(g.schema.Entity, resource.OpCreate, errDuplicateID)
	}
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpCreate, err)
	}
	return nil
}

// Update overwrites every attribute but the key and created_at. The write
// is conditioned on the item existing (and belonging to the principal).
func (g *Gateway[R]) Update(ctx context.Context, sess shared.Session, id string, rec R) error {
	owner, err := g.schema.Owner(sess)
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpUpdate, err)
	}
	rec.SetID(id)
	g.schema.StampOwner(rec, owner)

	err = g.guard(g.model(ctx, rec).IfExists(), owner).Update()
	if theorydbErrors.IsConditionFailed(err) {
		return resource.NewWriteError(g.schema.Entity, resource.OpUpdate, g.missing(ctx, id))
	}
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpUpdate, err)
	}
	return nil
}

func (g *Gateway[R]) Delete(ctx context.Context, sess shared.Session, id string) error {
	owner, err := g.schema.Owner(sess)
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpDelete, err)
	}
	key := g.schema.New()
	key.SetID(id)

	err = g.guard(g.model(ctx, key).IfExists(), owner).Delete()
	if theorydbErrors.IsConditionFailed(err) {
		return resource.NewWriteError(g.schema.Entity, resource.OpDelete, g.missing(ctx, id))
	}
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpDelete, err)
	}
	return nil
}

func (g *Gateway[R]) guard(q core.Query, owner string) core.Query {
	if g.schema.OwnerScoped {
		return q.WithCondition("UserID", "=", owner)
	}
	return q
}

// missing explains a failed write condition.
func (g *Gateway[R]) missing(ctx context.Context, id string) error {
	err := g.model(ctx, g.schema.New()).Where("ID", "=", id).First(g.schema.New())
	switch {
	case theorydbErrors.IsNotFound(err):
		return shared.NewNotFoundError(g.schema.Entity)
	case err != nil:
		return err
	case g.schema.OwnerScoped:
		return shared.NewForbiddenError(g.schema.Entity, g.schema.Entity+" belongs to another user")
	default:
		return shared.ErrNoRowsAffected
	}
}

func ownerOf(rec any) string {
	if o, ok := rec.(resource.Owned); ok {
		return o.GetUserID()
	}
	return ""
}
