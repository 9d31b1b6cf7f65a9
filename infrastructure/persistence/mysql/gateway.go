package mysql

import (
	"context"
	"errors"
	"time"

	"horseadmin/domain/resource"
	"horseadmin/domain/shared"
	"horseadmin/infrastructure/persistence"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gateway stores one collection in the table named by the record type.
type Gateway[R resource.Entity] struct {
	db     *gorm.DB
	schema *resource.Schema[R]
}

// NewGateway binds schema's collection to db.
func NewGateway[R resource.Entity](db *gorm.DB, schema *resource.Schema[R]) *Gateway[R] {
	return &Gateway[R]{db: db, schema: schema}
}

// getDB returns the transaction from context if available, otherwise the default db
func (g *Gateway[R]) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return g.db.WithContext(ctx)
}

// scoped applies the owner predicate of owner-scoped collections.
func (g *Gateway[R]) scoped(db *gorm.DB, owner string) *gorm.DB {
	if g.schema.OwnerScoped {
		return db.Where("user_id = ?", owner)
	}
	return db
}

func (g *Gateway[R]) List(ctx context.Context, sess shared.Session, opts resource.ListOptions) ([]R, error) {
	owner, err := g.schema.Owner(sess)
	if err != nil {
		return nil, resource.NewFetchError(g.schema.Collection, err)
	}

	db := g.scoped(g.getDB(ctx).Model(g.schema.New()), owner)
	if opts.OrderBy != "" {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: opts.OrderBy}, Desc: !opts.Ascending})
	}

	rows := make([]R, 0)
	if err := db.Find(&rows).Error; err != nil {
		return nil, resource.NewFetchError(g.schema.Collection, err)
	}
	return rows, nil
}

func (g *Gateway[R]) Find(ctx context.Context, sess shared.Session, id string) (R, error) {
	rec := g.schema.New()
	owner, err := g.schema.Owner(sess)
	if err != nil {
		return rec, err
	}

	err = g.scoped(g.getDB(ctx).Where("id = ?", id), owner).Take(rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, shared.NewNotFoundError(g.schema.Entity)
	}
	if err != nil {
		return rec, resource.NewFetchError(g.schema.Collection, err)
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

	if err := g.getDB(ctx).Create(rec).Error; err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpCreate, err)
	}
	return nil
}

// Update replaces every column except the identity, creation time and
// owner. Zero matched rows is an error, reported as not found or forbidden
// depending on whether the id exists at all.
func (g *Gateway[R]) Update(ctx context.Context, sess shared.Session, id string, rec R) error {
	owner, err := g.schema.Owner(sess)
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpUpdate, err)
	}
	rec.SetID(id)
	g.schema.StampOwner(rec, owner)

	db := g.getDB(ctx)
	result := g.scoped(db.Model(g.schema.New()).Where("id = ?", id), owner).
		Select("*").
		Omit("id", "created_at", "user_id").
		Updates(rec)
	if result.Error != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return resource.NewWriteError(g.schema.Entity, resource.OpUpdate, g.missing(db, id))
	}
	return nil
}

func (g *Gateway[R]) Delete(ctx context.Context, sess shared.Session, id string) error {
	owner, err := g.schema.Owner(sess)
	if err != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpDelete, err)
	}

	db := g.getDB(ctx)
	result := g.scoped(db.Where("id = ?", id), owner).Delete(g.schema.New())
	if result.Error != nil {
		return resource.NewWriteError(g.schema.Entity, resource.OpDelete, result.Error)
	}
	if result.RowsAffected == 0 {
		return resource.NewWriteError(g.schema.Entity, resource.OpDelete, g.missing(db, id))
	}
	return nil
}

// missing explains a zero-row write.
func (g *Gateway[R]) missing(db *gorm.DB, id string) error {
	var count int64
	if err := db.Model(g.schema.New()).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.NewNotFoundError(g.schema.Entity)
	}
	if g.schema.OwnerScoped {
		return shared.NewForbiddenError(g.schema.Entity, g.schema.Entity+" belongs to another user")
	}
	return shared.ErrNoRowsAffected
}

var _ resource.Finder[*resourceStub] = (*Gateway[*resourceStub])(nil)
var _ resource.Gateway[*resourceStub] = (*Gateway[*resourceStub])(nil)

type resourceStub struct{ resource.Base }
