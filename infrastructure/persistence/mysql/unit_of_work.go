package mysql

import (
	"context"

	"horseadmin/domain/shared"
	"horseadmin/infrastructure/persistence"

	"gorm.io/gorm"
)

// UnitOfWork runs fn inside a GORM transaction. Gateways pick the
// transaction up from the context passed to fn.
type UnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Execute commits when fn succeeds and rolls back otherwise. Called inside
// an outer transaction it joins it. Never retried: fn writes.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if persistence.TxFromContext(ctx) != nil {
		return fn(ctx)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(persistence.ContextWithTx(ctx, tx))
	})
}

// Compile-time check that UnitOfWork implements shared.UnitOfWork
var _ shared.UnitOfWork = (*UnitOfWork)(nil)
