// Package crud is the application service shared by every managed
// collection: list with search, create, update and delete.
package crud

import (
	"context"
	"errors"

	"horseadmin/domain/resource"
	"horseadmin/domain/shared"
	"horseadmin/pkg/logger"

	"go.uber.org/zap"
)

// ApplicationService coordinates one collection's schema and gateway.
type ApplicationService[R resource.Entity] struct {
	schema  *resource.Schema[R]
	gateway resource.Gateway[R]
}

// NewApplicationService Create a collection application service
func NewApplicationService[R resource.Entity](schema *resource.Schema[R], gateway resource.Gateway[R]) *ApplicationService[R] {
	return &ApplicationService[R]{schema: schema, gateway: gateway}
}

// Schema returns the collection schema.
func (s *ApplicationService[R]) Schema() *resource.Schema[R] { return s.schema }

// Gateway returns the bound gateway.
func (s *ApplicationService[R]) Gateway() resource.Gateway[R] { return s.gateway }

// List fetches the collection in its declared order and keeps the rows
// matching query. An empty query keeps everything.
func (s *ApplicationService[R]) List(ctx context.Context, sess shared.Session, query string) ([]R, error) {
	rows, err := s.gateway.List(ctx, sess, s.schema.ListOptions())
	if err != nil {
		return nil, err
	}
	return resource.Filter(rows, query, s.schema.Search...), nil
}

// Find returns the record with id.
func (s *ApplicationService[R]) Find(ctx context.Context, sess shared.Session, id string) (R, error) {
	if f, ok := s.gateway.(resource.Finder[R]); ok {
		return f.Find(ctx, sess, id)
	}
	var zero R
	rows, err := s.gateway.List(ctx, sess, s.schema.ListOptions())
	if err != nil {
		return zero, err
	}
	for _, r := range rows {
		if r.GetID() == id {
			return r, nil
		}
	}
	return zero, shared.NewNotFoundError(s.schema.Entity)
}

// Create stamps session-derived attributes and inserts rec. On success rec
// carries its new id.
func (s *ApplicationService[R]) Create(ctx context.Context, sess shared.Session, rec R) (R, error) {
	if s.schema.Stamp != nil {
		s.schema.Stamp(rec, sess)
	}
	if err := s.gateway.Create(ctx, sess, rec); err != nil {
		return rec, err
	}

	logger.Info("record created",
		zap.String("request_id", sess.RequestID),
		zap.String("entity", s.schema.Entity),
		zap.String("id", rec.GetID()))
	return rec, nil
}

// Update replaces the attributes of record id with rec.
func (s *ApplicationService[R]) Update(ctx context.Context, sess shared.Session, id string, rec R) (R, error) {
	rec.SetID(id)
	if s.schema.Stamp != nil {
		s.schema.Stamp(rec, sess)
	}
	if err := s.gateway.Update(ctx, sess, id, rec); err != nil {
		return rec, err
	}

	logger.Info("record updated",
		zap.String("request_id", sess.RequestID),
		zap.String("entity", s.schema.Entity),
		zap.String("id", id))
	return rec, nil
}

// Delete removes record id.
func (s *ApplicationService[R]) Delete(ctx context.Context, sess shared.Session, id string) error {
	if err := s.gateway.Delete(ctx, sess, id); err != nil {
		return err
	}

	logger.Info("record deleted",
		zap.String("request_id", sess.RequestID),
		zap.String("entity", s.schema.Entity),
		zap.String("id", id))
	return nil
}

// Upsert updates record id, creating it under that id when the store has
// no such record. Both calls run inside uow.
func (s *ApplicationService[R]) Upsert(ctx context.Context, sess shared.Session, uow shared.UnitOfWork, id string, rec R) (R, error) {
	err := uow.Execute(ctx, func(ctx context.Context) error {
		_, err := s.Update(ctx, sess, id, rec)
		if err == nil || !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		rec.SetID(id)
		_, err = s.Create(ctx, sess, rec)
		return err
	})
	return rec, err
}
