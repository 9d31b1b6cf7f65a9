// Package settings serves the site-wide settings page.
package settings

import (
	"context"
	"errors"

	"horseadmin/application/crud"
	"horseadmin/domain/resource"
	"horseadmin/domain/settings"
	"horseadmin/domain/shared"
)

// ApplicationService reads and saves the singleton settings record.
type ApplicationService struct {
	records *crud.ApplicationService[*settings.Settings]
	uow     shared.UnitOfWork
}

// NewApplicationService Create a settings application service
func NewApplicationService(records *crud.ApplicationService[*settings.Settings], uow shared.UnitOfWork) *ApplicationService {
	return &ApplicationService{records: records, uow: uow}
}

// Form the settings page form schema.
func (s *ApplicationService) Form() *resource.Schema[*settings.Settings] { return s.records.Schema() }

// Get returns the stored settings, or the defaults before the first save.
func (s *ApplicationService) Get(ctx context.Context, sess shared.Session) (*settings.Settings, error) {
	rec, err := s.records.Find(ctx, sess, settings.GlobalID)
	if errors.Is(err, shared.ErrNotFound) {
		return settings.Defaults(), nil
	}
	return rec, err
}

// Save replaces the settings with the form values.
func (s *ApplicationService) Save(ctx context.Context, sess shared.Session, values resource.Values) (*settings.Settings, error) {
	if !sess.Authenticated() {
		return nil, shared.NewUnauthorizedError("settings")
	}
	rec, err := s.records.Schema().Payload(values)
	if err != nil {
		return nil, err
	}
	return s.records.Upsert(ctx, sess, s.uow, settings.GlobalID, rec)
}
