// Package profile serves the signed-in user's own profile page.
package profile

import (
	"context"
	"errors"
	"slices"

	"horseadmin/application/crud"
	"horseadmin/domain/resource"
	"horseadmin/domain/shared"
	"horseadmin/domain/user"
)

// ApplicationService reads and saves the profile whose id is the acting
// principal's id.
type ApplicationService struct {
	profiles *crud.ApplicationService[*user.Profile]
	uow      shared.UnitOfWork
	form     *resource.Schema[*user.Profile]
}

// NewApplicationService Create a profile application service
func NewApplicationService(profiles *crud.ApplicationService[*user.Profile], uow shared.UnitOfWork) *ApplicationService {
	form := *profiles.Schema()
	// verification is granted by admins on the users screen, never self-served
	form.Fields = slices.DeleteFunc(slices.Clone(form.Fields), func(f resource.Field) bool {
		return f.Name == "verified"
	})
	return &ApplicationService{profiles: profiles, uow: uow, form: &form}
}

// Form the profile page form schema.
func (s *ApplicationService) Form() *resource.Schema[*user.Profile] { return s.form }

// Get returns the principal's profile. A principal without a stored
// profile gets a fresh one named after the principal.
func (s *ApplicationService) Get(ctx context.Context, sess shared.Session) (*user.Profile, error) {
	if !sess.Authenticated() {
		return nil, shared.NewUnauthorizedError("profile")
	}
	p, err := s.profiles.Find(ctx, sess, sess.UserID())
	if errors.Is(err, shared.ErrNotFound) {
		p = &user.Profile{Name: sess.Principal.DisplayName()}
		p.ID = sess.UserID()
		return p, nil
	}
	return p, err
}

// Save applies the form values to the principal's profile, creating the
// row on first save.
func (s *ApplicationService) Save(ctx context.Context, sess shared.Session, values resource.Values) (*user.Profile, error) {
	current, err := s.Get(ctx, sess)
	if err != nil {
		return nil, err
	}
	next, err := s.form.Payload(values)
	if err != nil {
		return nil, err
	}
	next.Verified = current.Verified
	return s.profiles.Upsert(ctx, sess, s.uow, sess.UserID(), next)
}
