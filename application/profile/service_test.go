package profile

import (
	"context"
	"testing"

	"horseadmin/application/crud"
	"horseadmin/domain/resource"
	"horseadmin/domain/shared"
	"horseadmin/domain/user"
	"horseadmin/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (*ApplicationService, *memory.Gateway[*user.Profile]) {
	store := memory.New(user.Schema())
	return NewApplicationService(crud.NewApplicationService(user.Schema(), store), shared.NoTransaction{}), store
}

var jane = shared.Session{Principal: &shared.Principal{ID: "jane-id", Email: "jane@example.com", Name: "Jane Smith"}}

func TestGet_FreshProfileForNewPrincipal(t *testing.T) {
	svc, _ := newService()

	p, err := svc.Get(context.Background(), jane)

	require.NoError(t, err)
	assert.Equal(t, "jane-id", p.ID)
	assert.Equal(t, "Jane Smith", p.Name)
}

func TestGet_RequiresPrincipal(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Get(context.Background(), shared.Session{})

	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestSave_CreatesThenUpdates(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	_, err := svc.Save(ctx, jane, resource.Values{"name": "Jane Smith", "username": "janesmith", "location": "Ocala, FL"})
	require.NoError(t, err)

	p, err := store.Find(ctx, jane, "jane-id")
	require.NoError(t, err)
	assert.Equal(t, "Ocala, FL", p.Location)

	_, err = svc.Save(ctx, jane, resource.Values{"name": "Jane S.", "username": "janesmith", "bio": "Dressage"})
	require.NoError(t, err)

	p, err = store.Find(ctx, jane, "jane-id")
	require.NoError(t, err)
	assert.Equal(t, "Jane S.", p.Name)
	assert.Equal(t, "Dressage", p.Bio)
	assert.Empty(t, p.Location)
}

func TestSave_CannotSelfVerify(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	_, err := svc.Save(ctx, jane, resource.Values{"name": "Jane", "username": "jane", "verified": "on"})
	require.NoError(t, err)

	p, err := store.Find(ctx, jane, "jane-id")
	require.NoError(t, err)
	assert.False(t, p.Verified)
	_, ok := svc.Form().Field("verified")
	assert.False(t, ok)
}

func TestSave_ValidationError(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Save(context.Background(), jane, resource.Values{"name": "Jane"})

	assert.True(t, resource.IsValidationError(err))
	assert.Equal(t, "username", resource.FieldOf(err))
}
