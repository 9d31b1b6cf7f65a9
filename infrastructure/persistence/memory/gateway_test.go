package memory

import (
	"context"
	"errors"
	"testing"

	"horseadmin/domain/event"
	"horseadmin/domain/horse"
	"horseadmin/domain/order"
	"horseadmin/domain/resource"
	"horseadmin/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ctx   = context.Background()
	alice = shared.Session{Principal: &shared.Principal{ID: "alice"}}
	bob   = shared.Session{Principal: &shared.Principal{ID: "bob"}}
)

func TestGateway_ListOrder(t *testing.T) {
	horses := New(horse.Schema()).Seed(DemoHorses()...)
	rows, err := horses.List(ctx, alice, horse.Schema().ListOptions())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Spirit", "Storm", "Thunder"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})

	events := New(event.Schema()).Seed(DemoEvents()...)
	evs, err := events.List(ctx, alice, event.Schema().ListOptions())
	require.NoError(t, err)
	assert.Equal(t, "2024-04-02", evs[0].Date)
}

func TestGateway_CreateAssignsIdentity(t *testing.T) {
	g := New(horse.Schema())
	h := &horse.Horse{Name: "Thunder"}

	require.NoError(t, g.Create(ctx, alice, h))
	assert.NotEmpty(t, h.ID)
	assert.False(t, h.CreatedAt.IsZero())

	got, err := g.Find(ctx, alice, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thunder", got.Name)
	assert.NotSame(t, h, got)

	dup := &horse.Horse{Name: "Copy"}
	dup.ID = h.ID
	assert.True(t, resource.IsWriteError(g.Create(ctx, alice, dup)))
}

func TestGateway_UpdateKeepsCreatedAt(t *testing.T) {
	g := New(horse.Schema())
	h := &horse.Horse{Name: "Thunder"}
	require.NoError(t, g.Create(ctx, alice, h))

	require.NoError(t, g.Update(ctx, alice, h.ID, &horse.Horse{Name: "Thunderbolt", Age: 6}))

	got, err := g.Find(ctx, alice, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thunderbolt", got.Name)
	assert.True(t, h.CreatedAt.Equal(got.CreatedAt))
}

func TestGateway_ZeroRowWritesFail(t *testing.T) {
	g := New(horse.Schema())

	err := g.Update(ctx, alice, "gone", &horse.Horse{Name: "Ghost"})
	assert.True(t, resource.IsWriteError(err))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = g.Delete(ctx, alice, "gone")
	assert.True(t, resource.IsWriteError(err))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGateway_OwnerScoping(t *testing.T) {
	g := New(order.Schema())
	o := &order.Order{OrderNumber: "ORD-1"}
	require.NoError(t, g.Create(ctx, alice, o))
	assert.Equal(t, "alice", o.UserID)

	rows, err := g.List(ctx, bob, order.Schema().ListOptions())
	require.NoError(t, err)
	assert.Empty(t, rows)

	err = g.Update(ctx, bob, o.ID, &order.Order{OrderNumber: "stolen"})
	assert.True(t, resource.IsWriteError(err))
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.ErrorIs(t, g.Delete(ctx, bob, o.ID), shared.ErrForbidden)

	_, err = g.List(ctx, shared.Session{}, order.Schema().ListOptions())
	assert.True(t, resource.IsFetchError(err))
	assert.ErrorIs(t, err, shared.ErrUnauthorized)

	require.NoError(t, g.Delete(ctx, alice, o.ID))
}

func TestGateway_FailList(t *testing.T) {
	g := New(order.Schema())
	g.FailList = errors.New("connection refused")

	rows, err := g.List(ctx, alice, order.Schema().ListOptions())
	assert.Nil(t, rows)
	assert.True(t, resource.IsFetchError(err))
}
