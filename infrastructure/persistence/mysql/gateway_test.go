package mysql

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"horseadmin/domain/event"
	"horseadmin/domain/horse"
	"horseadmin/domain/order"
	"horseadmin/domain/post"
	"horseadmin/domain/resource"
	"horseadmin/domain/settings"
	"horseadmin/domain/shared"
	"horseadmin/infrastructure/persistence"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	alice = shared.Session{Principal: &shared.Principal{ID: "alice", Name: "Alice"}}
	bob   = shared.Session{Principal: &shared.Principal{ID: "bob"}}
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(sqlite.Open(filepath.Join(t.TempDir(), "admin.db")), "silent")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestGateway_CreateListFind(t *testing.T) {
	db := openTestDB(t)
	gw := NewGateway(db, horse.Schema())
	ctx := context.Background()

	thunder := &horse.Horse{
		Name: "Thunder", Breed: "Arabian", Age: 5, Status: []string{"Active"},
		Diet: horse.Diet{FeedType: "Hay", Supplements: []string{"Biotin", "Zinc"}},
	}
	require.NoError(t, gw.Create(ctx, alice, thunder))
	require.NoError(t, gw.Create(ctx, alice, &horse.Horse{Name: "Storm", Breed: "Thoroughbred"}))
	assert.NotEmpty(t, thunder.ID)

	rows, err := gw.List(ctx, alice, horse.Schema().ListOptions())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	got, err := gw.Find(ctx, alice, thunder.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Active"}, got.Status)
	assert.Equal(t, []string{"Biotin", "Zinc"}, got.Diet.Supplements)

	_, err = gw.Find(ctx, alice, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGateway_EmptyListIsNotAnError(t *testing.T) {
	gw := NewGateway(openTestDB(t), event.Schema())

	rows, err := gw.List(context.Background(), alice, event.Schema().ListOptions())

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestGateway_UpdateReplacesAttributes(t *testing.T) {
	gw := NewGateway(openTestDB(t), horse.Schema())
	ctx := context.Background()
	h := &horse.Horse{Name: "Thunder", Breed: "Arabian", Age: 5, Color: "Bay"}
	require.NoError(t, gw.Create(ctx, alice, h))

	require.NoError(t, gw.Update(ctx, alice, h.ID, &horse.Horse{Name: "Thunder", Breed: "Arabian", Age: 6}))
	// unchanged values still match the row
	require.NoError(t, gw.Update(ctx, alice, h.ID, &horse.Horse{Name: "Thunder", Breed: "Arabian", Age: 6}))

	got, err := gw.Find(ctx, alice, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Age)
	assert.Empty(t, got.Color)
	assert.WithinDuration(t, h.CreatedAt, got.CreatedAt, time.Second)
}

func TestGateway_ZeroRowWrites(t *testing.T) {
	gw := NewGateway(openTestDB(t), horse.Schema())
	ctx := context.Background()

	err := gw.Update(ctx, alice, "vanished", &horse.Horse{Name: "Ghost"})
	assert.True(t, resource.IsWriteError(err))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = gw.Delete(ctx, alice, "vanished")
	assert.True(t, resource.IsWriteError(err))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGateway_OwnerScoping(t *testing.T) {
	db := openTestDB(t)
	orders := NewGateway(db, order.Schema())
	ctx := context.Background()

	o := &order.Order{OrderNumber: "ORD-1", CustomerName: "Alice", TotalAmount: 12.5}
	require.NoError(t, orders.Create(ctx, alice, o))
	assert.Equal(t, "alice", o.UserID)

	rows, err := orders.List(ctx, bob, order.Schema().ListOptions())
	require.NoError(t, err)
	assert.Empty(t, rows)

	err = orders.Update(ctx, bob, o.ID, &order.Order{OrderNumber: "ORD-1", CustomerName: "Mallory"})
	assert.True(t, resource.IsWriteError(err))
	assert.ErrorIs(t, err, shared.ErrForbidden)

	err = orders.Delete(ctx, bob, o.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = orders.List(ctx, shared.Session{}, order.Schema().ListOptions())
	assert.ErrorIs(t, err, shared.ErrUnauthorized)

	require.NoError(t, orders.Update(ctx, alice, o.ID, &order.Order{OrderNumber: "ORD-1", CustomerName: "Alice B."}))
	got, err := orders.Find(ctx, alice, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", got.CustomerName)
	assert.Equal(t, "alice", got.UserID)

	require.NoError(t, orders.Delete(ctx, alice, o.ID))
}

func TestGateway_NullableAndJSONColumns(t *testing.T) {
	gw := NewGateway(openTestDB(t), post.Schema())
	ctx := context.Background()

	p := &post.Post{Content: "hello", Media: []post.Media{{URL: "https://x/y.png", Type: "image"}}}
	require.NoError(t, gw.Create(ctx, alice, p))

	got, err := gw.Find(ctx, alice, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Title)
	assert.Equal(t, p.Media, got.Media)
}

func TestUnitOfWork_RollsBack(t *testing.T) {
	db := openTestDB(t)
	gw := NewGateway(db, settings.Schema())
	uow := NewUnitOfWork(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := uow.Execute(ctx, func(ctx context.Context) error {
		require.NotNil(t, persistence.TxFromContext(ctx))
		require.NoError(t, gw.Create(ctx, alice, settings.Defaults()))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = gw.Find(ctx, alice, settings.GlobalID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, uow.Execute(ctx, func(ctx context.Context) error {
		return gw.Create(ctx, alice, settings.Defaults())
	}))
	got, err := gw.Find(ctx, alice, settings.GlobalID)
	require.NoError(t, err)
	assert.Equal(t, "Horse Admin", got.SiteName)
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{}
	cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database = "root", "pw", "db", "3306", "horses"

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "root:pw@tcp(db:3306)/horses?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
}
