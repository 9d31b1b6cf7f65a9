package settings

import (
	"context"
	"testing"

	"horseadmin/application/crud"
	"horseadmin/domain/resource"
	"horseadmin/domain/settings"
	"horseadmin/domain/shared"
	"horseadmin/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = shared.Session{Principal: &shared.Principal{ID: "admin"}}

func TestSettings_DefaultsThenSave(t *testing.T) {
	store := memory.New(settings.Schema())
	svc := NewApplicationService(crud.NewApplicationService(settings.Schema(), store), shared.NoTransaction{})
	ctx := context.Background()

	got, err := svc.Get(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), got)

	_, err = svc.Save(ctx, admin, resource.Values{
		"site_name": "Stable Admin", "timezone": "EST", "language": "fr", "push_notifications": "on",
	})
	require.NoError(t, err)

	got, err = svc.Get(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, settings.GlobalID, got.ID)
	assert.Equal(t, "Stable Admin", got.SiteName)
	assert.Equal(t, "EST", got.Timezone)
	assert.False(t, got.EmailNotifications)
	assert.True(t, got.PushNotifications)

	_, err = svc.Save(ctx, admin, resource.Values{"site_name": "Renamed", "timezone": "UTC", "language": "en"})
	require.NoError(t, err)
	rows, err := store.List(ctx, admin, settings.Schema().ListOptions())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Renamed", rows[0].SiteName)
}

func TestSettings_SaveRequiresPrincipal(t *testing.T) {
	svc := NewApplicationService(crud.NewApplicationService(settings.Schema(), memory.New(settings.Schema())), shared.NoTransaction{})

	_, err := svc.Save(context.Background(), shared.Session{}, resource.Values{"site_name": "x"})

	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
