package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaIsValid(t *testing.T) {
	require.NoError(t, Schema().Validate())
}

func TestToggles(t *testing.T) {
	s := Schema()
	values := s.Prefill(Defaults())
	assert.Equal(t, "true", values["email_notifications"])
	assert.Equal(t, "false", values["push_notifications"])

	values["push_notifications"] = "on"
	delete(values, "email_notifications")
	got, err := s.Payload(values)
	require.NoError(t, err)
	assert.True(t, got.PushNotifications)
	assert.False(t, got.EmailNotifications)
	assert.Equal(t, "Horse Admin", got.SiteName)
}
