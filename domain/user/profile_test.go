package user

import (
	"testing"

	"horseadmin/domain/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaIsValid(t *testing.T) {
	require.NoError(t, Schema().Validate())
}

func TestVerifiedCheckbox(t *testing.T) {
	s := Schema()
	p, err := s.Payload(resource.Values{"name": "Jane", "username": "jane", "verified": "on"})
	require.NoError(t, err)
	assert.True(t, p.Verified)
	assert.Equal(t, resource.Category("verified"), resource.Categorize(s.Status(p), s.Statuses))

	p, err = s.Payload(resource.Values{"name": "Jane", "username": "jane"})
	require.NoError(t, err)
	assert.False(t, p.Verified)
	assert.Equal(t, "false", s.Prefill(p)["verified"])
}

func TestSearchNameOrUsername(t *testing.T) {
	rows := []*Profile{{Name: "Jane Doe", Username: "jd"}, {Name: "Bob", Username: "rider42"}}
	assert.Len(t, resource.Filter(rows, "RIDER", Schema().Search...), 1)
	assert.Len(t, resource.Filter(rows, "", Schema().Search...), 2)
}
