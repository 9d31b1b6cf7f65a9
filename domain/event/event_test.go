package event

import (
	"testing"

	"horseadmin/domain/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaIsValid(t *testing.T) {
	require.NoError(t, Schema().Validate())
}

func TestOrderedByDateAscending(t *testing.T) {
	s := Schema()
	assert.Equal(t, resource.ListOptions{OrderBy: "date", Ascending: true}, s.ListOptions())
	assert.Negative(t, s.Order.Cmp(&Event{Date: "2024-05-01"}, &Event{Date: "2024-06-01"}))
}

func TestPayload_DateAndFees(t *testing.T) {
	s := Schema()
	e, err := s.Payload(resource.Values{
		"title":          "Spring Show",
		"date":           "2024-05-01",
		"time":           "09:30",
		"location":       "Lexington",
		"participants":   "Ada, Bob",
		"fees.entry_fee": "45.5",
		"fees.currency":  "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, 45.5, e.Fees.EntryFee)
	assert.Equal(t, []string{"Ada", "Bob"}, e.Participants)

	_, err = s.Payload(resource.Values{"title": "x", "date": "05/01/2024", "time": "09:30", "location": "y"})
	assert.True(t, resource.IsValidationError(err))
	assert.Equal(t, "date", resource.FieldOf(err))
}
