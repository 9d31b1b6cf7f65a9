// Package event describes the events calendar.
package event

import (
	"strconv"
	"strings"

	"horseadmin/domain/resource"
)

// Contact organizer contact.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Fees entry fees.
type Fees struct {
	EntryFee float64 `json:"entry_fee"`
	Currency string  `json:"currency"`
}

// Event a competition, clinic or training day.
type Event struct {
	_ struct{} `theorydb:"naming:snake_case"`
	resource.Base

	Title        string   `json:"title" gorm:"size:255;not null"`
	Date         string   `json:"date" gorm:"size:10;index"` // YYYY-MM-DD
	Time         string   `json:"time" gorm:"size:8"`
	Location     string   `json:"location" gorm:"size:255"`
	Status       string   `json:"status" gorm:"size:32"`
	Type         string   `json:"type" gorm:"size:32"`
	Description  string   `json:"description" gorm:"type:text"`
	Participants []string `json:"participants,omitempty" gorm:"serializer:json"`
	Contact      Contact  `json:"contact" gorm:"serializer:json"`
	Fees         Fees     `json:"fees" gorm:"serializer:json"`
}

func (Event) TableName() string { return "events" }

// Schema events collection schema. Events list by date, soonest first.
func Schema() *resource.Schema[*Event] {
	return &resource.Schema[*Event]{
		Entity:     "event",
		Title:      "Events",
		Collection: "events",
		New:        func() *Event { return &Event{} },
		Fields: []resource.Field{
			{Name: "title", Label: "Title", Kind: resource.KindText, Required: true},
			{Name: "date", Label: "Date", Kind: resource.KindDate, Required: true},
			{Name: "time", Label: "Time", Kind: resource.KindTime, Required: true},
			{Name: "location", Label: "Location", Kind: resource.KindText, Required: true},
			{Name: "type", Label: "Type", Kind: resource.KindSelect, Options: []string{"Competition", "Health", "Training"}},
			{Name: "status", Label: "Status", Kind: resource.KindSelect, Options: []string{"Upcoming", "Completed", "Cancelled"}},
			{Name: "description", Label: "Description", Kind: resource.KindTextArea},
			{Name: "participants", Label: "Participants", Kind: resource.KindList},
			{Name: "contact.name", Label: "Contact name", Kind: resource.KindText},
			{Name: "contact.email", Label: "Contact email", Kind: resource.KindEmail},
			{Name: "contact.phone", Label: "Contact phone", Kind: resource.KindText},
			{Name: "fees.entry_fee", Label: "Entry fee", Kind: resource.KindFloat},
			{Name: "fees.currency", Label: "Currency", Kind: resource.KindText, Default: "USD"},
		},
		Columns: []resource.Column[*Event]{
			{Header: "Title", Value: func(e *Event) string { return e.Title }},
			{Header: "Date", Value: func(e *Event) string { return strings.TrimSpace(e.Date + " " + e.Time) }},
			{Header: "Location", Value: func(e *Event) string { return e.Location }},
			{Header: "Type", Value: func(e *Event) string { return e.Type }},
		},
		Search: []resource.Accessor[*Event]{
			resource.Text(func(e *Event) string { return e.Title }),
			resource.Text(func(e *Event) string { return e.Location }),
		},
		Status: resource.Text(func(e *Event) string { return e.Status }),
		Statuses: resource.StatusTable{
			{Category: "upcoming", Label: "Upcoming", Tone: resource.ToneBlue},
			{Category: "open", Tone: resource.ToneGreen},
			{Category: "completed", Label: "Completed", Tone: resource.ToneGray},
			{Category: "cancelled", Tone: resource.ToneRed},
		},
		Order: resource.ByText("date", func(e *Event) string { return e.Date }),
		Summary: func(rows []*Event) []resource.Stat {
			participants := 0
			for _, e := range rows {
				participants += len(e.Participants)
			}
			return []resource.Stat{{Label: "Participants", Value: strconv.Itoa(participants)}}
		},
	}
}
