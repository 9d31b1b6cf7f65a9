// Package notification describes broadcast notifications.
package notification

import (
	"strconv"

	"horseadmin/domain/resource"
)

// Notification a message broadcast to a group of users.
type Notification struct {
	_ struct{} `theorydb:"naming:snake_case"`
	resource.Base

	Title      string `json:"title" gorm:"size:255;not null"`
	Message    string `json:"message" gorm:"type:text"`
	Type       string `json:"type" gorm:"size:32"`
	Recipients string `json:"recipients" gorm:"size:32"`
	Status     string `json:"status" gorm:"size:32"`
	SentAt     string `json:"sent_at" gorm:"size:32"`
	ReadCount  int    `json:"read_count"`
}

func (Notification) TableName() string { return "notifications" }

// Schema notifications collection schema.
func Schema() *resource.Schema[*Notification] {
	return &resource.Schema[*Notification]{
		Entity:     "notification",
		Title:      "Notifications",
		Collection: "notifications",
		New:        func() *Notification { return &Notification{} },
		Fields: []resource.Field{
			{Name: "title", Label: "Title", Kind: resource.KindText, Required: true},
			{Name: "message", Label: "Message", Kind: resource.KindTextArea, Required: true},
			{Name: "type", Label: "Type", Kind: resource.KindSelect, Options: []string{"event", "product", "system"}},
			{Name: "recipients", Label: "Recipients", Kind: resource.KindSelect, Options: []string{"all_users", "subscribers", "admins"}},
			{Name: "status", Label: "Status", Kind: resource.KindSelect, Options: []string{"draft", "scheduled", "sent"}},
			{Name: "sent_at", Label: "Sent at", Kind: resource.KindText, Placeholder: "2024-05-01 09:00"},
			{Name: "read_count", Label: "Reads", Kind: resource.KindInt},
		},
		Columns: []resource.Column[*Notification]{
			{Header: "Title", Value: func(n *Notification) string { return n.Title }},
			{Header: "Type", Value: func(n *Notification) string { return n.Type }},
			{Header: "Recipients", Value: func(n *Notification) string { return n.Recipients }},
			{Header: "Sent", Value: func(n *Notification) string { return n.SentAt }},
			{Header: "Reads", Value: func(n *Notification) string { return strconv.Itoa(n.ReadCount) }},
		},
		Search: []resource.Accessor[*Notification]{
			resource.Text(func(n *Notification) string { return n.Title }),
			resource.Text(func(n *Notification) string { return n.Message }),
		},
		Status: resource.Text(func(n *Notification) string { return n.Status }),
		Statuses: resource.StatusTable{
			{Category: "sent", Label: "Sent", Tone: resource.ToneGreen},
			{Category: "scheduled", Label: "Scheduled", Tone: resource.ToneBlue},
			{Category: "draft", Label: "Drafts", Tone: resource.ToneGray},
		},
		Order: resource.ByCreatedAt[*Notification](),
		Summary: func(rows []*Notification) []resource.Stat {
			reads := 0
			for _, n := range rows {
				reads += n.ReadCount
			}
			return []resource.Stat{{Label: "Total Reads", Value: strconv.Itoa(reads)}}
		},
	}
}
