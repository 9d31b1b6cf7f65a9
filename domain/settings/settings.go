// Package settings describes the site-wide settings record.
package settings

import (
	"horseadmin/domain/resource"
)

// GlobalID id of the singleton settings record.
const GlobalID = "global"

// Settings site configuration editable from the dashboard.
type Settings struct {
	_ struct{} `theorydb:"naming:snake_case"`
	resource.Base

	SiteName           string `json:"site_name" gorm:"size:255"`
	Timezone           string `json:"timezone" gorm:"size:16"`
	Language           string `json:"language" gorm:"size:8"`
	EmailNotifications bool   `json:"email_notifications"`
	PushNotifications  bool   `json:"push_notifications"`
}

func (Settings) TableName() string { return "settings" }

// Defaults used until settings are first saved.
func Defaults() *Settings {
	return &Settings{
		Base:               resource.Base{ID: GlobalID},
		SiteName:           "Horse Admin",
		Timezone:           "UTC",
		Language:           "en",
		EmailNotifications: true,
	}
}

// Schema settings form schema. The collection holds one record.
func Schema() *resource.Schema[*Settings] {
	return &resource.Schema[*Settings]{
		Entity:     "settings",
		Title:      "Settings",
		Collection: "settings",
		New:        func() *Settings { return &Settings{} },
		Fields: []resource.Field{
			{Name: "site_name", Label: "Site name", Kind: resource.KindText, Required: true},
			{Name: "timezone", Label: "Timezone", Kind: resource.KindSelect, Options: []string{"UTC", "EST", "PST"}},
			{Name: "language", Label: "Language", Kind: resource.KindSelect, Options: []string{"en", "es", "fr"}},
			{Name: "email_notifications", Label: "Email notifications", Kind: resource.KindBool},
			{Name: "push_notifications", Label: "Push notifications", Kind: resource.KindBool},
		},
		Order: resource.ByCreatedAt[*Settings](),
	}
}
