// Package user describes member profiles.
package user

import (
	"horseadmin/domain/resource"
)

// Profile public profile of a platform member. The id equals the auth
// provider's user id.
type Profile struct {
	_ struct{} `theorydb:"naming:snake_case"`
	resource.Base

	Name     string `json:"name" gorm:"size:255"`
	Username string `json:"username" gorm:"size:100;index"`
	Location string `json:"location" gorm:"size:255"`
	Bio      string `json:"bio" gorm:"type:text"`
	Website  string `json:"website" gorm:"size:255"`
	Verified bool   `json:"verified"`
}

func (Profile) TableName() string { return "profiles" }

// VerificationStatus is "verified" or "unverified".
func (p *Profile) VerificationStatus() *string {
	s := "unverified"
	if p.Verified {
		s = "verified"
	}
	return &s
}

// Fields profile form, shared by the users screen and the profile page.
var Fields = []resource.Field{
	{Name: "name", Label: "Full name", Kind: resource.KindText, Required: true},
	{Name: "username", Label: "Username", Kind: resource.KindText, Required: true},
	{Name: "location", Label: "Location", Kind: resource.KindText},
	{Name: "bio", Label: "Bio", Kind: resource.KindTextArea},
	{Name: "website", Label: "Website", Kind: resource.KindURL, Placeholder: "https://"},
	{Name: "verified", Label: "Verified", Kind: resource.KindBool},
}

// Schema profiles collection schema.
func Schema() *resource.Schema[*Profile] {
	return &resource.Schema[*Profile]{
		Entity:     "user",
		Title:      "Users",
		Collection: "profiles",
		New:        func() *Profile { return &Profile{} },
		Fields:     Fields,
		Columns: []resource.Column[*Profile]{
			{Header: "Name", Value: func(p *Profile) string { return p.Name }},
			{Header: "Username", Value: func(p *Profile) string { return "@" + p.Username }},
			{Header: "Location", Value: func(p *Profile) string { return p.Location }},
			{Header: "Joined", Value: func(p *Profile) string { return p.CreatedAt.Format("2006-01-02") }},
		},
		Search: []resource.Accessor[*Profile]{
			resource.Text(func(p *Profile) string { return p.Name }),
			resource.Text(func(p *Profile) string { return p.Username }),
		},
		Status: (*Profile).VerificationStatus,
		Statuses: resource.StatusTable{
			{Category: "verified", Label: "Verified", Tone: resource.ToneGreen},
			{Category: "unverified", Tone: resource.ToneGray},
		},
		Order: resource.ByCreatedAt[*Profile](),
	}
}
