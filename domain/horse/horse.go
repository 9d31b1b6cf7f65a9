// Package horse describes the horses collection.
package horse

import (
	"math"
	"strconv"
	"strings"

	"horseadmin/domain/resource"
)

// IdentificationDetails official identifiers of a horse.
type IdentificationDetails struct {
	ChipNumber     string `json:"chip_number"`
	PassportNumber string `json:"passport_number"`
}

// Diet feeding plan.
type Diet struct {
	FeedType    string   `json:"feed_type"`
	Supplements []string `json:"supplements,omitempty"`
}

// Horse a horse registered on the platform.
type Horse struct {
	_ struct{} `theorydb:"naming:snake_case"`
	resource.Base

	Name                  string                `json:"name" gorm:"size:255;not null"`
	Breed                 string                `json:"breed" gorm:"size:100"`
	Age                   int                   `json:"age"`
	Gender                string                `json:"gender" gorm:"size:20"`
	Color                 string                `json:"color" gorm:"size:50"`
	Status                []string              `json:"status,omitempty" gorm:"serializer:json"`
	UELN                  string                `json:"ueln" gorm:"column:ueln;size:32" theorydb:"attr:ueln"`
	IdentificationDetails IdentificationDetails `json:"identification_details" gorm:"serializer:json"`
	Diet                  Diet                  `json:"diet" gorm:"serializer:json"`
}

func (Horse) TableName() string { return "horses" }

// PrimaryStatus is the first status tag, nil when there is none.
func (h *Horse) PrimaryStatus() *string {
	if len(h.Status) == 0 {
		return nil
	}
	return &h.Status[0]
}

// Statuses health vocabulary used for badges and summary cards.
var Statuses = resource.StatusTable{
	{Category: "healthy", Label: "Healthy", Tone: resource.ToneGreen},
	{Category: "training", Label: "In Training", Tone: resource.ToneBlue},
	{Category: "resting", Tone: resource.ToneYellow},
	{Category: "injured", Tone: resource.ToneRed},
}

// Schema horses collection schema.
func Schema() *resource.Schema[*Horse] {
	return &resource.Schema[*Horse]{
		Entity:     "horse",
		Title:      "Horses",
		Collection: "horses",
		New:        func() *Horse { return &Horse{} },
		Fields: []resource.Field{
			{Name: "name", Label: "Name", Kind: resource.KindText, Required: true},
			{Name: "breed", Label: "Breed", Kind: resource.KindText, Required: true},
			{Name: "age", Label: "Age", Kind: resource.KindInt, Required: true},
			{Name: "gender", Label: "Gender", Kind: resource.KindSelect, Options: []string{"Mare", "Stallion", "Gelding"}},
			{Name: "color", Label: "Color", Kind: resource.KindText},
			{Name: "status", Label: "Status", Kind: resource.KindList, Placeholder: "healthy, training"},
			{Name: "ueln", Label: "UELN", Kind: resource.KindText},
			{Name: "identification_details.chip_number", Label: "Chip number", Kind: resource.KindText},
			{Name: "identification_details.passport_number", Label: "Passport number", Kind: resource.KindText},
			{Name: "diet.feed_type", Label: "Feed type", Kind: resource.KindText},
			{Name: "diet.supplements", Label: "Supplements", Kind: resource.KindList},
		},
		Columns: []resource.Column[*Horse]{
			{Header: "Name", Value: func(h *Horse) string { return h.Name }},
			{Header: "Breed", Value: func(h *Horse) string { return h.Breed }},
			{Header: "Age", Value: func(h *Horse) string { return strconv.Itoa(h.Age) }},
			{Header: "Gender", Value: func(h *Horse) string { return h.Gender }},
			{Header: "UELN", Value: func(h *Horse) string { return h.UELN }},
			{Header: "Tags", Value: func(h *Horse) string { return strings.Join(h.Status, ", ") }},
		},
		Search: []resource.Accessor[*Horse]{
			resource.Text(func(h *Horse) string { return h.Name }),
			resource.Text(func(h *Horse) string { return h.Breed }),
		},
		Status:   (*Horse).PrimaryStatus,
		Statuses: Statuses,
		Order:    resource.ByCreatedAt[*Horse](),
		Summary: func(rows []*Horse) []resource.Stat {
			return []resource.Stat{{Label: "Average Age", Value: strconv.Itoa(AverageAge(rows))}}
		},
	}
}

// AverageAge rounded mean age, 0 for no horses.
func AverageAge(rows []*Horse) int {
	if len(rows) == 0 {
		return 0
	}
	total := 0
	for _, h := range rows {
		total += h.Age
	}
	return int(math.Round(float64(total) / float64(len(rows))))
}
