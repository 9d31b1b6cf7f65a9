package resource

import "strings"

// Category is the normalized form of a free-text status.
type Category string

// CategoryUnknown is returned for nil, empty or unrecognized statuses.
const CategoryUnknown Category = "unknown"

// Tone is the badge color a category renders with.
type Tone string

const (
	ToneGreen  Tone = "green"
	ToneBlue   Tone = "blue"
	ToneYellow Tone = "yellow"
	ToneRed    Tone = "red"
	ToneGray   Tone = "gray"
)

// StatusEntry declares one known category.
type StatusEntry struct {
	Category Category
	Label    string // summary card label; empty hides the card
	Tone     Tone
}

// StatusTable is the ordered vocabulary of a resource's status field.
type StatusTable []StatusEntry

// Categorize maps status onto table. It is total: every input, nil included,
// yields exactly one category.
func Categorize(status *string, table StatusTable) Category {
	if status == nil {
		return CategoryUnknown
	}
	s := strings.TrimSpace(*status)
	for _, e := range table {
		if strings.EqualFold(s, string(e.Category)) {
			return e.Category
		}
	}
	return CategoryUnknown
}

// Tone returns the badge tone of c, gray when c is not in the table.
func (t StatusTable) Tone(c Category) Tone {
	for _, e := range t {
		if e.Category == c {
			return e.Tone
		}
	}
	return ToneGray
}
