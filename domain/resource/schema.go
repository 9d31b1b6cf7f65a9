package resource

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"horseadmin/domain/shared"
)

// Kind selects how a form value is rendered and coerced.
type Kind int

const (
	KindText Kind = iota
	KindTextArea
	KindEmail
	KindURL
	KindInt
	KindFloat
	KindBool
	KindDate // 2006-01-02
	KindTime // 15:04
	KindSelect
	KindList // comma separated tokens
	KindJSON
)

// Field is one form input. Name is the dotted JSON path of the attribute,
// e.g. "diet.feed_type".
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Nullable    bool // empty input stores null instead of ""
	Options     []string
	Default     string
	Placeholder string
}

// Column is one table column.
type Column[R any] struct {
	Header string
	Value  func(R) string
}

// Order is the list order of a collection.
type Order[R any] struct {
	Column    string
	Ascending bool
	Compare   func(a, b R) int // ascending comparison on Column
}

// Cmp compares a and b in list order, for slices.SortStableFunc.
func (o Order[R]) Cmp(a, b R) int {
	c := o.Compare(a, b)
	if !o.Ascending {
		return -c
	}
	return c
}

// Stat is one summary card.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Schema describes one managed collection. Every screen, gateway and
// controller is driven by it.
type Schema[R Entity] struct {
	Entity     string // singular, lower case: "horse"
	Title      string // "Horses"
	Collection string // table / collection name
	New        func() R

	Fields  []Field
	Columns []Column[R]

	Search   []Accessor[R]
	Status   Accessor[R]
	Statuses StatusTable

	Order Order[R]

	// OwnerScoped collections are listed, updated and deleted only for the
	// acting principal. R must implement Owned.
	OwnerScoped bool

	// Stamp fills attributes derived from the session on create and update.
	Stamp func(R, shared.Session)

	// Summary returns extra cards beyond the total and per-status counts.
	Summary func([]R) []Stat
}

// Validate checks the schema is usable. Called once at registration.
func (s *Schema[R]) Validate() error {
	if s.Entity == "" || s.Collection == "" {
		return fmt.Errorf("schema: entity and collection are required")
	}
	if s.New == nil {
		return fmt.Errorf("schema %s: New is required", s.Entity)
	}
	if s.Order.Compare == nil {
		return fmt.Errorf("schema %s: Order.Compare is required", s.Entity)
	}
	if s.OwnerScoped {
		if _, ok := any(s.New()).(Owned); !ok {
			return fmt.Errorf("schema %s: owner scoped records must implement Owned", s.Entity)
		}
	}
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if seen[f.Name] {
			return fmt.Errorf("schema %s: duplicate field %q", s.Entity, f.Name)
		}
		seen[f.Name] = true
		if f.Kind == KindSelect && len(f.Options) == 0 {
			return fmt.Errorf("schema %s: select field %q has no options", s.Entity, f.Name)
		}
	}
	return nil
}

// ListOptions returns the declared list order.
func (s *Schema[R]) ListOptions() ListOptions {
	return ListOptions{OrderBy: s.Order.Column, Ascending: s.Order.Ascending}
}

// Field returns the field named name.
func (s *Schema[R]) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Stats computes the summary cards for rows.
func (s *Schema[R]) Stats(rows []R) []Stat {
	stats := []Stat{{Label: "Total " + s.Title, Value: strconv.Itoa(len(rows))}}
	if s.Status != nil {
		counts := make(map[Category]int, len(s.Statuses))
		for _, r := range rows {
			counts[Categorize(s.Status(r), s.Statuses)]++
		}
		for _, e := range s.Statuses {
			if e.Label == "" {
				continue
			}
			stats = append(stats, Stat{Label: e.Label, Value: strconv.Itoa(counts[e.Category])})
		}
	}
	if s.Summary != nil {
		stats = append(stats, s.Summary(rows)...)
	}
	return stats
}

// ByCreatedAt orders newest first.
func ByCreatedAt[R Entity]() Order[R] {
	return Order[R]{
		Column:    "created_at",
		Ascending: false,
		Compare: func(a, b R) int {
			return a.GetCreatedAt().Compare(b.GetCreatedAt())
		},
	}
}

// ByText orders ascending on a string attribute.
func ByText[R Entity](column string, get func(R) string) Order[R] {
	return Order[R]{
		Column:    column,
		Ascending: true,
		Compare: func(a, b R) int {
			return cmp.Compare(get(a), get(b))
		},
	}
}

// Owner returns the acting principal id for owner-scoped schemas, "" otherwise.
func (s *Schema[R]) Owner(sess shared.Session) (string, error) {
	if !s.OwnerScoped {
		return "", nil
	}
	if !sess.Authenticated() {
		return "", shared.NewUnauthorizedError(s.Entity)
	}
	return sess.UserID(), nil
}

// StampOwner sets user_id on owner-scoped records.
func (s *Schema[R]) StampOwner(rec R, owner string) {
	if !s.OwnerScoped {
		return
	}
	if o, ok := any(rec).(Owned); ok {
		o.SetUserID(owner)
	}
}

// EntityTitle is the capitalized entity name used in notices: "Horse".
func (s *Schema[R]) EntityTitle() string {
	r, size := utf8.DecodeRuneInString(s.Entity)
	return string(unicode.ToUpper(r)) + strings.ToLower(s.Entity[size:])
}

// Money formats an amount in dollars.
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
