package web

import (
	"slices"

	"horseadmin/application/screen"
	"horseadmin/domain/resource"
)

type badge struct {
	Text string
	Tone resource.Tone
}

type rowView struct {
	ID     string
	Cells  []string
	Status *badge
}

type fieldView struct {
	Name        string
	Label       string
	Input       string // text, textarea, email, url, number, checkbox, date, time, select
	Step        string
	Value       string
	Checked     bool
	Options     []string
	Required    bool
	Placeholder string
	Invalid     bool
}

type formView struct {
	Title  string
	Target string
	Fields []fieldView
	Error  string
}

type listView struct {
	Collection string
	Title      string
	Entity     string
	Query      string
	Headers    []string
	HasStatus  bool
	Rows       []rowView
	Total      int
	Stats      []resource.Stat
	Form       *formView
	Notices    []screen.Notice
}

func buildListView[R resource.Entity](scr *screen.Screen[R]) *listView {
	schema := scr.Schema()
	v := &listView{
		Collection: schema.Collection,
		Title:      schema.Title,
		Entity:     schema.Entity,
		Query:      scr.Search(),
		HasStatus:  schema.Status != nil,
		Stats:      scr.Stats(),
		Notices:    scr.Notices(),
	}
	for _, c := range schema.Columns {
		v.Headers = append(v.Headers, c.Header)
	}

	rows := scr.Rows()
	v.Total = len(rows)
	for _, r := range rows {
		row := rowView{ID: r.GetID()}
		for _, c := range schema.Columns {
			row.Cells = append(row.Cells, c.Value(r))
		}
		if v.HasStatus {
			text := scr.StatusText(r)
			if text == "" {
				text = string(resource.CategoryUnknown)
			}
			row.Status = &badge{Text: text, Tone: scr.Tone(r)}
		}
		v.Rows = append(v.Rows, row)
	}

	if scr.Mode() != screen.Idle {
		title := "Add " + schema.EntityTitle()
		if scr.Mode() == screen.Editing {
			title = "Edit " + schema.EntityTitle()
		}
		v.Form = buildFormView(title, schema.Fields, scr.Values(), scr.FormError())
		v.Form.Target = scr.Target()
	}
	return v
}

func buildFormView(title string, fields []resource.Field, values resource.Values, err error) *formView {
	invalid := resource.FieldOf(err)
	f := &formView{Title: title}
	if err != nil {
		f.Error = err.Error()
	}
	for _, field := range fields {
		fv := fieldView{
			Name:        field.Name,
			Label:       field.Label,
			Value:       values.Get(field.Name),
			Options:     field.Options,
			Required:    field.Required,
			Placeholder: field.Placeholder,
			Invalid:     field.Name == invalid,
		}
		fv.Input, fv.Step = inputType(field.Kind)
		switch field.Kind {
		case resource.KindBool:
			fv.Checked = fv.Value == "true"
		case resource.KindSelect:
			fv.Options = selectOptions(field, fv.Value)
		}
		f.Fields = append(f.Fields, fv)
	}
	return f
}

// selectOptions keeps a stored value the schema does not list, so an
// unchanged save writes back what was read.
func selectOptions(field resource.Field, value string) []string {
	var extra []string
	if !field.Required {
		extra = append(extra, "")
	}
	if value != "" && !slices.Contains(field.Options, value) {
		extra = append(extra, value)
	}
	return slices.Concat(extra, field.Options)
}

func inputType(k resource.Kind) (input, step string) {
	switch k {
	case resource.KindTextArea, resource.KindJSON:
		return "textarea", ""
	case resource.KindEmail:
		return "email", ""
	case resource.KindURL:
		return "url", ""
	case resource.KindInt:
		return "number", "1"
	case resource.KindFloat:
		return "number", "any"
	case resource.KindBool:
		return "checkbox", ""
	case resource.KindDate:
		return "date", ""
	case resource.KindTime:
		return "time", ""
	case resource.KindSelect:
		return "select", ""
	default:
		return "text", ""
	}
}
