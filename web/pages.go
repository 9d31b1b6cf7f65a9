package web

import (
	"context"
	"net/url"

	"horseadmin/application/crud"
	"horseadmin/application/screen"
	"horseadmin/domain/resource"
	"horseadmin/domain/shared"
)

// tab is one sidebar entry.
type tab struct {
	Path   string
	Title  string
	Entity string
}

// listRequest is what the list page was asked to show.
type listRequest struct {
	Query string
	New   bool
	Edit  string
}

// collectionPage hides the record type of a managed collection from the
// HTTP handlers.
type collectionPage interface {
	tab() tab
	view(ctx context.Context, sess shared.Session, req listRequest) *listView
	save(ctx context.Context, sess shared.Session, id string, form url.Values) (*listView, bool)
	remove(ctx context.Context, sess shared.Session, id string, confirmed bool) []screen.Notice
	prompt() string
}

type page[R resource.Entity] struct {
	service *crud.ApplicationService[R]
}

func newPage[R resource.Entity](service *crud.ApplicationService[R]) collectionPage {
	return &page[R]{service: service}
}

func (p *page[R]) tab() tab {
	s := p.service.Schema()
	return tab{Path: s.Collection, Title: s.Title, Entity: s.Entity}
}

// The page is redrawn from scratch after a redirect, so the in-request
// reload only patches the rows it already holds.
func (p *page[R]) screen(sess shared.Session) *screen.Screen[R] {
	return screen.New(p.service, sess, screen.WithReloader[R](resource.LocalPatch[R]{Order: p.service.Schema().Order}))
}

func (p *page[R]) view(ctx context.Context, sess shared.Session, req listRequest) *listView {
	scr := screen.New(p.service, sess)
	_ = scr.Load(ctx)
	scr.SetSearch(req.Query)
	switch {
	case req.Edit != "":
		_ = scr.OpenEdit(req.Edit)
	case req.New:
		scr.OpenCreate()
	}
	return buildListView(scr)
}

// save submits form as a create (id == "") or an update. ok reports
// success; on failure the returned view keeps the form open.
func (p *page[R]) save(ctx context.Context, sess shared.Session, id string, form url.Values) (*listView, bool) {
	scr := p.screen(sess)
	_ = scr.Load(ctx)
	scr.SetSearch(form.Get("q"))
	if id == "" {
		scr.OpenCreate()
	} else if err := scr.OpenEdit(id); err != nil {
		return buildListView(scr), false
	}

	if err := scr.Submit(ctx, formValues(p.service.Schema().Fields, form)); err != nil {
		return buildListView(scr), false
	}
	return buildListView(scr), true
}

func (p *page[R]) remove(ctx context.Context, sess shared.Session, id string, confirmed bool) []screen.Notice {
	scr := p.screen(sess)
	_, _ = scr.Delete(ctx, id, func(string) bool { return confirmed })
	return scr.Notices()
}

func (p *page[R]) prompt() string {
	return screen.New(p.service, shared.Session{}).DeletePrompt()
}

// formValues keeps only declared fields. Unchecked boxes are absent from
// a posted form and read as "".
func formValues(fields []resource.Field, form url.Values) resource.Values {
	out := make(resource.Values, len(fields))
	for _, f := range fields {
		out[f.Name] = form.Get(f.Name)
	}
	return out
}
