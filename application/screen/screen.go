// Package screen holds the state of one managed list screen: the rows
// fetched from the store, the search term, the create/edit form and the
// notices produced along the way.
//
// A Screen lives for one request. Load fetches the list; at most one
// mutation and one reload follow. Store failures never escape as panics or
// half-updated state: a failed fetch leaves zero rows and an error notice,
// a failed submit leaves the form open with the submitted values.
package screen

import (
	"context"
	"errors"

	"horseadmin/application/crud"
	"horseadmin/domain/resource"
	"horseadmin/domain/shared"
	"horseadmin/pkg/logger"

	"go.uber.org/zap"
)

// Mode of the form modal.
type Mode int

const (
	Idle Mode = iota
	Creating
	Editing
)

func (m Mode) String() string {
	switch m {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	default:
		return "idle"
	}
}

// Level of a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice a transient message for the user.
type Notice struct {
	Level Level
	Text  string
}

// ErrNoForm is returned by Submit when no form is open.
var ErrNoForm = errors.New("no form is open")

// Screen is the state machine behind one list screen.
type Screen[R resource.Entity] struct {
	service  *crud.ApplicationService[R]
	schema   *resource.Schema[R]
	reloader resource.Reloader[R]
	sess     shared.Session

	rows   []R
	search string

	mode     Mode
	targetID string
	values   resource.Values
	formErr  error

	notices []Notice
}

// Option customizes a Screen.
type Option[R resource.Entity] func(*Screen[R])

// WithReloader replaces the default full re-fetch after mutations.
func WithReloader[R resource.Entity](r resource.Reloader[R]) Option[R] {
	return func(s *Screen[R]) { s.reloader = r }
}

// New binds a screen to service for the acting session.
func New[R resource.Entity](service *crud.ApplicationService[R], sess shared.Session, opts ...Option[R]) *Screen[R] {
	s := &Screen[R]{
		service: service,
		schema:  service.Schema(),
		sess:    sess,
	}
	s.reloader = resource.FullReload[R]{Gateway: service.Gateway(), Options: s.schema.ListOptions()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schema of the bound collection.
func (s *Screen[R]) Schema() *resource.Schema[R] { return s.schema }

// Load fetches the full list. On failure the screen shows no rows and an
// error notice; the error is returned for logging only.
func (s *Screen[R]) Load(ctx context.Context) error {
	rows, err := s.service.Gateway().List(ctx, s.sess, s.schema.ListOptions())
	if err != nil {
		s.rows = nil
		s.fail("list", err)
		return err
	}
	s.rows = rows
	return nil
}

// SetSearch sets the filter term.
func (s *Screen[R]) SetSearch(term string) { s.search = term }

// Search returns the filter term.
func (s *Screen[R]) Search() string { return s.search }

// All returns every loaded row in list order.
func (s *Screen[R]) All() []R { return s.rows }

// Rows returns the loaded rows matching the search term, in list order.
func (s *Screen[R]) Rows() []R {
	return resource.Filter(s.rows, s.search, s.schema.Search...)
}

// Stats summary cards over every loaded row.
func (s *Screen[R]) Stats() []resource.Stat { return s.schema.Stats(s.rows) }

// Category of row's status.
func (s *Screen[R]) Category(row R) resource.Category {
	if s.schema.Status == nil {
		return resource.CategoryUnknown
	}
	return resource.Categorize(s.schema.Status(row), s.schema.Statuses)
}

// Tone badge color of row's status.
func (s *Screen[R]) Tone(row R) resource.Tone {
	return s.schema.Statuses.Tone(s.Category(row))
}

// StatusText raw status of row, "" when absent.
func (s *Screen[R]) StatusText(row R) string {
	if s.schema.Status == nil {
		return ""
	}
	if v := s.schema.Status(row); v != nil {
		return *v
	}
	return ""
}

// Mode of the form modal.
func (s *Screen[R]) Mode() Mode { return s.mode }

// Values current form contents, nil when idle.
func (s *Screen[R]) Values() resource.Values { return s.values }

// Target id of the record being edited, "" otherwise.
func (s *Screen[R]) Target() string { return s.targetID }

// FormError the last submit failure while the form is open.
func (s *Screen[R]) FormError() error { return s.formErr }

// Notices accumulated since the screen was built.
func (s *Screen[R]) Notices() []Notice { return s.notices }

// OpenCreate opens an empty form with default values.
func (s *Screen[R]) OpenCreate() {
	s.mode = Creating
	s.targetID = ""
	s.values = s.schema.Blank()
	s.formErr = nil
}

// OpenEdit opens the form pre-filled from the loaded row id.
func (s *Screen[R]) OpenEdit(id string) error {
	for _, r := range s.rows {
		if r.GetID() == id {
			s.mode = Editing
			s.targetID = id
			s.values = s.schema.Prefill(r)
			s.formErr = nil
			return nil
		}
	}
	err := shared.NewNotFoundError(s.schema.Entity)
	s.notify(LevelError, err.Error())
	return err
}

// Cancel closes the form and discards its contents.
func (s *Screen[R]) Cancel() {
	s.mode = Idle
	s.targetID = ""
	s.values = nil
	s.formErr = nil
}

// Submit builds a payload from values and creates or updates the record.
// On success the rows are reloaded and the form closes. On any failure
// the form stays open holding values.
func (s *Screen[R]) Submit(ctx context.Context, values resource.Values) error {
	if s.mode == Idle {
		return ErrNoForm
	}
	s.values = values

	rec, err := s.schema.Payload(values)
	if err != nil {
		s.formErr = err
		s.notify(LevelError, err.Error())
		return err
	}

	m := resource.Mutation[R]{Record: rec}
	if s.mode == Creating {
		m.Op = resource.OpCreate
		rec, err = s.service.Create(ctx, s.sess, rec)
		m.ID = rec.GetID()
	} else {
		m.Op = resource.OpUpdate
		m.ID = s.targetID
		rec, err = s.service.Update(ctx, s.sess, s.targetID, rec)
	}
	if err != nil {
		s.formErr = err
		s.fail(m.Op, err)
		return err
	}
	m.Record = rec

	s.Cancel()
	s.notify(LevelSuccess, s.schema.EntityTitle()+" "+pastTense[m.Op]+" successfully")
	s.reload(ctx, m)
	return nil
}

// DeletePrompt the question shown before deleting.
func (s *Screen[R]) DeletePrompt() string {
	return "Are you sure you want to delete this " + s.schema.Entity + "?"
}

// Delete removes record id once confirm accepts DeletePrompt. A nil or
// declining confirm makes no store call and leaves the rows as they are.
func (s *Screen[R]) Delete(ctx context.Context, id string, confirm func(prompt string) bool) (bool, error) {
	if confirm == nil || !confirm(s.DeletePrompt()) {
		return false, nil
	}
	if err := s.service.Delete(ctx, s.sess, id); err != nil {
		s.fail(resource.OpDelete, err)
		return false, err
	}
	s.notify(LevelSuccess, s.schema.EntityTitle()+" deleted successfully")
	s.reload(ctx, resource.Mutation[R]{Op: resource.OpDelete, ID: id})
	return true, nil
}

var pastTense = map[string]string{
	resource.OpCreate: "created",
	resource.OpUpdate: "updated",
	resource.OpDelete: "deleted",
}

func (s *Screen[R]) reload(ctx context.Context, m resource.Mutation[R]) {
	rows, err := s.reloader.Reload(ctx, s.sess, s.rows, m)
	if err != nil {
		s.rows = nil
		s.fail("list", err)
		return
	}
	s.rows = rows
}

func (s *Screen[R]) fail(op string, err error) {
	logger.Warn("screen operation failed",
		zap.String("request_id", s.sess.RequestID),
		zap.String("entity", s.schema.Entity),
		zap.String("op", op),
		zap.Error(err))
	s.notify(LevelError, err.Error())
}

func (s *Screen[R]) notify(level Level, text string) {
	s.notices = append(s.notices, Notice{Level: level, Text: text})
}
