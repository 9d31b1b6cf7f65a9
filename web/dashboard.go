// Package web is the server-rendered admin dashboard mounted under /admin:
// one list screen per managed collection plus the profile and settings
// pages. Notices survive the post-redirect-get cycle as session flashes.
package web

import (
	"context"
	"encoding/gob"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"horseadmin/application/crud"
	profileapp "horseadmin/application/profile"
	"horseadmin/application/screen"
	settingsapp "horseadmin/application/settings"
	"horseadmin/domain/resource"
	"horseadmin/domain/shared"
	"horseadmin/infrastructure/persistence"
	"horseadmin/pkg/logger"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	sessionName = "horseadmin-session"
	tokenKey    = "token"
)

func init() {
	gob.Register(screen.Notice{})
}

type principalKey struct{}

// TokenVerifier turns the stored access token into a principal.
type TokenVerifier interface {
	Verify(raw string) (*shared.Principal, error)
}

// Options cookie and CSRF settings.
type Options struct {
	SessionSecret string
	CSRFKey       []byte // 32 bytes
	SecureCookies bool
}

// Dashboard serves the HTML admin.
type Dashboard struct {
	pages     map[string]collectionPage
	tabs      []tab
	profile   *profileapp.ApplicationService
	settings  *settingsapp.ApplicationService
	verifier  TokenVerifier
	store     *sessions.CookieStore
	templates *templateCache
	opts      Options
}

// New builds a dashboard without collections; add them with Register.
func New(verifier TokenVerifier, profile *profileapp.ApplicationService, settings *settingsapp.ApplicationService, opts Options) (*Dashboard, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	store := sessions.NewCookieStore([]byte(opts.SessionSecret))
	store.Options.Path = "/admin"
	store.Options.HttpOnly = true
	store.Options.Secure = opts.SecureCookies
	store.Options.SameSite = http.SameSiteLaxMode

	return &Dashboard{
		pages:     make(map[string]collectionPage),
		profile:   profile,
		settings:  settings,
		verifier:  verifier,
		store:     store,
		templates: templates,
		opts:      opts,
	}, nil
}

// Register adds a collection screen. Sidebar order is registration order.
func Register[R resource.Entity](d *Dashboard, service *crud.ApplicationService[R]) {
	p := newPage(service)
	d.pages[p.tab().Path] = p
	d.tabs = append(d.tabs, p.tab())
}

// Handler routes /admin/... behind CSRF protection.
func (d *Dashboard) Handler() http.Handler {
	router := mux.NewRouter()
	admin := router.PathPrefix("/admin").Subrouter()

	admin.HandleFunc("/session", d.signInForm).Methods(http.MethodGet)
	admin.HandleFunc("/session", d.signIn).Methods(http.MethodPost)

	protected := admin.NewRoute().Subrouter()
	protected.Use(d.requireSession)
	protected.HandleFunc("/", d.home).Methods(http.MethodGet)
	protected.HandleFunc("/logout", d.signOut).Methods(http.MethodPost)
	protected.HandleFunc("/profile", d.profilePage).Methods(http.MethodGet)
	protected.HandleFunc("/profile", d.saveProfile).Methods(http.MethodPost)
	protected.HandleFunc("/settings", d.settingsPage).Methods(http.MethodGet)
	protected.HandleFunc("/settings", d.saveSettings).Methods(http.MethodPost)
	protected.HandleFunc("/{collection}", d.list).Methods(http.MethodGet)
	protected.HandleFunc("/{collection}/save", d.save).Methods(http.MethodPost)
	protected.HandleFunc("/{collection}/{id}/delete", d.deletePrompt).Methods(http.MethodGet)
	protected.HandleFunc("/{collection}/{id}/delete", d.deleteConfirm).Methods(http.MethodPost)

	protect := csrf.Protect(d.opts.CSRFKey,
		csrf.Secure(d.opts.SecureCookies),
		csrf.Path("/admin"),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)
	return protect(router)
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	logger.Warn("CSRF validation failed",
		zap.String("request_id", persistence.RequestIDFromContext(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(csrf.FailureReason(r)))
	http.Error(w, "Forbidden - invalid CSRF token", http.StatusForbidden)
}

// requireSession resolves the principal from the session cookie and sends
// anonymous visitors to the sign-in page.
func (d *Dashboard) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := d.store.Get(r, sessionName)
		raw, _ := session.Values[tokenKey].(string)
		p, err := d.verifier.Verify(raw)
		if err != nil {
			if raw != "" {
				delete(session.Values, tokenKey)
				session.AddFlash(screen.Notice{Level: screen.LevelError, Text: "Your session has expired, please sign in again"})
				_ = session.Save(r, w)
			}
			http.Redirect(w, r, "/admin/session", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, p)))
	})
}

// sessionFor is the explicit session passed to every service call.
func sessionFor(r *http.Request) shared.Session {
	p, _ := r.Context().Value(principalKey{}).(*shared.Principal)
	return shared.Session{Principal: p, RequestID: persistence.RequestIDFromContext(r.Context())}
}

type pageData struct {
	Page    string
	Tabs    []tab
	Active  string
	User    string
	CSRF    template.HTML
	Notices []screen.Notice
	Data    any
}

// render shows page with any pending flashes ahead of notices.
func (d *Dashboard) render(w http.ResponseWriter, r *http.Request, status int, name, title, active string, data any, notices []screen.Notice) {
	session, _ := d.store.Get(r, sessionName)
	var all []screen.Notice
	for _, f := range session.Flashes() {
		if n, ok := f.(screen.Notice); ok {
			all = append(all, n)
		}
	}
	if err := session.Save(r, w); err != nil {
		logger.Warn("Failed to save session", zap.Error(err))
	}

	pd := &pageData{
		Page:    title,
		Active:  active,
		CSRF:    csrf.TemplateField(r),
		Notices: append(all, notices...),
		Data:    data,
	}
	if sess := sessionFor(r); sess.Authenticated() {
		pd.Tabs = d.tabs
		pd.User = sess.Principal.DisplayName()
	}
	d.templates.render(w, status, name, pd)
}

// redirect stores notices as flashes and sends the browser to target.
func (d *Dashboard) redirect(w http.ResponseWriter, r *http.Request, target string, notices ...screen.Notice) {
	session, _ := d.store.Get(r, sessionName)
	for _, n := range notices {
		session.AddFlash(n)
	}
	if err := session.Save(r, w); err != nil {
		logger.Warn("Failed to save session", zap.Error(err))
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (d *Dashboard) home(w http.ResponseWriter, r *http.Request) {
	target := "/admin/profile"
	if len(d.tabs) > 0 {
		target = "/admin/" + d.tabs[0].Path
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (d *Dashboard) signInForm(w http.ResponseWriter, r *http.Request) {
	d.render(w, r, http.StatusOK, "session.html", "Sign in", "", nil, nil)
}

func (d *Dashboard) signIn(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.PostFormValue("token"))
	p, err := d.verifier.Verify(raw)
	if err != nil {
		logger.Warn("Dashboard sign-in rejected", zap.Error(err))
		d.redirect(w, r, "/admin/session", screen.Notice{Level: screen.LevelError, Text: "Invalid access token"})
		return
	}

	session, _ := d.store.Get(r, sessionName)
	session.Values[tokenKey] = raw
	d.redirect(w, r, "/admin/", screen.Notice{Level: screen.LevelSuccess, Text: "Welcome, " + p.DisplayName()})
}

func (d *Dashboard) signOut(w http.ResponseWriter, r *http.Request) {
	session, _ := d.store.Get(r, sessionName)
	delete(session.Values, tokenKey)
	d.redirect(w, r, "/admin/session", screen.Notice{Level: screen.LevelSuccess, Text: "Signed out"})
}

func (d *Dashboard) page(w http.ResponseWriter, r *http.Request) (collectionPage, bool) {
	p, ok := d.pages[mux.Vars(r)["collection"]]
	if !ok {
		http.NotFound(w, r)
	}
	return p, ok
}

func listURL(collection, query string) string {
	target := "/admin/" + collection
	if query != "" {
		target += "?q=" + url.QueryEscape(query)
	}
	return target
}

// list GET /admin/{collection}?q=&new=1&edit={id}
func (d *Dashboard) list(w http.ResponseWriter, r *http.Request) {
	p, ok := d.page(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	v := p.view(r.Context(), sessionFor(r), listRequest{
		Query: q.Get("q"),
		New:   q.Get("new") == "1",
		Edit:  q.Get("edit"),
	})
	d.render(w, r, http.StatusOK, "list.html", v.Title, v.Collection, v, v.Notices)
}

// save POST /admin/{collection}/save
func (d *Dashboard) save(w http.ResponseWriter, r *http.Request) {
	p, ok := d.page(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	v, saved := p.save(r.Context(), sessionFor(r), r.PostForm.Get("id"), r.PostForm)
	if !saved {
		d.render(w, r, http.StatusUnprocessableEntity, "list.html", v.Title, v.Collection, v, v.Notices)
		return
	}
	d.redirect(w, r, listURL(v.Collection, v.Query), v.Notices...)
}

type deleteView struct {
	Collection string
	Entity     string
	ID         string
	Prompt     string
}

// deletePrompt GET /admin/{collection}/{id}/delete
func (d *Dashboard) deletePrompt(w http.ResponseWriter, r *http.Request) {
	p, ok := d.page(w, r)
	if !ok {
		return
	}
	t := p.tab()
	d.render(w, r, http.StatusOK, "delete.html", t.Title, t.Path, &deleteView{
		Collection: t.Path,
		Entity:     t.Entity,
		ID:         mux.Vars(r)["id"],
		Prompt:     p.prompt(),
	}, nil)
}

// deleteConfirm POST /admin/{collection}/{id}/delete with confirm=yes|no.
// Anything but yes is a declined confirmation and touches nothing.
func (d *Dashboard) deleteConfirm(w http.ResponseWriter, r *http.Request) {
	p, ok := d.page(w, r)
	if !ok {
		return
	}
	confirmed := r.PostFormValue("confirm") == "yes"
	notices := p.remove(r.Context(), sessionFor(r), mux.Vars(r)["id"], confirmed)
	d.redirect(w, r, listURL(p.tab().Path, ""), notices...)
}

type accountView struct {
	*formView
	Action string
}

func (d *Dashboard) profilePage(w http.ResponseWriter, r *http.Request) {
	form := d.profile.Form()
	var notices []screen.Notice
	values := form.Blank()
	if rec, err := d.profile.Get(r.Context(), sessionFor(r)); err != nil {
		notices = append(notices, screen.Notice{Level: screen.LevelError, Text: err.Error()})
	} else {
		values = form.Prefill(rec)
	}
	v := &accountView{formView: buildFormView("Profile", form.Fields, values, nil), Action: "/admin/profile"}
	d.render(w, r, http.StatusOK, "account.html", "Profile", "profile", v, notices)
}

func (d *Dashboard) saveProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := d.profile.Form()
	values := formValues(form.Fields, r.PostForm)

	if _, err := d.profile.Save(r.Context(), sessionFor(r), values); err != nil {
		v := &accountView{formView: buildFormView("Profile", form.Fields, values, err), Action: "/admin/profile"}
		d.render(w, r, http.StatusUnprocessableEntity, "account.html", "Profile", "profile", v,
			[]screen.Notice{{Level: screen.LevelError, Text: err.Error()}})
		return
	}
	d.redirect(w, r, "/admin/profile", screen.Notice{Level: screen.LevelSuccess, Text: "Profile updated successfully"})
}

func (d *Dashboard) settingsPage(w http.ResponseWriter, r *http.Request) {
	form := d.settings.Form()
	var notices []screen.Notice
	values := form.Blank()
	if rec, err := d.settings.Get(r.Context(), sessionFor(r)); err != nil {
		notices = append(notices, screen.Notice{Level: screen.LevelError, Text: err.Error()})
	} else {
		values = form.Prefill(rec)
	}
	v := &accountView{formView: buildFormView("Settings", form.Fields, values, nil), Action: "/admin/settings"}
	d.render(w, r, http.StatusOK, "account.html", "Settings", "settings", v, notices)
}

func (d *Dashboard) saveSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := d.settings.Form()
	values := formValues(form.Fields, r.PostForm)

	if _, err := d.settings.Save(r.Context(), sessionFor(r), values); err != nil {
		v := &accountView{formView: buildFormView("Settings", form.Fields, values, err), Action: "/admin/settings"}
		d.render(w, r, http.StatusUnprocessableEntity, "account.html", "Settings", "settings", v,
			[]screen.Notice{{Level: screen.LevelError, Text: err.Error()}})
		return
	}
	d.redirect(w, r, "/admin/settings", screen.Notice{Level: screen.LevelSuccess, Text: "Settings saved successfully"})
}
