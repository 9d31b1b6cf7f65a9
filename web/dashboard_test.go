package web

import (
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"horseadmin/application/crud"
	profileapp "horseadmin/application/profile"
	settingsapp "horseadmin/application/settings"
	"horseadmin/domain/horse"
	"horseadmin/domain/order"
	"horseadmin/domain/settings"
	"horseadmin/domain/shared"
	"horseadmin/domain/user"
	"horseadmin/infrastructure/auth"
	"horseadmin/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var csrfField = regexp.MustCompile(`name="gorilla\.csrf\.Token" value="([^"]+)"`)

type browser struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
	horses *memory.Gateway[*horse.Horse]
	orders *memory.Gateway[*order.Order]
	token  string
}

func newBrowser(t *testing.T) *browser {
	t.Helper()
	verifier := auth.NewVerifier("test-secret", "")
	horses := memory.New(horse.Schema()).Seed(memory.DemoHorses()...)
	orders := memory.New(order.Schema())

	profiles := crud.NewApplicationService(user.Schema(), memory.New(user.Schema()))
	records := crud.NewApplicationService(settings.Schema(), memory.New(settings.Schema()))
	d, err := New(verifier,
		profileapp.NewApplicationService(profiles, shared.NoTransaction{}),
		settingsapp.NewApplicationService(records, shared.NoTransaction{}),
		Options{SessionSecret: "test-session-secret", CSRFKey: []byte("0123456789abcdef0123456789abcdef")},
	)
	require.NoError(t, err)
	Register(d, crud.NewApplicationService(horse.Schema(), horses))
	Register(d, crud.NewApplicationService(order.Schema(), orders))

	server := httptest.NewServer(d.Handler())
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	token, err := verifier.Mint(shared.Principal{ID: "u1", Name: "Jane Rider"}, time.Hour)
	require.NoError(t, err)

	return &browser{t: t, server: server, client: &http.Client{Jar: jar}, horses: horses, orders: orders, token: token}
}

func (b *browser) get(path string) (int, string) {
	b.t.Helper()
	resp, err := b.client.Get(b.server.URL + path)
	require.NoError(b.t, err)
	return read(b.t, resp)
}

// post submits form from the page at from, carrying its CSRF token.
func (b *browser) post(from, path string, form url.Values) (int, string) {
	b.t.Helper()
	_, page := b.get(from)
	m := csrfField.FindStringSubmatch(page)
	require.Len(b.t, m, 2, "no CSRF field on %s", from)
	form.Set("gorilla.csrf.Token", m[1])

	resp, err := b.client.PostForm(b.server.URL+path, form)
	require.NoError(b.t, err)
	return read(b.t, resp)
}

func (b *browser) signIn() string {
	b.t.Helper()
	status, body := b.post("/admin/session", "/admin/session", url.Values{"token": {b.token}})
	require.Equal(b.t, http.StatusOK, status)
	return body
}

func read(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func horseForm(name, age string) url.Values {
	return url.Values{"name": {name}, "breed": {"Arabian"}, "age": {age}, "status": {"Active"}}
}

func TestAnonymousVisitorIsSentToSignIn(t *testing.T) {
	b := newBrowser(t)

	status, body := b.get("/admin/horses")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Access token")
	assert.NotContains(t, body, "Thunder")
}

func TestSignInWithBadToken(t *testing.T) {
	b := newBrowser(t)

	_, body := b.post("/admin/session", "/admin/session", url.Values{"token": {"garbage"}})

	assert.Contains(t, body, "Invalid access token")
}

func TestListShowsRowsBadgesAndCards(t *testing.T) {
	b := newBrowser(t)

	body := b.signIn()

	assert.Contains(t, body, "Welcome, Jane Rider")
	assert.Contains(t, body, "Thunder")
	assert.Contains(t, body, `<span class="badge green">healthy</span>`)
	assert.Contains(t, body, "Average Age")
	assert.Contains(t, body, `class="active">Horses</a>`)
}

func TestSearchFiltersRows(t *testing.T) {
	b := newBrowser(t)
	b.signIn()

	_, body := b.get("/admin/horses?q=STORM")

	assert.Contains(t, body, "Storm")
	assert.NotContains(t, body, "Thunder")
	assert.Contains(t, body, "1 shown")
}

func TestCreateHorse(t *testing.T) {
	b := newBrowser(t)
	b.signIn()

	status, body := b.post("/admin/horses?new=1", "/admin/horses/save", horseForm("Comet", "5"))

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Horse created successfully")
	assert.Contains(t, body, "Comet")
	assert.NotContains(t, body, `class="modal"`)
}

func TestInvalidInputKeepsFormOpen(t *testing.T) {
	b := newBrowser(t)
	b.signIn()

	status, body := b.post("/admin/horses?new=1", "/admin/horses/save", horseForm("Comet", "five"))

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, `class="modal"`)
	assert.Contains(t, body, `value="Comet"`)
	assert.Contains(t, body, "age must be a whole number")
}

func TestEditVanishedHorse(t *testing.T) {
	b := newBrowser(t)
	b.signIn()
	_, page := b.get("/admin/horses?edit=nope")
	assert.Contains(t, page, "not found")

	status, body := b.post("/admin/horses", "/admin/horses/save", url.Values{
		"id": {"nope"}, "name": {"Ghost"}, "breed": {"Unknown"}, "age": {"3"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, "not found")
}

func TestEditKeepsUnlistedSelectValues(t *testing.T) {
	b := newBrowser(t)
	b.signIn()
	rec := &order.Order{OrderNumber: "ORD-7", CustomerName: "Ann", Status: "completed"}
	rec.ID = "o-7"
	rec.UserID = "u1"
	b.orders.Seed(rec)

	status, page := b.get("/admin/orders?edit=o-7")

	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, page, `<option value="completed" selected>completed</option>`)
	assert.NotContains(t, page, `<option value="pending" selected>`)
	assert.Contains(t, page, `<option value="" selected>(none)</option>`, "empty payment status stays empty")
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	b := newBrowser(t)
	b.signIn()
	thunder := memory.DemoHorses()[0]
	rows, err := b.horses.List(t.Context(), shared.Session{}, horse.Schema().ListOptions())
	require.NoError(t, err)
	var id string
	for _, r := range rows {
		if r.Name == thunder.Name {
			id = r.ID
		}
	}
	require.NotEmpty(t, id)
	prompt := "/admin/horses/" + id + "/delete"

	_, body := b.get(prompt)
	assert.Contains(t, body, "Are you sure you want to delete this horse?")

	_, body = b.post(prompt, prompt, url.Values{"confirm": {"no"}})
	assert.Contains(t, body, "Thunder")
	assert.NotContains(t, body, "deleted successfully")

	_, body = b.post(prompt, prompt, url.Values{"confirm": {"yes"}})
	assert.Contains(t, body, "Horse deleted successfully")
	assert.NotContains(t, body, "<td>Thunder</td>")
}

func TestFetchFailureShowsNotice(t *testing.T) {
	b := newBrowser(t)
	b.signIn()
	b.orders.FailList = errors.New("connection refused")

	status, body := b.get("/admin/orders")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Error fetching orders")
	assert.Contains(t, body, "No Orders found.")
}

func TestProfileAndSettingsPages(t *testing.T) {
	b := newBrowser(t)
	b.signIn()

	_, body := b.get("/admin/profile")
	assert.Contains(t, body, `value="Jane Rider"`)
	assert.NotContains(t, body, `name="verified"`)

	_, body = b.post("/admin/profile", "/admin/profile", url.Values{"name": {"Jane R."}, "username": {"jane"}})
	assert.Contains(t, body, "Profile updated successfully")
	assert.Contains(t, body, `value="Jane R."`)

	_, body = b.post("/admin/settings", "/admin/settings", url.Values{
		"site_name": {"Stable HQ"}, "timezone": {"PST"}, "language": {"en"}, "push_notifications": {"true"},
	})
	assert.Contains(t, body, "Settings saved successfully")
	assert.Contains(t, body, `value="Stable HQ"`)

	status, body := b.post("/admin/settings", "/admin/settings", url.Values{"site_name": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, "site_name is required")
}

func TestPostWithoutCSRFTokenIsRejected(t *testing.T) {
	b := newBrowser(t)
	b.signIn()

	resp, err := b.client.PostForm(b.server.URL+"/admin/horses/save", horseForm("Sneaky", "3"))
	require.NoError(t, err)
	status, _ := read(t, resp)

	assert.Equal(t, http.StatusForbidden, status)
}

func TestSignOut(t *testing.T) {
	b := newBrowser(t)
	b.signIn()

	_, body := b.post("/admin/horses", "/admin/logout", url.Values{})
	assert.Contains(t, body, "Signed out")

	_, body = b.get("/admin/horses")
	assert.Contains(t, body, "Access token")
	assert.False(t, strings.Contains(body, "Thunder"))
}
