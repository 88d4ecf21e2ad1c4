package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerhub/internal/api"
	"careerhub/internal/logging"
	"careerhub/internal/notify"
	"careerhub/internal/realtime"
	"careerhub/internal/session"
	"careerhub/internal/toast"
)

func signedToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{"id": "u1", "role": "candidate"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func signedAdminToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{"id": "adm1", "role": "employer", "isAdmin": true, "email": "root@example.com"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func eventWithPayload(t *testing.T, push api.PushEvent) realtime.Event {
	t.Helper()
	data, err := json.Marshal(push)
	require.NoError(t, err)
	return realtime.Event{Name: pushEventName, Data: data}
}

func rawEvent(s string) realtime.Event {
	return realtime.Event{Name: pushEventName, Data: []byte(s)}
}

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) { return m.data[key], nil }
func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}
func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}
func (m *memStore) Clear(_ context.Context) error {
	m.data = map[string][]byte{}
	return nil
}
func (m *memStore) Close() error { return nil }

type fakeAuth struct {
	token string
	err   error
}

func (f *fakeAuth) Login(context.Context, api.Role, string, string) (string, error) {
	return f.token, f.err
}
func (f *fakeAuth) Register(context.Context, api.Role, api.RegisterRequest) (string, error) {
	return f.token, f.err
}

type fakeChannel struct{}

func (fakeChannel) Open(context.Context, string) {}
func (fakeChannel) Close()                       {}

type fakeNotifyAPI struct {
	items []api.Notification
}

func (f *fakeNotifyAPI) Notifications(context.Context) ([]api.Notification, error) {
	return f.items, nil
}
func (f *fakeNotifyAPI) MarkNotificationRead(context.Context, string) error { return nil }

func testApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	app := &App{
		log:    logging.NewNop(),
		out:    out,
		reader: bufio.NewReader(strings.NewReader("")),
		toasts: toast.NewDispatcher(),
	}
	app.session = session.New(&fakeAuth{}, newMemStore(), fakeChannel{}, logging.NewNop())
	app.session.StartupCheck(context.Background())
	app.notifications = notify.New(&fakeNotifyAPI{}, logging.NewNop())
	return app, out
}

func TestPromptAnonymous(t *testing.T) {
	app, _ := testApp(t)
	assert.Equal(t, "careerhub > ", app.prompt())
}

func TestPromptShowsIdentityAndUnread(t *testing.T) {
	app, _ := testApp(t)

	app.notifications.OnPush(api.PushEvent{Message: "hello"})
	app.notifications.OnPush(api.PushEvent{Message: "again"})

	auth := &fakeAuth{token: signedToken(t)}
	app.session = session.New(auth, newMemStore(), fakeChannel{}, logging.NewNop())
	result := app.session.Login(context.Background(), api.RoleCandidate, "alice@example.com", "pw")
	require.True(t, result.OK)

	p := app.prompt()
	assert.Contains(t, p, "alice@example.com")
	assert.Contains(t, p, "candidate")
	assert.Contains(t, p, "[2]")
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	app, out := testApp(t)
	assert.False(t, app.requireAuth())
	assert.Contains(t, out.String(), "Please log in first.")
}

func TestRenderToastsPrintsEachOnce(t *testing.T) {
	app, out := testApp(t)

	toasts := []toast.Toast{
		{ID: "1", Message: "first", Severity: toast.SeveritySuccess},
		{ID: "2", Message: "second", Severity: toast.SeverityError},
	}
	app.renderToasts(toasts)
	app.renderToasts(toasts)

	s := out.String()
	assert.Equal(t, 1, strings.Count(s, "first"))
	assert.Equal(t, 1, strings.Count(s, "second"))
}

func TestTerminalNotifier(t *testing.T) {
	out := &bytes.Buffer{}
	terminalNotifier{out: out}.Notify("New Job Application", "Bob applied")
	assert.Contains(t, out.String(), "New Job Application")
	assert.Contains(t, out.String(), "Bob applied")
}

func TestJobAtBounds(t *testing.T) {
	app, _ := testApp(t)
	app.jobs = []api.Job{{ID: "j1", Title: "Backend Engineer"}}

	job, ok := app.jobAt("1")
	require.True(t, ok)
	assert.Equal(t, "j1", job.ID)

	_, ok = app.jobAt("2")
	assert.False(t, ok)
	_, ok = app.jobAt("0")
	assert.False(t, ok)
	_, ok = app.jobAt("x")
	assert.False(t, ok)
}

func TestClearFetched(t *testing.T) {
	app, _ := testApp(t)
	app.jobs = []api.Job{{ID: "j1"}}
	app.resumes = []api.Resume{{ID: "r1"}}
	app.review = []api.Application{{ID: "a1"}}

	app.clearFetched()

	assert.Nil(t, app.jobs)
	assert.Nil(t, app.resumes)
	assert.Nil(t, app.review)
}

func TestOnPushSurfacesToast(t *testing.T) {
	app, out := testApp(t)
	app.toasts.OnChange(app.renderToasts)

	app.onPush(eventWithPayload(t, api.PushEvent{Message: "New job posted"}))

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "New job posted")
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, app.notifications.Unread())
}

func TestOnPushIgnoresGarbage(t *testing.T) {
	app, _ := testApp(t)
	app.onPush(rawEvent("not json"))
	assert.Zero(t, app.notifications.Unread())
}
