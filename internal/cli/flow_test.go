package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerhub/internal/api"
	"careerhub/internal/logging"
	"careerhub/internal/notify"
	"careerhub/internal/session"
	"careerhub/internal/toast"
)

// jobBoard is a minimal httptest backend for the candidate flow:
// register, browse, apply, list applications.
func jobBoard(t *testing.T, token string) *httptest.Server {
	t.Helper()

	job := api.Job{
		ID:          "j1",
		Title:       "Backend Engineer",
		CompanyName: "Acme",
		Location:    "Remote",
		JobType:     "full-time",
		SalaryRange: &api.SalaryRange{Min: 80000, Max: 120000},
	}
	resume := api.Resume{ID: "r1", FileName: "cv.pdf", CreatedAt: time.Now()}
	var applications []api.Application

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/candidate/register", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": token})
	})
	mux.HandleFunc("GET /api/jobs", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]api.Job{job})
	})
	mux.HandleFunc("GET /api/resumes/my", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]api.Resume{resume})
	})
	mux.HandleFunc("POST /api/applications", func(w http.ResponseWriter, r *http.Request) {
		var req api.ApplyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "j1", req.JobID)
		assert.Equal(t, "r1", req.ResumeID)
		app := api.Application{
			ID:        "a1",
			Job:       &job,
			Status:    api.StatusApplied,
			Resume:    &resume,
			AppliedAt: time.Now(),
		}
		applications = append(applications, app)
		json.NewEncoder(w).Encode(app)
	})
	mux.HandleFunc("GET /api/applications/my", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(applications)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCandidateFlow(t *testing.T) {
	srv := jobBoard(t, signedToken(t))

	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("hunter2"), nil }
	t.Cleanup(func() { readPassword = orig })

	// register (role default, name, email), browse, apply (resume default,
	// no cover letter), list applications, exit.
	script := strings.Join([]string{
		"register",
		"", // role: default candidate
		"Alice",
		"alice@example.com",
		"jobs",
		"apply 1",
		"", // resume: default first
		"", // cover letter: none
		"applications",
		"exit",
	}, "\n") + "\n"

	out := &bytes.Buffer{}
	app := &App{
		log:    logging.NewNop(),
		out:    out,
		reader: bufio.NewReader(strings.NewReader(script)),
		toasts: toast.NewDispatcher(),
	}
	client := api.New(srv.URL+"/api", api.WithTokenSource(func() string {
		return app.session.Credential()
	}))
	app.api = client
	app.session = session.New(client, newMemStore(), fakeChannel{}, logging.NewNop())
	app.notifications = notify.New(client, logging.NewNop())
	app.toasts.OnChange(app.renderToasts)

	ctx := context.Background()
	app.session.StartupCheck(ctx)
	require.NoError(t, app.root(ctx))

	s := out.String()
	assert.Contains(t, s, "Account created")
	assert.Contains(t, s, "Backend Engineer — Acme")
	assert.Contains(t, s, "$80,000 - $120,000")
	assert.Contains(t, s, `Applied to "Backend Engineer"`)
	assert.Contains(t, s, "Applied") // status badge label
	assert.Contains(t, s, "alice@example.com")
}

func TestAdminCommands(t *testing.T) {
	var deletedUserQuery string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/employer/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": signedAdminToken(t)})
	})
	mux.HandleFunc("GET /api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]api.AdminUser{
			{ID: "u9", Name: "Bob", Email: "bob@example.com", Type: "candidate"},
		})
	})
	mux.HandleFunc("GET /api/admin/jobs", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]api.Job{
			{ID: "j9", Title: "Data Analyst", CompanyName: "Initech"},
		})
	})
	mux.HandleFunc("DELETE /api/admin/users/u9", func(w http.ResponseWriter, r *http.Request) {
		deletedUserQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	out := &bytes.Buffer{}
	app := &App{
		log:    logging.NewNop(),
		out:    out,
		reader: bufio.NewReader(strings.NewReader("")),
		toasts: toast.NewDispatcher(),
	}
	client := api.New(srv.URL+"/api", api.WithTokenSource(func() string {
		return app.session.Credential()
	}))
	app.api = client
	app.session = session.New(client, newMemStore(), fakeChannel{}, logging.NewNop())
	app.notifications = notify.New(client, logging.NewNop())
	app.toasts.OnChange(app.renderToasts)

	ctx := context.Background()
	result := app.session.Login(ctx, api.RoleEmployer, "root@example.com", "pw")
	require.True(t, result.OK)
	require.True(t, result.IsAdmin)

	app.admin(ctx, []string{"users"})
	app.admin(ctx, []string{"jobs"})
	app.admin(ctx, []string{"rmuser", "1"})

	s := out.String()
	assert.Contains(t, s, "bob@example.com")
	assert.Contains(t, s, "Data Analyst — Initech")
	assert.Contains(t, s, "Deleted bob@example.com")
	assert.Equal(t, "type=candidate", deletedUserQuery)
}
