package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogin_ReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/candidate/login", r.URL.Path)

		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "jane@example.com", in.Email)

		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	tok, err := c.Login(context.Background(), RoleCandidate, "jane@example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "tok-123", tok)
}

func TestDo_InjectsBearerCredential(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(func() string { return "tok-abc" }))
	_, err := c.MyApplications(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestDo_NoCredentialNoHeader(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(func() string { return "" }))
	_, err := c.ListJobs(context.Background(), JobFilter{})
	require.NoError(t, err)
	require.False(t, hasAuth)
}

func TestDo_UnauthorizedInvokesHandlerOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	defer srv.Close()

	var calls int
	c := New(srv.URL)
	c.SetUnauthorizedHandler(func() { calls++ })

	_, err := c.MyApplications(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Contains(t, err.Error(), "token expired")
	require.Equal(t, 1, calls)
}

func TestDo_UnauthorizedKeepsServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), RoleCandidate, "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Invalid credentials", FailureMessage(err, "Login failed"))
}

func TestDo_ServerErrorDecodedIntoAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "already applied"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Apply(context.Background(), ApplyRequest{JobID: "j1", ResumeID: "r1"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "already applied", apiErr.Message)
	require.Equal(t, "already applied", FailureMessage(err, "fallback"))
}

func TestDo_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL)
	_, err := c.ListJobs(context.Background(), JobFilter{})
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, "fallback", FailureMessage(err, "fallback"))
}

func TestListJobs_FilterQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"_id":"j1","title":"Go Engineer"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	jobs, err := c.ListJobs(context.Background(), JobFilter{Search: "go", JobType: "full-time"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "Go Engineer", jobs[0].Title)
	require.Contains(t, gotQuery, "search=go")
	require.Contains(t, gotQuery, "jobType=full-time")
}

func TestUploadResume_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/resumes", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("resume")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "cv.pdf", header.Filename)

		_ = json.NewEncoder(w).Encode(Resume{ID: "r1", FileName: "cv.pdf"})
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(func() string { return "tok" }))
	resume, err := c.UploadResume(context.Background(), "cv.pdf", strings.NewReader("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.Equal(t, "r1", resume.ID)
}

func TestUpdateApplicationStatus_SendsStatusBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/applications/a1/status", r.URL.Path)

		var in struct {
			Status Status `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(Application{ID: "a1", Status: in.Status})
	}))
	defer srv.Close()

	c := New(srv.URL)
	app, err := c.UpdateApplicationStatus(context.Background(), "a1", StatusShortlisted)
	require.NoError(t, err)
	require.Equal(t, StatusShortlisted, app.Status)
}

func TestAdminDeleteUser_TypeQuery(t *testing.T) {
	var gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.AdminDeleteUser(context.Background(), "u9", "employer"))
	require.Equal(t, "/admin/users/u9?type=employer", gotURL)
}
