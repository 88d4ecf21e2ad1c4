// Package cli is the interactive terminal client: a REPL over the session
// store, the realtime channel, the notification feed and the REST API.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"careerhub/internal/api"
	"careerhub/internal/config"
	"careerhub/internal/logging"
	"careerhub/internal/notify"
	"careerhub/internal/realtime"
	"careerhub/internal/session"
	"careerhub/internal/store"
	"careerhub/internal/toast"
)

// pushEventName is the single push-event class the backend emits.
const pushEventName = "new_notification"

// App wires the client components together and runs the REPL.
type App struct {
	cfg *config.Config
	log logging.Logger
	out io.Writer

	creds         store.Store
	api           *api.HTTPClient
	channel       *realtime.Manager
	session       *session.Store
	notifications *notify.Aggregator
	toasts        *toast.Dispatcher

	reader *bufio.Reader

	// jobsGen guards job-list updates: a slow response superseded by a
	// newer request must not overwrite newer state.
	jobsGen    atomic.Int64
	jobsMu     sync.Mutex
	jobs       []api.Job
	resumes    []api.Resume
	apps       []api.Application
	review     []api.Application
	adminUsers []api.AdminUser
	adminJobs  []api.Job
	rendered   renderState
}

// NewApp builds a fully wired App from configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	})
	log := logging.NewSlogLogger(slog.New(handler))

	creds, err := store.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:    cfg,
		log:    log,
		out:    os.Stdout,
		creds:  creds,
		reader: bufio.NewReader(os.Stdin),
	}

	tokenSource := func() string {
		if app.session == nil {
			return ""
		}
		return app.session.Credential()
	}

	app.api = api.New(cfg.APIBaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		api.WithTokenSource(tokenSource),
		api.WithLogger(log.With("component", "api")),
	)
	app.channel = realtime.NewManager(cfg.EventsURL,
		realtime.WithTokenSource(tokenSource),
		realtime.WithNotifier(terminalNotifier{out: app.out}),
		realtime.WithLogger(log.With("component", "realtime")),
		realtime.WithBackoff(500*time.Millisecond, cfg.ReconnectMax),
	)
	app.session = session.New(app.api, creds, app.channel, log.With("component", "session"))
	app.notifications = notify.New(app.api, log.With("component", "notify"))
	app.toasts = toast.NewDispatcher()

	// Logout resets every owning component explicitly instead of relying
	// on a process restart.
	app.session.OnTeardown(app.notifications.Reset)
	app.session.OnTeardown(app.toasts.Flush)
	app.session.OnTeardown(app.clearFetched)

	// A 401 anywhere forces a logout. Asynchronous: the response that
	// tripped it may itself be inside a session operation.
	app.api.SetUnauthorizedHandler(func() {
		go app.forceLogout()
	})

	app.channel.Subscribe(pushEventName, app.onPush)
	app.toasts.OnChange(app.renderToasts)

	return app, nil
}

// Run performs the startup check and enters the REPL. It blocks until the
// user exits or ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	defer a.creds.Close()
	defer a.channel.Close()

	a.session.StartupCheck(ctx)
	if a.session.Snapshot().Authenticated {
		if err := a.notifications.CatchUp(ctx); err != nil {
			a.log.Warn(ctx, "notification catch-up failed", "error", err)
		}
	}

	return a.root(ctx)
}

// onPush merges a live push event into the feed and surfaces it as a toast.
func (a *App) onPush(ev realtime.Event) {
	var push api.PushEvent
	if err := json.Unmarshal(ev.Data, &push); err != nil {
		a.log.Warn(context.Background(), "undecodable push event", "error", err)
		return
	}
	a.notifications.OnPush(push)
	if push.Message != "" {
		a.toasts.Info(push.Message)
	}
}

func (a *App) forceLogout() {
	ctx := context.Background()
	if !a.session.Snapshot().Authenticated {
		return
	}
	a.session.Logout(ctx)
	a.toasts.Warning("Session expired, please log in again")
}

func (a *App) clearFetched() {
	a.jobsMu.Lock()
	defer a.jobsMu.Unlock()
	a.jobs = nil
	a.resumes = nil
	a.apps = nil
	a.review = nil
	a.adminUsers = nil
	a.adminJobs = nil
}
