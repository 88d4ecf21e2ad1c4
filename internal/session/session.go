// Package session owns the client's authentication state: the decoded
// identity, the persisted credential, and the lifecycle of the realtime
// channel keyed by that identity.
//
// The session store is the sole writer of both process-wide mutable
// resources (identity and the channel handle). Its public operations are
// serialized, and each awaits the previous channel teardown before opening
// a new connection, so two connections never coexist.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"careerhub/internal/api"
	"careerhub/internal/logging"
	"careerhub/internal/store"
	"careerhub/internal/token"
)

// AuthAPI is the slice of the REST client the session store needs.
type AuthAPI interface {
	Login(ctx context.Context, role api.Role, email, password string) (string, error)
	Register(ctx context.Context, role api.Role, req api.RegisterRequest) (string, error)
}

// Channel is the realtime connection the session opens and closes.
type Channel interface {
	Open(ctx context.Context, subjectID string)
	Close()
}

// Snapshot is the read-only view handed to observers.
type Snapshot struct {
	Identity      *token.Identity
	Authenticated bool
	Loading       bool
}

// Result is the outcome of a login or register attempt. Failures carry a
// human-readable message; transport errors never escape as errors.
type Result struct {
	OK      bool
	IsAdmin bool
	Message string
}

// Store is the process-wide session state.
type Store struct {
	auth    AuthAPI
	creds   store.Store
	channel Channel
	log     logging.Logger

	// opMu serializes the public operations (startup check, login,
	// register, logout) with respect to each other and to channel
	// open/close.
	opMu sync.Mutex

	// mu guards the state fields below.
	mu            sync.Mutex
	identity      *token.Identity
	authenticated bool
	loading       bool
	credential    string

	teardowns []func()
	observers []func(Snapshot)
}

// New creates a session store in the loading state; callers run
// StartupCheck to resolve it.
func New(auth AuthAPI, creds store.Store, channel Channel, log logging.Logger) *Store {
	return &Store{
		auth:    auth,
		creds:   creds,
		channel: channel,
		log:     log,
		loading: true,
	}
}

// OnChange registers an observer invoked with a snapshot after every state
// change.
func (s *Store) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// OnTeardown registers a reset func run on logout, after session state is
// cleared. This is how dependent components (notification feed, toast
// queue) drop their state without relying on a process restart.
func (s *Store) OnTeardown(fn func()) {
	s.mu.Lock()
	s.teardowns = append(s.teardowns, fn)
	s.mu.Unlock()
}

// Credential returns the current bearer credential, or "" when
// unauthenticated. Used as the token source for the REST client and the
// realtime channel.
func (s *Store) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential
}

// Snapshot returns the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	var id *token.Identity
	if s.identity != nil {
		copied := *s.identity
		id = &copied
	}
	return Snapshot{Identity: id, Authenticated: s.authenticated, Loading: s.loading}
}

// StartupCheck resolves the initial session from the persisted credential,
// if any. A corrupt stored credential is self-healing: it is purged and the
// session comes up unauthenticated, never panicking. The loading flag is
// cleared on every exit path.
func (s *Store) StartupCheck(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	defer s.finishLoading()

	stored, err := s.creds.Get(ctx, store.KeyToken)
	if err != nil {
		s.log.Error(ctx, "reading stored credential", "error", err)
		return
	}
	if len(stored) == 0 {
		return
	}

	identity, err := token.Decode(string(stored))
	if err != nil {
		s.log.Warn(ctx, "stored credential undecodable, logging out", "error", err)
		s.purgeCredential(ctx)
		return
	}

	s.mu.Lock()
	s.identity = &identity
	s.authenticated = true
	s.credential = string(stored)
	s.mu.Unlock()

	s.channel.Open(ctx, identity.SubjectID)
	s.log.Info(ctx, "session restored", "subject", identity.SubjectID, "role", identity.Role)
}

// Login authenticates against the role-appropriate endpoint. On success the
// credential is persisted, the session becomes authenticated, and the
// realtime channel is opened under the new identity. On failure the session
// is left untouched and the result carries a human-readable message.
func (s *Store) Login(ctx context.Context, role api.Role, email, password string) Result {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	credential, err := s.auth.Login(ctx, role, email, password)
	if err != nil {
		return Result{Message: api.FailureMessage(err, "Login failed")}
	}
	return s.establish(ctx, credential, email, "Login failed")
}

// Register creates an account and establishes a session from the returned
// credential, with the same contract as Login.
func (s *Store) Register(ctx context.Context, role api.Role, profile api.RegisterRequest) Result {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	credential, err := s.auth.Register(ctx, role, profile)
	if err != nil {
		return Result{Message: api.FailureMessage(err, "Registration failed")}
	}
	return s.establish(ctx, credential, profile.Email, "Registration failed")
}

// establish decodes and persists a freshly issued credential and brings the
// session up under it. Caller holds opMu.
func (s *Store) establish(ctx context.Context, credential, email, fallback string) Result {
	identity, err := token.Decode(credential)
	if err != nil {
		// The server issued something the client cannot read; treat it as
		// a failed attempt rather than corrupting session state.
		s.log.Error(ctx, "issued credential undecodable", "error", err)
		return Result{Message: fallback}
	}
	if identity.Email == "" {
		identity.Email = email
	}

	if err := s.creds.Set(ctx, store.KeyToken, []byte(credential)); err != nil {
		s.log.Error(ctx, "persisting credential", "error", err)
	}
	if data, err := json.Marshal(identity); err == nil {
		if err := s.creds.Set(ctx, store.KeyIdentity, data); err != nil {
			s.log.Error(ctx, "persisting identity", "error", err)
		}
	}

	s.mu.Lock()
	s.identity = &identity
	s.authenticated = true
	s.credential = credential
	s.mu.Unlock()

	s.channel.Open(ctx, identity.SubjectID)
	s.notifyObservers()

	s.log.Info(ctx, "session established", "subject", identity.SubjectID, "role", identity.Role)
	return Result{OK: true, IsAdmin: identity.IsAdmin}
}

// Logout tears down the realtime channel, purges the persisted credential,
// clears the session and runs the registered teardown list. Safe to call
// when already logged out.
func (s *Store) Logout(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	// Channel first: no pushes may arrive for an identity that is being
	// discarded.
	s.channel.Close()
	s.purgeCredential(ctx)

	s.mu.Lock()
	s.identity = nil
	s.authenticated = false
	s.credential = ""
	teardowns := make([]func(), len(s.teardowns))
	copy(teardowns, s.teardowns)
	s.mu.Unlock()

	for _, fn := range teardowns {
		fn()
	}
	s.notifyObservers()
	s.log.Info(ctx, "session cleared")
}

func (s *Store) purgeCredential(ctx context.Context) {
	if err := s.creds.Delete(ctx, store.KeyToken); err != nil {
		s.log.Error(ctx, "purging credential", "error", err)
	}
	if err := s.creds.Delete(ctx, store.KeyIdentity); err != nil {
		s.log.Error(ctx, "purging identity", "error", err)
	}
}

func (s *Store) finishLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	s.notifyObservers()
}

func (s *Store) notifyObservers() {
	s.mu.Lock()
	observers := make([]func(Snapshot), len(s.observers))
	copy(observers, s.observers)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}
