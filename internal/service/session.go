package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
	obserrors "github.com/favoriteblog/blog-ui/internal/observability/errors"
	"github.com/favoriteblog/blog-ui/internal/observability/metrics"
	"github.com/favoriteblog/blog-ui/internal/observability/statsd"
	"github.com/favoriteblog/blog-ui/internal/ports"
	"github.com/favoriteblog/blog-ui/internal/validation"
)

const (
	defaultRestoreTimeout = 10 * time.Second
	defaultLogoutTimeout  = 5 * time.Second
)

// ErrSuperseded is returned by Login and Register when a more recently started
// operation committed first; the late result is discarded.
var ErrSuperseded = &apperrors.AppError{
	Code:    apperrors.ErrCodeCanceled,
	Message: "A newer sign-in or sign-out replaced this request",
}

// SessionStoreOptions groups dependencies for SessionStore.
type SessionStoreOptions struct {
	API         ports.AuthAPI
	Credentials ports.CredentialStore
	Logger      *slog.Logger
	// RestoreTimeout bounds the /auth/me call made by Restore (default 10s).
	RestoreTimeout time.Duration
	// LogoutTimeout bounds the fire-and-forget server logout (default 5s).
	LogoutTimeout time.Duration
	Now           func() time.Time
	// Metrics is optional.
	Metrics statsd.Sink
}

type persistAction int

const (
	persistNone persistAction = iota
	persistSave
	persistClear
)

type observerEntry struct {
	id uint64
	fn ports.SessionObserver
}

// SessionStore is the single source of truth for who is using the application.
// It owns the bearer credential and keeps durable storage and memory in step.
type SessionStore struct {
	api            ports.AuthAPI
	creds          ports.CredentialStore
	logger         *slog.Logger
	restoreTimeout time.Duration
	logoutTimeout  time.Duration
	now            func() time.Time
	metrics        statsd.Sink

	// commitMu serializes persistence, transition and notification.
	commitMu sync.Mutex

	mu             sync.RWMutex
	session        domainauth.Session
	credential     string
	seq            uint64
	committedSeq   uint64
	restoreStarted bool
	observers      []observerEntry
	nextObserver   uint64

	background sync.WaitGroup
}

// NewSessionStore constructs a store in the Loading state. Call Restore once at startup.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	if opts.API == nil {
		panic("AuthAPI is required")
	}
	if opts.Credentials == nil {
		panic("CredentialStore is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	restoreTimeout := opts.RestoreTimeout
	if restoreTimeout <= 0 {
		restoreTimeout = defaultRestoreTimeout
	}
	logoutTimeout := opts.LogoutTimeout
	if logoutTimeout <= 0 {
		logoutTimeout = defaultLogoutTimeout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SessionStore{
		api:            opts.API,
		creds:          opts.Credentials,
		logger:         logger.With("component", "session"),
		metrics:        opts.Metrics,
		restoreTimeout: restoreTimeout,
		logoutTimeout:  logoutTimeout,
		now:            now,
		session:        domainauth.Loading(),
	}
}

// Session returns the current snapshot.
func (s *SessionStore) Session() domainauth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Evaluate applies the access policy to the current snapshot.
func (s *SessionStore) Evaluate(req domainauth.Requirement) domainauth.Decision {
	return domainauth.Evaluate(s.Session(), req)
}

// Allows reports whether the current snapshot is granted req.
func (s *SessionStore) Allows(req domainauth.Requirement) bool {
	return s.Evaluate(req) == domainauth.DecisionGranted
}

// Credential returns the bearer credential while authenticated.
// Only the API transport should call this.
func (s *SessionStore) Credential() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.session.IsAuthenticated() || s.credential == "" {
		return "", false
	}
	return s.credential, true
}

// Subscribe registers fn to be called synchronously after every committed
// transition. fn must not call mutating SessionStore methods.
func (s *SessionStore) Subscribe(fn ports.SessionObserver) (unsubscribe func()) {
	s.mu.Lock()
	s.nextObserver++
	id := s.nextObserver
	s.observers = append(s.observers, observerEntry{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Restore resolves the persisted credential into a session. Only the first call
// does any work; later calls return the current snapshot.
func (s *SessionStore) Restore(ctx context.Context) domainauth.Session {
	s.mu.Lock()
	if s.restoreStarted {
		snap := s.session
		s.mu.Unlock()
		return snap
	}
	s.restoreStarted = true
	s.seq++
	op := s.seq
	s.mu.Unlock()

	next, credential, persist := s.resolveStored(ctx)
	if _, err := s.commit(ctx, commitParams{op: op, next: next, credential: credential, persist: persist}); err != nil {
		// Only saves can fail a commit and restore never saves.
		s.logger.ErrorContext(ctx, "restore commit failed", "error", err)
	}
	return s.Session()
}

func (s *SessionStore) resolveStored(ctx context.Context) (domainauth.Session, string, persistAction) {
	credential, ok, err := s.creds.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "load persisted credential failed",
			"error", err, "error_type", obserrors.Classify(err))
		return domainauth.Anonymous(), "", persistClear
	}
	if !ok || credential == "" {
		return domainauth.Anonymous(), "", persistNone
	}
	if domainauth.CredentialExpired(credential, s.now()) {
		s.logger.InfoContext(ctx, "persisted credential expired; discarding")
		return domainauth.Anonymous(), "", persistClear
	}

	meCtx, cancel := context.WithTimeout(ctx, s.restoreTimeout)
	defer cancel()
	identity, err := s.api.Me(meCtx, credential)
	if err != nil && ctx.Err() != nil {
		// Shutting down mid-restore says nothing about the credential; keep it for next start.
		s.logger.InfoContext(ctx, "restore canceled; keeping persisted credential", "error", err)
		return domainauth.Anonymous(), "", persistNone
	}
	if err != nil {
		s.logger.InfoContext(ctx, "persisted credential not accepted; starting anonymous",
			"error", err, "error_type", obserrors.Classify(err))
		return domainauth.Anonymous(), "", persistClear
	}
	if !identity.Role.Valid() {
		s.logger.WarnContext(ctx, "identity without valid role; starting anonymous", "role", identity.Role)
		return domainauth.Anonymous(), "", persistClear
	}
	return domainauth.Authenticated(identity), credential, persistNone
}

// Login validates the form, authenticates against the API and on success
// persists the credential and transitions to Authenticated.
// Failures leave the session unchanged; apperrors.UserMessage gives the text to display.
func (s *SessionStore) Login(ctx context.Context, email, password string) (domainauth.Identity, error) {
	if err := validation.Login(email, password); err != nil {
		return domainauth.Identity{}, err
	}

	op := s.begin()
	res, err := s.api.Login(ctx, ports.LoginInput{Email: email, Password: password})
	metrics.EmitAuthAttempt(s.metrics, "login", err)
	if err != nil {
		s.logger.InfoContext(ctx, "login rejected", "error", err, "error_type", obserrors.Classify(err))
		return domainauth.Identity{}, fmt.Errorf("login: %w", err)
	}
	return s.establish(ctx, op, res)
}

// Register creates an account and then behaves like a successful Login.
func (s *SessionStore) Register(ctx context.Context, email, password, name string) (domainauth.Identity, error) {
	if err := validation.Register(name, email, password); err != nil {
		return domainauth.Identity{}, err
	}

	op := s.begin()
	res, err := s.api.Register(ctx, ports.RegisterInput{Name: name, Email: email, Password: password})
	metrics.EmitAuthAttempt(s.metrics, "register", err)
	if err != nil {
		s.logger.InfoContext(ctx, "registration rejected", "error", err, "error_type", obserrors.Classify(err))
		return domainauth.Identity{}, fmt.Errorf("register: %w", err)
	}
	return s.establish(ctx, op, res)
}

func (s *SessionStore) establish(ctx context.Context, op uint64, res ports.AuthResult) (domainauth.Identity, error) {
	if res.Credential == "" {
		return domainauth.Identity{}, apperrors.Internal("authentication response did not include a token")
	}
	if !res.Identity.Role.Valid() {
		return domainauth.Identity{}, apperrors.Internalf("authentication response has invalid role %q", res.Identity.Role)
	}

	previous, _ := s.Credential()
	applied, err := s.commit(ctx, commitParams{
		op:         op,
		next:       domainauth.Authenticated(res.Identity),
		credential: res.Credential,
		persist:    persistSave,
	})
	if err != nil {
		s.revokeAsync(res.Credential)
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Could not save your session")
	}
	if !applied {
		s.revokeAsync(res.Credential)
		return domainauth.Identity{}, ErrSuperseded
	}
	if previous != "" && previous != res.Credential {
		s.revokeAsync(previous)
	}
	return res.Identity, nil
}

// Logout clears the persisted credential and transitions to Anonymous without
// waiting for the network. Server-side invalidation is attempted in the background.
func (s *SessionStore) Logout(ctx context.Context) {
	op := s.begin()
	previous, _ := s.Credential()
	if _, err := s.commit(ctx, commitParams{op: op, next: domainauth.Anonymous(), persist: persistClear}); err != nil {
		s.logger.ErrorContext(ctx, "logout commit failed", "error", err)
	}
	if previous != "" {
		s.revokeAsync(previous)
	}
}

// Refresh re-fetches the identity for the current credential (role or profile
// change). A rejected credential invalidates the session; network failures leave it as is.
// The result only applies while credential is still current, so a refresh never
// supersedes a login, registration or logout started after it.
func (s *SessionStore) Refresh(ctx context.Context) (domainauth.Session, error) {
	credential, ok := s.Credential()
	if !ok {
		return s.Session(), apperrors.Unauthorized("Please log in")
	}

	identity, err := s.api.Me(ctx, credential)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			s.Invalidate(ctx, credential)
		}
		return s.Session(), fmt.Errorf("refresh session: %w", err)
	}
	if !identity.Role.Valid() {
		return s.Session(), apperrors.Internalf("identity has invalid role %q", identity.Role)
	}

	if _, err := s.commit(ctx, commitParams{
		next:       domainauth.Authenticated(identity),
		credential: credential,
		guard: func() bool {
			return s.credential == credential && s.session.IsAuthenticated()
		},
	}); err != nil {
		return s.Session(), err
	}
	return s.Session(), nil
}

// Invalidate handles a 401 for credential. It transitions to Anonymous only when
// credential is still the current one, so it applies at most once per credential.
func (s *SessionStore) Invalidate(ctx context.Context, credential string) bool {
	if credential == "" {
		return false
	}
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.RLock()
	match := s.credential == credential && s.session.IsAuthenticated()
	s.mu.RUnlock()
	if !match {
		return false
	}

	s.clearPersisted(ctx)
	s.apply(ctx, domainauth.Anonymous(), "", 0)
	s.logger.InfoContext(ctx, "credential rejected by API; session invalidated")
	return true
}

// Wait blocks until background server logouts have finished.
func (s *SessionStore) Wait() {
	s.background.Wait()
}

func (s *SessionStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

type commitParams struct {
	// op is the sequence number from begin; zero commits on guard alone.
	op         uint64
	next       domainauth.Session
	credential string
	persist    persistAction
	// guard, when set, is evaluated under the state lock and must hold for the commit to apply.
	guard func() bool
}

// commit applies p if no newer operation has committed. Persistence happens
// before the in-memory transition; a failed save aborts the transition.
func (s *SessionStore) commit(ctx context.Context, p commitParams) (bool, error) {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.RLock()
	stale := p.op != 0 && p.op <= s.committedSeq
	if !stale && p.guard != nil {
		stale = !p.guard()
	}
	s.mu.RUnlock()
	if stale {
		s.logger.DebugContext(ctx, "discarding superseded session result", "op", p.op)
		return false, nil
	}

	switch p.persist {
	case persistSave:
		if err := s.creds.Save(context.WithoutCancel(ctx), p.credential); err != nil {
			return false, fmt.Errorf("persist credential: %w", err)
		}
	case persistClear:
		s.clearPersisted(ctx)
	case persistNone:
	}

	s.apply(ctx, p.next, p.credential, p.op)
	return true, nil
}

func (s *SessionStore) clearPersisted(ctx context.Context) {
	if err := s.creds.Clear(context.WithoutCancel(ctx)); err != nil {
		s.logger.ErrorContext(ctx, "clear persisted credential failed",
			"error", err, "error_type", obserrors.Classify(err))
	}
}

// apply must be called with commitMu held. op of zero leaves committedSeq untouched.
func (s *SessionStore) apply(ctx context.Context, next domainauth.Session, credential string, op uint64) {
	s.mu.Lock()
	prev := s.session
	s.session = next
	s.credential = credential
	if op > s.committedSeq {
		s.committedSeq = op
	}
	observers := append([]observerEntry(nil), s.observers...)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "session transition",
		"from", prev.State.String(),
		"to", next.State.String(),
		"user_id", next.Identity.ID,
		"role", string(next.Identity.Role),
	)
	metrics.EmitSessionTransition(s.metrics, metrics.Transition{
		From: prev.State.String(),
		To:   next.State.String(),
		Role: string(next.Identity.Role),
	})
	for _, o := range observers {
		o.fn(next)
	}
}

func (s *SessionStore) revokeAsync(credential string) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.logoutTimeout)
		defer cancel()
		if err := s.api.Logout(ctx, credential); err != nil {
			s.logger.DebugContext(ctx, "server logout failed", "error", err, "error_type", obserrors.Classify(err))
		}
	}()
}
