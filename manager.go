package session

import (
	"context"
	"sync"
	"time"
)

// Listener receives a snapshot after every state transition.
type Listener func(Snapshot)

// Manager owns the client-side session state machine. It is the only
// writer of session state; guards and presentation code read snapshots
// or subscribe for changes.
//
// Exactly one operation may be in flight at a time. The guard is
// structural, not a UI convention: overlapping calls fail with
// ErrOperationInFlight and leave state untouched.
type Manager struct {
	mu        sync.Mutex
	client    Client
	store     CredentialStore
	logger    Logger
	now       func() time.Time
	startOnce sync.Once

	user      *User
	status    Status
	loading   bool
	lastError string
	inFlight  bool

	listeners map[int]Listener
	nextID    int
}

// ManagerOption customizes manager construction.
type ManagerOption func(*Manager)

// WithManagerLogger overrides the default logger.
func WithManagerLogger(logger Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithManagerClock injects a custom clock (useful for tests).
func WithManagerClock(clock func() time.Time) ManagerOption {
	return func(m *Manager) {
		if clock != nil {
			m.now = clock
		}
	}
}

func NewManager(client Client, store CredentialStore, opts ...ManagerOption) *Manager {
	m := &Manager{
		client:    client,
		store:     store,
		logger:    defLogger{},
		now:       time.Now,
		status:    StatusInitializing,
		listeners: map[int]Listener{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// Snapshot returns an immutable copy of the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	var user *User
	if m.user != nil {
		clone := *m.user
		user = &clone
	}
	return Snapshot{
		User:      user,
		Status:    m.status,
		Loading:   m.loading,
		LastError: m.lastError,
	}
}

// Subscribe registers a listener invoked after every transition. The
// returned function removes it.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// listeners run outside the lock so they can read the manager freely
func (m *Manager) notify() {
	m.mu.Lock()
	snapshot := m.snapshotLocked()
	fns := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

func (m *Manager) transition(user *User, status Status, lastError string) {
	if !status.IsAuthenticated() {
		user = nil
	}

	m.mu.Lock()
	m.user = user
	m.status = status
	m.lastError = lastError
	m.mu.Unlock()

	m.notify()
}

func (m *Manager) beginOperation() error {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return ErrOperationInFlight
	}
	m.inFlight = true
	m.loading = true
	m.mu.Unlock()

	m.notify()
	return nil
}

func (m *Manager) endOperation() {
	m.mu.Lock()
	m.inFlight = false
	m.loading = false
	m.mu.Unlock()

	m.notify()
}

// Start runs the verify-on-load sequence: load the persisted
// credential, verify it against the backend, and settle into the
// matching state. It runs at most once per manager lifetime; later
// calls are no-ops.
func (m *Manager) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		m.restoreSession(ctx)
	})
}

func (m *Manager) restoreSession(ctx context.Context) {
	if err := m.beginOperation(); err != nil {
		return
	}
	defer m.endOperation()

	token, ok := m.store.Load()
	if !ok {
		m.transition(nil, StatusUnauthenticated, "")
		return
	}

	account, err := m.client.Verify(ctx, token)
	if err != nil {
		// A failed startup verification is indistinguishable from
		// never having logged in, so the credential is dropped
		// without a visible error.
		m.logger.Debug("startup verification failed: %v", err)
		m.clearCredential()
		m.transition(nil, StatusUnauthenticated, "")
		return
	}

	user, err := account.User()
	if err != nil {
		m.logger.Warn("startup verification returned an unusable identity: %v", err)
		m.clearCredential()
		m.transition(nil, StatusUnauthenticated, "")
		return
	}

	status, _ := StatusForRole(user.Role)
	m.transition(user, status, "")
}

// SignIn authenticates with caller-supplied credentials. The role is
// part of the request, never inferred from the response. Validation
// failures are returned before any network call happens.
func (m *Manager) SignIn(ctx context.Context, payload SignInRequest) error {
	if err := payload.Validate(); err != nil {
		return NewValidationFailure(err.Error())
	}

	if err := m.beginOperation(); err != nil {
		return err
	}
	defer m.endOperation()

	account, err := m.client.Login(ctx, payload)
	if err != nil {
		m.transition(nil, StatusUnauthenticated, FailureMessage(err))
		return err
	}

	// The role comes from the request, never from the response: the
	// backend keeps student and teacher accounts under the same email
	// as distinct identities.
	user := &User{
		ID:       account.ID,
		Username: account.Username,
		Email:    account.Email,
		Role:     payload.Role,
	}

	m.persistCredential(account.TokenSession)

	status, _ := StatusForRole(payload.Role)
	m.transition(user, status, "")
	return nil
}

// SignUp registers a new account. Registration implicitly
// authenticates: the returned credential is persisted and the session
// enters the matching authenticated state, no separate login required.
func (m *Manager) SignUp(ctx context.Context, payload SignUpRequest) error {
	if err := payload.Validate(); err != nil {
		return NewValidationFailure(err.Error())
	}

	if err := m.beginOperation(); err != nil {
		return err
	}
	defer m.endOperation()

	account, err := m.client.Register(ctx, payload)
	if err != nil {
		m.transition(nil, StatusUnauthenticated, FailureMessage(err))
		return err
	}

	m.persistCredential(account.TokenSession)

	user := &User{
		ID:       account.ID,
		Username: payload.Username,
		Email:    payload.Email,
		Role:     payload.Role,
	}
	if account.Username != "" {
		user.Username = account.Username
	}
	if account.Email != "" {
		user.Email = account.Email
	}

	status, _ := StatusForRole(payload.Role)
	m.transition(user, status, "")
	return nil
}

// SignOut ends the session. The remote logout is best effort; local
// state and the stored credential are always cleared so the client
// never appears authenticated after signing out.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.beginOperation(); err != nil {
		return err
	}
	defer m.endOperation()

	if err := m.client.Logout(ctx); err != nil {
		m.logger.Error("remote logout failed: %v", err)
	}

	m.clearCredential()
	m.transition(nil, StatusUnauthenticated, "")
	return nil
}

// DeleteAccount requests removal of the current account. Local cleanup
// proceeds whatever the backend answers; the remote failure, if any, is
// returned for display.
func (m *Manager) DeleteAccount(ctx context.Context, payload DeleteAccountRequest) error {
	if err := payload.Validate(); err != nil {
		return NewValidationFailure(err.Error())
	}

	if err := m.beginOperation(); err != nil {
		return err
	}
	defer m.endOperation()

	err := m.client.DeleteAccount(ctx, payload)
	if err != nil {
		m.logger.Error("remote account deletion failed: %v", err)
	}

	m.clearCredential()
	m.transition(nil, StatusUnauthenticated, "")
	return err
}

func (m *Manager) persistCredential(token string) {
	if token == "" {
		return
	}
	ttl := credentialTTL(token, m.now())
	if err := m.store.Save(token, ttl); err != nil {
		m.logger.Error("persist credential: %v", err)
	}
}

func (m *Manager) clearCredential() {
	if err := m.store.Clear(); err != nil {
		m.logger.Error("clear credential: %v", err)
	}
}
