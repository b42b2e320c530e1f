package session

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Session is an authenticated user. A Session is only meaningful when both
// fields are set.
type Session struct {
	Token    string `toml:"token"`
	Username string `toml:"username"`
}

// Valid reports whether both fields are present.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.Token) != "" && strings.TrimSpace(s.Username) != ""
}

// Persister stores a session between runs.
type Persister interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// Manager holds the in-memory session and keeps the persisted copy in step.
type Manager struct {
	mu      sync.RWMutex
	current Session
	store   Persister
	log     logrus.FieldLogger
}

// NewManager returns a Manager backed by store. A nil store keeps the
// session in memory only.
func NewManager(store Persister, log logrus.FieldLogger) *Manager {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Manager{store: store, log: log}
}

// Login sets the session and persists it. If persisting fails the in-memory
// session stays set and the error is returned.
func (m *Manager) Login(token, username string) error {
	s := Session{Token: strings.TrimSpace(token), Username: strings.TrimSpace(username)}
	if !s.Valid() {
		return fmt.Errorf("login: token and username are required")
	}
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	if m.store == nil {
		return nil
	}
	if err := m.store.Save(s); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	m.log.WithField("username", s.Username).Info("session started")
	return nil
}

// Logout clears the session in memory and on disk.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.current = Session{}
	m.mu.Unlock()

	if m.store == nil {
		return nil
	}
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.log.Info("session ended")
	return nil
}

// LoadSession restores the persisted session. Partial or unreadable state
// counts as no session.
func (m *Manager) LoadSession() (Session, bool) {
	var s Session
	if m.store != nil {
		loaded, err := m.store.Load()
		if err != nil {
			m.log.WithError(err).Warn("unable to read persisted session")
		} else {
			s = loaded
		}
	}
	if !s.Valid() {
		s = Session{}
	}
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return s, s.Valid()
}

// Current returns the active session, if any.
func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.current.Valid()
}

// Token returns the active token or "".
func (m *Manager) Token() string {
	s, _ := m.Current()
	return s.Token
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.Current()
	return ok
}
