package auth

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mybrudda/MovieApp/internal/docstore"
	"github.com/mybrudda/MovieApp/internal/models"
)

// Manager holds the process-wide current session and fans out every
// change, in order, to all subscribers. It is injected, never a
// package-level singleton.
//
// State machine: SignedOut -> (login, verified) -> SignedIn;
// SignedIn -> (logout) -> SignedOut. A login against an unverified
// account never leaves SignedOut: the session is revoked on the spot and
// ErrEmailUnverified is returned.
type Manager struct {
	provider Provider
	docs     docstore.Store
	logger   zerolog.Logger

	mu      sync.Mutex
	current *models.Session
	subs    map[int]chan *models.Session
	nextSub int
}

func NewManager(provider Provider, docs docstore.Store, logger zerolog.Logger) *Manager {
	return &Manager{
		provider: provider,
		docs:     docs,
		logger:   logger,
		subs:     map[int]chan *models.Session{},
	}
}

// Current returns a snapshot of the session, or nil when signed out.
func (m *Manager) Current() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copySession(m.current)
}

// Watch subscribes to session changes. The channel immediately carries
// the state at subscription time, then every subsequent change until ctx
// is done, at which point it is closed.
func (m *Manager) Watch(ctx context.Context) <-chan *models.Session {
	ch := make(chan *models.Session, 16)

	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	ch <- copySession(m.current)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
		close(ch)
	}()

	return ch
}

func (m *Manager) Login(ctx context.Context, email, password string) (*models.Session, error) {
	sess, err := m.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !sess.EmailVerified {
		// Credentials were fine but the account is unusable; staying
		// signed out avoids a dangling authenticated-but-unusable state.
		return nil, ErrEmailUnverified
	}

	m.mu.Lock()
	m.current = copySession(sess)
	m.broadcast()
	m.mu.Unlock()

	// Side effect of the first verified login, not a precondition of it.
	MarkProfileVerified(ctx, m.docs, m.logger, sess)

	return sess, nil
}

// SignUp creates the account and its profile document. It is not a login:
// the caller decides where to route afterwards.
func (m *Manager) SignUp(ctx context.Context, email, password, displayName string) error {
	sess, err := m.provider.SignUp(ctx, email, password, displayName)
	if err != nil {
		return err
	}
	CreateProfile(ctx, m.docs, m.logger, sess, email)
	return nil
}

// Logout is idempotent: with no active session it is a no-op success.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	m.current = nil
	m.broadcast()
	return nil
}

// broadcast must run with mu held so subscribers see changes in the order
// they happen. A subscriber that stopped draining loses events rather
// than blocking everyone else.
func (m *Manager) broadcast() {
	for id, ch := range m.subs {
		select {
		case ch <- copySession(m.current):
		default:
			m.logger.Warn().Int("subscriber", id).Msg("session watcher not draining, dropping update")
		}
	}
}

func copySession(s *models.Session) *models.Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
