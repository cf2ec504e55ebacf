package echoapi

import (
	"context"
	"sync"
	"time"

	"github.com/peerclass/peerclass/core"
	"github.com/peerclass/peerclass/core/user"
	"github.com/peerclass/peerclass/core/workspace"
	restapi "github.com/peerclass/peerclass/storage/rest"
)

// PlatformClient is the slice of the platform client the session layer
// needs; restapi.Client satisfies it, tests swap in a fake.
type PlatformClient interface {
	Login(ctx context.Context, username, password string) (user.User, error)
	Repositories() workspace.Repositories
	Token() string
	TokenExpired() bool
}

type (
	// Session holds one authenticated user's workspace for the lifetime
	// of their platform token. Nothing in it survives a logout.
	Session struct {
		Client    PlatformClient
		Workspace *workspace.Workspace

		openedAt time.Time
	}

	// SessionManager keeps the live sessions keyed by their platform
	// access token. It is safe for concurrent use.
	SessionManager struct {
		conf *core.Config

		mutex    sync.RWMutex
		sessions map[string]*Session

		// newClient is swapped in tests
		newClient func() PlatformClient
	}
)

func NewSessionManager(conf *core.Config) *SessionManager {
	return &SessionManager{
		conf:      conf,
		sessions:  make(map[string]*Session),
		newClient: func() PlatformClient { return restapi.NewClient(conf) },
	}
}

// Open logs in against the platform, wires a workspace for the account
// behind the credentials and loads every collection. The returned token
// identifies the session on subsequent requests.
func (m *SessionManager) Open(ctx context.Context, username, password string) (*Session, string, error) {
	client := m.newClient()
	usr, err := client.Login(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	sess := &Session{
		Client:    client,
		Workspace: workspace.New(usr, client.Repositories()),
		openedAt:  time.Now(),
	}
	if err = sess.Workspace.RefreshAll(ctx); err != nil {
		return nil, "", err
	}

	token := client.Token()
	m.mutex.Lock()
	m.sessions[token] = sess
	m.mutex.Unlock()
	return sess, token, nil
}

// Get returns the live session behind a token. Expired sessions are
// evicted and reported as unauthorized.
func (m *SessionManager) Get(token string) (*Session, error) {
	m.mutex.RLock()
	sess, ok := m.sessions[token]
	m.mutex.RUnlock()
	if !ok {
		return nil, errUnauthorized
	}
	if sess.expired(m.conf.Server.SessionTTL) {
		m.Close(token)
		return nil, errSessionExpired
	}
	return sess, nil
}

// Close drops the session; the platform token itself is not revoked
// (the platform offers no revocation endpoint).
func (m *SessionManager) Close(token string) {
	m.mutex.Lock()
	delete(m.sessions, token)
	m.mutex.Unlock()
}

func (s *Session) expired(ttl time.Duration) bool {
	if s.Client.TokenExpired() {
		return true
	}
	return ttl > 0 && time.Since(s.openedAt) > ttl
}
