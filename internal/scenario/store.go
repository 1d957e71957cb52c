package scenario

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one user's scenario exploration for one chamber, addressable by
// a server-issued UUID so a dashboard can persist the id in a shareable URL.
type Session struct {
	ID        string
	Engine    *Engine
	CreatedAt time.Time
	UpdatedAt time.Time

	mu sync.Mutex
}

// Update runs fn with the session's engine under the session lock. The engine
// itself is lock-free, so all mutation goes through here.
func (s *Session) Update(fn func(*Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.Engine)
	s.UpdatedAt = time.Now()
}

// View runs fn with the engine under the lock without bumping UpdatedAt.
func (s *Session) View(fn func(*Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.Engine)
}

// SessionStore holds live scenario sessions in memory. Sessions are cheap (a
// sparse map each) but unbounded growth from drive-by traffic is not, so
// sessions idle past the TTL are dropped on lookup and swept whenever a new
// session is created.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

const defaultSessionTTL = 24 * time.Hour

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a new session around the given engine and returns it.
func (st *SessionStore) Create(engine *Engine) *Session {
	now := time.Now()
	session := &Session{
		ID:        uuid.New().String(),
		Engine:    engine,
		CreatedAt: now,
		UpdatedAt: now,
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.pruneLocked(now)
	st.sessions[session.ID] = session
	return session
}

// Get returns the session, or nil if it does not exist or has sat idle past
// the TTL. Expiry is checked here as well as on create, so a store that only
// ever serves reads still honors the TTL.
func (st *SessionStore) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	session, ok := st.sessions[id]
	if !ok {
		return nil
	}
	if time.Since(session.UpdatedAt) > st.ttl {
		delete(st.sessions, id)
		return nil
	}
	return session
}

// Len reports the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *SessionStore) pruneLocked(now time.Time) {
	for id, s := range st.sessions {
		if now.Sub(s.UpdatedAt) > st.ttl {
			delete(st.sessions, id)
		}
	}
}
