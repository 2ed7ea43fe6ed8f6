// session/session.go
package session

import (
	"sync"
	"time"

	"github.com/tabuparty/gameserver/network"
)

// Session is one live connection. The ClientID it carries is advisory
// bookkeeping for disconnect cleanup: it is seeded from the endpoint
// path and rebound by connect messages, while game logic always acts on
// the identity inside each message itself.
type Session struct {
	ID        string
	Conn      network.Connection
	RoomID    string
	CreatedAt time.Time

	clientID   string
	lastActive time.Time
	mutex      sync.RWMutex
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		CreatedAt:  now,
		lastActive: now,
	}
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) SetClientID(clientID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.clientID = clientID
}

func (s *Session) ClientID() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.clientID
}

// Touch records inbound activity for the idle sweep.
func (s *Session) Touch() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lastActive = time.Now()
}

func (s *Session) LastActive() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.lastActive
}

func (s *Session) Send(data []byte) error {
	return s.Conn.Send(data)
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Manager tracks every live session in the process.
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

// IdleSince returns the sessions with no inbound activity after the
// cutoff. The sweep closes them, which funnels each one through the
// normal disconnect path.
func (m *Manager) IdleSince(cutoff time.Time) []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var idle []*Session
	for _, session := range m.sessions {
		if session.LastActive().Before(cutoff) {
			idle = append(idle, session)
		}
	}
	return idle
}
