// session/session.go
package session

import (
	"sync"
	"time"

	"github.com/wfunc/whist/network"
)

type Session struct {
	ID         string
	Conn       network.Connection
	CreatedAt  time.Time
	tableID    string
	name       string
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

// SetTable records the table the session sits at and its seat name.
func (s *Session) SetTable(tableID, name string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.tableID = tableID
	s.name = name
}

func (s *Session) ClearTable() {
	s.SetTable("", "")
}

// Table returns the current table id and seat name, empty when not seated.
func (s *Session) Table() (tableID, name string) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.tableID, s.name
}

// Touch marks the session as active now.
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

func (s *Session) Send(msgID uint16, data []byte) error {
	return s.Conn.Send(msgID, data)
}

func (s *Session) SendJSON(msgID uint16, v interface{}) error {
	return network.SendJSON(s.Conn, msgID, v)
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Session管理器
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

// All returns every connected session.
func (m *Manager) All() []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	result := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

// Idle returns the sessions whose last activity is before the given time.
func (m *Manager) Idle(before time.Time) []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Session
	for _, session := range m.sessions {
		if session.LastActive().Before(before) {
			result = append(result, session)
		}
	}
	return result
}
