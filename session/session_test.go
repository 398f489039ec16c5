package session

import (
	"net"
	"testing"
	"time"

	"github.com/wfunc/whist/network"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct {
	sent   []uint16
	closed bool
}

func (m *MockConnection) Send(msgID uint16, data []byte) error {
	m.sent = append(m.sent, msgID)
	return nil
}
func (m *MockConnection) Close() error                         { m.closed = true; return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("NewManager should not return nil")
	}
	if manager.sessions == nil {
		t.Fatal("NewManager should initialize the sessions map")
	}
}

func TestManager_Add_Get_Remove(t *testing.T) {
	manager := NewManager()
	sessionID := "test_session_1"
	sess := NewSession(sessionID, &MockConnection{})

	// Test Add
	manager.Add(sess)
	if manager.Count() != 1 {
		t.Fatalf("Expected session count to be 1, got %d", manager.Count())
	}

	// Test Get
	retrievedSess, exists := manager.Get(sessionID)
	if !exists {
		t.Fatal("Get should find the added session")
	}
	if retrievedSess != sess {
		t.Fatal("Get should return the same session instance")
	}

	// Test Remove
	manager.Remove(sessionID)
	if manager.Count() != 0 {
		t.Fatalf("Expected session count to be 0 after removal, got %d", manager.Count())
	}

	_, exists = manager.Get(sessionID)
	if exists {
		t.Fatal("Get should not find the removed session")
	}
}

func TestManager_Idle(t *testing.T) {
	manager := NewManager()

	stale := NewSession("stale", &MockConnection{})
	stale.lastActive = time.Now().Add(-time.Hour)
	fresh := NewSession("fresh", &MockConnection{})

	manager.Add(stale)
	manager.Add(fresh)

	idle := manager.Idle(time.Now().Add(-time.Minute))
	if len(idle) != 1 || idle[0] != stale {
		t.Fatalf("Expected only the stale session to be idle, got %v", idle)
	}

	stale.Touch()
	if idle := manager.Idle(time.Now().Add(-time.Minute)); len(idle) != 0 {
		t.Errorf("Expected no idle sessions after Touch, got %d", len(idle))
	}
	if len(manager.All()) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(manager.All()))
	}
}

func TestSession_Table(t *testing.T) {
	sess := NewSession("test_session", &MockConnection{})

	if table, name := sess.Table(); table != "" || name != "" {
		t.Errorf("new session should not be seated, got %q %q", table, name)
	}

	sess.SetTable("t1", "ana")
	if table, name := sess.Table(); table != "t1" || name != "ana" {
		t.Errorf("Expected t1/ana, got %q/%q", table, name)
	}

	sess.ClearTable()
	if table, _ := sess.Table(); table != "" {
		t.Errorf("Expected table to be cleared, got %q", table)
	}
}

func TestSession_SendJSON(t *testing.T) {
	conn := &MockConnection{}
	sess := NewSession("s", conn)

	if err := sess.SendJSON(network.MsgTypeError, network.ErrorMessage{Code: "x"}); err != nil {
		t.Fatalf("SendJSON failed: %v", err)
	}
	if len(conn.sent) != 1 || conn.sent[0] != network.MsgTypeError {
		t.Errorf("unexpected packets sent: %v", conn.sent)
	}

	sess.Close()
	if !conn.closed {
		t.Error("Close should close the connection")
	}
}
