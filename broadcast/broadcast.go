package broadcast

import (
	"encoding/json"
	"errors"

	"github.com/wfunc/whist/event"
	"github.com/wfunc/whist/logger"
	"github.com/wfunc/whist/network"
	"github.com/wfunc/whist/room"
	"github.com/wfunc/whist/session"
)

var (
	ErrRoomNotFound = errors.New("room not found")
)

// 广播接口
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgID uint16, data []byte) error
	BroadcastToAll(msgID uint16, data []byte) error
}

// 基于房间的广播器
type RoomBroadcaster struct {
	roomManager    *room.Manager
	sessionManager *session.Manager
}

func NewRoomBroadcaster(roomManager *room.Manager, sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		roomManager:    roomManager,
		sessionManager: sessionManager,
	}
}

func (b *RoomBroadcaster) BroadcastToRoom(roomID string, msgID uint16, data []byte) error {
	room, exists := b.roomManager.GetRoom(roomID)
	if !exists {
		return ErrRoomNotFound
	}

	for _, s := range room.GetSessions() {
		if err := s.Send(msgID, data); err != nil {
			logger.Log.Debugf("Broadcast to session %s failed: %v", s.GetID(), err)
		}
	}
	return nil
}

// BroadcastToAll 发送给所有在线会话
func (b *RoomBroadcaster) BroadcastToAll(msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.All() {
		if err := s.Send(msgID, data); err != nil {
			logger.Log.Debugf("Broadcast to session %s failed: %v", s.GetID(), err)
		}
	}
	return nil
}

// NewEventForwarder sends every game event of a table to its players.
func NewEventForwarder(b room.Broadcaster, roomID string) event.Listener {
	return event.ListenerFunc(func(e event.Event) {
		data, err := json.Marshal(e)
		if err != nil {
			logger.Log.Errorf("Error marshalling event %s: %v", e.Name, err)
			return
		}
		if err := b.BroadcastToRoom(roomID, network.MsgTypeGameEvent, data); err != nil && !errors.Is(err, ErrRoomNotFound) {
			logger.Log.Warnf("Forwarding event to room %s failed: %v", roomID, err)
		}
	})
}
