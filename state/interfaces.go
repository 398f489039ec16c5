// state/interfaces.go
package state

import (
	"time"

	"github.com/wfunc/whist/event"
)

// Player is a seat at the table: a connected player or a bot.
type Player interface {
	GetName() string
	IsBot() bool
}

// Settings are the table timings and the shuffle seed.
type Settings struct {
	TrickPause   time.Duration
	RoundPause   time.Duration
	BotFillDelay time.Duration
	// TickInterval drives the room loop; 0 leaves updates to the caller.
	TickInterval time.Duration
	Seed         int64
	Now          func() time.Time
}

func (s Settings) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RoomContext defines the interface that a Room must implement to be managed by the state machine.
// This breaks the import cycle between room and state.
type RoomContext interface {
	GetID() string
	// GetSeats returns the seats in seating order.
	GetSeats() []Player
	GetMaxPlayers() int
	// FillWithBots seats bots in every free seat and returns how many.
	FillWithBots() int
	ChangeState(newState State) error
	Broadcast(msgID uint16, data []byte) error
	// SendTo sends to the player seated under name; bots are skipped.
	SendTo(name string, msgID uint16, data []byte) error
	Events() *event.Log
	Settings() Settings
}
