// event/event.go
package event

import (
	"sync"
)

// Type identifies the kind of game notification.
type Type int

const (
	NewGame Type = iota + 1
	NewRound
	NewTrumpCard
	TurnChanged
	Deal
	CardPlayed
	HandFinished
	RoundFinished
	BidMade
)

func (t Type) String() string {
	switch t {
	case NewGame:
		return "new_game"
	case NewRound:
		return "new_round"
	case NewTrumpCard:
		return "new_trump_card"
	case TurnChanged:
		return "turn_changed"
	case Deal:
		return "deal"
	case CardPlayed:
		return "card_played"
	case HandFinished:
		return "hand_finished"
	case RoundFinished:
		return "round_finished"
	case BidMade:
		return "bid_made"
	default:
		return "unknown"
	}
}

// Event is a single notification emitted by the game core.
type Event struct {
	Type    Type        `json:"-"`
	Name    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New builds an event, filling Name from the type.
func New(t Type, message string, data interface{}) Event {
	return Event{Type: t, Name: t.String(), Message: message, Data: data}
}

// Sink receives events synchronously from the game core.
type Sink interface {
	Emit(e Event)
}

// Listener is notified of every event appended to a Log.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(e Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

type discard struct{}

func (discard) Emit(Event) {}

// Discard drops every event.
var Discard Sink = discard{}

// Log keeps the history of a game and fans events out to its listeners.
type Log struct {
	events    []Event
	listeners []Listener
	mutex     sync.RWMutex
}

func NewLog(listeners ...Listener) *Log {
	return &Log{listeners: listeners}
}

// Emit records the event and then notifies listeners in registration order.
func (l *Log) Emit(e Event) {
	l.mutex.Lock()
	l.events = append(l.events, e)
	listeners := make([]Listener, len(l.listeners))
	copy(listeners, l.listeners)
	l.mutex.Unlock()

	for _, listener := range listeners {
		listener.OnEvent(e)
	}
}

func (l *Log) AddListener(listener Listener) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.listeners = append(l.listeners, listener)
}

// Events returns a copy of the recorded history.
func (l *Log) Events() []Event {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// OfType returns the recorded events of the given type, oldest first.
func (l *Log) OfType(t Type) []Event {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	var out []Event
	for _, e := range l.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops the recorded history but keeps the listeners.
func (l *Log) Reset() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.events = nil
}
