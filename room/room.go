// room/room.go
package room

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wfunc/whist/event"
	"github.com/wfunc/whist/network"
	"github.com/wfunc/whist/session"
	"github.com/wfunc/whist/state"
)

// RoomStatus 表示房间的业务状态，例如等待、游戏中等
type RoomStatus int

const (
	StatusIdle RoomStatus = iota
	StatusWaiting
	StatusGaming
	StatusSettlement
)

func (s RoomStatus) String() string {
	switch s {
	case StatusWaiting:
		return state.StateWaiting
	case StatusGaming:
		return state.StatePlaying
	case StatusSettlement:
		return state.StateFinished
	default:
		return "idle"
	}
}

var (
	ErrRoomFull       = errors.New("table is full")
	ErrNameTaken      = errors.New("seat name already taken")
	ErrInvalidName    = errors.New("invalid seat name")
	ErrGameInProgress = errors.New("game already in progress")
	ErrNotSeated      = errors.New("not seated at this table")
)

// Seat is a place at the table. A seat without a session is played by a bot.
type Seat struct {
	Name    string
	Session *session.Session
}

func (s *Seat) GetName() string { return s.Name }
func (s *Seat) IsBot() bool     { return s.Session == nil }

// Room 是一张牌桌: seats, a state machine and the table's event log
type Room struct {
	ID           string
	Name         string
	MaxPlayers   int
	Status       RoomStatus
	StateMachine state.StateMachine
	CreatedAt    time.Time
	seats        []*Seat
	events       *event.Log
	settings     state.Settings
	broadcaster  Broadcaster
	statusMutex  sync.RWMutex
	playerMutex  sync.RWMutex
	actionMutex  sync.Mutex
	ticker       *time.Ticker
	closeChan    chan struct{}
	closeOnce    sync.Once
	botCount     int
}

// NewRoom 创建一张牌桌; listeners receive every game event of the table.
func NewRoom(id, name string, maxPlayers int, settings state.Settings, broadcaster Broadcaster, listeners ...event.Listener) *Room {
	room := &Room{
		ID:          id,
		Name:        name,
		MaxPlayers:  maxPlayers,
		Status:      StatusIdle,
		CreatedAt:   time.Now(),
		events:      event.NewLog(listeners...),
		settings:    settings,
		broadcaster: broadcaster,
		closeChan:   make(chan struct{}),
	}

	// 初始化状态机，将房间自身(room)作为上下文传入
	waiting := state.NewWaitingState(room)
	sm := state.NewBaseStateMachine(waiting)
	sm.AddTransition(waiting, state.NewPlayingState(room), func() bool {
		return room.SeatCount() == room.MaxPlayers
	})
	room.StateMachine = sm
	room.SetStatus(StatusWaiting)

	// 启动房间心跳
	if settings.TickInterval > 0 {
		room.ticker = time.NewTicker(settings.TickInterval)
		go room.loop()
	}

	return room
}

// --- 实现 state.RoomContext 接口 ---

// GetID 返回房间ID
func (r *Room) GetID() string {
	return r.ID
}

// GetMaxPlayers returns the maximum number of players in the room.
func (r *Room) GetMaxPlayers() int {
	return r.MaxPlayers
}

// GetSeats 返回按座位顺序排列的玩家
func (r *Room) GetSeats() []state.Player {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()

	seats := make([]state.Player, len(r.seats))
	for i, s := range r.seats {
		seats[i] = &Seat{Name: s.Name, Session: s.Session}
	}
	return seats
}

// FillWithBots seats bots until the table is full.
func (r *Room) FillWithBots() int {
	r.playerMutex.Lock()
	defer r.playerMutex.Unlock()

	n := 0
	for len(r.seats) < r.MaxPlayers {
		r.botCount++
		name := fmt.Sprintf("bot-%d", r.botCount)
		if r.seatIndex(name) >= 0 {
			continue
		}
		r.seats = append(r.seats, &Seat{Name: name})
		n++
	}
	return n
}

// ChangeState 改变房间的状态机状态
func (r *Room) ChangeState(newState state.State) error {
	if err := r.StateMachine.ChangeState(newState); err != nil {
		return err
	}
	switch newState.GetID() {
	case state.StatePlaying:
		r.SetStatus(StatusGaming)
	case state.StateFinished:
		r.SetStatus(StatusSettlement)
	default:
		r.SetStatus(StatusWaiting)
	}
	return nil
}

// Broadcast sends a message to all players in the room.
func (r *Room) Broadcast(msgID uint16, data []byte) error {
	return r.broadcaster.BroadcastToRoom(r.ID, msgID, data)
}

// SendTo sends to the session seated under name.
func (r *Room) SendTo(name string, msgID uint16, data []byte) error {
	r.playerMutex.RLock()
	i := r.seatIndex(name)
	var s *session.Session
	if i >= 0 {
		s = r.seats[i].Session
	}
	r.playerMutex.RUnlock()

	if s == nil {
		return nil
	}
	return s.Send(msgID, data)
}

func (r *Room) Events() *event.Log { return r.events }

func (r *Room) Settings() state.Settings { return r.settings }

// --- 房间核心逻辑 ---

// AddPlayer seats a session under name while the table is waiting.
func (r *Room) AddPlayer(s *session.Session, name string) error {
	if name == "" || len(name) > 32 {
		return ErrInvalidName
	}

	r.actionMutex.Lock()
	defer r.actionMutex.Unlock()

	if r.GetStatus() != StatusWaiting {
		return ErrGameInProgress
	}

	r.playerMutex.Lock()
	defer r.playerMutex.Unlock()

	if len(r.seats) >= r.MaxPlayers {
		return ErrRoomFull
	}
	if r.seatIndex(name) >= 0 {
		return fmt.Errorf("%w: %s", ErrNameTaken, name)
	}

	r.seats = append(r.seats, &Seat{Name: name, Session: s})
	s.SetTable(r.ID, name)
	return nil
}

// RemovePlayer 从房间移除一个玩家. Once the game has started the seat stays
// and a bot plays it.
func (r *Room) RemovePlayer(sessionID string) {
	r.actionMutex.Lock()
	defer r.actionMutex.Unlock()

	waiting := r.GetStatus() == StatusWaiting

	r.playerMutex.Lock()
	defer r.playerMutex.Unlock()

	for i, seat := range r.seats {
		if seat.Session == nil || seat.Session.ID != sessionID {
			continue
		}
		seat.Session.ClearTable()
		if waiting {
			r.seats = append(r.seats[:i], r.seats[i+1:]...)
		} else {
			seat.Session = nil
		}
		return
	}
}

// HandleAction passes a player action to the current state, one at a time.
func (r *Room) HandleAction(sessionID string, actionData []byte) error {
	r.actionMutex.Lock()
	defer r.actionMutex.Unlock()

	seat, ok := r.SeatOf(sessionID)
	if !ok {
		return ErrNotSeated
	}
	return r.StateMachine.GetCurrentState().HandleAction(seat, actionData)
}

// SeatOf returns the seat held by a session.
func (r *Room) SeatOf(sessionID string) (*Seat, bool) {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()

	for _, seat := range r.seats {
		if seat.Session != nil && seat.Session.ID == sessionID {
			return &Seat{Name: seat.Name, Session: seat.Session}, true
		}
	}
	return nil, false
}

// GetSessions returns a slice of all sessions in the room (thread-safe).
func (r *Room) GetSessions() []*session.Session {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()

	sessions := make([]*session.Session, 0, len(r.seats))
	for _, s := range r.seats {
		if s.Session != nil {
			sessions = append(sessions, s.Session)
		}
	}
	return sessions
}

func (r *Room) SeatCount() int {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	return len(r.seats)
}

// HumanCount counts the seats held by connected players.
func (r *Room) HumanCount() int {
	return len(r.GetSessions())
}

// Summary describes the table for listings.
func (r *Room) Summary() network.TableSummary {
	return network.TableSummary{
		ID:         r.ID,
		Name:       r.Name,
		State:      r.GetStatus().String(),
		Players:    r.SeatCount(),
		MaxPlayers: r.MaxPlayers,
	}
}

// seatIndex must be called with playerMutex held.
func (r *Room) seatIndex(name string) int {
	for i, s := range r.seats {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// SetStatus 设置房间的业务状态
func (r *Room) SetStatus(status RoomStatus) {
	r.statusMutex.Lock()
	defer r.statusMutex.Unlock()
	r.Status = status
}

// GetStatus 获取房间的业务状态
func (r *Room) GetStatus() RoomStatus {
	r.statusMutex.RLock()
	defer r.statusMutex.RUnlock()
	return r.Status
}

// loop 是房间的主循环，定时驱动状态更新
func (r *Room) loop() {
	for {
		select {
		case <-r.ticker.C:
			r.Update()
		case <-r.closeChan:
			r.ticker.Stop()
			return
		}
	}
}

// Update 由主循环调用，驱动状态机更新
func (r *Room) Update() {
	r.actionMutex.Lock()
	defer r.actionMutex.Unlock()

	if r.StateMachine != nil {
		currentState := r.StateMachine.GetCurrentState()
		if currentState != nil {
			currentState.OnUpdate()
		}
	}
}

// Close 关闭房间，停止主循环
func (r *Room) Close() {
	r.closeOnce.Do(func() { close(r.closeChan) })
}

// --- 房间管理器 ---

// Manager 管理所有房间
type Manager struct {
	rooms map[string]*Room
	mutex sync.RWMutex
}

// NewRoomManager 创建一个新的房间管理器
func NewRoomManager() *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom 创建一个新房间并添加到管理器
func (m *Manager) CreateRoom(id, name string, maxPlayers int, settings state.Settings, broadcaster Broadcaster, listeners ...event.Listener) *Room {
	room := NewRoom(id, name, maxPlayers, settings, broadcaster, listeners...)

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.rooms[id] = room
	return room
}

// RemoveRoom 从管理器中移除并关闭一个房间
func (m *Manager) RemoveRoom(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if room, exists := m.rooms[id]; exists {
		room.Close()
		delete(m.rooms, id)
	}
}

// GetRoom 从管理器中获取一个房间
func (m *Manager) GetRoom(id string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	room, exists := m.rooms[id]
	return room, exists
}

// FindAvailableRoom 查找一个可用的房间, oldest first
func (m *Manager) FindAvailableRoom() *Room {
	for _, room := range m.List() {
		if room.SeatCount() < room.MaxPlayers && room.GetStatus() == StatusWaiting {
			return room
		}
	}
	return nil
}

// List returns every room, oldest first.
func (m *Manager) List() []*Room {
	m.mutex.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		rooms = append(rooms, room)
	}
	m.mutex.RUnlock()

	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].ID < rooms[j].ID
		}
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})
	return rooms
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}
