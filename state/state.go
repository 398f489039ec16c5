package state

import (
	"errors"
	"sync"
	"time"

	"github.com/wfunc/whist/logger"
)

// 状态机接口
type StateMachine interface {
	ChangeState(state State) error
	GetCurrentState() State
	AddTransition(from State, to State, condition func() bool) error
}

// 状态接口
type State interface {
	OnEnter()
	OnExit()
	OnUpdate()
	GetID() string
	HandleAction(player Player, actionData []byte) error
}

const (
	StateWaiting  = "waiting"
	StatePlaying  = "playing"
	StateFinished = "finished"
)

var (
	// ErrTransitionNotAllowed is returned when a state transition is not allowed.
	ErrTransitionNotAllowed = errors.New("state transition not allowed")
	ErrGameNotStarted       = errors.New("game not started")
	ErrGameFinished         = errors.New("game finished")
	ErrUnknownAction        = errors.New("unknown action")
	ErrBadAction            = errors.New("malformed action")
)

// 基础状态机实现
type BaseStateMachine struct {
	currentState State
	transitions  map[string]map[string]func() bool // fromState -> toState -> condition
	mutex        sync.RWMutex
}

func NewBaseStateMachine(initialState State) *BaseStateMachine {
	machine := &BaseStateMachine{
		currentState: initialState,
		transitions:  make(map[string]map[string]func() bool),
	}
	initialState.OnEnter()
	return machine
}

// ChangeState runs OnExit of the current state and OnEnter of the new one.
// A new state must not change state again from inside OnEnter.
func (sm *BaseStateMachine) ChangeState(newState State) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	currentID := sm.currentState.GetID()
	newID := newState.GetID()

	// 检查是否有转换条件
	if conditions, exists := sm.transitions[currentID]; exists {
		if condition, exists := conditions[newID]; exists {
			if condition != nil && !condition() {
				return ErrTransitionNotAllowed
			}
		}
	}

	sm.currentState.OnExit()
	sm.currentState = newState
	sm.currentState.OnEnter()

	return nil
}

func (sm *BaseStateMachine) GetCurrentState() State {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.currentState
}

func (sm *BaseStateMachine) AddTransition(from State, to State, condition func() bool) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	fromID := from.GetID()
	toID := to.GetID()

	if _, exists := sm.transitions[fromID]; !exists {
		sm.transitions[fromID] = make(map[string]func() bool)
	}

	sm.transitions[fromID][toID] = condition
	return nil
}

// 房间状态基础结构
type RoomStateBase struct {
	ID   string
	Room RoomContext
}

func (s *RoomStateBase) GetID() string {
	return s.ID
}

func (s *RoomStateBase) OnEnter() {}

func (s *RoomStateBase) OnExit() {}

func (s *RoomStateBase) OnUpdate() {}

func (s *RoomStateBase) HandleAction(player Player, actionData []byte) error {
	return nil
}

// NewWaitingState creates a new waiting state.
func NewWaitingState(room RoomContext) *WaitingState {
	return &WaitingState{
		RoomStateBase: RoomStateBase{
			ID:   StateWaiting,
			Room: room,
		},
	}
}

// 等待状态: 坐满后开始游戏
type WaitingState struct {
	RoomStateBase
	enteredAt time.Time
}

func (s *WaitingState) OnEnter() {
	s.enteredAt = s.Room.Settings().now()
}

func (s *WaitingState) OnUpdate() {
	seats := s.Room.GetSeats()
	if len(seats) >= s.Room.GetMaxPlayers() {
		if err := s.Room.ChangeState(NewPlayingState(s.Room)); err != nil {
			logger.Log.Warnf("Room %s could not start: %v", s.Room.GetID(), err)
		}
		return
	}

	settings := s.Room.Settings()
	if settings.BotFillDelay <= 0 || len(seats) == 0 {
		return
	}
	if settings.now().Sub(s.enteredAt) >= settings.BotFillDelay {
		n := s.Room.FillWithBots()
		logger.Log.Infof("Room %s seated %d bots", s.Room.GetID(), n)
	}
}

func (s *WaitingState) HandleAction(player Player, actionData []byte) error {
	return ErrGameNotStarted
}
