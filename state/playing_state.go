package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wfunc/whist/bots"
	"github.com/wfunc/whist/logger"
	"github.com/wfunc/whist/network"
	"github.com/wfunc/whist/whist"
)

// PlayingState 游戏进行状态: drives one whist.Game from player actions and ticks.
type PlayingState struct {
	RoomStateBase
	game        *whist.Game
	manager     *whist.RoundManager
	bots        map[string]bots.Bot
	seed        int64
	resolveAt   time.Time
	nextRoundAt time.Time
}

func NewPlayingState(room RoomContext) *PlayingState {
	return &PlayingState{
		RoomStateBase: RoomStateBase{
			ID:   StatePlaying,
			Room: room,
		},
		bots: make(map[string]bots.Bot),
	}
}

// OnEnter 开始新游戏并发第一轮牌
func (s *PlayingState) OnEnter() {
	seats := s.Room.GetSeats()
	players := make([]whist.Player, len(seats))
	for i, seat := range seats {
		players[i] = whist.NewPlayer(seat.GetName())
	}

	settings := s.Room.Settings()
	s.seed = settings.Seed
	if s.seed == 0 {
		s.seed = settings.now().UnixNano()
	}

	game, err := whist.NewGame(players, whist.Options{Sink: s.Room.Events(), Seed: s.seed})
	if err != nil {
		logger.Log.Errorf("Room %s failed to start a game: %v", s.Room.GetID(), err)
		return
	}
	s.game = game
	logger.Log.Infof("Room %s started a game with %d players", s.Room.GetID(), len(players))

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.ID
	}
	start := network.GameStart{TableID: s.Room.GetID(), Players: names, Schedule: game.Schedule(), Seed: s.seed}
	if data, err := json.Marshal(start); err == nil {
		s.Room.Broadcast(network.MsgTypeGameStart, data)
	}
	s.startRound()
}

func (s *PlayingState) OnExit() {
	logger.Log.Infof("Room %s left the playing state", s.Room.GetID())
}

// Game returns the game being played, nil before OnEnter.
func (s *PlayingState) Game() *whist.Game { return s.game }

// Manager returns the manager of the current round.
func (s *PlayingState) Manager() *whist.RoundManager { return s.manager }

func (s *PlayingState) HandleAction(player Player, actionData []byte) error {
	if s.manager == nil {
		return ErrGameNotStarted
	}

	var action network.ActionRequest
	if err := json.Unmarshal(actionData, &action); err != nil {
		return fmt.Errorf("%w: %v", ErrBadAction, err)
	}

	p := whist.NewPlayer(player.GetName())
	switch action.Type {
	case network.ActionBid:
		if err := s.manager.Bid(p, action.Bid); err != nil {
			return err
		}
	case network.ActionPlayCard:
		card, err := whist.ParseCard(action.Card)
		if err != nil {
			return err
		}
		if err := s.manager.PlayCard(card, p); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
	}

	s.afterPlay()
	return nil
}

// OnUpdate resolves complete tricks, starts rounds and lets bots play,
// honouring the configured pauses.
func (s *PlayingState) OnUpdate() {
	if s.manager == nil {
		return
	}
	settings := s.Room.Settings()
	now := settings.now()

	switch st := s.manager.State().(type) {
	case whist.HandFinished:
		if now.Before(s.resolveAt) {
			return
		}
		if _, err := s.manager.FinishHand(); err != nil {
			logger.Log.Errorf("Room %s failed to finish hand: %v", s.Room.GetID(), err)
			return
		}
		if s.manager.IsFinished() {
			s.nextRoundAt = now.Add(settings.RoundPause)
		}
		s.sync()
	case whist.RoundFinished:
		if now.Before(s.nextRoundAt) {
			return
		}
		s.startRound()
	case whist.AwaitingTurn:
		if !s.isBot(st.Player.ID) {
			return
		}
		if _, err := bots.PlayTurn(s.manager, st.Player, s.bot(st.Player.ID)); err != nil {
			logger.Log.Errorf("Room %s bot %s failed to play: %v", s.Room.GetID(), st.Player, err)
			return
		}
		s.afterPlay()
	}
}

func (s *PlayingState) startRound() {
	m, err := s.game.ProgressToNextRound()
	if errors.Is(err, whist.ErrGameOver) {
		if err := s.Room.ChangeState(NewFinishedState(s.Room, s.game.TotalTricks())); err != nil {
			logger.Log.Errorf("Room %s failed to finish: %v", s.Room.GetID(), err)
		}
		return
	}
	if err != nil {
		logger.Log.Errorf("Room %s failed to start round: %v", s.Room.GetID(), err)
		return
	}
	s.manager = m

	r := m.Round()
	p := r.ActivePlayer()
	for range r.Players() {
		if s.isBot(p.ID) {
			if err := bots.Bid(m, p, s.bot(p.ID)); err != nil {
				logger.Log.Errorf("Room %s bot %s failed to bid: %v", s.Room.GetID(), p, err)
			}
		}
		p = nextOf(r.Players(), p)
	}
	s.sync()
}

func (s *PlayingState) afterPlay() {
	if _, ok := s.manager.State().(whist.HandFinished); ok {
		s.resolveAt = s.Room.Settings().now().Add(s.Room.Settings().TrickPause)
	}
	s.sync()
}

// sync sends every seated player their own view of the table.
func (s *PlayingState) sync() {
	seats := s.Room.GetSeats()
	for _, seat := range seats {
		if seat.IsBot() {
			continue
		}
		view := BuildView(s.Room.GetID(), s.ID, seats, s.manager, seat.GetName())
		data, err := json.Marshal(view)
		if err != nil {
			logger.Log.Errorf("Error marshalling table view: %v", err)
			continue
		}
		if err := s.Room.SendTo(seat.GetName(), network.MsgTypeTableState, data); err != nil {
			logger.Log.Debugf("Room %s failed to sync %s: %v", s.Room.GetID(), seat.GetName(), err)
		}
	}
}

func (s *PlayingState) isBot(name string) bool {
	for _, seat := range s.Room.GetSeats() {
		if seat.GetName() == name {
			return seat.IsBot()
		}
	}
	return false
}

func (s *PlayingState) bot(name string) bots.Bot {
	b, ok := s.bots[name]
	if !ok {
		b = bots.NewRandomBot(name, s.seed+int64(len(s.bots))+1)
		s.bots[name] = b
	}
	return b
}

func nextOf(players []whist.Player, p whist.Player) whist.Player {
	for i, q := range players {
		if q == p {
			return players[(i+1)%len(players)]
		}
	}
	return players[0]
}

// 结束状态
type FinishedState struct {
	RoomStateBase
	totals map[string]int
}

func NewFinishedState(room RoomContext, totals map[whist.Player]int) *FinishedState {
	byName := make(map[string]int, len(totals))
	for p, n := range totals {
		byName[p.ID] = n
	}
	return &FinishedState{
		RoomStateBase: RoomStateBase{
			ID:   StateFinished,
			Room: room,
		},
		totals: byName,
	}
}

// Totals returns the tricks each player took over the whole game.
func (s *FinishedState) Totals() map[string]int { return s.totals }

func (s *FinishedState) OnEnter() {
	logger.Log.Infof("Room %s game over: %v", s.Room.GetID(), s.totals)
	data, err := json.Marshal(network.GameEnd{TableID: s.Room.GetID(), TotalTricks: s.totals})
	if err != nil {
		logger.Log.Errorf("Error marshalling game end: %v", err)
		return
	}
	s.Room.Broadcast(network.MsgTypeGameEnd, data)
}

func (s *FinishedState) HandleAction(player Player, actionData []byte) error {
	return ErrGameFinished
}
