// services/recorder.go
package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wfunc/whist/event"
	"github.com/wfunc/whist/logger"
	"github.com/wfunc/whist/models"
	"github.com/wfunc/whist/persistence"
)

const noTrump = "none"

// GameRecorder listens to a table's events and stores every finished round,
// and the game itself once its last scheduled round is over.
type GameRecorder struct {
	db      persistence.Database
	tableID string
	now     func() time.Time

	gameID    string
	players   []string
	rounds    int
	trump     string
	totals    map[string]int
	startedAt time.Time
	mutex     sync.Mutex
}

func NewGameRecorder(db persistence.Database, tableID string) *GameRecorder {
	return &GameRecorder{
		db:      db,
		tableID: tableID,
		now:     time.Now,
		totals:  make(map[string]int),
	}
}

// GameID returns the id assigned to the game in progress.
func (r *GameRecorder) GameID() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.gameID
}

func (r *GameRecorder) OnEvent(e event.Event) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	switch data := e.Data.(type) {
	case event.NewGamePayload:
		r.gameID = uuid.NewString()
		r.players = append([]string(nil), data.Players...)
		r.rounds = len(data.Schedule)
		r.totals = make(map[string]int)
		r.startedAt = r.now()
	case event.NewTrumpCardPayload:
		r.trump = data.Card
		if data.NoTrump {
			r.trump = noTrump
		}
	case event.RoundFinishedPayload:
		r.saveRound(data)
	}
}

func (r *GameRecorder) saveRound(data event.RoundFinishedPayload) {
	if r.gameID == "" {
		return
	}

	record := &models.RoundRecord{
		TableID:     r.tableID,
		GameID:      r.gameID,
		RoundNumber: data.Round,
		HandSize:    data.HandSize,
		Trump:       r.trump,
		CreatedAt:   r.now(),
	}
	for _, id := range r.players {
		res := models.PlayerResult{PlayerID: id, Tricks: data.TricksWon[id]}
		if bid, ok := data.Bids[id]; ok {
			b := bid
			res.Bid = &b
		}
		record.Results = append(record.Results, res)
		r.totals[id] += res.Tricks
	}

	if err := r.db.SaveRoundRecord(record); err != nil {
		logger.Log.Errorw("save round record failed",
			"table", r.tableID, "game", r.gameID, "round", data.Round, "error", err)
	}

	if data.Round != r.rounds-1 {
		return
	}

	totals := make(map[string]int, len(r.totals))
	for id, n := range r.totals {
		totals[id] = n
	}
	game := &models.GameRecord{
		TableID:     r.tableID,
		GameID:      r.gameID,
		Players:     append([]string(nil), r.players...),
		Rounds:      r.rounds,
		TotalTricks: totals,
		StartedAt:   r.startedAt,
		FinishedAt:  r.now(),
	}
	if err := r.db.SaveGameRecord(game); err != nil {
		logger.Log.Errorw("save game record failed",
			"table", r.tableID, "game", r.gameID, "error", err)
	}
}
