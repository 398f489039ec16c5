// persistence/memory.go
package persistence

import (
	"sync"

	"github.com/wfunc/whist/models"
)

// Memory keeps records in process. It backs the "memory" driver and tests.
type Memory struct {
	rounds []models.RoundRecord
	games  map[string]models.GameRecord
	mutex  sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{games: make(map[string]models.GameRecord)}
}

func (m *Memory) SaveRoundRecord(record *models.RoundRecord) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	rec := *record
	rec.Results = append([]models.PlayerResult(nil), record.Results...)
	m.rounds = append(m.rounds, rec)
	return nil
}

func (m *Memory) SaveGameRecord(record *models.GameRecord) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.games[record.GameID] = *record
	return nil
}

func (m *Memory) GetPlayerStats(playerID string) (*models.PlayerStats, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	stats := &models.PlayerStats{PlayerID: playerID}
	games := make(map[string]bool)
	for _, r := range m.rounds {
		for _, res := range r.Results {
			if res.PlayerID != playerID {
				continue
			}
			games[r.GameID] = true
			stats.Rounds++
			stats.TricksWon += res.Tricks
			if res.ExactBid() {
				stats.ExactBids++
			}
		}
	}
	if stats.Rounds == 0 {
		return nil, ErrRecordNotFound
	}
	stats.Games = len(games)
	return stats, nil
}

// Rounds returns the stored round records in save order.
func (m *Memory) Rounds() []models.RoundRecord {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return append([]models.RoundRecord(nil), m.rounds...)
}

// Game returns the stored record of a game.
func (m *Memory) Game(gameID string) (models.GameRecord, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	g, ok := m.games[gameID]
	return g, ok
}

func (m *Memory) Close() error { return nil }
