// services/player_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/wfunc/whist/models"
	"github.com/wfunc/whist/persistence"
)

type PlayerService struct {
	db persistence.Database
}

func NewPlayerService(db persistence.Database) *PlayerService {
	return &PlayerService{db: db}
}

// GetPlayerStats 获取玩家统计, 未参加过游戏的玩家返回空统计
func (s *PlayerService) GetPlayerStats(playerID string) (*models.PlayerStats, error) {
	if playerID == "" {
		return nil, fmt.Errorf("player id is required")
	}
	stats, err := s.db.GetPlayerStats(playerID)
	if errors.Is(err, persistence.ErrRecordNotFound) {
		return &models.PlayerStats{PlayerID: playerID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("player stats %s: %w", playerID, err)
	}
	return stats, nil
}
