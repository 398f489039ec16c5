// models/gorm_models.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// GormRoundRecord 回合记录
type GormRoundRecord struct {
	gorm.Model
	TableID     string            `gorm:"index;not null"`
	GameID      string            `gorm:"index;not null"`
	RoundNumber int               `gorm:"not null"`
	HandSize    int               `gorm:"not null"`
	Trump       string            `gorm:"not null"`
	Results     []GormRoundResult `gorm:"foreignKey:RoundRecordID"`
}

func (GormRoundRecord) TableName() string { return "round_records" }

// GormRoundResult 玩家在回合中的结果
type GormRoundResult struct {
	gorm.Model
	RoundRecordID uint   `gorm:"index;not null"`
	GameID        string `gorm:"index;not null"`
	PlayerID      string `gorm:"index;not null"`
	Bid           *int
	Tricks        int `gorm:"default:0"`
}

func (GormRoundResult) TableName() string { return "round_results" }

// GormGameRecord 游戏记录模型
type GormGameRecord struct {
	gorm.Model
	TableID     string         `gorm:"index;not null"`
	GameID      string         `gorm:"uniqueIndex;not null"`
	Players     []string       `gorm:"serializer:json;type:jsonb;not null"`
	Rounds      int            `gorm:"not null"`
	TotalTricks map[string]int `gorm:"serializer:json;type:jsonb;not null"`
	StartedAt   time.Time
	FinishedAt  time.Time
}

func (GormGameRecord) TableName() string { return "game_records" }

// NewGormRoundRecord converts a round record for storage.
func NewGormRoundRecord(r *RoundRecord) *GormRoundRecord {
	rec := &GormRoundRecord{
		TableID:     r.TableID,
		GameID:      r.GameID,
		RoundNumber: r.RoundNumber,
		HandSize:    r.HandSize,
		Trump:       r.Trump,
	}
	for _, res := range r.Results {
		rec.Results = append(rec.Results, GormRoundResult{
			GameID:   r.GameID,
			PlayerID: res.PlayerID,
			Bid:      res.Bid,
			Tricks:   res.Tricks,
		})
	}
	return rec
}

// NewGormGameRecord converts a game record for storage.
func NewGormGameRecord(g *GameRecord) *GormGameRecord {
	return &GormGameRecord{
		TableID:     g.TableID,
		GameID:      g.GameID,
		Players:     g.Players,
		Rounds:      g.Rounds,
		TotalTricks: g.TotalTricks,
		StartedAt:   g.StartedAt,
		FinishedAt:  g.FinishedAt,
	}
}
