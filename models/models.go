// models/models.go
package models

import (
	"time"
)

// PlayerResult is one player's outcome in a finished round.
type PlayerResult struct {
	PlayerID string `json:"player_id"`
	Bid      *int   `json:"bid,omitempty"`
	Tricks   int    `json:"tricks"`
}

// ExactBid reports whether the player took exactly the tricks they bid.
func (r PlayerResult) ExactBid() bool {
	return r.Bid != nil && *r.Bid == r.Tricks
}

// RoundRecord is the record of one finished round.
type RoundRecord struct {
	TableID     string         `json:"table_id"`
	GameID      string         `json:"game_id"`
	RoundNumber int            `json:"round_number"`
	HandSize    int            `json:"hand_size"`
	Trump       string         `json:"trump"`
	Results     []PlayerResult `json:"results"`
	CreatedAt   time.Time      `json:"created_at"`
}

// GameRecord is written once the last scheduled round is over.
type GameRecord struct {
	TableID     string         `json:"table_id"`
	GameID      string         `json:"game_id"`
	Players     []string       `json:"players"`
	Rounds      int            `json:"rounds"`
	TotalTricks map[string]int `json:"total_tricks"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
}

// PlayerStats aggregates a player's recorded rounds.
type PlayerStats struct {
	PlayerID  string `json:"player_id"`
	Games     int    `json:"games"`
	Rounds    int    `json:"rounds"`
	TricksWon int    `json:"tricks_won"`
	ExactBids int    `json:"exact_bids"`
}
