// persistence/interface.go
package persistence

import (
	"errors"

	"github.com/wfunc/whist/models"
)

// Database stores finished rounds and games.
type Database interface {
	SaveRoundRecord(record *models.RoundRecord) error
	SaveGameRecord(record *models.GameRecord) error
	GetPlayerStats(playerID string) (*models.PlayerStats, error)
	Close() error
}

var (
	ErrRecordNotFound = errors.New("record not found")
)
