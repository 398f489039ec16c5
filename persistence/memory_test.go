package persistence

import (
	"errors"
	"testing"

	"github.com/wfunc/whist/config"
	"github.com/wfunc/whist/models"
)

func intPtr(v int) *int { return &v }

func TestMemory_PlayerStats(t *testing.T) {
	db := NewMemory()

	rounds := []*models.RoundRecord{
		{GameID: "g1", RoundNumber: 0, Results: []models.PlayerResult{
			{PlayerID: "a", Bid: intPtr(1), Tricks: 1},
			{PlayerID: "b", Bid: intPtr(1), Tricks: 0},
		}},
		{GameID: "g1", RoundNumber: 1, Results: []models.PlayerResult{
			{PlayerID: "a", Bid: intPtr(0), Tricks: 1},
			{PlayerID: "b", Tricks: 0},
		}},
		{GameID: "g2", RoundNumber: 0, Results: []models.PlayerResult{
			{PlayerID: "a", Bid: intPtr(2), Tricks: 2},
		}},
	}
	for _, r := range rounds {
		if err := db.SaveRoundRecord(r); err != nil {
			t.Fatalf("SaveRoundRecord failed: %v", err)
		}
	}

	stats, err := db.GetPlayerStats("a")
	if err != nil {
		t.Fatalf("GetPlayerStats failed: %v", err)
	}
	want := models.PlayerStats{PlayerID: "a", Games: 2, Rounds: 3, TricksWon: 4, ExactBids: 2}
	if *stats != want {
		t.Errorf("Expected %+v, got %+v", want, *stats)
	}

	if _, err := db.GetPlayerStats("nobody"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}
}

func TestMemory_SaveCopiesRecord(t *testing.T) {
	db := NewMemory()
	rec := &models.RoundRecord{GameID: "g", Results: []models.PlayerResult{{PlayerID: "a", Tricks: 1}}}
	db.SaveRoundRecord(rec)
	rec.Results[0].Tricks = 5

	if got := db.Rounds()[0].Results[0].Tricks; got != 1 {
		t.Errorf("stored record changed with the caller's copy: %d", got)
	}
}

func TestMemory_GameRecord(t *testing.T) {
	db := NewMemory()
	db.SaveGameRecord(&models.GameRecord{GameID: "g", Rounds: 3})
	db.SaveGameRecord(&models.GameRecord{GameID: "g", Rounds: 24})

	g, ok := db.Game("g")
	if !ok || g.Rounds != 24 {
		t.Errorf("Expected the latest game record, got %+v (found=%v)", g, ok)
	}
}

func TestOpen_Memory(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: config.DriverMemory})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, ok := db.(*Memory); !ok {
		t.Errorf("Expected *Memory, got %T", db)
	}
	if _, err := Open(config.DatabaseConfig{Driver: "mongo"}); err == nil {
		t.Error("Expected an error for an unknown driver")
	}
}
