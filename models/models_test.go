package models

import "testing"

func TestPlayerResult_ExactBid(t *testing.T) {
	two := 2
	if !(PlayerResult{Bid: &two, Tricks: 2}).ExactBid() {
		t.Error("bid 2 with 2 tricks should be exact")
	}
	if (PlayerResult{Bid: &two, Tricks: 1}).ExactBid() {
		t.Error("bid 2 with 1 trick should not be exact")
	}
	if (PlayerResult{Tricks: 0}).ExactBid() {
		t.Error("a round without a bid is never exact")
	}
}

func TestNewGormRoundRecord(t *testing.T) {
	one := 1
	rec := NewGormRoundRecord(&RoundRecord{
		TableID: "t", GameID: "g", RoundNumber: 3, HandSize: 2, Trump: "K of Clubs",
		Results: []PlayerResult{{PlayerID: "a", Bid: &one, Tricks: 1}, {PlayerID: "b", Tricks: 1}},
	})
	if len(rec.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(rec.Results))
	}
	if rec.Results[0].GameID != "g" || rec.Results[1].PlayerID != "b" {
		t.Errorf("results not copied: %+v", rec.Results)
	}
	if rec.TableName() != "round_records" {
		t.Errorf("unexpected table name %s", rec.TableName())
	}
}
