package main

import (
	"testing"

	"github.com/wfunc/whist/network"
)

func TestCommand(t *testing.T) {
	msgID, body, ok := command("play 10 of Spades")
	if !ok || msgID != network.MsgTypePlayerAction {
		t.Fatalf("play not parsed: %d %v", msgID, ok)
	}
	if a := body.(network.ActionRequest); a.Type != network.ActionPlayCard || a.Card != "10 of Spades" {
		t.Errorf("unexpected action %+v", a)
	}

	msgID, body, ok = command("join ana t-1")
	if !ok || msgID != network.MsgTypeJoinTable {
		t.Fatalf("join not parsed")
	}
	if req := body.(network.JoinTableRequest); req.Name != "ana" || req.TableID != "t-1" {
		t.Errorf("unexpected join request %+v", req)
	}

	if _, body, ok = command("bid 2"); !ok || body.(network.ActionRequest).Bid != 2 {
		t.Errorf("bid not parsed: %+v", body)
	}

	for _, bad := range []string{"", "bid two", "create", "dance"} {
		if _, _, ok := command(bad); ok {
			t.Errorf("%q should not parse", bad)
		}
	}
}
