package server

import (
	"errors"

	"github.com/wfunc/whist/room"
	"github.com/wfunc/whist/state"
	"github.com/wfunc/whist/whist"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrBadRequest    = errors.New("bad request")
	ErrAlreadySeated = errors.New("already seated at a table")
)

var reasons = []struct {
	err  error
	code string
}{
	{whist.ErrNotYourTurn, "not_your_turn"},
	{whist.ErrIllegalCard, "illegal_card"},
	{whist.ErrCardNotFound, "card_not_found"},
	{whist.ErrInvalidCard, "invalid_card"},
	{whist.ErrBiddingClosed, "bidding_closed"},
	{whist.ErrAlreadyPlayed, "already_played"},
	{whist.ErrInvalidTransition, "invalid_transition"},
	{whist.ErrUnknownPlayer, "unknown_player"},
	{room.ErrRoomFull, "table_full"},
	{room.ErrNameTaken, "name_taken"},
	{room.ErrInvalidName, "invalid_name"},
	{room.ErrGameInProgress, "game_in_progress"},
	{room.ErrNotSeated, "not_seated"},
	{state.ErrGameNotStarted, "game_not_started"},
	{state.ErrGameFinished, "game_finished"},
	{state.ErrUnknownAction, "unknown_action"},
	{state.ErrBadAction, "bad_request"},
	{ErrTableNotFound, "table_not_found"},
	{ErrBadRequest, "bad_request"},
	{ErrAlreadySeated, "already_seated"},
}

// rejectionReason maps an error to the code sent to clients and used as
// the rejected-action metric label.
func rejectionReason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.code
		}
	}
	return "internal"
}
