package whist

import (
	"errors"
	"fmt"
)

var (
	ErrNotYourTurn       = errors.New("not your turn")
	ErrIllegalCard       = errors.New("illegal card")
	ErrCardNotFound      = errors.New("card not found")
	ErrEmptyDeck         = errors.New("empty deck")
	ErrRoundStillActive  = errors.New("previous round still active")
	ErrInvalidTransition = errors.New("invalid round state transition")
	ErrAlreadyPlayed     = errors.New("player already played on this trick")
	ErrBiddingClosed     = errors.New("bidding closed for this round")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrGameOver          = errors.New("game over")
	ErrPlayerCount       = errors.New("unsupported number of players")
	ErrDuplicatePlayer   = errors.New("duplicate player")
	ErrInvalidCard       = errors.New("invalid card")
)

// StateError reports a round operation attempted in the wrong state.
type StateError struct {
	Op    string
	State RoundState
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: not allowed in state %s", e.Op, e.State)
}

func (e *StateError) Unwrap() error { return ErrInvalidTransition }
