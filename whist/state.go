package whist

import "fmt"

// RoundState is the state of a RoundManager. It is one of AwaitingTurn,
// HandFinished or RoundFinished.
type RoundState interface {
	fmt.Stringer
	roundState()
}

// AwaitingTurn waits for Player to lay a card.
type AwaitingTurn struct {
	Player Player
}

// HandFinished holds a complete trick that FinishHand has yet to resolve.
// Winner and Card preview the resolution.
type HandFinished struct {
	Winner Player
	Card   Card
}

// RoundFinished is terminal: every trick of the round has been taken.
type RoundFinished struct {
	TricksWon map[Player]int
}

func (AwaitingTurn) roundState()  {}
func (HandFinished) roundState()  {}
func (RoundFinished) roundState() {}

func (s AwaitingTurn) String() string  { return "awaiting turn of " + s.Player.ID }
func (s HandFinished) String() string  { return "hand finished" }
func (s RoundFinished) String() string { return "round finished" }
