package whist

import (
	"fmt"

	"github.com/wfunc/whist/event"
)

// RoundManager drives a Round through its tricks. It is not safe for
// concurrent use; callers serialise actions per table.
type RoundManager struct {
	round  *Round
	state  RoundState
	played int
}

func NewRoundManager(r *Round) *RoundManager {
	return &RoundManager{
		round: r,
		state: AwaitingTurn{Player: r.active},
	}
}

func (m *RoundManager) Round() *Round     { return m.round }
func (m *RoundManager) State() RoundState { return m.state }

func (m *RoundManager) IsFinished() bool {
	_, ok := m.state.(RoundFinished)
	return ok
}

// Bid records player's bid for the round. Bids close once the first card
// of the round has been played.
func (m *RoundManager) Bid(player Player, bid int) error {
	if _, ok := m.state.(AwaitingTurn); !ok {
		return &StateError{Op: "bid", State: m.state}
	}
	if m.played > 0 {
		return ErrBiddingClosed
	}
	r := m.round
	if _, ok := r.hands[player]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, player)
	}
	r.bids[player] = bid
	r.emit(event.BidMade, fmt.Sprintf("%s bid %d", player, bid),
		event.BidMadePayload{Player: player.ID, Bid: bid})
	return nil
}

// PlayCard lays card for player. It fails without changing anything when it
// is not player's turn, the card is not in hand, or the card does not follow.
func (m *RoundManager) PlayCard(card Card, player Player) error {
	if _, ok := m.state.(AwaitingTurn); !ok {
		return &StateError{Op: "play card", State: m.state}
	}
	r := m.round
	if player != r.active {
		return fmt.Errorf("%w: %s tried to play, waiting for %s", ErrNotYourTurn, player, r.active)
	}
	hand := r.hands[player]
	if !hand.Contains(card) {
		return fmt.Errorf("%w: %s does not hold %s", ErrCardNotFound, player, card)
	}
	if r.trick.Len() > 0 && !containsCard(r.trick.PlayableCards(hand, r.TrumpSuit()), card) {
		return fmt.Errorf("%w: %s must follow %s", ErrIllegalCard, card, r.trick.BaseSuit())
	}

	if err := r.trick.AddCard(card, player); err != nil {
		return err
	}
	if err := hand.RemoveCard(card); err != nil {
		return err
	}
	m.played++
	r.emit(event.CardPlayed, fmt.Sprintf("%s played %s", player, card),
		event.CardPlayedPayload{Player: player.ID, Card: card.String()})

	if r.trick.Len() == len(r.players) {
		winner, _ := r.trick.WinningPlayer(r.TrumpSuit())
		best, _ := r.trick.WinningCard(r.TrumpSuit())
		m.state = HandFinished{Winner: winner, Card: best}
		return nil
	}
	m.state = AwaitingTurn{Player: r.AdvanceToNextPlayer()}
	return nil
}

// FinishHand resolves the complete trick. The winner takes it and leads the
// next trick; after the last trick the round is finished.
func (m *RoundManager) FinishHand() (Player, error) {
	hf, ok := m.state.(HandFinished)
	if !ok {
		return Player{}, &StateError{Op: "finish hand", State: m.state}
	}
	r := m.round
	r.won[hf.Winner] = append(r.won[hf.Winner], r.trick)
	r.trick = NewTrick()
	r.handsRemaining--
	r.emit(event.HandFinished, fmt.Sprintf("%s won the hand with %s", hf.Winner, hf.Card),
		event.HandFinishedPayload{Winner: hf.Winner.ID, Card: hf.Card.String(), HandsRemaining: r.handsRemaining})

	if r.handsRemaining == 0 {
		won := r.TricksWon()
		m.state = RoundFinished{TricksWon: won}
		r.emit(event.RoundFinished, fmt.Sprintf("Round %d finished", r.number), event.RoundFinishedPayload{
			Round:     r.number,
			HandSize:  r.sizeOfHand,
			TricksWon: byID(won),
			Bids:      byID(r.bids),
		})
		return hf.Winner, nil
	}

	m.state = AwaitingTurn{Player: r.setActive(hf.Winner)}
	return hf.Winner, nil
}

func containsCard(cards []Card, c Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

func byID(m map[Player]int) map[string]int {
	out := make(map[string]int, len(m))
	for p, v := range m {
		out[p.ID] = v
	}
	return out
}
