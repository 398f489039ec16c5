package state

import (
	"github.com/wfunc/whist/network"
	"github.com/wfunc/whist/whist"
)

// BuildView renders the table for viewer. Only the viewer's own hand is
// included, and legal cards only when it is the viewer's turn.
func BuildView(tableID, stateID string, seats []Player, m *whist.RoundManager, viewer string) network.TableView {
	view := network.TableView{
		TableID:   tableID,
		State:     stateID,
		Seats:     make([]network.SeatView, 0, len(seats)),
		Trick:     []network.PlayView{},
		TricksWon: map[string]int{},
		Bids:      map[string]int{},
		Hand:      []string{},
		Legal:     []string{},
	}
	for _, seat := range seats {
		view.Seats = append(view.Seats, network.SeatView{Name: seat.GetName(), Bot: seat.IsBot()})
	}
	if m == nil {
		return view
	}

	r := m.Round()
	view.Round = r.Number()
	view.HandSize = r.SizeOfHand()
	view.HandsRemaining = r.HandsRemaining()
	if trump, ok := r.TrumpCard(); ok {
		view.Trump = trump.String()
	} else {
		view.NoTrump = true
	}
	for _, play := range r.CurrentTrick().Plays() {
		view.Trick = append(view.Trick, network.PlayView{Player: play.Player.ID, Card: play.Card.String()})
	}
	for p, n := range r.TricksWon() {
		view.TricksWon[p.ID] = n
	}
	for p, n := range r.Bids() {
		view.Bids[p.ID] = n
	}

	me := whist.NewPlayer(viewer)
	if hand, err := r.Hand(me); err == nil {
		view.Hand = whist.CardStrings(hand)
	}
	if st, ok := m.State().(whist.AwaitingTurn); ok {
		view.ActivePlayer = st.Player.ID
		if st.Player == me {
			if legal, err := r.PlayableCards(me); err == nil {
				view.Legal = whist.CardStrings(legal)
			}
		}
	}
	return view
}
