package whist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfunc/whist/event"
)

func card(t *testing.T, s string) Card {
	t.Helper()
	c, err := ParseCard(s)
	require.NoError(t, err)
	return c
}

// riggedManager builds a round with fixed hands instead of a shuffled deal.
// The first player leads.
func riggedManager(t *testing.T, sink event.Sink, trump string, hands map[Player][]string, players ...Player) *RoundManager {
	t.Helper()
	if sink == nil {
		sink = event.Discard
	}
	size := len(hands[players[0]])
	r := &Round{
		deck:           NewDeck(nil, nil),
		players:        players,
		sizeOfHand:     size,
		handsRemaining: size,
		active:         players[0],
		hands:          make(map[Player]*Hand),
		trick:          NewTrick(),
		won:            make(map[Player][]*Trick),
		bids:           make(map[Player]int),
		sink:           sink,
	}
	if trump != "" {
		r.trumpCard, r.hasTrump = card(t, trump), true
	}
	for _, p := range players {
		h := NewHand()
		for _, s := range hands[p] {
			h.AddCard(card(t, s))
		}
		r.hands[p] = h
	}
	return NewRoundManager(r)
}

func scenarioManager(t *testing.T, sink event.Sink) *RoundManager {
	return riggedManager(t, sink, "Q of Spades", map[Player][]string{
		p1: {"5H", "3C"},
		p2: {"KD", "4D"},
		p3: {"9H", "6C"},
		p4: {"AH", "7C"},
	}, p1, p2, p3, p4)
}

func TestRoundScenarioFourPlayers(t *testing.T) {
	log := event.NewLog()
	m := scenarioManager(t, log)

	assert.Equal(t, AwaitingTurn{Player: p1}, m.State())
	require.NoError(t, m.PlayCard(card(t, "5H"), p1))
	require.NoError(t, m.PlayCard(card(t, "KD"), p2))
	require.NoError(t, m.PlayCard(card(t, "9H"), p3))
	require.NoError(t, m.PlayCard(card(t, "AH"), p4))

	assert.Equal(t, HandFinished{Winner: p4, Card: card(t, "AH")}, m.State())

	winner, err := m.FinishHand()
	require.NoError(t, err)
	assert.Equal(t, p4, winner)
	assert.Equal(t, AwaitingTurn{Player: p4}, m.State(), "trick winner leads")
	assert.Equal(t, 1, m.Round().HandsRemaining())
	assert.Equal(t, 0, m.Round().CurrentTrick().Len())

	require.NoError(t, m.PlayCard(card(t, "7C"), p4))
	require.NoError(t, m.PlayCard(card(t, "3C"), p1))
	require.NoError(t, m.PlayCard(card(t, "4D"), p2))
	require.NoError(t, m.PlayCard(card(t, "6C"), p3))
	_, err = m.FinishHand()
	require.NoError(t, err)

	require.True(t, m.IsFinished())
	assert.Equal(t, map[Player]int{p1: 0, p2: 0, p3: 0, p4: 2}, m.State().(RoundFinished).TricksWon)
	assert.Len(t, m.Round().WonTricks(p4), 2)

	finished := log.OfType(event.RoundFinished)
	require.Len(t, finished, 1)
	assert.Equal(t, map[string]int{"P1": 0, "P2": 0, "P3": 0, "P4": 2}, finished[0].Data.(event.RoundFinishedPayload).TricksWon)
	assert.Len(t, log.OfType(event.CardPlayed), 8)
	assert.Len(t, log.OfType(event.HandFinished), 2)
}

func TestPlayCardNotYourTurn(t *testing.T) {
	m := scenarioManager(t, nil)
	err := m.PlayCard(card(t, "KD"), p2)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	hand, _ := m.Round().Hand(p2)
	assert.Len(t, hand, 2)
	assert.Equal(t, 0, m.Round().CurrentTrick().Len())
}

func TestPlayCardIllegal(t *testing.T) {
	m := scenarioManager(t, nil)
	require.NoError(t, m.PlayCard(card(t, "5H"), p1))
	require.NoError(t, m.PlayCard(card(t, "4D"), p2))

	err := m.PlayCard(card(t, "6C"), p3)
	assert.ErrorIs(t, err, ErrIllegalCard)
	assert.Equal(t, AwaitingTurn{Player: p3}, m.State())

	hand, _ := m.Round().Hand(p3)
	assert.Len(t, hand, 2, "rejected play leaves the hand alone")
}

func TestPlayCardNotInHand(t *testing.T) {
	m := scenarioManager(t, nil)
	err := m.PlayCard(card(t, "AS"), p1)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestLeaderMayPlayAnything(t *testing.T) {
	m := scenarioManager(t, nil)
	require.NoError(t, m.PlayCard(card(t, "3C"), p1))
	assert.Equal(t, Clubs, m.Round().CurrentTrick().BaseSuit())
}

func TestStateMachineRejectsWrongState(t *testing.T) {
	m := scenarioManager(t, nil)

	_, err := m.FinishHand()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	var se *StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "finish hand", se.Op)

	for _, c := range []struct {
		card   string
		player Player
	}{{"5H", p1}, {"KD", p2}, {"9H", p3}, {"AH", p4}} {
		require.NoError(t, m.PlayCard(card(t, c.card), c.player))
	}
	err = m.PlayCard(card(t, "3C"), p1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.IsType(t, HandFinished{}, m.State())
}

func TestFinishedRoundRejectsEverything(t *testing.T) {
	m := riggedManager(t, nil, "", map[Player][]string{
		p1: {"AH"}, p2: {"KH"}, p3: {"QH"},
	}, p1, p2, p3)
	require.NoError(t, m.PlayCard(card(t, "AH"), p1))
	require.NoError(t, m.PlayCard(card(t, "KH"), p2))
	require.NoError(t, m.PlayCard(card(t, "QH"), p3))
	_, err := m.FinishHand()
	require.NoError(t, err)
	require.True(t, m.IsFinished())

	_, err = m.FinishHand()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, m.PlayCard(card(t, "AH"), p1), ErrInvalidTransition)
	assert.ErrorIs(t, m.Bid(p1, 1), ErrInvalidTransition)
}

func TestNoTrumpRound(t *testing.T) {
	m := riggedManager(t, nil, "", map[Player][]string{
		p1: {"7H"}, p2: {"AS"}, p3: {"8H"},
	}, p1, p2, p3)
	assert.Equal(t, NoSuit, m.Round().TrumpSuit())
	require.NoError(t, m.PlayCard(card(t, "7H"), p1))
	require.NoError(t, m.PlayCard(card(t, "AS"), p2))
	require.NoError(t, m.PlayCard(card(t, "8H"), p3))
	assert.Equal(t, p3, m.State().(HandFinished).Winner)
}

func TestBid(t *testing.T) {
	log := event.NewLog()
	m := scenarioManager(t, log)

	require.NoError(t, m.Bid(p2, 1))
	require.NoError(t, m.Bid(p1, 0))
	assert.ErrorIs(t, m.Bid(NewPlayer("nobody"), 1), ErrUnknownPlayer)
	assert.Equal(t, map[Player]int{p1: 0, p2: 1}, m.Round().Bids())
	assert.Len(t, log.OfType(event.BidMade), 2)

	require.NoError(t, m.PlayCard(card(t, "5H"), p1))
	assert.ErrorIs(t, m.Bid(p3, 1), ErrBiddingClosed)
}

func TestTurnRotationIsACycle(t *testing.T) {
	m := scenarioManager(t, nil)
	r := m.Round()
	for _, start := range r.Players() {
		r.active = start
		visited := map[Player]bool{start: true}
		order := []Player{start}
		for i := 1; i < len(r.players); i++ {
			p := r.AdvanceToNextPlayer()
			assert.False(t, visited[p], "visited %s twice", p)
			visited[p] = true
			order = append(order, p)
		}
		assert.Equal(t, start, r.AdvanceToNextPlayer())
		assert.Len(t, visited, 4)

		i := indexOfPlayer(r.players, start)
		for k, p := range order {
			assert.Equal(t, r.players[(i+k)%4], p)
		}
	}
}
