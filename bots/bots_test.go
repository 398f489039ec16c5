package bots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfunc/whist/event"
	"github.com/wfunc/whist/whist"
)

func seats(players []whist.Player) map[whist.Player]Bot {
	out := map[whist.Player]Bot{}
	for i, p := range players {
		out[p] = NewRandomBot(p.ID, int64(i+1))
	}
	return out
}

func TestSimulateWholeGame(t *testing.T) {
	players := whist.NewPlayers("north", "east", "south", "west")
	log := event.NewLog()
	g, err := whist.NewGame(players, whist.Options{Sink: log, Seed: 11})
	require.NoError(t, err)

	require.NoError(t, Simulate(g, seats(players)))
	assert.True(t, g.IsFinished())

	schedule := whist.Schedule(4)
	assert.Len(t, log.OfType(event.RoundFinished), len(schedule))
	assert.Len(t, log.OfType(event.BidMade), 4*len(schedule))

	cards := 0
	for _, s := range schedule {
		cards += 4 * s
	}
	assert.Len(t, log.OfType(event.CardPlayed), cards)
}

func TestSimulateIsReproducible(t *testing.T) {
	run := func() []event.Event {
		players := whist.NewPlayers("a", "b", "c")
		log := event.NewLog()
		g, err := whist.NewGame(players, whist.Options{Sink: log, Seed: 5})
		require.NoError(t, err)
		require.NoError(t, Simulate(g, seats(players)))
		return log.Events()
	}
	assert.Equal(t, run(), run())
}

func TestSimulateNeedsEverySeat(t *testing.T) {
	players := whist.NewPlayers("a", "b", "c")
	g, err := whist.NewGame(players, whist.Options{Seed: 1})
	require.NoError(t, err)

	s := seats(players)
	delete(s, players[2])
	assert.ErrorIs(t, Simulate(g, s), whist.ErrUnknownPlayer)
}

func TestPlayTurnWaitsForOwnTurn(t *testing.T) {
	players := whist.NewPlayers("a", "b", "c")
	g, err := whist.NewGame(players, whist.Options{Seed: 2})
	require.NoError(t, err)
	m, err := g.ProgressToNextRound()
	require.NoError(t, err)

	played, err := PlayTurn(m, players[1], NewRandomBot("b", 1))
	require.NoError(t, err)
	assert.False(t, played)

	played, err = PlayTurn(m, players[0], NewRandomBot("a", 1))
	require.NoError(t, err)
	assert.True(t, played)
	assert.Equal(t, whist.AwaitingTurn{Player: players[1]}, m.State())
}

func TestRandomBotBidRange(t *testing.T) {
	b := NewRandomBot("x", 3)
	for i := 0; i < 50; i++ {
		bid := b.ChooseBid(nil, 3)
		assert.GreaterOrEqual(t, bid, 0)
		assert.LessOrEqual(t, bid, 3)
	}
	assert.Equal(t, "x", b.Name())
}
