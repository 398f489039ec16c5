package whist

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/wfunc/whist/event"
)

const (
	MinPlayers = 3
	MaxPlayers = 6
	// MaxHandSize is the largest hand of the schedule.
	MaxHandSize = 8
)

// Schedule returns the hand size of every round for n players:
// n rounds of 1, 2..7, n rounds of 8, 7..2, n rounds of 1.
func Schedule(n int) []int {
	out := make([]int, 0, 3*n+12)
	for i := 0; i < n; i++ {
		out = append(out, 1)
	}
	for size := 2; size < MaxHandSize; size++ {
		out = append(out, size)
	}
	for i := 0; i < n; i++ {
		out = append(out, MaxHandSize)
	}
	for size := MaxHandSize - 1; size > 1; size-- {
		out = append(out, size)
	}
	for i := 0; i < n; i++ {
		out = append(out, 1)
	}
	return out
}

// Options configures a Game. The zero value is usable.
type Options struct {
	Sink event.Sink
	// Seed makes shuffles reproducible; 0 seeds from the clock.
	Seed int64
}

// Game is a whole sitting: one round per entry of the schedule.
type Game struct {
	players     []Player
	roundNumber int
	schedule    []int
	current     *RoundManager
	rounds      []*Round
	sink        event.Sink
	rng         *rand.Rand
}

func NewGame(players []Player, opts Options) (*Game, error) {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, fmt.Errorf("%w: %d (want %d-%d)", ErrPlayerCount, len(players), MinPlayers, MaxPlayers)
	}
	seen := make(map[Player]bool, len(players))
	for _, p := range players {
		if seen[p] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p)
		}
		seen[p] = true
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sink := opts.Sink
	if sink == nil {
		sink = event.Discard
	}

	g := &Game{
		players:     append([]Player(nil), players...),
		roundNumber: -1,
		schedule:    Schedule(len(players)),
		sink:        sink,
		rng:         rand.New(rand.NewSource(seed)),
	}
	sink.Emit(event.New(event.NewGame, fmt.Sprintf("New game with %d players", len(players)),
		event.NewGamePayload{Players: playerIDs(g.players), Schedule: g.Schedule()}))
	return g, nil
}

func (g *Game) Players() []Player { return append([]Player(nil), g.players...) }

// RoundNumber is -1 before the first round starts.
func (g *Game) RoundNumber() int { return g.roundNumber }

func (g *Game) Schedule() []int { return append([]int(nil), g.schedule...) }

// Current is the manager of the round in progress, nil before the first round.
func (g *Game) Current() *RoundManager { return g.current }

// IsFinished reports whether the last scheduled round has been played out.
func (g *Game) IsFinished() bool {
	return g.roundNumber == len(g.schedule)-1 && g.current != nil && g.current.IsFinished()
}

// NewDeck builds an unshuffled deck for this table.
func (g *Game) NewDeck() *Deck {
	return BuildDeck(len(g.players), g.rng)
}

// ProgressToNextRound deals the next scheduled round. The starting seat
// moves one place each round.
func (g *Game) ProgressToNextRound() (*RoundManager, error) {
	if g.current != nil && !g.current.IsFinished() {
		return nil, ErrRoundStillActive
	}
	if g.roundNumber+1 >= len(g.schedule) {
		return nil, ErrGameOver
	}

	number := g.roundNumber + 1
	starting := g.players[number%len(g.players)]
	size := g.schedule[number]
	deck := g.NewDeck()
	g.sink.Emit(event.New(event.NewRound, fmt.Sprintf("Round %d: %d cards each, %s starts", number, size, starting),
		event.NewRoundPayload{Round: number, HandSize: size, StartingPlayer: starting.ID, DeckSize: deck.Len()}))

	r, err := NewRound(number, deck, g.players, size, starting, g.sink)
	if err != nil {
		return nil, err
	}
	g.roundNumber = number
	g.current = NewRoundManager(r)
	g.rounds = append(g.rounds, r)
	return g.current, nil
}

// TotalTricks sums tricks won per player over every round played so far,
// the current one included.
func (g *Game) TotalTricks() map[Player]int {
	out := make(map[Player]int, len(g.players))
	for _, p := range g.players {
		out[p] = 0
	}
	for _, r := range g.rounds {
		for p, n := range r.TricksWon() {
			out[p] += n
		}
	}
	return out
}

// Rounds returns every round dealt so far, oldest first.
func (g *Game) Rounds() []*Round {
	return append([]*Round(nil), g.rounds...)
}
