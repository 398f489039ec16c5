package bots

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/wfunc/whist/whist"
)

// Bot decides bids and plays for one seat.
type Bot interface {
	Name() string
	ChooseBid(hand []whist.Card, handSize int) int
	ChooseCard(legal []whist.Card, r *whist.Round) whist.Card
}

// RandomBot bids and plays uniformly among its options.
type RandomBot struct {
	BotName string
	rng     *rand.Rand
}

func NewRandomBot(name string, seed int64) *RandomBot {
	return &RandomBot{BotName: name, rng: rand.New(rand.NewSource(seed))}
}

func (b *RandomBot) Name() string {
	if b.BotName == "" {
		b.BotName = "RandomBot_" + strconv.Itoa(b.intn(100))
	}
	return b.BotName
}

func (b *RandomBot) ChooseBid(hand []whist.Card, handSize int) int {
	return b.intn(handSize + 1)
}

func (b *RandomBot) ChooseCard(legal []whist.Card, r *whist.Round) whist.Card {
	return legal[b.intn(len(legal))]
}

func (b *RandomBot) intn(n int) int {
	if b.rng == nil {
		return rand.Intn(n)
	}
	return b.rng.Intn(n)
}

// PlayTurn lets bot act for the state m is in: a card when it is p's turn.
// It reports whether anything was played.
func PlayTurn(m *whist.RoundManager, p whist.Player, bot Bot) (bool, error) {
	s, ok := m.State().(whist.AwaitingTurn)
	if !ok || s.Player != p {
		return false, nil
	}
	legal, err := m.Round().PlayableCards(p)
	if err != nil {
		return false, err
	}
	if len(legal) == 0 {
		return false, fmt.Errorf("%s has no legal card", p)
	}
	return true, m.PlayCard(bot.ChooseCard(legal, m.Round()), p)
}

// Bid asks bot for p's bid on the freshly dealt round.
func Bid(m *whist.RoundManager, p whist.Player, bot Bot) error {
	hand, err := m.Round().Hand(p)
	if err != nil {
		return err
	}
	return m.Bid(p, bot.ChooseBid(hand, m.Round().SizeOfHand()))
}

// Simulate plays g to the end with one bot per player.
func Simulate(g *whist.Game, seats map[whist.Player]Bot) error {
	for _, p := range g.Players() {
		if seats[p] == nil {
			return fmt.Errorf("%w: no bot for %s", whist.ErrUnknownPlayer, p)
		}
	}
	for {
		m, err := g.ProgressToNextRound()
		if errors.Is(err, whist.ErrGameOver) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := playRound(m, seats); err != nil {
			return fmt.Errorf("round %d: %w", m.Round().Number(), err)
		}
	}
}

func playRound(m *whist.RoundManager, seats map[whist.Player]Bot) error {
	r := m.Round()
	p := r.ActivePlayer()
	for range r.Players() {
		if err := Bid(m, p, seats[p]); err != nil {
			return err
		}
		p = nextSeat(r.Players(), p)
	}

	for !m.IsFinished() {
		switch s := m.State().(type) {
		case whist.AwaitingTurn:
			if _, err := PlayTurn(m, s.Player, seats[s.Player]); err != nil {
				return err
			}
		case whist.HandFinished:
			if _, err := m.FinishHand(); err != nil {
				return err
			}
		}
	}
	return nil
}

func nextSeat(players []whist.Player, p whist.Player) whist.Player {
	for i, q := range players {
		if q == p {
			return players[(i+1)%len(players)]
		}
	}
	return players[0]
}
