package whist

import (
	"fmt"
	"math/rand"
)

// Deck is the stack of undealt cards a round owns. Draw takes from the top,
// which is the end of the slice.
type Deck struct {
	Pile
	rng *rand.Rand
}

// NewDeck wraps cards in a deck. A nil rng falls back to the global source.
func NewDeck(cards []Card, rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.cards = append([]Card(nil), cards...)
	return d
}

// BuildDeck instantiates the top 2×numPlayers rank tiers in every suit,
// enough for size-8 hands all round.
func BuildDeck(numPlayers int, rng *rand.Rand) *Deck {
	tiers := 2 * numPlayers
	if tiers > len(Ranks) {
		tiers = len(Ranks)
	}
	cards := make([]Card, 0, tiers*len(Suits))
	for _, r := range Ranks[:tiers] {
		for _, s := range Suits {
			cards = append(cards, NewCard(s, r.Name, r.Value))
		}
	}
	return NewDeck(cards, rng)
}

// Shuffle applies a uniform random permutation.
func (d *Deck) Shuffle() {
	swap := func(i, j int) { d.cards[i], d.cards[j] = d.cards[j], d.cards[i] }
	if d.rng != nil {
		d.rng.Shuffle(len(d.cards), swap)
		return
	}
	rand.Shuffle(len(d.cards), swap)
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	n := len(d.cards)
	if n == 0 {
		return Card{}, ErrEmptyDeck
	}
	c := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return c, nil
}

// Deal builds numHands hands of sizeOfHand cards, one card per hand per pass.
// Nothing is drawn when the deck cannot cover the whole deal.
func (d *Deck) Deal(numHands, sizeOfHand int) ([]*Hand, error) {
	if need := numHands * sizeOfHand; need > len(d.cards) {
		return nil, fmt.Errorf("%w: deal needs %d cards, deck holds %d", ErrEmptyDeck, need, len(d.cards))
	}
	hands := make([]*Hand, numHands)
	for i := range hands {
		hands[i] = NewHand()
	}
	for pass := 0; pass < sizeOfHand; pass++ {
		for _, h := range hands {
			c, err := d.Draw()
			if err != nil {
				return nil, err
			}
			h.AddCard(c)
		}
	}
	return hands, nil
}
