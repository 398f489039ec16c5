package whist

import "fmt"

// Hand is the cards a player holds during a round.
type Hand struct {
	Pile
}

func NewHand(cards ...Card) *Hand {
	h := &Hand{}
	h.cards = append(h.cards, cards...)
	return h
}

func (h *Hand) AddCard(c Card) {
	h.cards = append(h.cards, c)
}

// RemoveCard drops the first card equal to c; the others keep their order.
func (h *Hand) RemoveCard(c Card) error {
	i := h.indexOf(c)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrCardNotFound, c)
	}
	h.cards = append(h.cards[:i], h.cards[i+1:]...)
	return nil
}

// OfSuit returns the cards of suit s in hand order.
func (h *Hand) OfSuit(s Suit) []Card {
	var out []Card
	for _, c := range h.cards {
		if c.Suit == s {
			out = append(out, c)
		}
	}
	return out
}
