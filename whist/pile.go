package whist

// Pile is an ordered sequence of cards. Deck, Hand and Trick build on it.
type Pile struct {
	cards []Card
}

func (p *Pile) Len() int {
	return len(p.cards)
}

// Cards returns a copy of the pile in its current order.
func (p *Pile) Cards() []Card {
	out := make([]Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// Contains reports whether the pile holds a card equal to c.
func (p *Pile) Contains(c Card) bool {
	return p.indexOf(c) >= 0
}

func (p *Pile) indexOf(c Card) int {
	for i, card := range p.cards {
		if card == c {
			return i
		}
	}
	return -1
}
