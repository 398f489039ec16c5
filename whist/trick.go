package whist

import "fmt"

// Play is one card laid on a trick and who laid it.
type Play struct {
	Player Player
	Card   Card
}

// Trick is the pile in the middle of the table for the hand being played.
type Trick struct {
	Pile
	plays    []Play
	playerOf map[Card]Player
	baseSuit Suit
}

func NewTrick() *Trick {
	return &Trick{playerOf: make(map[Card]Player)}
}

// BaseSuit is the suit of the first card played, NoSuit while empty.
func (t *Trick) BaseSuit() Suit {
	return t.baseSuit
}

// Plays returns the plays in the order they were made.
func (t *Trick) Plays() []Play {
	out := make([]Play, len(t.plays))
	copy(out, t.plays)
	return out
}

// HasPlayed reports whether p already has a card on this trick.
func (t *Trick) HasPlayed(p Player) bool {
	for _, play := range t.plays {
		if play.Player == p {
			return true
		}
	}
	return false
}

// AddCard lays card for player. The first card sets the base suit.
func (t *Trick) AddCard(card Card, player Player) error {
	if t.HasPlayed(player) {
		return fmt.Errorf("%w: %s", ErrAlreadyPlayed, player)
	}
	if len(t.cards) == 0 {
		t.baseSuit = card.Suit
	}
	t.cards = append(t.cards, card)
	t.plays = append(t.plays, Play{Player: player, Card: card})
	t.playerOf[card] = player
	return nil
}

// PlayableCards returns the subset of hand that may legally be played:
// the base suit if held, otherwise trumps if held, otherwise anything.
// A player leading an empty trick may play anything.
func (t *Trick) PlayableCards(hand *Hand, trump Suit) []Card {
	if t.baseSuit == NoSuit {
		return hand.Cards()
	}
	if follow := hand.OfSuit(t.baseSuit); len(follow) > 0 {
		return follow
	}
	if trump != NoSuit {
		if trumps := hand.OfSuit(trump); len(trumps) > 0 {
			return trumps
		}
	}
	return hand.Cards()
}

// WinningCard is the highest trump on the trick, or the highest card of the
// base suit when no trump was played. ok is false on an empty trick.
func (t *Trick) WinningCard(trump Suit) (card Card, ok bool) {
	if best, found := t.highestOf(trump); found {
		return best, true
	}
	return t.highestOf(t.baseSuit)
}

// WinningPlayer is the player who laid WinningCard.
func (t *Trick) WinningPlayer(trump Suit) (Player, bool) {
	c, ok := t.WinningCard(trump)
	if !ok {
		return Player{}, false
	}
	return t.playerOf[c], true
}

func (t *Trick) highestOf(s Suit) (Card, bool) {
	var best Card
	found := false
	if s == NoSuit {
		return best, false
	}
	for _, c := range t.cards {
		if c.Suit != s {
			continue
		}
		if !found || c.Value > best.Value {
			best, found = c, true
		}
	}
	return best, found
}
