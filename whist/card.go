package whist

import (
	"fmt"
	"strings"
)

// Suit is a card suit. Suits carry no ordering among themselves.
type Suit int

const (
	// NoSuit marks an unset base suit or a round played without trump.
	NoSuit Suit = iota
	Hearts
	Clubs
	Diamonds
	Spades
)

// Suits lists the four playable suits in deck generation order.
var Suits = []Suit{Hearts, Clubs, Diamonds, Spades}

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	case Spades:
		return "Spades"
	default:
		return "None"
	}
}

// Rank is one tier of the rank table: a display name and the value used
// to compare cards within a trick.
type Rank struct {
	Name  string
	Value int
}

// Ranks is the rank table from the highest tier down. Rank "2" has no tier
// and is never put into a deck: only the top 2×players tiers are dealt.
var Ranks = []Rank{
	{"A", 13}, {"K", 12}, {"Q", 11}, {"J", 10},
	{"10", 9}, {"9", 8}, {"8", 7}, {"7", 6},
	{"6", 5}, {"5", 4}, {"4", 3}, {"3", 2},
}

// Card is an immutable playing card. Two cards are equal when suit, name
// and value all match, so Card works as a map key.
type Card struct {
	Suit  Suit
	Name  string
	Value int
}

func NewCard(suit Suit, name string, value int) Card {
	return Card{Suit: suit, Name: name, Value: value}
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Name, c.Suit)
}

// ParseSuit accepts a full suit name or its first letter, in any case.
func ParseSuit(s string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hearts", "h":
		return Hearts, nil
	case "clubs", "c":
		return Clubs, nil
	case "diamonds", "d":
		return Diamonds, nil
	case "spades", "s":
		return Spades, nil
	}
	return NoSuit, fmt.Errorf("%w: unknown suit %q", ErrInvalidCard, s)
}

// ParseCard reads a card written as "A of Hearts", "10 of spades", "AH" or "10s".
// The value comes from the rank table.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	var name, suit string
	if parts := strings.Fields(s); len(parts) == 3 && strings.EqualFold(parts[1], "of") {
		name, suit = parts[0], parts[2]
	} else if len(s) >= 2 && !strings.Contains(s, " ") {
		name, suit = s[:len(s)-1], s[len(s)-1:]
	} else {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	st, err := ParseSuit(suit)
	if err != nil {
		return Card{}, err
	}
	name = strings.ToUpper(name)
	for _, r := range Ranks {
		if r.Name == name {
			return NewCard(st, r.Name, r.Value), nil
		}
	}
	return Card{}, fmt.Errorf("%w: unknown rank %q", ErrInvalidCard, name)
}

// CardStrings renders cards for notifications and views.
func CardStrings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
