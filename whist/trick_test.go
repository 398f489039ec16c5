package whist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	p1, p2, p3, p4 = NewPlayer("P1"), NewPlayer("P2"), NewPlayer("P3"), NewPlayer("P4")
)

func TestTrickBaseSuit(t *testing.T) {
	tr := NewTrick()
	assert.Equal(t, NoSuit, tr.BaseSuit())

	require.NoError(t, tr.AddCard(NewCard(Clubs, "7", 6), p1))
	require.NoError(t, tr.AddCard(NewCard(Hearts, "A", 13), p2))
	assert.Equal(t, Clubs, tr.BaseSuit())
}

func TestTrickOnePlayPerPlayer(t *testing.T) {
	tr := NewTrick()
	require.NoError(t, tr.AddCard(NewCard(Clubs, "7", 6), p1))
	err := tr.AddCard(NewCard(Clubs, "8", 7), p1)
	assert.ErrorIs(t, err, ErrAlreadyPlayed)
	assert.Equal(t, 1, tr.Len())
}

func TestPlayableCards(t *testing.T) {
	hearts := NewCard(Hearts, "9", 8)
	spades := NewCard(Spades, "J", 10)
	clubs := NewCard(Clubs, "A", 13)
	diamonds := NewCard(Diamonds, "K", 12)

	cases := []struct {
		name  string
		lead  Card
		hand  []Card
		trump Suit
		want  []Card
	}{
		{"must follow", NewCard(Hearts, "Q", 11), []Card{hearts, spades, clubs}, Spades, []Card{hearts}},
		{"must trump", NewCard(Hearts, "Q", 11), []Card{spades, clubs}, Spades, []Card{spades}},
		{"anything", NewCard(Hearts, "Q", 11), []Card{clubs, diamonds}, Spades, []Card{clubs, diamonds}},
		{"no trump round", NewCard(Hearts, "Q", 11), []Card{spades, clubs}, NoSuit, []Card{spades, clubs}},
		{"trump led", NewCard(Spades, "Q", 11), []Card{spades, hearts}, Spades, []Card{spades}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewTrick()
			require.NoError(t, tr.AddCard(tc.lead, p1))
			assert.ElementsMatch(t, tc.want, tr.PlayableCards(NewHand(tc.hand...), tc.trump))
		})
	}
}

func TestPlayableCardsLeading(t *testing.T) {
	hand := NewHand(NewCard(Hearts, "9", 8), NewCard(Spades, "J", 10))
	assert.ElementsMatch(t, hand.Cards(), NewTrick().PlayableCards(hand, Spades))
}

func TestLegalMoveLaw(t *testing.T) {
	deck := BuildDeck(6, nil).Cards()
	for i := 0; i+5 <= len(deck); i += 5 {
		lead := deck[(i*7)%len(deck)]
		hand := NewHand(deck[i : i+5]...)
		if hand.Contains(lead) {
			continue
		}
		for _, trump := range Suits {
			tr := NewTrick()
			require.NoError(t, tr.AddCard(lead, p1))
			legal := tr.PlayableCards(hand, trump)
			switch {
			case len(hand.OfSuit(lead.Suit)) > 0:
				for _, c := range legal {
					assert.Equal(t, lead.Suit, c.Suit)
				}
			case len(hand.OfSuit(trump)) > 0:
				for _, c := range legal {
					assert.Equal(t, trump, c.Suit)
				}
			default:
				assert.ElementsMatch(t, hand.Cards(), legal)
			}
		}
	}
}

func TestWinnerHighestBaseSuit(t *testing.T) {
	tr := NewTrick()
	require.NoError(t, tr.AddCard(NewCard(Hearts, "5", 5), p1))
	require.NoError(t, tr.AddCard(NewCard(Diamonds, "K", 12), p2))
	require.NoError(t, tr.AddCard(NewCard(Hearts, "9", 9), p3))
	require.NoError(t, tr.AddCard(NewCard(Hearts, "A", 13), p4))

	card, ok := tr.WinningCard(Spades)
	require.True(t, ok)
	assert.Equal(t, NewCard(Hearts, "A", 13), card)
	winner, ok := tr.WinningPlayer(Spades)
	require.True(t, ok)
	assert.Equal(t, p4, winner)
}

func TestWinnerOffSuitCannotWin(t *testing.T) {
	tr := NewTrick()
	require.NoError(t, tr.AddCard(NewCard(Hearts, "3", 2), p1))
	require.NoError(t, tr.AddCard(NewCard(Diamonds, "A", 13), p2))
	require.NoError(t, tr.AddCard(NewCard(Clubs, "A", 13), p3))

	winner, _ := tr.WinningPlayer(Spades)
	assert.Equal(t, p1, winner)
}

func TestWinnerTrumpOverridesBaseSuit(t *testing.T) {
	tr := NewTrick()
	require.NoError(t, tr.AddCard(NewCard(Clubs, "A", 13), p1))
	require.NoError(t, tr.AddCard(NewCard(Spades, "7", 6), p2))
	require.NoError(t, tr.AddCard(NewCard(Clubs, "K", 12), p3))
	require.NoError(t, tr.AddCard(NewCard(Clubs, "Q", 11), p4))

	winner, _ := tr.WinningPlayer(Spades)
	assert.Equal(t, p2, winner)
}

func TestWinnerHigherTrumpWins(t *testing.T) {
	tr := NewTrick()
	require.NoError(t, tr.AddCard(NewCard(Clubs, "A", 13), p1))
	require.NoError(t, tr.AddCard(NewCard(Spades, "7", 6), p2))
	require.NoError(t, tr.AddCard(NewCard(Clubs, "K", 12), p3))
	require.NoError(t, tr.AddCard(NewCard(Spades, "9", 8), p4))

	winner, _ := tr.WinningPlayer(Spades)
	assert.Equal(t, p4, winner)
	// play order survives winner resolution
	assert.Equal(t, p1, tr.Plays()[0].Player)
}

func TestWinnerEmptyTrick(t *testing.T) {
	_, ok := NewTrick().WinningPlayer(Spades)
	assert.False(t, ok)
}
