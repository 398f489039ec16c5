package whist

import (
	"fmt"

	"github.com/wfunc/whist/event"
)

// Round is one deal of the game: sizeOfHand tricks played from a fresh deck.
type Round struct {
	number         int
	deck           *Deck
	players        []Player
	sizeOfHand     int
	handsRemaining int
	active         Player
	hands          map[Player]*Hand
	trumpCard      Card
	hasTrump       bool
	trick          *Trick
	won            map[Player][]*Trick
	bids           map[Player]int
	sink           event.Sink
}

// NewRound shuffles deck, deals every player sizeOfHand cards and then draws
// the trump card. When the deal empties the deck the round has no trump.
func NewRound(number int, deck *Deck, players []Player, sizeOfHand int, starting Player, sink event.Sink) (*Round, error) {
	if sink == nil {
		sink = event.Discard
	}
	if sizeOfHand < 1 {
		return nil, fmt.Errorf("round %d: hand size %d", number, sizeOfHand)
	}
	if indexOfPlayer(players, starting) < 0 {
		return nil, fmt.Errorf("%w: starting player %s", ErrUnknownPlayer, starting)
	}

	r := &Round{
		number:         number,
		deck:           deck,
		players:        append([]Player(nil), players...),
		sizeOfHand:     sizeOfHand,
		handsRemaining: sizeOfHand,
		active:         starting,
		hands:          make(map[Player]*Hand, len(players)),
		trick:          NewTrick(),
		won:            make(map[Player][]*Trick, len(players)),
		bids:           make(map[Player]int),
		sink:           sink,
	}

	deck.Shuffle()
	hands, err := deck.Deal(len(players), sizeOfHand)
	if err != nil {
		return nil, fmt.Errorf("round %d: %w", number, err)
	}
	for i, p := range r.players {
		r.hands[p] = hands[i]
		r.emit(event.Deal, fmt.Sprintf("Dealt %d cards to %s", sizeOfHand, p),
			event.DealPayload{Player: p.ID, Cards: hands[i].Len()})
	}

	if deck.Len() > 0 {
		if r.trumpCard, err = deck.Draw(); err != nil {
			return nil, err
		}
		r.hasTrump = true
		r.emit(event.NewTrumpCard, fmt.Sprintf("Trump card is %s", r.trumpCard),
			event.NewTrumpCardPayload{Card: r.trumpCard.String(), Suit: r.trumpCard.Suit.String()})
	} else {
		r.emit(event.NewTrumpCard, "No trump this round", event.NewTrumpCardPayload{NoTrump: true})
	}
	return r, nil
}

func (r *Round) emit(t event.Type, msg string, data interface{}) {
	r.sink.Emit(event.New(t, msg, data))
}

func (r *Round) Number() int          { return r.number }
func (r *Round) SizeOfHand() int      { return r.sizeOfHand }
func (r *Round) HandsRemaining() int  { return r.handsRemaining }
func (r *Round) ActivePlayer() Player { return r.active }
func (r *Round) CurrentTrick() *Trick { return r.trick }

// DeckRemaining is the number of cards left undealt after the trump draw.
func (r *Round) DeckRemaining() int { return r.deck.Len() }

// Players returns the seating order.
func (r *Round) Players() []Player {
	return append([]Player(nil), r.players...)
}

// TrumpCard returns the card drawn for trump; ok is false in a no-trump round.
func (r *Round) TrumpCard() (card Card, ok bool) {
	return r.trumpCard, r.hasTrump
}

// TrumpSuit is NoSuit in a no-trump round.
func (r *Round) TrumpSuit() Suit {
	if !r.hasTrump {
		return NoSuit
	}
	return r.trumpCard.Suit
}

// Hand returns a copy of p's remaining cards.
func (r *Round) Hand(p Player) ([]Card, error) {
	h, ok := r.hands[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, p)
	}
	return h.Cards(), nil
}

// PlayableCards is the legal set for p against the current trick.
func (r *Round) PlayableCards(p Player) ([]Card, error) {
	h, ok := r.hands[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, p)
	}
	return r.trick.PlayableCards(h, r.TrumpSuit()), nil
}

// TricksWon counts won tricks per player; every player has an entry.
func (r *Round) TricksWon() map[Player]int {
	out := make(map[Player]int, len(r.players))
	for _, p := range r.players {
		out[p] = len(r.won[p])
	}
	return out
}

// WonTricks returns the completed tricks p has taken this round.
func (r *Round) WonTricks(p Player) []*Trick {
	return append([]*Trick(nil), r.won[p]...)
}

// Bids returns the bids recorded so far.
func (r *Round) Bids() map[Player]int {
	out := make(map[Player]int, len(r.bids))
	for p, b := range r.bids {
		out[p] = b
	}
	return out
}

// AdvanceToNextPlayer hands the turn to the next seat, wrapping around.
func (r *Round) AdvanceToNextPlayer() Player {
	return r.setActive(nextPlayer(r.players, r.active))
}

func (r *Round) setActive(p Player) Player {
	r.active = p
	r.emit(event.TurnChanged, fmt.Sprintf("It is %s's turn", p), event.TurnChangedPayload{Player: p.ID})
	return p
}

func nextPlayer(players []Player, current Player) Player {
	i := indexOfPlayer(players, current)
	return players[(i+1)%len(players)]
}

func indexOfPlayer(players []Player, p Player) int {
	for i, q := range players {
		if q == p {
			return i
		}
	}
	return -1
}
