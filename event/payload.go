package event

// Payloads carried in Event.Data, one per event type.

type NewGamePayload struct {
	Players  []string `json:"players"`
	Schedule []int    `json:"schedule"`
}

type NewRoundPayload struct {
	Round          int    `json:"round"`
	HandSize       int    `json:"hand_size"`
	StartingPlayer string `json:"starting_player"`
	DeckSize       int    `json:"deck_size"`
}

type NewTrumpCardPayload struct {
	Card    string `json:"card,omitempty"`
	Suit    string `json:"suit,omitempty"`
	NoTrump bool   `json:"no_trump"`
}

type TurnChangedPayload struct {
	Player string `json:"player"`
}

type DealPayload struct {
	Player string `json:"player"`
	Cards  int    `json:"cards"`
}

type CardPlayedPayload struct {
	Player string `json:"player"`
	Card   string `json:"card"`
}

type HandFinishedPayload struct {
	Winner         string `json:"winner"`
	Card           string `json:"card"`
	HandsRemaining int    `json:"hands_remaining"`
}

type RoundFinishedPayload struct {
	Round     int            `json:"round"`
	HandSize  int            `json:"hand_size"`
	TricksWon map[string]int `json:"tricks_won"`
	Bids      map[string]int `json:"bids,omitempty"`
}

type BidMadePayload struct {
	Player string `json:"player"`
	Bid    int    `json:"bid"`
}
