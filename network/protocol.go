package network

const (
	MsgTypeHeartbeat    = 1
	MsgTypeJoinTable    = 101
	MsgTypeLeaveTable   = 102
	MsgTypeCreateTable  = 103
	MsgTypeListTables   = 104
	MsgTypePlayerAction = 202
	MsgTypeTableState   = 301
	MsgTypeGameEvent    = 302
	MsgTypeGameStart    = 303
	MsgTypeGameEnd      = 305
	MsgTypeError        = 400
)

// Action types carried by MsgTypePlayerAction.
const (
	ActionPlayCard = "play_card"
	ActionBid      = "bid"
)

type CreateTableRequest struct {
	Table string `json:"table"`
	Name  string `json:"name"`
}

// JoinTableRequest joins TableID, or any waiting table when it is empty.
type JoinTableRequest struct {
	TableID string `json:"table_id,omitempty"`
	Name    string `json:"name"`
}

type TableJoined struct {
	TableID string `json:"table_id"`
	Name    string `json:"name"`
}

type ActionRequest struct {
	Type string `json:"type"`
	Card string `json:"card,omitempty"`
	Bid  int    `json:"bid,omitempty"`
}

type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type TableSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	State      string `json:"state"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"max_players"`
}

type SeatView struct {
	Name string `json:"name"`
	Bot  bool   `json:"bot"`
}

type PlayView struct {
	Player string `json:"player"`
	Card   string `json:"card"`
}

// TableView is a table as seen by one seated player.
type TableView struct {
	TableID        string         `json:"table_id"`
	State          string         `json:"state"`
	Seats          []SeatView     `json:"seats"`
	Round          int            `json:"round"`
	HandSize       int            `json:"hand_size"`
	HandsRemaining int            `json:"hands_remaining"`
	Trump          string         `json:"trump,omitempty"`
	NoTrump        bool           `json:"no_trump"`
	ActivePlayer   string         `json:"active_player,omitempty"`
	Trick          []PlayView     `json:"trick"`
	TricksWon      map[string]int `json:"tricks_won"`
	Bids           map[string]int `json:"bids"`
	Hand           []string       `json:"hand"`
	Legal          []string       `json:"legal"`
}

type GameStart struct {
	TableID  string   `json:"table_id"`
	Players  []string `json:"players"`
	Schedule []int    `json:"schedule"`
	Seed     int64    `json:"seed"`
}

type GameEnd struct {
	TableID     string         `json:"table_id"`
	TotalTricks map[string]int `json:"total_tricks"`
}
