package whist

// Player identifies a seat at the table. Players compare by ID only.
type Player struct {
	ID string
}

func NewPlayer(id string) Player {
	return Player{ID: id}
}

func (p Player) String() string {
	return p.ID
}

// NewPlayers builds players from identifiers, keeping their order.
func NewPlayers(ids ...string) []Player {
	out := make([]Player, len(ids))
	for i, id := range ids {
		out[i] = NewPlayer(id)
	}
	return out
}

func playerIDs(players []Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}
