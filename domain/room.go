package domain

// Player is one participant of a room. Ids are opaque tokens handed out at
// join time and never reused.
type Player struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Avatar        string `json:"avatar,omitempty"`
	AvatarFull    string `json:"avatarFull,omitempty"`
	ImpostorCount int    `json:"impostorCount"`
	JoinedAt      int64  `json:"joinedAt"`
}

// Clue is an append-only entry belonging to exactly one round. PlayerID is
// not re-validated if the player later leaves.
type Clue struct {
	ID       string `json:"id"`
	PlayerID string `json:"playerId"`
	Text     string `json:"text"`
	Ts       int64  `json:"ts"`
}

// Round is one play of the game. Word and Hint are always drawn together
// from the pool. Once EndedAt is set the round is immutable; a new round
// replaces it entirely.
type Round struct {
	ID         string `json:"id"`
	Word       string `json:"word"`
	Hint       string `json:"hint"`
	ImpostorID string `json:"impostorId"`
	StartedAt  int64  `json:"startedAt"`
	EndedAt    int64  `json:"endedAt,omitempty"`
	Clues      []Clue `json:"clues"`
}

// Active reports whether the round has not ended yet.
func (r *Round) Active() bool {
	return r != nil && r.EndedAt == 0
}

// Room is the aggregate persisted as one document keyed by its code.
// Invariant: Players is non-empty for as long as the document exists, and
// OwnerID always references one of Players.
type Room struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"ownerId"`
	Players      []Player `json:"players"`
	Round        *Round   `json:"game,omitempty"`
	CreatedAt    int64    `json:"createdAt"`
	LastActivity int64    `json:"lastActivity"`
	ShowHints    bool     `json:"showHints"`
	UsedWords    []string `json:"usedWords"`
}

// Phase is derived from the round state, never stored.
type Phase string

const (
	PhaseLobby Phase = "lobby"
	PhaseRound Phase = "round"
	PhaseEnd   Phase = "end"
)

func (r *Room) Phase() Phase {
	switch {
	case r.Round == nil:
		return PhaseLobby
	case r.Round.Active():
		return PhaseRound
	default:
		return PhaseEnd
	}
}

// Player returns the player with the given id, if present.
func (r *Room) Player(id string) (Player, bool) {
	for _, p := range r.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Clone returns a deep copy of the aggregate so stores and callers never
// share slice backing arrays.
func (r Room) Clone() Room {
	out := r
	out.Players = append([]Player(nil), r.Players...)
	out.UsedWords = append([]string(nil), r.UsedWords...)
	if r.Round != nil {
		round := *r.Round
		round.Clues = append([]Clue(nil), r.Round.Clues...)
		out.Round = &round
	}
	return out
}
