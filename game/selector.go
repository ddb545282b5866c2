package game

import (
	"math/rand"

	"github.com/mrsonam/impostor/domain"
	"github.com/mrsonam/impostor/words"
)

// Selection is what a WordSelector decides for a new round.
type Selection struct {
	Word       string
	Hint       string
	ImpostorID string
}

// WordSelector picks the round's word/hint pair and the impostor. It is
// handed the live player list and the entries not yet used in this room.
// The returned ImpostorID must be one of players; the engine trusts it.
// Keeping the selector injected lets tests supply deterministic picks.
type WordSelector func(players []domain.Player, available []words.Entry) Selection

// RandomSelector picks uniformly among the available entries and players.
func RandomSelector(players []domain.Player, available []words.Entry) Selection {
	entry := available[rand.Intn(len(available))]
	impostor := players[rand.Intn(len(players))]
	return Selection{Word: entry.Word, Hint: entry.Hint, ImpostorID: impostor.ID}
}
