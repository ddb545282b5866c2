package game

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"

	"github.com/google/uuid"
)

const (
	// roomCodeAlphabet skips I, O and the 0/1 lookalikes so codes stay easy
	// to read out and type.
	roomCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ"
	roomCodeLength   = 5

	// maxCodeAttempts bounds the retry loop against a (practically
	// unreachable) exhausted code space.
	maxCodeAttempts = 100
)

// newRoomCode produces a candidate room code. Uniqueness is enforced by the
// repository's create-if-absent, not here.
func newRoomCode() string {
	code := make([]byte, roomCodeLength)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(roomCodeAlphabet))))
		if err != nil {
			code[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
			continue
		}
		code[i] = roomCodeAlphabet[n.Int64()]
	}
	return string(code)
}

// Player, round and clue ids are opaque tokens. They must be unguessable
// from observed traffic, so they come from a CSPRNG rather than a counter.
func newPlayerID() string { return uuid.NewString() }
func newRoundID() string  { return uuid.NewString() }
func newClueID() string   { return uuid.NewString() }
