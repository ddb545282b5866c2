package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRoomCode(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		code := newRoomCode()
		assert.Len(t, code, roomCodeLength)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(roomCodeAlphabet, c), "code %q contains %q", code, c)
		}
	}
}

func TestRoomCodeAlphabetExcludesLookalikes(t *testing.T) {
	t.Parallel()

	assert.Len(t, roomCodeAlphabet, 23)
	assert.NotContains(t, roomCodeAlphabet, "I")
	assert.NotContains(t, roomCodeAlphabet, "O")
	assert.NotContains(t, roomCodeAlphabet, "L")
}

func TestOpaqueIDsAreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		for _, id := range []string{newPlayerID(), newRoundID(), newClueID()} {
			_, dup := seen[id]
			assert.False(t, dup, "duplicate id %q", id)
			seen[id] = struct{}{}
		}
	}
}
