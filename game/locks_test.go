package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesPerKey(t *testing.T) {
	t.Parallel()
	km := newKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.lock("ROOMA")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyedMutex_ReleasesEntries(t *testing.T) {
	t.Parallel()
	km := newKeyedMutex()

	unlock := km.lock("ROOMA")
	unlock()

	km.locker.Lock()
	defer km.locker.Unlock()
	assert.Empty(t, km.locks, "released keys must not accumulate")
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	t.Parallel()
	km := newKeyedMutex()

	unlockA := km.lock("ROOMA")
	defer unlockA()

	// A held lock on one key must not block another key.
	done := make(chan struct{})
	go func() {
		unlockB := km.lock("ROOMB")
		unlockB()
		close(done)
	}()
	<-done
}
