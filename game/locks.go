package game

import "sync"

// keyedMutex serializes all engine operations touching the same room code.
// Every operation is a read-modify-write over the full aggregate, so without
// this two concurrent writers to one room could lose an update. Entries are
// refcounted and dropped once the last holder releases.
type keyedMutex struct {
	locker sync.Mutex
	locks  map[string]*roomLock
}

type roomLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*roomLock)}
}

// lock acquires the mutex for key and returns its release func.
func (km *keyedMutex) lock(key string) func() {
	km.locker.Lock()
	l, ok := km.locks[key]
	if !ok {
		l = &roomLock{}
		km.locks[key] = l
	}
	l.refs++
	km.locker.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()
		km.locker.Lock()
		l.refs--
		if l.refs == 0 {
			delete(km.locks, key)
		}
		km.locker.Unlock()
	}
}
