package storage

import (
	"context"
	"sync"

	"github.com/mrsonam/impostor/domain"
)

// MemoryRoomStore is a map-backed repository for tests and single-instance
// dev runs. Rooms are deep-copied on the way in and out so callers never
// share state with the store.
type MemoryRoomStore struct {
	locker sync.RWMutex
	rooms  map[string]domain.Room
}

func NewMemoryRoomStore() *MemoryRoomStore {
	return &MemoryRoomStore{rooms: make(map[string]domain.Room)}
}

func (s *MemoryRoomStore) Get(_ context.Context, id string) (domain.Room, error) {
	s.locker.RLock()
	defer s.locker.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (s *MemoryRoomStore) Create(_ context.Context, room domain.Room) error {
	s.locker.Lock()
	defer s.locker.Unlock()
	if _, exists := s.rooms[room.ID]; exists {
		return domain.ErrRoomExists
	}
	s.rooms[room.ID] = room.Clone()
	return nil
}

func (s *MemoryRoomStore) Update(_ context.Context, room domain.Room) error {
	s.locker.Lock()
	defer s.locker.Unlock()
	if _, exists := s.rooms[room.ID]; !exists {
		return domain.ErrRoomNotFound
	}
	s.rooms[room.ID] = room.Clone()
	return nil
}

func (s *MemoryRoomStore) Delete(_ context.Context, id string) error {
	s.locker.Lock()
	defer s.locker.Unlock()
	if _, exists := s.rooms[id]; !exists {
		return domain.ErrRoomNotFound
	}
	delete(s.rooms, id)
	return nil
}

func (s *MemoryRoomStore) All(_ context.Context) ([]domain.Room, error) {
	s.locker.RLock()
	defer s.locker.RUnlock()
	rooms := make([]domain.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room.Clone())
	}
	return rooms, nil
}
