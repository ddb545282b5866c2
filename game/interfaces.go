package game

import (
	"context"

	"github.com/mrsonam/impostor/domain"
)

// RoomRepo is the sole authority for durable room state: one document per
// room, keyed by room code.
type RoomRepo interface {
	// Get returns the room or domain.ErrRoomNotFound.
	Get(ctx context.Context, id string) (domain.Room, error)
	// Create stores a new room, failing with domain.ErrRoomExists when the
	// code is already taken (create-if-absent, so concurrent creators cannot
	// both claim the same code).
	Create(ctx context.Context, room domain.Room) error
	// Update overwrites the full document or fails with domain.ErrRoomNotFound.
	Update(ctx context.Context, room domain.Room) error
	// Delete removes the document or fails with domain.ErrRoomNotFound.
	Delete(ctx context.Context, id string) error
	// All returns every stored room, for the inactivity sweep.
	All(ctx context.Context) ([]domain.Room, error)
}

// Notifier fans an event out to all current subscribers of a room topic.
// Delivery is best-effort and must never carry round secrets.
type Notifier interface {
	Broadcast(roomID, event string, payload any)
}
