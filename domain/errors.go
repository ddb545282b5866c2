package domain

import "errors"

// Engine failures, surfaced synchronously and mapped to responses at the
// request boundary.
var (
	ErrRoomNotFound        = errors.New("room-not-found")
	ErrPlayerNotInRoom     = errors.New("player-not-in-room")
	ErrPlayerNotFound      = errors.New("player-not-found")
	ErrInsufficientPlayers = errors.New("insufficient-players")
	ErrRoundNotActive      = errors.New("round-not-active")
	ErrNotOwner            = errors.New("not-owner")
	ErrCannotKickOwner     = errors.New("cannot-kick-owner")
)

// Repository failures.
var (
	ErrRoomExists = errors.New("room-exists")
	ErrStorage    = errors.New("storage-error")
)
