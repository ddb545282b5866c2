package game

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mrsonam/impostor/domain"
	"github.com/mrsonam/impostor/words"
)

// MinPlayers is the minimum room size for a round to start.
const MinPlayers = 3

// ImpostorWord is what the impostor sees instead of the secret word. It is a
// fixed sentinel, never a real pool entry, so no code path can hand the
// impostor the round's word.
const ImpostorWord = "IMPOSTOR"

const (
	RoleImpostor = "impostor"
	RoleCivilian = "civilian"
)

// Service is the game engine: pure decision logic over the Room aggregate.
// Every operation takes the per-room lock, fetches the current aggregate,
// validates, and persists the new one. Failures leave state unchanged.
type Service struct {
	repo  RoomRepo
	locks *keyedMutex
	pool  []words.Entry
	now   func() int64
}

func NewService(repo RoomRepo, pool []words.Entry) *Service {
	return &Service{
		repo:  repo,
		locks: newKeyedMutex(),
		pool:  pool,
		now:   func() int64 { return time.Now().UnixMilli() },
	}
}

// CreateRoom allocates a fresh code and a room holding only the owner.
func (s *Service) CreateRoom(ctx context.Context, ownerName, avatar, avatarFull string) (domain.Room, domain.Player, error) {
	now := s.now()
	owner := domain.Player{
		ID:         newPlayerID(),
		Name:       ownerName,
		Avatar:     avatar,
		AvatarFull: avatarFull,
		JoinedAt:   now,
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		room := domain.Room{
			ID:           newRoomCode(),
			OwnerID:      owner.ID,
			Players:      []domain.Player{owner},
			CreatedAt:    now,
			LastActivity: now,
			ShowHints:    true,
			UsedWords:    []string{},
		}
		err := s.repo.Create(ctx, room)
		if errors.Is(err, domain.ErrRoomExists) {
			continue
		}
		if err != nil {
			return domain.Room{}, domain.Player{}, err
		}
		return room, owner, nil
	}
	return domain.Room{}, domain.Player{}, domain.ErrRoomExists
}

// JoinRoom appends a new player. Name validation belongs to the request
// boundary; the engine only requires the room to exist.
func (s *Service) JoinRoom(ctx context.Context, roomID, name, avatar, avatarFull string) (domain.Room, domain.Player, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.repo.Get(ctx, roomID)
	if err != nil {
		return domain.Room{}, domain.Player{}, err
	}

	player := domain.Player{
		ID:         newPlayerID(),
		Name:       name,
		Avatar:     avatar,
		AvatarFull: avatarFull,
		JoinedAt:   s.now(),
	}
	room.Players = append(room.Players, player)
	room.LastActivity = s.now()

	if err := s.repo.Update(ctx, room); err != nil {
		return domain.Room{}, domain.Player{}, err
	}
	return room, player, nil
}

// StartRound picks a word and an impostor via the injected selector and
// replaces any previous round. A round left in the end phase is discarded,
// not archived. When the pool is exhausted the used list resets first, so
// starting a round never fails for lack of words.
func (s *Service) StartRound(ctx context.Context, roomID string, selector WordSelector) (domain.Round, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.repo.Get(ctx, roomID)
	if err != nil {
		return domain.Round{}, err
	}
	if len(room.Players) < MinPlayers {
		return domain.Round{}, domain.ErrInsufficientPlayers
	}

	available := words.Available(s.pool, room.UsedWords)
	if len(available) == 0 {
		room.UsedWords = []string{}
		available = s.pool
	}

	pick := selector(room.Players, available)
	for i := range room.Players {
		if room.Players[i].ID == pick.ImpostorID {
			room.Players[i].ImpostorCount++
			break
		}
	}

	round := domain.Round{
		ID:         newRoundID(),
		Word:       pick.Word,
		Hint:       pick.Hint,
		ImpostorID: pick.ImpostorID,
		StartedAt:  s.now(),
		Clues:      []domain.Clue{},
	}
	room.Round = &round
	room.UsedWords = append(room.UsedWords, pick.Word)
	room.LastActivity = s.now()

	if err := s.repo.Update(ctx, room); err != nil {
		return domain.Round{}, err
	}
	return round, nil
}

// NewRound starts the next round, discarding the previous one entirely.
func (s *Service) NewRound(ctx context.Context, roomID string, selector WordSelector) (domain.Round, error) {
	return s.StartRound(ctx, roomID, selector)
}

// SubmitClue appends a clue to the active round. Membership of playerID is
// not re-validated; the caller is trusted.
func (s *Service) SubmitClue(ctx context.Context, roomID, playerID, text string) (domain.Clue, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.repo.Get(ctx, roomID)
	if err != nil {
		return domain.Clue{}, err
	}
	if !room.Round.Active() {
		return domain.Clue{}, domain.ErrRoundNotActive
	}

	clue := domain.Clue{
		ID:       newClueID(),
		PlayerID: playerID,
		Text:     text,
		Ts:       s.now(),
	}
	room.Round.Clues = append(room.Round.Clues, clue)
	room.LastActivity = s.now()

	if err := s.repo.Update(ctx, room); err != nil {
		return domain.Clue{}, err
	}
	return clue, nil
}

// EndRound marks the active round as ended. Ending an already-ended round
// fails and leaves the original end timestamp untouched.
func (s *Service) EndRound(ctx context.Context, roomID string) (domain.Round, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.repo.Get(ctx, roomID)
	if err != nil {
		return domain.Round{}, err
	}
	if !room.Round.Active() {
		return domain.Round{}, domain.ErrRoundNotActive
	}

	room.Round.EndedAt = s.now()
	room.LastActivity = s.now()

	if err := s.repo.Update(ctx, room); err != nil {
		return domain.Round{}, err
	}
	return *room.Round, nil
}

// PrivateView is the per-player projection of round state. Role, Word and
// Hint are nil while no round exists (or hints are withheld).
type PrivateView struct {
	Role     *string `json:"role"`
	Word     *string `json:"word"`
	Hint     *string `json:"hint"`
	IsActive bool    `json:"isActive"`
}

// GetPrivateView computes the role-dependent view for one player. This is
// the security boundary of the whole engine: the impostor is shown the
// ImpostorWord sentinel, never the round's word.
func (s *Service) GetPrivateView(ctx context.Context, roomID, playerID string) (PrivateView, error) {
	room, err := s.repo.Get(ctx, roomID)
	if err != nil {
		return PrivateView{}, err
	}
	if _, ok := room.Player(playerID); !ok {
		return PrivateView{}, domain.ErrPlayerNotInRoom
	}

	round := room.Round
	if round == nil {
		return PrivateView{}, nil
	}

	view := PrivateView{IsActive: round.Active()}
	if round.ImpostorID == playerID {
		view.Role = ptr(RoleImpostor)
		view.Word = ptr(ImpostorWord)
		if room.ShowHints {
			view.Hint = ptr(round.Hint)
		}
	} else {
		view.Role = ptr(RoleCivilian)
		view.Word = ptr(round.Word)
	}
	return view, nil
}

// LeaveRoom removes the player. The last player leaving deletes the room
// (deleted=true); a departing owner hands ownership to the first remaining
// player.
func (s *Service) LeaveRoom(ctx context.Context, roomID, playerID string) (room domain.Room, removed domain.Player, deleted bool, err error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err = s.repo.Get(ctx, roomID)
	if err != nil {
		return domain.Room{}, domain.Player{}, false, err
	}

	idx := -1
	for i, p := range room.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Room{}, domain.Player{}, false, domain.ErrPlayerNotInRoom
	}

	removed = room.Players[idx]
	room.Players = append(room.Players[:idx], room.Players[idx+1:]...)
	room.LastActivity = s.now()

	if len(room.Players) == 0 {
		if err := s.repo.Delete(ctx, roomID); err != nil {
			return domain.Room{}, domain.Player{}, false, err
		}
		return domain.Room{}, removed, true, nil
	}

	if room.OwnerID == playerID {
		room.OwnerID = room.Players[0].ID
	}
	if err := s.repo.Update(ctx, room); err != nil {
		return domain.Room{}, domain.Player{}, false, err
	}
	return room, removed, false, nil
}

// KickPlayer removes target on the owner's behalf. Kicking the impostor of
// an active round force-ends that round so it cannot run forever with a
// vanished impostor; forcedEnd reports when that happened.
func (s *Service) KickPlayer(ctx context.Context, roomID, kickerID, targetID string) (room domain.Room, kicked domain.Player, forcedEnd bool, err error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err = s.repo.Get(ctx, roomID)
	if err != nil {
		return domain.Room{}, domain.Player{}, false, err
	}
	if room.OwnerID != kickerID {
		return domain.Room{}, domain.Player{}, false, domain.ErrNotOwner
	}
	if targetID == room.OwnerID {
		return domain.Room{}, domain.Player{}, false, domain.ErrCannotKickOwner
	}

	idx := -1
	for i, p := range room.Players {
		if p.ID == targetID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Room{}, domain.Player{}, false, domain.ErrPlayerNotFound
	}

	kicked = room.Players[idx]
	room.Players = append(room.Players[:idx], room.Players[idx+1:]...)
	room.LastActivity = s.now()

	if room.Round.Active() && room.Round.ImpostorID == targetID {
		room.Round.EndedAt = s.now()
		forcedEnd = true
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return domain.Room{}, domain.Player{}, false, err
	}
	return room, kicked, forcedEnd, nil
}

// ToggleHints flips whether the impostor sees a hint. Owner-only, enforced
// here rather than at the boundary so the contract holds for every caller.
func (s *Service) ToggleHints(ctx context.Context, roomID, playerID string) (bool, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.repo.Get(ctx, roomID)
	if err != nil {
		return false, err
	}
	if room.OwnerID != playerID {
		return false, domain.ErrNotOwner
	}

	room.ShowHints = !room.ShowHints
	room.LastActivity = s.now()

	if err := s.repo.Update(ctx, room); err != nil {
		return false, err
	}
	return room.ShowHints, nil
}

// GetRoom returns the current aggregate.
func (s *Service) GetRoom(ctx context.Context, roomID string) (domain.Room, error) {
	return s.repo.Get(ctx, roomID)
}

// TouchRoom refreshes LastActivity when a client (re)loads the room.
func (s *Service) TouchRoom(ctx context.Context, roomID string) (domain.Room, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.repo.Get(ctx, roomID)
	if err != nil {
		return domain.Room{}, err
	}
	room.LastActivity = s.now()
	if err := s.repo.Update(ctx, room); err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

// PoolStats are derived counts of the room's word usage.
type PoolStats struct {
	TotalWords     int      `json:"totalWords"`
	UsedWords      int      `json:"usedWords"`
	AvailableWords int      `json:"availableWords"`
	UsedWordsList  []string `json:"usedWordsList"`
}

func (s *Service) WordPoolStats(ctx context.Context, roomID string) (PoolStats, error) {
	room, err := s.repo.Get(ctx, roomID)
	if err != nil {
		return PoolStats{}, err
	}
	used := room.UsedWords
	if used == nil {
		used = []string{}
	}
	return PoolStats{
		TotalWords:     len(s.pool),
		UsedWords:      len(used),
		AvailableWords: len(s.pool) - len(used),
		UsedWordsList:  used,
	}, nil
}

// CleanupInactiveRooms deletes every room idle for longer than maxIdle. The
// sweep is idempotent and safe to run alongside room operations; each
// candidate is re-checked under its room lock before deletion.
func (s *Service) CleanupInactiveRooms(ctx context.Context, maxIdle time.Duration) (int, error) {
	rooms, err := s.repo.All(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := s.now() - maxIdle.Milliseconds()
	deletedCount := 0
	for _, candidate := range rooms {
		if candidate.LastActivity >= cutoff {
			continue
		}
		deleted, err := s.deleteIfStillIdle(ctx, candidate.ID, cutoff)
		if err != nil {
			log.Warn().Err(err).Str("room", candidate.ID).Msg("sweep: could not delete idle room")
			continue
		}
		if deleted {
			deletedCount++
		}
	}
	return deletedCount, nil
}

func (s *Service) deleteIfStillIdle(ctx context.Context, roomID string, cutoff int64) (bool, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.repo.Get(ctx, roomID)
	if errors.Is(err, domain.ErrRoomNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if room.LastActivity >= cutoff {
		return false, nil
	}
	if err := s.repo.Delete(ctx, roomID); err != nil {
		return false, err
	}
	return true, nil
}

func ptr(s string) *string { return &s }
