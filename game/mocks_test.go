package game

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mrsonam/impostor/domain"
)

// --- RoomRepo ---

type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) Get(ctx context.Context, id string) (domain.Room, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockRoomRepo) Create(ctx context.Context, room domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepo) Update(ctx context.Context, room domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepo) All(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Room), args.Error(1)
}

// --- Notifier ---

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Broadcast(roomID, event string, payload any) {
	m.Called(roomID, event, payload)
}

// --- Engine ---

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) CreateRoom(ctx context.Context, ownerName, avatar, avatarFull string) (domain.Room, domain.Player, error) {
	args := m.Called(ctx, ownerName, avatar, avatarFull)
	return args.Get(0).(domain.Room), args.Get(1).(domain.Player), args.Error(2)
}

func (m *MockEngine) JoinRoom(ctx context.Context, roomID, name, avatar, avatarFull string) (domain.Room, domain.Player, error) {
	args := m.Called(ctx, roomID, name, avatar, avatarFull)
	return args.Get(0).(domain.Room), args.Get(1).(domain.Player), args.Error(2)
}

func (m *MockEngine) StartRound(ctx context.Context, roomID string, selector WordSelector) (domain.Round, error) {
	args := m.Called(ctx, roomID, selector)
	return args.Get(0).(domain.Round), args.Error(1)
}

func (m *MockEngine) NewRound(ctx context.Context, roomID string, selector WordSelector) (domain.Round, error) {
	args := m.Called(ctx, roomID, selector)
	return args.Get(0).(domain.Round), args.Error(1)
}

func (m *MockEngine) SubmitClue(ctx context.Context, roomID, playerID, text string) (domain.Clue, error) {
	args := m.Called(ctx, roomID, playerID, text)
	return args.Get(0).(domain.Clue), args.Error(1)
}

func (m *MockEngine) EndRound(ctx context.Context, roomID string) (domain.Round, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(domain.Round), args.Error(1)
}

func (m *MockEngine) GetPrivateView(ctx context.Context, roomID, playerID string) (PrivateView, error) {
	args := m.Called(ctx, roomID, playerID)
	return args.Get(0).(PrivateView), args.Error(1)
}

func (m *MockEngine) LeaveRoom(ctx context.Context, roomID, playerID string) (domain.Room, domain.Player, bool, error) {
	args := m.Called(ctx, roomID, playerID)
	return args.Get(0).(domain.Room), args.Get(1).(domain.Player), args.Bool(2), args.Error(3)
}

func (m *MockEngine) KickPlayer(ctx context.Context, roomID, kickerID, targetID string) (domain.Room, domain.Player, bool, error) {
	args := m.Called(ctx, roomID, kickerID, targetID)
	return args.Get(0).(domain.Room), args.Get(1).(domain.Player), args.Bool(2), args.Error(3)
}

func (m *MockEngine) ToggleHints(ctx context.Context, roomID, playerID string) (bool, error) {
	args := m.Called(ctx, roomID, playerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngine) GetRoom(ctx context.Context, roomID string) (domain.Room, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockEngine) TouchRoom(ctx context.Context, roomID string) (domain.Room, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockEngine) WordPoolStats(ctx context.Context, roomID string) (PoolStats, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(PoolStats), args.Error(1)
}
