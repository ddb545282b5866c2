package storage_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mrsonam/impostor/domain"
	"github.com/mrsonam/impostor/migrations"
	"github.com/mrsonam/impostor/storage"
)

var repo *storage.PostgresRoomStore

func TestMain(m *testing.M) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testusername"),
		postgres.WithPassword("testpassword"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		panic(err)
	}

	connString, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}

	if err := migrations.Migrate(connString); err != nil {
		panic(err)
	}

	repo, err = storage.NewPostgresRoomStore(ctx, connString)
	if err != nil {
		panic(err)
	}

	code := m.Run()

	repo.Close()
	postgresContainer.Terminate(ctx)
	os.Exit(code)
}

func roomFixture(id string) domain.Room {
	return domain.Room{
		ID:      id,
		OwnerID: "p1",
		Players: []domain.Player{
			{ID: "p1", Name: "Ann", JoinedAt: 100},
			{ID: "p2", Name: "Bob", JoinedAt: 200},
		},
		CreatedAt:    100,
		LastActivity: 200,
		ShowHints:    true,
		UsedWords:    []string{},
	}
}

func TestPostgresRoomStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := repo.Get(ctx, "ZZZZZ")
		assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	})

	t.Run("Create_And_Get", func(t *testing.T) {
		room := roomFixture("AAAAA")
		require.NoError(t, repo.Create(ctx, room))

		got, err := repo.Get(ctx, "AAAAA")
		require.NoError(t, err)
		assert.Equal(t, room, got)
	})

	t.Run("Create_Duplicate", func(t *testing.T) {
		err := repo.Create(ctx, roomFixture("AAAAA"))
		assert.ErrorIs(t, err, domain.ErrRoomExists)
	})

	t.Run("Update", func(t *testing.T) {
		room := roomFixture("AAAAA")
		room.ShowHints = false
		room.Round = &domain.Round{
			ID:         "r1",
			Word:       "PIZZA",
			Hint:       "CHEESE",
			ImpostorID: "p2",
			StartedAt:  300,
			Clues:      []domain.Clue{},
		}
		room.UsedWords = []string{"PIZZA"}
		room.LastActivity = 300
		require.NoError(t, repo.Update(ctx, room))

		got, err := repo.Get(ctx, "AAAAA")
		require.NoError(t, err)
		assert.Equal(t, room, got)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		err := repo.Update(ctx, roomFixture("ZZZZZ"))
		assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	})

	t.Run("All", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, roomFixture("BBBBB")))

		rooms, err := repo.All(ctx)
		require.NoError(t, err)

		ids := make([]string, 0, len(rooms))
		for _, r := range rooms {
			ids = append(ids, r.ID)
		}
		assert.Contains(t, ids, "AAAAA")
		assert.Contains(t, ids, "BBBBB")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "BBBBB"))
		_, err := repo.Get(ctx, "BBBBB")
		assert.ErrorIs(t, err, domain.ErrRoomNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "BBBBB"), domain.ErrRoomNotFound)
	})
}
