// Package storage provides the room repository implementations: a Postgres
// document store for deployments and an in-memory store for tests and dev.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrsonam/impostor/domain"
)

// PostgresRoomStore keeps one JSONB document per room, keyed by room code.
type PostgresRoomStore struct {
	pool *pgxpool.Pool
}

func NewPostgresRoomStore(ctx context.Context, connString string) (*PostgresRoomStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresRoomStore{pool: pool}, nil
}

func (s *PostgresRoomStore) Get(ctx context.Context, id string) (domain.Room, error) {
	var doc []byte
	row := s.pool.QueryRow(ctx, "SELECT doc FROM rooms WHERE id = $1", id)
	if err := row.Scan(&doc); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.Room{}, domain.ErrRoomNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return domain.Room{}, err
		default:
			return domain.Room{}, fmt.Errorf("%w: %w", domain.ErrStorage, err)
		}
	}

	var room domain.Room
	if err := json.Unmarshal(doc, &room); err != nil {
		return domain.Room{}, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return room, nil
}

// Create inserts the document only if the code is free, so two concurrent
// creators can never both claim the same code.
func (s *PostgresRoomStore) Create(ctx context.Context, room domain.Room) error {
	doc, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	tag, err := s.pool.Exec(ctx,
		"INSERT INTO rooms(id, doc, last_activity) VALUES($1, $2, $3) ON CONFLICT (id) DO NOTHING",
		room.ID, doc, room.LastActivity)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoomExists
	}
	return nil
}

func (s *PostgresRoomStore) Update(ctx context.Context, room domain.Room) error {
	doc, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	tag, err := s.pool.Exec(ctx,
		"UPDATE rooms SET doc = $2, last_activity = $3 WHERE id = $1",
		room.ID, doc, room.LastActivity)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (s *PostgresRoomStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM rooms WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (s *PostgresRoomStore) All(ctx context.Context) ([]domain.Room, error) {
	rows, err := s.pool.Query(ctx, "SELECT doc FROM rooms")
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	rooms := []domain.Room{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
		}
		var room domain.Room
		if err := json.Unmarshal(doc, &room); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return rooms, nil
}

func (s *PostgresRoomStore) Close() {
	s.pool.Close()
}
