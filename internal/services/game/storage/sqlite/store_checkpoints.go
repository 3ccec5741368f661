package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/kickback/internal/services/game/domain/game"
	"github.com/louisbranch/kickback/internal/services/game/domain/replay"
)

// Get returns the replay checkpoint of a game.
func (s *Store) Get(ctx context.Context, gameID string) (replay.Checkpoint, error) {
	if err := s.ready(ctx); err != nil {
		return replay.Checkpoint{}, err
	}
	gameID = strings.TrimSpace(gameID)
	var (
		lastSeq   int64
		updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT last_seq, updated_at FROM replay_checkpoints WHERE game_id = ?`, gameID,
	).Scan(&lastSeq, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Checkpoint{}, replay.ErrCheckpointNotFound
	}
	if err != nil {
		return replay.Checkpoint{}, fmt.Errorf("get checkpoint: %w", err)
	}
	return replay.Checkpoint{GameID: gameID, LastSeq: uint64(lastSeq), UpdatedAt: fromMillis(updatedAt)}, nil
}

// Save upserts the replay checkpoint of a game.
func (s *Store) Save(ctx context.Context, checkpoint replay.Checkpoint) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	gameID := strings.TrimSpace(checkpoint.GameID)
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	updatedAt := checkpoint.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.now()
	}
	if _, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO replay_checkpoints (game_id, last_seq, updated_at) VALUES (?, ?, ?)
ON CONFLICT (game_id) DO UPDATE SET last_seq = excluded.last_seq, updated_at = excluded.updated_at`,
		gameID, int64(checkpoint.LastSeq), toMillis(updatedAt),
	); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

// GetState returns the latest state snapshot of a game and its sequence.
func (s *Store) GetState(ctx context.Context, gameID string) (any, uint64, error) {
	if err := s.ready(ctx); err != nil {
		return nil, 0, err
	}
	var (
		lastSeq int64
		data    []byte
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT last_seq, state_json FROM state_snapshots WHERE game_id = ?`, strings.TrimSpace(gameID),
	).Scan(&lastSeq, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, replay.ErrCheckpointNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("get snapshot: %w", err)
	}
	state, err := game.UnmarshalState(data)
	if err != nil {
		return nil, 0, err
	}
	return state, uint64(lastSeq), nil
}

// SaveState upserts the state snapshot of a game.
func (s *Store) SaveState(ctx context.Context, gameID string, lastSeq uint64, state any) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}
	typed, err := game.AsState(state)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	data, err := game.MarshalState(typed)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO state_snapshots (game_id, last_seq, state_json, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT (game_id) DO UPDATE SET
    last_seq = excluded.last_seq,
    state_json = excluded.state_json,
    updated_at = excluded.updated_at`,
		gameID, int64(lastSeq), data, toMillis(s.now()),
	); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
