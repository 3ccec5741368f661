// Package checkpoint provides replay checkpoint and state snapshot stores.
package checkpoint

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/kickback/internal/services/game/domain/replay"
)

var (
	// ErrGameIDRequired indicates a missing game id.
	ErrGameIDRequired = errors.New("game id is required")
)

// Memory stores checkpoints and state snapshots in memory.
//
// Stored states are kept as given; game states are immutable values.
type Memory struct {
	mu          sync.Mutex
	checkpoints map[string]replay.Checkpoint
	states      map[string]snapshot
}

type snapshot struct {
	state   any
	lastSeq uint64
}

// NewMemory creates a new in-memory checkpoint store.
func NewMemory() *Memory {
	return &Memory{
		checkpoints: make(map[string]replay.Checkpoint),
		states:      make(map[string]snapshot),
	}
}

func prepare(ctx context.Context, m *Memory, gameID string) (string, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	if m == nil {
		return "", errors.New("checkpoint store is required")
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return "", ErrGameIDRequired
	}
	return gameID, nil
}

// Get retrieves a checkpoint by game id.
func (m *Memory) Get(ctx context.Context, gameID string) (replay.Checkpoint, error) {
	gameID, err := prepare(ctx, m, gameID)
	if err != nil {
		return replay.Checkpoint{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	checkpoint, ok := m.checkpoints[gameID]
	if !ok {
		return replay.Checkpoint{}, replay.ErrCheckpointNotFound
	}
	return checkpoint, nil
}

// Save persists a checkpoint.
func (m *Memory) Save(ctx context.Context, checkpoint replay.Checkpoint) error {
	gameID, err := prepare(ctx, m, checkpoint.GameID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	checkpoint.GameID = gameID
	m.checkpoints[gameID] = checkpoint
	return nil
}

// GetState retrieves a state snapshot and the sequence it reflects.
//
// The snapshot sequence is tracked apart from the replay checkpoint, which
// may move ahead of it.
func (m *Memory) GetState(ctx context.Context, gameID string) (any, uint64, error) {
	gameID, err := prepare(ctx, m, gameID)
	if err != nil {
		return nil, 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.states[gameID]
	if !ok {
		return nil, 0, replay.ErrCheckpointNotFound
	}
	return stored.state, stored.lastSeq, nil
}

// SaveState persists a state snapshot and moves the checkpoint with it.
func (m *Memory) SaveState(ctx context.Context, gameID string, lastSeq uint64, state any) error {
	gameID, err := prepare(ctx, m, gameID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[gameID] = snapshot{state: state, lastSeq: lastSeq}
	m.checkpoints[gameID] = replay.Checkpoint{
		GameID:    gameID,
		LastSeq:   lastSeq,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}
