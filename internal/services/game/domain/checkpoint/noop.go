package checkpoint

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/louisbranch/kickback/internal/services/game/domain/replay"
)

// Noop drops every checkpoint and snapshot it is given, so every load
// replays the journal from the first event.
type Noop struct {
	dropped atomic.Uint64
}

// NewNoop returns an empty Noop store.
func NewNoop() *Noop {
	return &Noop{}
}

// Dropped counts the saves discarded so far.
func (n *Noop) Dropped() uint64 {
	return n.dropped.Load()
}

func (n *Noop) check(ctx context.Context, gameID string) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(gameID) == "" {
		return ErrGameIDRequired
	}
	return nil
}

// Get reports replay.ErrCheckpointNotFound for any valid game id.
func (n *Noop) Get(ctx context.Context, gameID string) (replay.Checkpoint, error) {
	if err := n.check(ctx, gameID); err != nil {
		return replay.Checkpoint{}, err
	}
	return replay.Checkpoint{}, replay.ErrCheckpointNotFound
}

// Save validates the checkpoint and drops it.
func (n *Noop) Save(ctx context.Context, c replay.Checkpoint) error {
	if err := n.check(ctx, c.GameID); err != nil {
		return err
	}
	n.dropped.Add(1)
	return nil
}

// GetState reports replay.ErrCheckpointNotFound for any valid game id.
func (n *Noop) GetState(ctx context.Context, gameID string) (any, uint64, error) {
	if err := n.check(ctx, gameID); err != nil {
		return nil, 0, err
	}
	return nil, 0, replay.ErrCheckpointNotFound
}

// SaveState validates the game id and drops the snapshot.
func (n *Noop) SaveState(ctx context.Context, gameID string, _ uint64, _ any) error {
	if err := n.check(ctx, gameID); err != nil {
		return err
	}
	n.dropped.Add(1)
	return nil
}
