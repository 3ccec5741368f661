package engine

import (
	"context"
	"errors"

	"github.com/louisbranch/kickback/internal/services/game/domain/command"
	"github.com/louisbranch/kickback/internal/services/game/domain/replay"
)

// StateSnapshotStore loads and saves state snapshots keyed by game.
type StateSnapshotStore interface {
	GetState(ctx context.Context, gameID string) (state any, lastSeq uint64, err error)
	SaveState(ctx context.Context, gameID string, lastSeq uint64, state any) error
}

// ReplayStateLoader rebuilds state for command handling from the latest
// snapshot plus the journal tail.
type ReplayStateLoader struct {
	Events       replay.EventStore
	Snapshots    StateSnapshotStore
	Applier      replay.Applier
	StateFactory func() any
	PageSize     int
}

// Load replays events to reconstruct state for the command's game.
//
// Replay starts at the snapshot sequence and ignores replay checkpoints, so
// the loaded state reflects every journaled event exactly once.
func (l ReplayStateLoader) Load(ctx context.Context, cmd command.Command) (any, error) {
	if l.Events == nil {
		return nil, replay.ErrEventStoreRequired
	}
	if l.Applier == nil {
		return nil, replay.ErrApplierRequired
	}
	var (
		state    any
		afterSeq uint64
	)
	if l.Snapshots != nil {
		snapshotState, snapshotSeq, err := l.Snapshots.GetState(ctx, cmd.GameID)
		if err != nil {
			if !errors.Is(err, replay.ErrCheckpointNotFound) {
				return nil, err
			}
		} else {
			state = snapshotState
			afterSeq = snapshotSeq
		}
	}
	if state == nil && l.StateFactory != nil {
		state = l.StateFactory()
	}
	replayer := replay.Replayer{Events: l.Events, Applier: l.Applier, PageSize: l.PageSize}
	result, err := replayer.Replay(ctx, cmd.GameID, state, replay.Options{AfterSeq: afterSeq})
	if err != nil {
		return nil, err
	}
	return result.State, nil
}
