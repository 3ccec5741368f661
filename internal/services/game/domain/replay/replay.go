// Package replay rebuilds game state by folding journaled events in order.
package replay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/kickback/internal/platform/errors"
	"github.com/louisbranch/kickback/internal/services/game/domain/event"
)

// DefaultPageSize is the number of events read per journal query.
const DefaultPageSize = 200

var (
	// ErrEventStoreRequired indicates a missing event store.
	ErrEventStoreRequired = errors.New("event store is required")
	// ErrApplierRequired indicates a missing applier.
	ErrApplierRequired = errors.New("applier is required")
	// ErrGameIDRequired indicates a missing game id.
	ErrGameIDRequired = errors.New("game id is required")
	// ErrCheckpointNotFound indicates no checkpoint exists yet.
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	// ErrSequenceGap indicates a hole in a game's event sequence.
	ErrSequenceGap = apperrors.New(apperrors.CodeEventSequenceGap, "event sequence gap")
)

// EventStore lists events for replay.
type EventStore interface {
	ListEvents(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]event.Event, error)
}

// CheckpointStore manages replay checkpoints.
type CheckpointStore interface {
	Get(ctx context.Context, gameID string) (Checkpoint, error)
	Save(ctx context.Context, checkpoint Checkpoint) error
}

// Applier applies a journaled event to state.
type Applier interface {
	Apply(state any, evt event.Event) (any, error)
}

// Checkpoint records the last sequence folded for a game.
type Checkpoint struct {
	GameID    string
	LastSeq   uint64
	UpdatedAt time.Time
}

// Options bounds a single replay.
//
// AfterSeq is the sequence the input state already reflects. UntilSeq, when
// set, is the last sequence to apply.
type Options struct {
	AfterSeq uint64
	UntilSeq uint64
}

// Result captures replay outcomes.
type Result struct {
	State   any
	LastSeq uint64
	Applied int
}

// Replayer folds a game's journal into state page by page.
//
// With Checkpoints set, replay resumes after the stored checkpoint and moves it
// forward after every page, so the input state must already reflect every
// event up to that checkpoint.
type Replayer struct {
	Events      EventStore
	Checkpoints CheckpointStore
	Applier     Applier
	PageSize    int
	Now         func() time.Time
}

// Replay applies events after the starting sequence until the journal or
// UntilSeq is reached.
func (r Replayer) Replay(ctx context.Context, gameID string, state any, options Options) (Result, error) {
	if r.Events == nil {
		return Result{}, ErrEventStoreRequired
	}
	if r.Applier == nil {
		return Result{}, ErrApplierRequired
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return Result{}, ErrGameIDRequired
	}
	startSeq, err := r.startSeq(ctx, gameID, options.AfterSeq)
	if err != nil {
		return Result{}, err
	}

	pageSize := r.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	result := Result{State: state, LastSeq: startSeq}
	for {
		page, err := r.Events.ListEvents(ctx, gameID, result.LastSeq, pageSize)
		if err != nil {
			return result, err
		}
		if len(page) == 0 {
			return result, nil
		}
		applied := result.Applied
		done, err := r.applyPage(&result, page, options.UntilSeq)
		if result.Applied > applied {
			if saveErr := r.save(ctx, gameID, result.LastSeq); saveErr != nil && err == nil {
				err = saveErr
			}
		}
		if err != nil || done {
			return result, err
		}
	}
}

func (r Replayer) startSeq(ctx context.Context, gameID string, afterSeq uint64) (uint64, error) {
	if r.Checkpoints == nil {
		return afterSeq, nil
	}
	checkpoint, err := r.Checkpoints.Get(ctx, gameID)
	if errors.Is(err, ErrCheckpointNotFound) {
		return afterSeq, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load checkpoint: %w", err)
	}
	return max(afterSeq, checkpoint.LastSeq), nil
}

// applyPage folds page into result and reports whether UntilSeq was reached.
func (r Replayer) applyPage(result *Result, page []event.Event, untilSeq uint64) (bool, error) {
	for _, evt := range page {
		if untilSeq > 0 && evt.Seq > untilSeq {
			return true, nil
		}
		if want := result.LastSeq + 1; evt.Seq != want {
			return true, fmt.Errorf("%w: expected %d got %d", ErrSequenceGap, want, evt.Seq)
		}
		next, err := r.Applier.Apply(result.State, evt)
		if err != nil {
			return true, fmt.Errorf("apply seq %d: %w", evt.Seq, err)
		}
		result.State = next
		result.LastSeq = evt.Seq
		result.Applied++
	}
	return untilSeq > 0 && result.LastSeq >= untilSeq, nil
}

func (r Replayer) save(ctx context.Context, gameID string, lastSeq uint64) error {
	if r.Checkpoints == nil {
		return nil
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return r.Checkpoints.Save(ctx, Checkpoint{GameID: gameID, LastSeq: lastSeq, UpdatedAt: now().UTC()})
}
