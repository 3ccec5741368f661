package game

import (
	"context"
	"errors"
	"strings"

	"github.com/louisbranch/kickback/internal/services/game/domain/checkpoint"
	"github.com/louisbranch/kickback/internal/services/game/domain/engine"
	domain "github.com/louisbranch/kickback/internal/services/game/domain/game"
	"github.com/louisbranch/kickback/internal/services/game/domain/journal"
	"github.com/louisbranch/kickback/internal/services/game/domain/replay"
	"github.com/louisbranch/kickback/internal/services/game/storage/integrity"
	"github.com/louisbranch/kickback/internal/services/game/storage/sqlite"
)

type runtime struct {
	handler engine.Handler
	verify  func(ctx context.Context, gameID string) error
	close   func() error
}

func (r runtime) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

type journalStore interface {
	engine.EventJournal
	replay.EventStore
}

type stateStore interface {
	replay.CheckpointStore
	engine.StateSnapshotStore
}

func openRuntime(cfg Config) (runtime, error) {
	commands, events, err := domain.NewRegistries()
	if err != nil {
		return runtime{}, err
	}
	keyring, err := integrity.KeyringFromEnv()
	if err != nil && !errors.Is(err, integrity.ErrKeyringNotConfigured) {
		return runtime{}, err
	}

	var (
		store  journalStore
		states stateStore
		rt     runtime
	)
	if path := strings.TrimSpace(cfg.DBPath); path != "" {
		var opts []sqlite.OpenEventsOption
		if keyring != nil {
			opts = append(opts, sqlite.WithKeyring(keyring))
		}
		sqlStore, err := sqlite.OpenEvents(path, events, opts...)
		if err != nil {
			return runtime{}, err
		}
		store, states = sqlStore, sqlStore
		rt.verify = sqlStore.VerifyEvents
		rt.close = sqlStore.Close
	} else {
		var opts []journal.Option
		if keyring != nil {
			opts = append(opts, journal.WithSigner(keyring))
		}
		memory := journal.NewMemory(events, opts...)
		store, states = memory, checkpoint.NewMemory()
		rt.verify = memory.Verify
	}

	var snapshots engine.StateSnapshotStore = checkpoint.NewNoop()
	if cfg.Snapshots {
		snapshots = states
	}
	rt.handler = engine.Handler{
		Commands:    commands,
		Events:      events,
		Journal:     store,
		Checkpoints: states,
		Snapshots:   snapshots,
		StateLoader: engine.ReplayStateLoader{
			Events:       store,
			Snapshots:    snapshots,
			Applier:      domain.Applier{},
			StateFactory: func() any { return domain.EmptyState{} },
		},
		Decider: domain.Decider{},
		Applier: domain.Applier{},
		Locks:   engine.NewGameLocks(),
	}
	return rt, nil
}

// fatal reports whether a step error must stop the script.
func fatal(err error) bool {
	return engine.IsNonRetryable(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
