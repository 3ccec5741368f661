package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/kickback/internal/platform/id"
	"github.com/louisbranch/kickback/internal/services/game/domain/command"
	"github.com/louisbranch/kickback/internal/services/game/domain/event"
	"github.com/louisbranch/kickback/internal/services/game/domain/replay"
)

const tracerName = "github.com/louisbranch/kickback/internal/services/game/domain/engine"

var (
	// ErrCommandRegistryRequired indicates a missing command registry.
	ErrCommandRegistryRequired = errors.New("command registry is required")
	// ErrDeciderRequired indicates a missing decider.
	ErrDeciderRequired = errors.New("decider is required")
	// ErrJournalRequired indicates a missing event journal.
	ErrJournalRequired = errors.New("event journal is required")
)

// StateLoader loads domain state for deciders.
type StateLoader interface {
	Load(ctx context.Context, cmd command.Command) (any, error)
}

// EventJournal appends events to the journal.
type EventJournal interface {
	Append(ctx context.Context, evt event.Event) (event.Event, error)
}

// Applier folds events into state.
type Applier interface {
	Apply(state any, evt event.Event) (any, error)
}

// Decider returns a decision for a command.
type Decider interface {
	Decide(state any, cmd command.Command, now func() time.Time) command.Decision
}

// Handler validates, decides, persists and folds commands.
type Handler struct {
	Commands    *command.Registry
	Events      *event.Registry
	Journal     EventJournal
	Checkpoints replay.CheckpointStore
	Snapshots   StateSnapshotStore
	StateLoader StateLoader
	Decider     Decider
	Applier     Applier
	Locks       Locker
	Now         func() time.Time
	Tracer      trace.Tracer
}

// Result captures execution outcomes.
type Result struct {
	Decision command.Decision
	State    any
}

// Handle validates a command, decides it against loaded state and appends
// accepted events. It does not fold or snapshot.
func (h Handler) Handle(ctx context.Context, cmd command.Command) (command.Decision, error) {
	cmd, err := h.validate(cmd)
	if err != nil {
		return command.Decision{}, err
	}
	unlock := h.lock(cmd.GameID)
	defer unlock()

	decision, _, err := h.handle(ctx, cmd)
	return decision, err
}

// Execute handles a command and folds the appended events into state.
//
// Rejected commands return the loaded state unchanged and append nothing.
// Failures after events were appended are marked non-retryable.
func (h Handler) Execute(ctx context.Context, cmd command.Command) (result Result, err error) {
	ctx, span := h.tracer().Start(ctx, "engine.Execute", trace.WithAttributes(
		attribute.String("game.id", cmd.GameID),
		attribute.String("command.type", string(cmd.Type)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else if result.Decision.Rejected() {
			span.SetAttributes(attribute.String("command.rejection", result.Decision.Rejections[0].Code))
		}
		span.End()
	}()

	cmd, err = h.validate(cmd)
	if err != nil {
		return Result{}, err
	}
	if cmd.CorrelationID == "" {
		if sc := span.SpanContext(); sc.IsValid() {
			cmd.CorrelationID = sc.TraceID().String()
		}
	}
	unlock := h.lock(cmd.GameID)
	defer unlock()

	decision, state, err := h.handle(ctx, cmd)
	if err != nil {
		return Result{}, err
	}
	if decision.Rejected() || len(decision.Events) == 0 {
		return Result{Decision: decision, State: state}, nil
	}

	if h.Applier != nil {
		for _, evt := range decision.Events {
			state, err = h.Applier.Apply(state, evt)
			if err != nil {
				return Result{}, committed(StageFold, cmd.GameID, evt.Seq, err)
			}
		}
	}
	last := decision.Events[len(decision.Events)-1]
	span.SetAttributes(attribute.Int64("event.seq", int64(last.Seq)))
	if last.Seq > 0 {
		if h.Checkpoints != nil {
			if err := h.Checkpoints.Save(ctx, replay.Checkpoint{
				GameID:    cmd.GameID,
				LastSeq:   last.Seq,
				UpdatedAt: h.now()().UTC(),
			}); err != nil {
				return Result{}, committed(StageCheckpoint, cmd.GameID, last.Seq, err)
			}
		}
		if h.Snapshots != nil && h.Applier != nil {
			if err := h.Snapshots.SaveState(ctx, cmd.GameID, last.Seq, state); err != nil {
				return Result{}, committed(StageSnapshot, cmd.GameID, last.Seq, err)
			}
		}
	}
	return Result{Decision: decision, State: state}, nil
}

func (h Handler) validate(cmd command.Command) (command.Command, error) {
	if h.Commands == nil {
		return command.Command{}, ErrCommandRegistryRequired
	}
	validated, err := h.Commands.ValidateForDecision(cmd)
	if err != nil {
		return command.Command{}, err
	}
	if validated.RequestID == "" {
		requestID, err := id.NewID()
		if err != nil {
			return command.Command{}, fmt.Errorf("generate request id: %w", err)
		}
		validated.RequestID = requestID
	}
	return validated, nil
}

func (h Handler) handle(ctx context.Context, cmd command.Command) (command.Decision, any, error) {
	if h.Decider == nil {
		return command.Decision{}, nil, ErrDeciderRequired
	}
	var state any
	if h.StateLoader != nil {
		loaded, err := h.StateLoader.Load(ctx, cmd)
		if err != nil {
			return command.Decision{}, nil, fmt.Errorf("load state: %w", err)
		}
		state = loaded
	}
	decision := h.Decider.Decide(state, cmd, h.now())
	if err := decision.Validate(); err != nil {
		return command.Decision{}, nil, err
	}
	if decision.Rejected() {
		return decision, state, nil
	}
	if h.Events != nil {
		for i, evt := range decision.Events {
			vetted, err := h.Events.ValidateForAppend(evt)
			if err != nil {
				return command.Decision{}, nil, err
			}
			decision.Events[i] = vetted
		}
	}
	if h.Journal == nil {
		return command.Decision{}, nil, ErrJournalRequired
	}
	for i, evt := range decision.Events {
		appended, err := h.Journal.Append(ctx, evt)
		if err != nil {
			if i > 0 {
				err = committed(StageAppend, cmd.GameID, decision.Events[i-1].Seq, err)
			}
			return command.Decision{}, nil, fmt.Errorf("append event: %w", err)
		}
		decision.Events[i] = appended
	}
	return decision, state, nil
}

func (h Handler) lock(gameID string) func() {
	if h.Locks == nil {
		return func() {}
	}
	return h.Locks.Lock(gameID)
}

func (h Handler) now() func() time.Time {
	if h.Now == nil {
		return time.Now
	}
	return h.Now
}

func (h Handler) tracer() trace.Tracer {
	if h.Tracer != nil {
		return h.Tracer
	}
	return otel.Tracer(tracerName)
}
