package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/louisbranch/kickback/internal/platform/errors"
	"github.com/louisbranch/kickback/internal/services/game/domain/card"
	"github.com/louisbranch/kickback/internal/services/game/domain/checkpoint"
	"github.com/louisbranch/kickback/internal/services/game/domain/command"
	"github.com/louisbranch/kickback/internal/services/game/domain/event"
	"github.com/louisbranch/kickback/internal/services/game/domain/game"
	"github.com/louisbranch/kickback/internal/services/game/domain/journal"
)

var threeRed = card.NewDigit(3, card.ColorRed)

type testRig struct {
	handler     Handler
	journal     *journal.Memory
	checkpoints *checkpoint.Memory
}

func newTestRig(t *testing.T) testRig {
	t.Helper()
	commands, events, err := game.NewRegistries()
	if err != nil {
		t.Fatalf("registries: %v", err)
	}
	store := journal.NewMemory(events)
	checkpoints := checkpoint.NewMemory()
	handler := Handler{
		Commands:    commands,
		Events:      events,
		Journal:     store,
		Checkpoints: checkpoints,
		Snapshots:   checkpoints,
		StateLoader: ReplayStateLoader{
			Events:    store,
			Snapshots: checkpoints,
			Applier:   game.Applier{},
		},
		Decider: game.Decider{},
		Applier: game.Applier{},
		Locks:   NewGameLocks(),
		Now: func() time.Time {
			return time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
		},
	}
	return testRig{handler: handler, journal: store, checkpoints: checkpoints}
}

func mustCommand(t *testing.T, cmd game.Command) command.Command {
	t.Helper()
	envelope, err := game.EncodeCommand(cmd)
	if err != nil {
		t.Fatalf("encode command: %v", err)
	}
	return envelope
}

func TestExecute_StartsGameAndSnapshotsState(t *testing.T) {
	rig := newTestRig(t)
	result, err := rig.handler.Execute(context.Background(), mustCommand(t, game.StartGame{GameID: 1, PlayerCount: 4, FirstCard: threeRed}))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(result.Decision.Events) != 1 || result.Decision.Events[0].Seq != 1 {
		t.Fatalf("decision = %+v, want one event at seq 1", result.Decision)
	}
	if result.Decision.Events[0].RequestID == "" {
		t.Fatal("expected generated request id")
	}
	want := game.PlayedState{PlayerCount: 4, LastCard: threeRed, Direction: game.ClockWise}
	if result.State != want {
		t.Fatalf("state = %#v, want %#v", result.State, want)
	}
	snapshot, seq, err := rig.checkpoints.GetState(context.Background(), "1")
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if seq != 1 || snapshot != want {
		t.Fatalf("snapshot = %#v at %d, want %#v at 1", snapshot, seq, want)
	}
}

func TestExecute_RejectionsAreNotJournaled(t *testing.T) {
	rig := newTestRig(t)
	ctx := context.Background()

	result, err := rig.handler.Execute(ctx, mustCommand(t, game.StartGame{GameID: 1, PlayerCount: 2, FirstCard: threeRed}))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !result.Decision.Rejected() {
		t.Fatal("expected rejection")
	}
	if got := result.Decision.Rejections[0].Code; got != string(apperrors.CodeGameInsufficientPlayers) {
		t.Fatalf("code = %s, want %s", got, apperrors.CodeGameInsufficientPlayers)
	}
	events, err := rig.journal.ListEvents(ctx, "1", 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("events = %d, want 0", len(events))
	}
}

func TestExecute_AlreadyStartedRejected(t *testing.T) {
	rig := newTestRig(t)
	ctx := context.Background()
	start := mustCommand(t, game.StartGame{GameID: 1, PlayerCount: 3, FirstCard: threeRed})
	if _, err := rig.handler.Execute(ctx, start); err != nil {
		t.Fatalf("execute: %v", err)
	}
	result, err := rig.handler.Execute(ctx, start)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !result.Decision.Rejected() || result.Decision.Rejections[0].Code != string(apperrors.CodeGameAlreadyStarted) {
		t.Fatalf("decision = %+v, want already started rejection", result.Decision)
	}
}

func TestExecute_PlayerFailedIsJournaledWithoutChangingState(t *testing.T) {
	rig := newTestRig(t)
	ctx := context.Background()
	if _, err := rig.handler.Execute(ctx, mustCommand(t, game.StartGame{GameID: 1, PlayerCount: 4, FirstCard: threeRed})); err != nil {
		t.Fatalf("start: %v", err)
	}

	result, err := rig.handler.Execute(ctx, mustCommand(t, game.PlayCard{GameID: 1, PlayerID: 2, Card: card.NewDigit(5, card.ColorBlue)}))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Decision.Events[0].Type != game.EventTypePlayerFailed {
		t.Fatalf("type = %s, want %s", result.Decision.Events[0].Type, game.EventTypePlayerFailed)
	}
	if result.Decision.Events[0].Seq != 2 {
		t.Fatalf("seq = %d, want 2", result.Decision.Events[0].Seq)
	}
	want := game.PlayedState{PlayerCount: 4, LastCard: threeRed, Direction: game.ClockWise}
	if result.State != want {
		t.Fatalf("state = %#v, want %#v", result.State, want)
	}
}

func TestExecute_ReplaysJournalWithoutSnapshots(t *testing.T) {
	rig := newTestRig(t)
	rig.handler.Snapshots = nil
	loader := rig.handler.StateLoader.(ReplayStateLoader)
	loader.Snapshots = checkpoint.NewNoop()
	rig.handler.StateLoader = loader
	ctx := context.Background()

	commands := []game.Command{
		game.StartGame{GameID: 1, PlayerCount: 4, FirstCard: threeRed},
		game.PlayCard{GameID: 1, PlayerID: 0, Card: card.NewKickBack(card.ColorRed)},
		game.PlayCard{GameID: 1, PlayerID: 3, Card: card.NewDigit(7, card.ColorRed)},
	}
	var result Result
	for _, cmd := range commands {
		var err error
		result, err = rig.handler.Execute(ctx, mustCommand(t, cmd))
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		if result.Decision.Events[0].Type != game.EventTypeCardPlayed && result.Decision.Events[0].Type != game.EventTypeStarted {
			t.Fatalf("unexpected event %s", result.Decision.Events[0].Type)
		}
	}
	want := game.PlayedState{PlayerCount: 4, NextPlayer: 2, LastCard: card.NewDigit(7, card.ColorRed), Direction: game.CounterClockWise}
	if result.State != want {
		t.Fatalf("state = %#v, want %#v", result.State, want)
	}
	if err := rig.journal.Verify(ctx, "1"); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestExecute_InvalidCommandReturnsError(t *testing.T) {
	rig := newTestRig(t)
	_, err := rig.handler.Execute(context.Background(), command.Command{GameID: "1", Type: "game.draw"})
	if !errors.Is(err, command.ErrTypeUnknown) {
		t.Fatalf("error = %v, want %v", err, command.ErrTypeUnknown)
	}
}

func TestExecute_RequiresCommandRegistry(t *testing.T) {
	_, err := Handler{}.Execute(context.Background(), command.Command{GameID: "1"})
	if !errors.Is(err, ErrCommandRegistryRequired) {
		t.Fatalf("error = %v, want %v", err, ErrCommandRegistryRequired)
	}
}

func TestExecute_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	rig := newTestRig(t)
	rig.handler.Tracer = provider.Tracer("test")

	result, err := rig.handler.Execute(context.Background(), mustCommand(t, game.StartGame{GameID: 1, PlayerCount: 3, FirstCard: threeRed}))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Name() != "engine.Execute" {
		t.Fatalf("span name = %s, want engine.Execute", spans[0].Name())
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs["game.id"].AsString() != "1" {
		t.Fatalf("game.id = %q, want 1", attrs["game.id"].AsString())
	}
	if attrs["command.type"].AsString() != string(game.CommandTypeStart) {
		t.Fatalf("command.type = %q", attrs["command.type"].AsString())
	}
	if result.Decision.Events[0].CorrelationID != spans[0].SpanContext().TraceID().String() {
		t.Fatalf("correlation id = %q, want trace id", result.Decision.Events[0].CorrelationID)
	}
}

type failingApplier struct{}

func (failingApplier) Apply(any, event.Event) (any, error) {
	return nil, errors.New("boom")
}

func TestExecute_FoldFailureAfterAppendIsNonRetryable(t *testing.T) {
	rig := newTestRig(t)
	rig.handler.Applier = failingApplier{}
	_, err := rig.handler.Execute(context.Background(), mustCommand(t, game.StartGame{GameID: 1, PlayerCount: 3, FirstCard: threeRed}))
	if err == nil {
		t.Fatal("expected error")
	}
	var committedErr *CommittedError
	if !errors.As(err, &committedErr) {
		t.Fatalf("expected committed error, got %v", err)
	}
	if committedErr.Stage != StageFold || committedErr.Seq != 1 {
		t.Fatalf("committed = %+v, want fold at seq 1", committedErr)
	}
}

func TestHandle_AppendsWithoutFolding(t *testing.T) {
	rig := newTestRig(t)
	decision, err := rig.handler.Handle(context.Background(), mustCommand(t, game.StartGame{GameID: 1, PlayerCount: 3, FirstCard: threeRed}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(decision.Events) != 1 || decision.Events[0].Seq != 1 {
		t.Fatalf("decision = %+v, want one appended event", decision)
	}
	if _, _, err := rig.checkpoints.GetState(context.Background(), "1"); err == nil {
		t.Fatal("expected no snapshot from Handle")
	}
}

func TestHandle_RequiresJournal(t *testing.T) {
	rig := newTestRig(t)
	rig.handler.Journal = nil
	_, err := rig.handler.Handle(context.Background(), mustCommand(t, game.StartGame{GameID: 1, PlayerCount: 3, FirstCard: threeRed}))
	if !errors.Is(err, ErrJournalRequired) {
		t.Fatalf("error = %v, want %v", err, ErrJournalRequired)
	}
}
