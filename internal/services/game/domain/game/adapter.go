package game

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	apperrors "github.com/louisbranch/kickback/internal/platform/errors"
	"github.com/louisbranch/kickback/internal/services/game/domain/command"
	"github.com/louisbranch/kickback/internal/services/game/domain/event"
)

// AsState converts an untyped engine state into a game State.
func AsState(state any) (State, error) {
	switch s := state.(type) {
	case nil:
		return EmptyState{}, nil
	case State:
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported state type %T", state)
	}
}

// Decider adapts Decide to envelope commands.
//
// Contract violations and malformed payloads become rejections so they are
// never journaled. PlayerFailed is accepted like any other event.
type Decider struct{}

// Decide returns the decision for an envelope command.
func (Decider) Decide(state any, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}
	current, err := AsState(state)
	if err != nil {
		return reject(err)
	}
	typed, err := DecodeCommand(cmd)
	if err != nil {
		return reject(err)
	}
	if err := checkSeat(cmd, typed); err != nil {
		return reject(err)
	}
	decided, err := Decide(current, typed)
	if err != nil {
		return reject(err)
	}
	envelope, err := NewEnvelope(cmd, decided, now())
	if err != nil {
		return reject(err)
	}
	return command.Accept(envelope)
}

// checkSeat requires a player actor to play from its own seat. System actors
// may play for any seat.
func checkSeat(cmd command.Command, typed Command) error {
	play, ok := typed.(PlayCard)
	if !ok || cmd.ActorType != command.ActorTypePlayer {
		return nil
	}
	actor := strings.TrimSpace(cmd.ActorID)
	if actor == play.PlayerID.String() {
		return nil
	}
	return withGame(ErrSeatMismatch.With("ActorID", actor).With("PlayerID", play.PlayerID.String()), play.GameID)
}

func reject(err error) command.Decision {
	code := apperrors.CodeOf(err)
	switch {
	case errors.Is(err, ErrUnknownCommand):
		code = apperrors.CodeCommandTypeUnsupported
	case code == apperrors.CodeUnknown:
		code = apperrors.CodeGamePayloadInvalid
	}
	rejection := command.Rejection{Code: string(code), Message: err.Error()}
	var coded *apperrors.Error
	if errors.As(err, &coded) && len(coded.Metadata) > 0 {
		rejection.Metadata = maps.Clone(coded.Metadata)
	}
	return command.Reject(rejection)
}

// Applier adapts Apply to envelope events.
type Applier struct{}

// Apply folds an envelope event into state.
func (Applier) Apply(state any, evt event.Event) (any, error) {
	current, err := AsState(state)
	if err != nil {
		return state, err
	}
	typed, err := DecodeEvent(evt)
	if err != nil {
		return current, err
	}
	return Apply(current, typed)
}
