package command

import (
	"errors"
	"maps"

	apperrors "github.com/louisbranch/kickback/internal/platform/errors"
	"github.com/louisbranch/kickback/internal/services/game/domain/event"
)

// Rejection codes for commands no decider could interpret.
const (
	RejectionCodePayloadDecodeFailed    = string(apperrors.CodePayloadDecodeFailed)
	RejectionCodeCommandTypeUnsupported = string(apperrors.CodeCommandTypeUnsupported)
)

var (
	// ErrEmptyDecision indicates a decision with neither events nor rejections.
	ErrEmptyDecision = errors.New("decision must emit events or rejections")
	// ErrMixedDecision indicates a decision with both events and rejections.
	ErrMixedDecision = errors.New("decision cannot both emit events and reject")
)

// Decision is the outcome of deciding one command: the events to journal, or
// why the command was declined.
type Decision struct {
	Events     []event.Event
	Rejections []Rejection
}

// Rejection is a coded reason a command was declined. Metadata fills the
// player-facing message template for Code.
type Rejection struct {
	Code     string
	Message  string
	Metadata map[string]string
}

// Err returns the rejection as a coded error.
func (r Rejection) Err() error {
	err := apperrors.New(apperrors.Code(r.Code), r.Message)
	err.Metadata = maps.Clone(r.Metadata)
	return err
}

// Accept returns a decision that emits events.
func Accept(events ...event.Event) Decision {
	return Decision{Events: append([]event.Event(nil), events...)}
}

// Reject returns a decision that declines the command.
func Reject(rejections ...Rejection) Decision {
	return Decision{Rejections: append([]Rejection(nil), rejections...)}
}

// Validate checks that a decision either emits events or rejects.
func (d Decision) Validate() error {
	switch {
	case len(d.Events) == 0 && len(d.Rejections) == 0:
		return ErrEmptyDecision
	case len(d.Events) > 0 && len(d.Rejections) > 0:
		return ErrMixedDecision
	}
	return nil
}

// Rejected reports whether the decision declined the command.
func (d Decision) Rejected() bool {
	return len(d.Rejections) > 0
}
