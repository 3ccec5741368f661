package command

import (
	"time"

	"github.com/louisbranch/kickback/internal/services/game/domain/event"
)

// NewEvent starts an event caused by cmd. The actor and request metadata are
// carried over and the command's request id becomes the event's causation id
// when the command names no cause of its own.
func NewEvent(cmd Command, eventType event.Type, payloadJSON []byte, at time.Time) event.Event {
	causation := cmd.CausationID
	if causation == "" {
		causation = cmd.RequestID
	}
	return event.Event{
		GameID:        cmd.GameID,
		Type:          eventType,
		Timestamp:     at,
		ActorType:     event.ActorType(cmd.ActorType),
		ActorID:       cmd.ActorID,
		RequestID:     cmd.RequestID,
		CorrelationID: cmd.CorrelationID,
		CausationID:   causation,
		PayloadJSON:   payloadJSON,
	}
}
