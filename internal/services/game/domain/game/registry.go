package game

import (
	"fmt"

	"github.com/louisbranch/kickback/internal/services/game/domain/command"
	"github.com/louisbranch/kickback/internal/services/game/domain/event"
)

// RegisterCommands registers the game command definitions.
func RegisterCommands(registry *command.Registry) error {
	if registry == nil {
		return fmt.Errorf("command registry is required")
	}
	definitions := []command.Definition{
		{Type: CommandTypeStart, Actors: []command.ActorType{command.ActorTypeSystem}, ValidatePayload: ValidateStartPayload},
		{Type: CommandTypePlayCard, Actors: []command.ActorType{command.ActorTypePlayer}, ValidatePayload: ValidatePlayPayload},
	}
	for _, def := range definitions {
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// RegisterEvents registers the game event definitions.
func RegisterEvents(registry *event.Registry) error {
	if registry == nil {
		return fmt.Errorf("event registry is required")
	}
	definitions := []event.Definition{
		{Type: EventTypeStarted, ValidatePayload: ValidateStartPayload},
		{Type: EventTypeCardPlayed, ValidatePayload: ValidatePlayPayload},
		{Type: EventTypePlayerFailed, Intent: event.IntentAuditOnly, ValidatePayload: ValidatePlayPayload},
	}
	for _, def := range definitions {
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistries builds command and event registries holding the game types.
func NewRegistries() (*command.Registry, *event.Registry, error) {
	commands := command.NewRegistry()
	if err := RegisterCommands(commands); err != nil {
		return nil, nil, fmt.Errorf("register commands: %w", err)
	}
	events := event.NewRegistry()
	if err := RegisterEvents(events); err != nil {
		return nil, nil, fmt.Errorf("register events: %w", err)
	}
	return commands, events, nil
}

// FoldHandledTypes returns the event types handled by Apply.
func FoldHandledTypes() []event.Type {
	return []event.Type{
		EventTypeStarted,
		EventTypeCardPlayed,
		EventTypePlayerFailed,
	}
}
