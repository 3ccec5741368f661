package game

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "github.com/louisbranch/kickback/internal/platform/errors"
	"github.com/louisbranch/kickback/internal/services/game/domain/command"
	"github.com/louisbranch/kickback/internal/services/game/domain/event"
)

const (
	CommandTypeStart    command.Type = "game.start"
	CommandTypePlayCard command.Type = "game.play_card"

	EventTypeStarted      event.Type = "game.started"
	EventTypeCardPlayed   event.Type = "game.card_played"
	EventTypePlayerFailed event.Type = "game.player_failed"
)

// EncodeCommand converts a typed command into its envelope.
func EncodeCommand(cmd Command) (command.Command, error) {
	switch c := cmd.(type) {
	case StartGame:
		payload, err := json.Marshal(StartPayload{PlayerCount: c.PlayerCount, FirstCard: c.FirstCard})
		if err != nil {
			return command.Command{}, fmt.Errorf("encode %s: %w", CommandTypeStart, err)
		}
		return command.Command{
			GameID:      c.GameID.String(),
			Type:        CommandTypeStart,
			ActorType:   command.ActorTypeSystem,
			PayloadJSON: payload,
		}, nil
	case PlayCard:
		payload, err := json.Marshal(PlayPayload{PlayerID: c.PlayerID, Card: c.Card})
		if err != nil {
			return command.Command{}, fmt.Errorf("encode %s: %w", CommandTypePlayCard, err)
		}
		return command.Command{
			GameID:      c.GameID.String(),
			Type:        CommandTypePlayCard,
			ActorType:   command.ActorTypePlayer,
			ActorID:     c.PlayerID.String(),
			PayloadJSON: payload,
		}, nil
	default:
		return command.Command{}, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

// DecodeCommand converts a command envelope into its typed form.
func DecodeCommand(cmd command.Command) (Command, error) {
	gameID, err := ParseGameID(cmd.GameID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeGamePayloadInvalid, "invalid game id", err)
	}
	switch cmd.Type {
	case CommandTypeStart:
		payload, err := decodeStartPayload(cmd.PayloadJSON)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeGamePayloadInvalid, "invalid start payload", err)
		}
		return StartGame{GameID: gameID, PlayerCount: payload.PlayerCount, FirstCard: payload.FirstCard}, nil
	case CommandTypePlayCard:
		payload, err := decodePlayPayload(cmd.PayloadJSON)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeGamePayloadInvalid, "invalid play payload", err)
		}
		return PlayCard{GameID: gameID, PlayerID: payload.PlayerID, Card: payload.Card}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Type)
	}
}

// EncodeEvent returns the envelope type and payload of a typed event.
func EncodeEvent(evt Event) (event.Type, []byte, error) {
	var (
		eventType event.Type
		body      any
	)
	switch e := evt.(type) {
	case GameStarted:
		eventType = EventTypeStarted
		body = StartPayload{PlayerCount: e.PlayerCount, FirstCard: e.FirstCard}
	case CardPlayed:
		eventType = EventTypeCardPlayed
		body = PlayPayload{PlayerID: e.PlayerID, Card: e.Card}
	case PlayerFailed:
		eventType = EventTypePlayerFailed
		body = PlayPayload{PlayerID: e.PlayerID, Card: e.Card}
	default:
		return "", nil, fmt.Errorf("%w: %T", ErrUnknownEvent, evt)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", nil, fmt.Errorf("encode %s: %w", eventType, err)
	}
	return eventType, payload, nil
}

// NewEnvelope wraps a decided event in an envelope that inherits cmd's
// metadata.
func NewEnvelope(cmd command.Command, evt Event, now time.Time) (event.Event, error) {
	eventType, payload, err := EncodeEvent(evt)
	if err != nil {
		return event.Event{}, err
	}
	return command.NewEvent(cmd, eventType, payload, now.UTC()), nil
}

// DecodeEvent converts an event envelope into its typed form.
func DecodeEvent(evt event.Event) (Event, error) {
	gameID, err := ParseGameID(evt.GameID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeGamePayloadInvalid, "invalid game id", err)
	}
	switch evt.Type {
	case EventTypeStarted:
		payload, err := decodeStartPayload(evt.PayloadJSON)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", evt.Type, err)
		}
		return GameStarted{GameID: gameID, PlayerCount: payload.PlayerCount, FirstCard: payload.FirstCard}, nil
	case EventTypeCardPlayed, EventTypePlayerFailed:
		payload, err := decodePlayPayload(evt.PayloadJSON)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", evt.Type, err)
		}
		if evt.Type == EventTypeCardPlayed {
			return CardPlayed{GameID: gameID, PlayerID: payload.PlayerID, Card: payload.Card}, nil
		}
		return PlayerFailed{GameID: gameID, PlayerID: payload.PlayerID, Card: payload.Card}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, evt.Type)
	}
}
