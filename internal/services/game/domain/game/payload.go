package game

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/louisbranch/kickback/internal/services/game/domain/card"
)

// StartPayload is the JSON body of game.start commands and game.started events.
type StartPayload struct {
	PlayerCount int       `json:"player_count"`
	FirstCard   card.Card `json:"first_card"`
}

// PlayPayload is the JSON body of game.play_card commands and of
// game.card_played and game.player_failed events.
type PlayPayload struct {
	PlayerID PlayerID  `json:"player_id"`
	Card     card.Card `json:"card"`
}

func decodePayload(raw []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func decodeStartPayload(raw []byte) (StartPayload, error) {
	var payload StartPayload
	if err := decodePayload(raw, &payload); err != nil {
		return StartPayload{}, err
	}
	if err := payload.FirstCard.Validate(); err != nil {
		return StartPayload{}, fmt.Errorf("first_card: %w", err)
	}
	return payload, nil
}

func decodePlayPayload(raw []byte) (PlayPayload, error) {
	var payload PlayPayload
	if err := decodePayload(raw, &payload); err != nil {
		return PlayPayload{}, err
	}
	if err := payload.Card.Validate(); err != nil {
		return PlayPayload{}, fmt.Errorf("card: %w", err)
	}
	return payload, nil
}

// ValidateStartPayload checks a game.start or game.started payload.
func ValidateStartPayload(raw json.RawMessage) error {
	_, err := decodeStartPayload(raw)
	return err
}

// ValidatePlayPayload checks a play payload.
func ValidatePlayPayload(raw json.RawMessage) error {
	_, err := decodePlayPayload(raw)
	return err
}
