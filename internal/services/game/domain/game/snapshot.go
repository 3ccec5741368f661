package game

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/kickback/internal/services/game/domain/card"
)

type stateSnapshot struct {
	Started     bool       `json:"started"`
	PlayerCount int        `json:"player_count,omitempty"`
	NextPlayer  PlayerID   `json:"next_player,omitempty"`
	LastCard    *card.Card `json:"last_card,omitempty"`
	Direction   Direction  `json:"direction,omitempty"`
}

// MarshalState encodes state for snapshot storage.
func MarshalState(state State) ([]byte, error) {
	if !IsStarted(state) {
		return json.Marshal(stateSnapshot{})
	}
	s, err := played(state)
	if err != nil {
		return nil, err
	}
	last := s.LastCard
	return json.Marshal(stateSnapshot{
		Started:     true,
		PlayerCount: s.PlayerCount,
		NextPlayer:  s.NextPlayer,
		LastCard:    &last,
		Direction:   s.Direction,
	})
}

// UnmarshalState decodes a snapshot written by MarshalState.
func UnmarshalState(data []byte) (State, error) {
	var snapshot stateSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode state snapshot: %w", err)
	}
	if !snapshot.Started {
		return EmptyState{}, nil
	}
	if snapshot.LastCard == nil {
		return nil, fmt.Errorf("decode state snapshot: last card is required")
	}
	if snapshot.PlayerCount < MinPlayers {
		return nil, fmt.Errorf("decode state snapshot: player count %d below %d", snapshot.PlayerCount, MinPlayers)
	}
	if snapshot.NextPlayer < 0 || int(snapshot.NextPlayer) >= snapshot.PlayerCount {
		return nil, fmt.Errorf("decode state snapshot: next player %d out of range", snapshot.NextPlayer)
	}
	return PlayedState{
		PlayerCount: snapshot.PlayerCount,
		NextPlayer:  snapshot.NextPlayer,
		LastCard:    *snapshot.LastCard,
		Direction:   snapshot.Direction,
	}, nil
}
