package game

import "fmt"

// Apply folds evt into state and returns the next state.
//
// A nil state is treated as EmptyState. The input state is never modified.
func Apply(state State, evt Event) (State, error) {
	if state == nil {
		state = EmptyState{}
	}
	switch e := evt.(type) {
	case GameStarted:
		return PlayedState{
			PlayerCount: e.PlayerCount,
			NextPlayer:  0,
			LastCard:    e.FirstCard,
			Direction:   ClockWise,
		}, nil
	case CardPlayed:
		current, err := played(state)
		if err != nil {
			return state, err
		}
		direction := current.Direction
		if e.Card.IsKickBack() {
			direction = direction.Opposite()
		}
		return PlayedState{
			PlayerCount: current.PlayerCount,
			NextPlayer:  direction.NextPlayer(current.NextPlayer, current.PlayerCount),
			LastCard:    e.Card,
			Direction:   direction,
		}, nil
	case PlayerFailed:
		return state, nil
	default:
		return state, fmt.Errorf("%w: %T", ErrUnknownEvent, evt)
	}
}

// Fold replays events in order starting from EmptyState.
func Fold(events []Event) (State, error) {
	return FoldFrom(EmptyState{}, events)
}

// FoldFrom replays events in order on top of state.
func FoldFrom(state State, events []Event) (State, error) {
	for i, evt := range events {
		next, err := Apply(state, evt)
		if err != nil {
			return state, fmt.Errorf("fold event %d: %w", i, err)
		}
		state = next
	}
	return state, nil
}
