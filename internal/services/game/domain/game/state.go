package game

import "github.com/louisbranch/kickback/internal/services/game/domain/card"

// State is the fold of a game's history.
type State interface {
	Started() bool
	isState()
}

// EmptyState is the state of a game with no history.
type EmptyState struct{}

// PlayedState is the state of a started game.
type PlayedState struct {
	PlayerCount int
	NextPlayer  PlayerID
	LastCard    card.Card
	Direction   Direction
}

func (EmptyState) Started() bool  { return false }
func (PlayedState) Started() bool { return true }

func (EmptyState) isState()  {}
func (PlayedState) isState() {}

func played(state State) (PlayedState, error) {
	switch s := state.(type) {
	case PlayedState:
		return s, nil
	case *PlayedState:
		if s != nil {
			return *s, nil
		}
	}
	return PlayedState{}, ErrInvalidStateAccess
}

// NextPlayer returns the seat expected to play next.
func NextPlayer(state State) (PlayerID, error) {
	s, err := played(state)
	if err != nil {
		return 0, err
	}
	return s.NextPlayer, nil
}

// LastCard returns the card on top of the pile.
func LastCard(state State) (card.Card, error) {
	s, err := played(state)
	if err != nil {
		return card.Card{}, err
	}
	return s.LastCard, nil
}

// CurrentDirection returns the rotation of play.
func CurrentDirection(state State) (Direction, error) {
	s, err := played(state)
	if err != nil {
		return ClockWise, err
	}
	return s.Direction, nil
}

// IsStarted reports whether state belongs to a started game. A nil state is
// treated as EmptyState.
func IsStarted(state State) bool {
	if state == nil {
		return false
	}
	return state.Started()
}
