package game

import (
	"fmt"
	"strconv"

	"github.com/louisbranch/kickback/internal/services/game/domain/card"
)

// Decide returns the event that results from cmd against state.
//
// A nil state is treated as EmptyState. Errors are contract violations; a
// wrong-turn or illegal play is not an error and decides to PlayerFailed.
func Decide(state State, cmd Command) (Event, error) {
	if state == nil {
		state = EmptyState{}
	}
	switch c := cmd.(type) {
	case StartGame:
		if state.Started() {
			return nil, ErrAlreadyStarted.With("GameID", c.GameID.String())
		}
		if c.PlayerCount < MinPlayers {
			return nil, ErrInsufficientPlayers.With("MinPlayers", strconv.Itoa(MinPlayers))
		}
		return GameStarted{GameID: c.GameID, PlayerCount: c.PlayerCount, FirstCard: c.FirstCard}, nil
	case PlayCard:
		next, err := NextPlayer(state)
		if err != nil {
			return nil, withGame(err, c.GameID)
		}
		last, err := LastCard(state)
		if err != nil {
			return nil, withGame(err, c.GameID)
		}
		if c.PlayerID != next || !card.Legal(last, c.Card) {
			return PlayerFailed{GameID: c.GameID, PlayerID: c.PlayerID, Card: c.Card}, nil
		}
		return CardPlayed{GameID: c.GameID, PlayerID: c.PlayerID, Card: c.Card}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}
