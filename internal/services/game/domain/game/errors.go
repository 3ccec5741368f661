package game

import (
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/kickback/internal/platform/errors"
)

// MinPlayers is the smallest table a game can start with.
const MinPlayers = 3

var (
	// ErrAlreadyStarted is returned when StartGame targets a started game.
	ErrAlreadyStarted = apperrors.New(apperrors.CodeGameAlreadyStarted, "game already started")
	// ErrInsufficientPlayers is returned when StartGame seats fewer than MinPlayers.
	ErrInsufficientPlayers = apperrors.New(apperrors.CodeGameInsufficientPlayers, fmt.Sprintf("a game needs at least %d players", MinPlayers))
	// ErrInvalidStateAccess is returned when turn data is read from, or a play
	// is applied to, a game that has not started.
	ErrInvalidStateAccess = apperrors.New(apperrors.CodeGameNotStarted, "game has not started")
	// ErrSeatMismatch is returned when a player actor plays for another seat.
	ErrSeatMismatch = apperrors.New(apperrors.CodeGameSeatMismatch, "actor does not hold the played seat")
	// ErrUnknownCommand is returned for a command outside the closed set.
	ErrUnknownCommand = apperrors.New(apperrors.CodeGameCommandUnknown, "unknown game command")
	// ErrUnknownEvent is returned for an event outside the closed set.
	ErrUnknownEvent = apperrors.New(apperrors.CodeGameEventUnsupported, "unknown game event")
)

// withGame tags a coded error with the game it concerns.
func withGame(err error, id GameID) error {
	var coded *apperrors.Error
	if errors.As(err, &coded) {
		return coded.With("GameID", id.String())
	}
	return err
}
