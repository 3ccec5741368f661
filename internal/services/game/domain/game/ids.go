package game

import (
	"fmt"
	"strconv"
	"strings"
)

// GameID identifies one game's event history.
type GameID int64

// String returns the decimal form used in envelopes.
func (id GameID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseGameID reads the decimal envelope form of a game id.
func ParseGameID(value string) (GameID, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse game id %q: %w", value, err)
	}
	return GameID(parsed), nil
}

// PlayerID is a 0-based seat index in [0, playerCount).
type PlayerID int

// String returns the decimal form used as envelope actor id.
func (id PlayerID) String() string {
	return strconv.Itoa(int(id))
}
