package game

import (
	"fmt"
	"strings"
)

// Direction is the rotation of play around the table.
type Direction uint8

const (
	// ClockWise advances seats in increasing order.
	ClockWise Direction = iota
	// CounterClockWise advances seats in decreasing order.
	CounterClockWise
)

type directionOps struct {
	label    string
	next     func(current PlayerID, playerCount int) PlayerID
	opposite Direction
}

var directions = [...]directionOps{
	ClockWise: {
		label: "clockwise",
		next: func(current PlayerID, playerCount int) PlayerID {
			return (current + 1) % PlayerID(playerCount)
		},
		opposite: CounterClockWise,
	},
	CounterClockWise: {
		label: "counterclockwise",
		next: func(current PlayerID, playerCount int) PlayerID {
			n := PlayerID(playerCount)
			return ((current-1)%n + n) % n
		},
		opposite: ClockWise,
	},
}

func (d Direction) ops() directionOps {
	if int(d) >= len(directions) {
		panic(fmt.Sprintf("game: unknown direction %d", d))
	}
	return directions[d]
}

// NextPlayer returns the seat that plays after current.
//
// The result is always in [0, playerCount). A non-positive playerCount
// returns current unchanged.
func (d Direction) NextPlayer(current PlayerID, playerCount int) PlayerID {
	if playerCount <= 0 {
		return current
	}
	return d.ops().next(current, playerCount)
}

// Opposite returns the reversed direction.
func (d Direction) Opposite() Direction {
	return d.ops().opposite
}

// String returns the lowercase label of the direction.
func (d Direction) String() string {
	if int(d) >= len(directions) {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return directions[d].label
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if int(d) >= len(directions) {
		return nil, fmt.Errorf("unknown direction %d", d)
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	value := strings.ToLower(strings.TrimSpace(string(text)))
	for i, ops := range directions {
		if ops.label == value {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q", string(text))
}
