package card

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCard indicates a card that is not part of the deck.
var ErrInvalidCard = errors.New("invalid card")

// Kind discriminates the card variants.
type Kind uint8

const (
	// KindUnspecified is the zero value and never a valid card kind.
	KindUnspecified Kind = iota
	// KindDigit is a colored digit card.
	KindDigit
	// KindKickBack reverses the direction of play.
	KindKickBack
)

// String returns the wire label of the kind.
func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindKickBack:
		return "kickback"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Card is a tagged variant over digit and kickback cards.
//
// Digit is meaningful only for KindDigit and is always zero for kickback
// cards, so two equal cards compare equal with ==.
type Card struct {
	Kind  Kind
	Digit int
	Color Color
}

// NewDigit returns a digit card. The digit is not range checked; 0-9 is the
// expected domain.
func NewDigit(digit int, color Color) Card {
	return Card{Kind: KindDigit, Digit: digit, Color: color}
}

// NewKickBack returns a kickback card.
func NewKickBack(color Color) Card {
	return Card{Kind: KindKickBack, Color: color}
}

// IsKickBack reports whether the card reverses play.
func (c Card) IsKickBack() bool {
	return c.Kind == KindKickBack
}

// Validate reports whether the card is a well-formed deck card.
func (c Card) Validate() error {
	if !c.Color.Valid() {
		return fmt.Errorf("%w: color is required", ErrInvalidCard)
	}
	switch c.Kind {
	case KindDigit:
		return nil
	case KindKickBack:
		if c.Digit != 0 {
			return fmt.Errorf("%w: kickback cards carry no digit", ErrInvalidCard)
		}
		return nil
	default:
		return fmt.Errorf("%w: kind is required", ErrInvalidCard)
	}
}

// String renders the card as "9 red" or "kickback blue".
func (c Card) String() string {
	switch c.Kind {
	case KindDigit:
		return strconv.Itoa(c.Digit) + " " + c.Color.String()
	case KindKickBack:
		return "kickback " + c.Color.String()
	default:
		return "invalid card"
	}
}

// Parse reads the String form back into a card.
func Parse(value string) (Card, error) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return Card{}, fmt.Errorf("%w: %q must be \"<digit|kickback> <color>\"", ErrInvalidCard, value)
	}
	color, err := ParseColor(fields[1])
	if err != nil {
		return Card{}, err
	}
	if strings.EqualFold(fields[0], "kickback") {
		return NewKickBack(color), nil
	}
	digit, err := strconv.Atoi(fields[0])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q is not a digit", ErrInvalidCard, fields[0])
	}
	return NewDigit(digit, color), nil
}

// Legal reports whether next may be played on top of last.
//
// Same color is always legal. Otherwise a kickback only follows a kickback,
// and a digit only follows a digit with the same value.
func Legal(last, next Card) bool {
	if last.Color == next.Color {
		return true
	}
	switch last.Kind {
	case KindKickBack:
		return next.Kind == KindKickBack
	case KindDigit:
		return next.Kind == KindDigit && next.Digit == last.Digit
	default:
		return false
	}
}

// wireCard is the JSON form stored in event payloads.
type wireCard struct {
	Kind  string `json:"kind"`
	Digit *int   `json:"digit,omitempty"`
	Color Color  `json:"color"`
}

// MarshalJSON implements json.Marshaler.
func (c Card) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	wire := wireCard{Kind: c.Kind.String(), Color: c.Color}
	if c.Kind == KindDigit {
		digit := c.Digit
		wire.Digit = &digit
	}
	return json.Marshal(wire)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Card) UnmarshalJSON(data []byte) error {
	var wire wireCard
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	var decoded Card
	switch strings.ToLower(strings.TrimSpace(wire.Kind)) {
	case "digit":
		if wire.Digit == nil {
			return fmt.Errorf("%w: digit card requires a digit", ErrInvalidCard)
		}
		decoded = NewDigit(*wire.Digit, wire.Color)
	case "kickback":
		if wire.Digit != nil {
			return fmt.Errorf("%w: kickback cards carry no digit", ErrInvalidCard)
		}
		decoded = NewKickBack(wire.Color)
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidCard, wire.Kind)
	}
	if err := decoded.Validate(); err != nil {
		return err
	}
	*c = decoded
	return nil
}
