package card

import (
	"fmt"
	"strings"
)

// Color is one of the four deck colors. Colors carry no ordering.
type Color uint8

const (
	// ColorUnspecified is the zero value and never a valid card color.
	ColorUnspecified Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
)

var colorLabels = [...]string{
	ColorUnspecified: "",
	ColorRed:         "red",
	ColorGreen:       "green",
	ColorYellow:      "yellow",
	ColorBlue:        "blue",
}

// Colors returns every valid color.
func Colors() []Color {
	return []Color{ColorRed, ColorGreen, ColorYellow, ColorBlue}
}

// Valid reports whether c is one of the four deck colors.
func (c Color) Valid() bool {
	return c >= ColorRed && c <= ColorBlue
}

// String returns the canonical lowercase label.
func (c Color) String() string {
	if int(c) < len(colorLabels) && c != ColorUnspecified {
		return colorLabels[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ParseColor accepts canonical labels case-insensitively, with or without a
// COLOR_ prefix.
func ParseColor(value string) (Color, error) {
	label := strings.ToLower(strings.TrimSpace(value))
	label = strings.TrimPrefix(label, "color_")
	for _, c := range Colors() {
		if colorLabels[c] == label {
			return c, nil
		}
	}
	return ColorUnspecified, fmt.Errorf("%w: unknown color %q", ErrInvalidCard, value)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: color %d", ErrInvalidCard, uint8(c))
	}
	return []byte(colorLabels[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
