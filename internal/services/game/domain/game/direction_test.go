package game

import "testing"

func TestDirectionNextPlayer(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		current   PlayerID
		count     int
		want      PlayerID
	}{
		{name: "clockwise advances", direction: ClockWise, current: 0, count: 4, want: 1},
		{name: "clockwise wraps", direction: ClockWise, current: 3, count: 4, want: 0},
		{name: "counterclockwise retreats", direction: CounterClockWise, current: 2, count: 4, want: 1},
		{name: "counterclockwise wraps from zero", direction: CounterClockWise, current: 0, count: 4, want: 3},
		{name: "counterclockwise three seats", direction: CounterClockWise, current: 0, count: 3, want: 2},
		{name: "non-positive count keeps current", direction: ClockWise, current: 2, count: 0, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.direction.NextPlayer(tt.current, tt.count)
			if got != tt.want {
				t.Fatalf("NextPlayer(%d, %d) = %d, want %d", tt.current, tt.count, got, tt.want)
			}
		})
	}
}

func TestDirectionNextPlayerStaysInRange(t *testing.T) {
	for _, direction := range []Direction{ClockWise, CounterClockWise} {
		for count := MinPlayers; count <= 8; count++ {
			for current := PlayerID(0); int(current) < count; current++ {
				got := direction.NextPlayer(current, count)
				if got < 0 || int(got) >= count {
					t.Fatalf("%s.NextPlayer(%d, %d) = %d, out of range", direction, current, count, got)
				}
			}
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	if got := ClockWise.Opposite(); got != CounterClockWise {
		t.Fatalf("ClockWise.Opposite() = %s, want %s", got, CounterClockWise)
	}
	if got := CounterClockWise.Opposite(); got != ClockWise {
		t.Fatalf("CounterClockWise.Opposite() = %s, want %s", got, ClockWise)
	}
}

func TestDirectionText(t *testing.T) {
	for _, direction := range []Direction{ClockWise, CounterClockWise} {
		text, err := direction.MarshalText()
		if err != nil {
			t.Fatalf("marshal %s: %v", direction, err)
		}
		var decoded Direction
		if err := decoded.UnmarshalText(text); err != nil {
			t.Fatalf("unmarshal %s: %v", text, err)
		}
		if decoded != direction {
			t.Fatalf("decoded = %s, want %s", decoded, direction)
		}
	}
	var d Direction
	if err := d.UnmarshalText([]byte("sideways")); err == nil {
		t.Fatal("expected error for unknown direction")
	}
	if got := Direction(9).String(); got != "direction(9)" {
		t.Fatalf("String() = %q, want %q", got, "direction(9)")
	}
}
