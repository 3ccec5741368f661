package game

import (
	"errors"
	"testing"

	"github.com/louisbranch/kickback/internal/services/game/domain/card"
)

func TestApplyGameStarted(t *testing.T) {
	state, err := Apply(EmptyState{}, GameStarted{GameID: 1, PlayerCount: 4, FirstCard: threeRed})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := PlayedState{PlayerCount: 4, NextPlayer: 0, LastCard: threeRed, Direction: ClockWise}
	if state != want {
		t.Fatalf("state = %#v, want %#v", state, want)
	}
}

func TestApplyGameStartedResetsPlayedState(t *testing.T) {
	state := startedState(t, CardPlayed{GameID: 1, PlayerID: 0, Card: card.NewKickBack(card.ColorRed)})
	blueFive := card.NewDigit(5, card.ColorBlue)
	got, err := Apply(state, GameStarted{GameID: 1, PlayerCount: 3, FirstCard: blueFive})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := PlayedState{PlayerCount: 3, NextPlayer: 0, LastCard: blueFive, Direction: ClockWise}
	if got != want {
		t.Fatalf("state = %#v, want %#v", got, want)
	}
}

func TestApplyCardPlayedAdvancesTurn(t *testing.T) {
	state := startedState(t)
	got, err := Apply(state, CardPlayed{GameID: 1, PlayerID: 0, Card: nineRed})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := PlayedState{PlayerCount: 4, NextPlayer: 1, LastCard: nineRed, Direction: ClockWise}
	if got != want {
		t.Fatalf("state = %#v, want %#v", got, want)
	}
}

func TestApplyKickBackReversesRotation(t *testing.T) {
	start := startedState(t, CardPlayed{GameID: 1, PlayerID: 0, Card: nineRed})

	plain, err := Apply(start, CardPlayed{GameID: 1, PlayerID: 1, Card: card.NewDigit(2, card.ColorRed)})
	if err != nil {
		t.Fatalf("apply plain: %v", err)
	}
	kicked, err := Apply(start, CardPlayed{GameID: 1, PlayerID: 1, Card: card.NewKickBack(card.ColorRed)})
	if err != nil {
		t.Fatalf("apply kickback: %v", err)
	}

	plainNext, _ := NextPlayer(plain)
	kickedNext, _ := NextPlayer(kicked)
	if plainNext != 2 {
		t.Fatalf("plain next = %d, want 2", plainNext)
	}
	if kickedNext != 0 {
		t.Fatalf("kickback next = %d, want 0", kickedNext)
	}
	direction, _ := CurrentDirection(kicked)
	if direction != CounterClockWise {
		t.Fatalf("direction = %s, want %s", direction, CounterClockWise)
	}
}

func TestApplyKickBackFromSeatZeroWraps(t *testing.T) {
	state := startedState(t, CardPlayed{GameID: 1, PlayerID: 0, Card: card.NewKickBack(card.ColorRed)})
	next, err := NextPlayer(state)
	if err != nil {
		t.Fatalf("next player: %v", err)
	}
	if next != 3 {
		t.Fatalf("next = %d, want 3", next)
	}
}

func TestApplyDoubleKickBackRestoresDirection(t *testing.T) {
	state := startedState(t,
		CardPlayed{GameID: 1, PlayerID: 0, Card: card.NewKickBack(card.ColorRed)},
		CardPlayed{GameID: 1, PlayerID: 3, Card: card.NewKickBack(card.ColorBlue)},
	)
	got := state.(PlayedState)
	if got.Direction != ClockWise {
		t.Fatalf("direction = %s, want %s", got.Direction, ClockWise)
	}
	if got.NextPlayer != 0 {
		t.Fatalf("next = %d, want 0", got.NextPlayer)
	}
}

func TestApplyPlayerFailedIsNoop(t *testing.T) {
	for _, state := range []State{EmptyState{}, startedState(t, CardPlayed{GameID: 1, PlayerID: 0, Card: nineRed})} {
		got, err := Apply(state, PlayerFailed{GameID: 1, PlayerID: 2, Card: card.NewDigit(3, card.ColorYellow)})
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if got != state {
			t.Fatalf("state = %#v, want %#v", got, state)
		}
		before, _ := MarshalState(state)
		after, _ := MarshalState(got)
		if string(before) != string(after) {
			t.Fatalf("snapshot changed from %s to %s", before, after)
		}
	}
}

func TestApplyCardPlayedBeforeStart(t *testing.T) {
	_, err := Apply(EmptyState{}, CardPlayed{GameID: 1, PlayerID: 0, Card: nineRed})
	if !errors.Is(err, ErrInvalidStateAccess) {
		t.Fatalf("error = %v, want %v", err, ErrInvalidStateAccess)
	}
}

func TestApplyUnknownEvent(t *testing.T) {
	_, err := Apply(EmptyState{}, nil)
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("error = %v, want %v", err, ErrUnknownEvent)
	}
}

func TestFoldIsDeterministic(t *testing.T) {
	history := []Event{
		GameStarted{GameID: 1, PlayerCount: 4, FirstCard: threeRed},
		CardPlayed{GameID: 1, PlayerID: 0, Card: nineRed},
		PlayerFailed{GameID: 1, PlayerID: 3, Card: card.NewDigit(1, card.ColorGreen)},
		CardPlayed{GameID: 1, PlayerID: 1, Card: card.NewKickBack(card.ColorRed)},
		CardPlayed{GameID: 1, PlayerID: 0, Card: card.NewDigit(4, card.ColorRed)},
	}
	first, err := Fold(history)
	if err != nil {
		t.Fatalf("fold: %v", err)
	}
	second, err := Fold(history)
	if err != nil {
		t.Fatalf("fold: %v", err)
	}
	if first != second {
		t.Fatalf("fold not deterministic: %#v != %#v", first, second)
	}
	want := PlayedState{PlayerCount: 4, NextPlayer: 3, LastCard: card.NewDigit(4, card.ColorRed), Direction: CounterClockWise}
	if first != want {
		t.Fatalf("state = %#v, want %#v", first, want)
	}
}

func TestFoldBatchingMatchesSingleFold(t *testing.T) {
	history := []Event{
		GameStarted{GameID: 1, PlayerCount: 3, FirstCard: threeRed},
		CardPlayed{GameID: 1, PlayerID: 0, Card: card.NewKickBack(card.ColorRed)},
		CardPlayed{GameID: 1, PlayerID: 2, Card: card.NewKickBack(card.ColorGreen)},
	}
	whole, err := Fold(history)
	if err != nil {
		t.Fatalf("fold: %v", err)
	}
	for split := 0; split <= len(history); split++ {
		head, err := Fold(history[:split])
		if err != nil {
			t.Fatalf("fold head: %v", err)
		}
		got, err := FoldFrom(head, history[split:])
		if err != nil {
			t.Fatalf("fold tail: %v", err)
		}
		if got != whole {
			t.Fatalf("split %d: state = %#v, want %#v", split, got, whole)
		}
	}
}

func TestFoldStopsAtInvalidEvent(t *testing.T) {
	_, err := Fold([]Event{CardPlayed{GameID: 1, PlayerID: 0, Card: nineRed}})
	if !errors.Is(err, ErrInvalidStateAccess) {
		t.Fatalf("error = %v, want %v", err, ErrInvalidStateAccess)
	}
}

func TestStateAccessorsOnEmptyState(t *testing.T) {
	if _, err := NextPlayer(EmptyState{}); !errors.Is(err, ErrInvalidStateAccess) {
		t.Fatalf("NextPlayer error = %v, want %v", err, ErrInvalidStateAccess)
	}
	if _, err := LastCard(EmptyState{}); !errors.Is(err, ErrInvalidStateAccess) {
		t.Fatalf("LastCard error = %v, want %v", err, ErrInvalidStateAccess)
	}
	if _, err := CurrentDirection(nil); !errors.Is(err, ErrInvalidStateAccess) {
		t.Fatalf("CurrentDirection error = %v, want %v", err, ErrInvalidStateAccess)
	}
	if IsStarted(nil) || IsStarted(EmptyState{}) {
		t.Fatal("expected empty state to be unstarted")
	}
}
