package game

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/louisbranch/kickback/internal/platform/errors"
	"github.com/louisbranch/kickback/internal/services/game/domain/card"
	"github.com/louisbranch/kickback/internal/services/game/domain/command"
	"github.com/louisbranch/kickback/internal/services/game/domain/event"
)

func TestEncodeCommandStartGame(t *testing.T) {
	cmd, err := EncodeCommand(StartGame{GameID: 12, PlayerCount: 4, FirstCard: threeRed})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if cmd.GameID != "12" || cmd.Type != CommandTypeStart || cmd.ActorType != command.ActorTypeSystem {
		t.Fatalf("envelope = %+v", cmd)
	}
	want := `{"player_count":4,"first_card":{"kind":"digit","digit":3,"color":"red"}}`
	if string(cmd.PayloadJSON) != want {
		t.Fatalf("payload = %s, want %s", cmd.PayloadJSON, want)
	}
}

func TestEncodeCommandPlayCardSetsPlayerActor(t *testing.T) {
	cmd, err := EncodeCommand(PlayCard{GameID: 1, PlayerID: 2, Card: card.NewKickBack(card.ColorBlue)})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if cmd.ActorType != command.ActorTypePlayer || cmd.ActorID != "2" {
		t.Fatalf("actor = %s/%s, want player/2", cmd.ActorType, cmd.ActorID)
	}
	want := `{"player_id":2,"card":{"kind":"kickback","color":"blue"}}`
	if string(cmd.PayloadJSON) != want {
		t.Fatalf("payload = %s, want %s", cmd.PayloadJSON, want)
	}
}

func TestEncodeCommandRejectsInvalidCard(t *testing.T) {
	if _, err := EncodeCommand(PlayCard{GameID: 1, Card: card.Card{}}); err == nil {
		t.Fatal("expected error for invalid card")
	}
}

func TestDecodeCommandRoundTrip(t *testing.T) {
	commands := []Command{
		StartGame{GameID: 1, PlayerCount: 3, FirstCard: threeRed},
		PlayCard{GameID: 1, PlayerID: 1, Card: card.NewDigit(9, card.ColorYellow)},
	}
	for _, original := range commands {
		envelope, err := EncodeCommand(original)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		decoded, err := DecodeCommand(envelope)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if decoded != original {
			t.Fatalf("decoded = %#v, want %#v", decoded, original)
		}
	}
}

func TestDecodeCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  command.Command
		want error
	}{
		{
			name: "bad game id",
			cmd:  command.Command{GameID: "abc", Type: CommandTypeStart, PayloadJSON: []byte(`{}`)},
			want: apperrors.New(apperrors.CodeGamePayloadInvalid, ""),
		},
		{
			name: "missing card",
			cmd:  command.Command{GameID: "1", Type: CommandTypePlayCard, PayloadJSON: []byte(`{"player_id":0}`)},
			want: apperrors.New(apperrors.CodeGamePayloadInvalid, ""),
		},
		{
			name: "unknown field",
			cmd:  command.Command{GameID: "1", Type: CommandTypePlayCard, PayloadJSON: []byte(`{"player_id":0,"card":{"kind":"kickback","color":"red"},"extra":1}`)},
			want: apperrors.New(apperrors.CodeGamePayloadInvalid, ""),
		},
		{
			name: "unknown type",
			cmd:  command.Command{GameID: "1", Type: "game.draw"},
			want: ErrUnknownCommand,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCommand(tt.cmd)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEventEnvelopeRoundTrip(t *testing.T) {
	events := []Event{
		GameStarted{GameID: 5, PlayerCount: 4, FirstCard: threeRed},
		CardPlayed{GameID: 5, PlayerID: 0, Card: nineRed},
		PlayerFailed{GameID: 5, PlayerID: 2, Card: card.NewKickBack(card.ColorGreen)},
	}
	wantTypes := []event.Type{EventTypeStarted, EventTypeCardPlayed, EventTypePlayerFailed}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, original := range events {
		cmd := command.Command{GameID: "5", ActorType: command.ActorTypeSystem, RequestID: "req-1"}
		envelope, err := NewEnvelope(cmd, original, now)
		if err != nil {
			t.Fatalf("envelope: %v", err)
		}
		if envelope.Type != wantTypes[i] {
			t.Fatalf("type = %s, want %s", envelope.Type, wantTypes[i])
		}
		if envelope.RequestID != "req-1" || !envelope.Timestamp.Equal(now) {
			t.Fatalf("envelope metadata = %+v", envelope)
		}
		decoded, err := DecodeEvent(envelope)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if decoded != original {
			t.Fatalf("decoded = %#v, want %#v", decoded, original)
		}
	}
}

func TestDecodeEventRejectsMalformedCard(t *testing.T) {
	_, err := DecodeEvent(event.Event{
		GameID:      "1",
		Type:        EventTypeCardPlayed,
		PayloadJSON: []byte(`{"player_id":0,"card":{"kind":"digit","color":"purple","digit":1}}`),
	})
	if err == nil {
		t.Fatal("expected error for malformed card")
	}
}

func TestDecodeEventUnknownType(t *testing.T) {
	_, err := DecodeEvent(event.Event{GameID: "1", Type: "game.ended"})
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("error = %v, want %v", err, ErrUnknownEvent)
	}
}

func TestRegistriesValidatePayloads(t *testing.T) {
	commands, events, err := NewRegistries()
	if err != nil {
		t.Fatalf("registries: %v", err)
	}
	if _, err := commands.ValidateForDecision(command.Command{
		GameID:      "1",
		Type:        CommandTypeStart,
		PayloadJSON: []byte(`{"player_count":4}`),
	}); err == nil {
		t.Fatal("expected payload error for missing first card")
	}
	def, ok := events.Definition(EventTypePlayerFailed)
	if !ok {
		t.Fatal("expected player failed definition")
	}
	if def.Intent != event.IntentAuditOnly {
		t.Fatalf("intent = %s, want %s", def.Intent, event.IntentAuditOnly)
	}
	if got := len(events.ListDefinitions()); got != len(FoldHandledTypes()) {
		t.Fatalf("event definitions = %d, want %d", got, len(FoldHandledTypes()))
	}
}
