package command

import (
	"encoding/json"
	"errors"
	"testing"

	apperrors "github.com/louisbranch/kickback/internal/platform/errors"
)

func playRegistry(t *testing.T) *Registry {
	t.Helper()
	registry := NewRegistry()
	if err := registry.Register(Definition{Type: Type("game.play_card"), Actors: []ActorType{ActorTypePlayer}}); err != nil {
		t.Fatalf("register: %v", err)
	}
	return registry
}

func TestRegistryValidateForDecision_NormalizesCommand(t *testing.T) {
	registry := playRegistry(t)
	got, err := registry.ValidateForDecision(Command{
		GameID:      " 1 ",
		Type:        Type(" game.play_card "),
		ActorType:   ActorTypePlayer,
		ActorID:     " 0 ",
		PayloadJSON: []byte(`{ "player_id": 0 }`),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.GameID != "1" || got.ActorID != "0" || got.Type != Type("game.play_card") {
		t.Fatalf("command not normalized: %+v", got)
	}
	if string(got.PayloadJSON) != `{"player_id":0}` {
		t.Fatalf("payload = %s, want canonical json", got.PayloadJSON)
	}
}

func TestRegistryValidateForDecision_Errors(t *testing.T) {
	registry := playRegistry(t)
	tests := []struct {
		name string
		cmd  Command
		want error
	}{
		{name: "missing game", cmd: Command{Type: "game.play_card"}, want: ErrGameIDRequired},
		{name: "missing type", cmd: Command{GameID: "1"}, want: ErrTypeRequired},
		{name: "unknown type", cmd: Command{GameID: "1", Type: "game.draw"}, want: ErrTypeUnknown},
		{name: "bad actor", cmd: Command{GameID: "1", Type: "game.play_card", ActorType: "robot"}, want: ErrActorTypeInvalid},
		{name: "system actor", cmd: Command{GameID: "1", Type: "game.play_card"}, want: ErrActorNotAllowed},
		{name: "missing actor id", cmd: Command{GameID: "1", Type: "game.play_card", ActorType: ActorTypePlayer}, want: ErrActorIDRequired},
		{name: "bad payload", cmd: Command{GameID: "1", Type: "game.play_card", ActorType: ActorTypePlayer, ActorID: "0", PayloadJSON: []byte("{")}, want: ErrPayloadInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.ValidateForDecision(tt.cmd)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			wantCode := apperrors.CodeGamePayloadInvalid
			if errors.Is(tt.want, ErrTypeUnknown) {
				wantCode = apperrors.CodeCommandTypeUnsupported
			}
			if got := apperrors.CodeOf(err); got != wantCode {
				t.Fatalf("code = %s, want %s", got, wantCode)
			}
		})
	}
}

func TestRegistryValidateForDecision_DefaultsSystemActorAndEmptyPayload(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(Definition{Type: "game.start"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := registry.ValidateForDecision(Command{GameID: "1", Type: "game.start"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.ActorType != ActorTypeSystem {
		t.Fatalf("actor type = %s, want %s", got.ActorType, ActorTypeSystem)
	}
	if string(got.PayloadJSON) != "{}" {
		t.Fatalf("payload = %s, want {}", got.PayloadJSON)
	}
}

func TestRegistryValidateForDecision_RunsPayloadValidator(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(Definition{
		Type: Type("game.start"),
		ValidatePayload: func(raw json.RawMessage) error {
			return errors.New("rejected")
		},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := registry.ValidateForDecision(Command{GameID: "1", Type: "game.start"}); !errors.Is(err, ErrPayloadInvalid) {
		t.Fatalf("error = %v, want %v", err, ErrPayloadInvalid)
	}
}

func TestRegistryRegister_RejectsDuplicatesAndBlankTypes(t *testing.T) {
	registry := playRegistry(t)
	if err := registry.Register(Definition{Type: "game.play_card"}); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := registry.Register(Definition{Type: "game.start"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(Definition{Type: " "}); !errors.Is(err, ErrTypeRequired) {
		t.Fatalf("error = %v, want %v", err, ErrTypeRequired)
	}
	if _, ok := registry.Definition("game.play_card"); !ok {
		t.Fatal("expected registered definition")
	}
	definitions := registry.ListDefinitions()
	if len(definitions) != 2 || definitions[0].Type != "game.play_card" || definitions[1].Type != "game.start" {
		t.Fatalf("definitions = %+v, want play_card then start", definitions)
	}
	var nilRegistry *Registry
	if err := nilRegistry.Register(Definition{Type: "x"}); !errors.Is(err, ErrRegistryRequired) {
		t.Fatalf("error = %v, want %v", err, ErrRegistryRequired)
	}
}
