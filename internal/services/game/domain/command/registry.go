package command

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	apperrors "github.com/louisbranch/kickback/internal/platform/errors"
	coreencoding "github.com/louisbranch/kickback/internal/services/game/core/encoding"
)

var (
	// ErrRegistryRequired indicates a nil registry.
	ErrRegistryRequired = errors.New("command registry is required")
	// ErrGameIDRequired indicates a missing game id.
	ErrGameIDRequired = errors.New("game id is required")
	// ErrTypeRequired indicates a missing command type.
	ErrTypeRequired = errors.New("command type is required")
	// ErrTypeUnknown indicates an unregistered command type.
	ErrTypeUnknown = errors.New("command type is not registered")
	// ErrActorTypeInvalid indicates an unknown actor type.
	ErrActorTypeInvalid = errors.New("actor type is invalid")
	// ErrActorNotAllowed indicates an actor type the command does not accept.
	ErrActorNotAllowed = errors.New("actor type is not allowed for command")
	// ErrActorIDRequired indicates a missing actor id for player actors.
	ErrActorIDRequired = errors.New("actor id is required for player")
	// ErrPayloadInvalid indicates malformed payload JSON.
	ErrPayloadInvalid = errors.New("payload json must be valid")
)

// Type identifies the command type string.
type Type string

// ActorType identifies who issued a command.
type ActorType string

const (
	// ActorTypeSystem indicates a command issued by the table itself.
	ActorTypeSystem ActorType = "system"
	// ActorTypePlayer indicates a command issued by a seated player.
	ActorTypePlayer ActorType = "player"
)

// Command is the envelope every command travels in. GameID is the decimal
// game id; PayloadJSON holds the type-specific fields.
type Command struct {
	GameID        string
	Type          Type
	ActorType     ActorType
	ActorID       string
	RequestID     string
	CorrelationID string
	CausationID   string
	PayloadJSON   []byte
}

// PayloadValidator validates a canonical payload document.
type PayloadValidator func(json.RawMessage) error

// Definition describes one command type. Actors lists the actor types that
// may issue it; an empty list accepts any.
type Definition struct {
	Type            Type
	Actors          []ActorType
	ValidatePayload PayloadValidator
}

func (d Definition) allows(actor ActorType) bool {
	return len(d.Actors) == 0 || slices.Contains(d.Actors, actor)
}

// Registry holds command definitions and validates envelopes against them.
type Registry struct {
	definitions map[Type]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[Type]Definition)}
}

// Register adds a command type definition.
func (r *Registry) Register(def Definition) error {
	if r == nil {
		return ErrRegistryRequired
	}
	def.Type = normalizeType(def.Type)
	if def.Type == "" {
		return ErrTypeRequired
	}
	if r.definitions == nil {
		r.definitions = make(map[Type]Definition)
	}
	if _, exists := r.definitions[def.Type]; exists {
		return fmt.Errorf("command type already registered: %s", def.Type)
	}
	r.definitions[def.Type] = def
	return nil
}

// ValidateForDecision trims the envelope, checks it against its definition
// and canonicalizes the payload.
//
// Errors carry CodeCommandTypeUnsupported for unknown types and
// CodeGamePayloadInvalid otherwise.
func (r *Registry) ValidateForDecision(cmd Command) (Command, error) {
	if r == nil {
		return Command{}, ErrRegistryRequired
	}
	cmd.GameID = strings.TrimSpace(cmd.GameID)
	if cmd.GameID == "" {
		return Command{}, invalid(ErrGameIDRequired)
	}
	cmd.Type = normalizeType(cmd.Type)
	if cmd.Type == "" {
		return Command{}, invalid(ErrTypeRequired)
	}
	def, ok := r.definitions[cmd.Type]
	if !ok {
		return Command{}, apperrors.Wrap(apperrors.CodeCommandTypeUnsupported, string(cmd.Type), ErrTypeUnknown)
	}
	if err := normalizeActor(&cmd, def); err != nil {
		return Command{}, invalid(err)
	}
	payload, err := canonicalPayload(cmd.PayloadJSON, def.ValidatePayload)
	if err != nil {
		return Command{}, invalid(err)
	}
	cmd.PayloadJSON = payload
	return cmd, nil
}

func normalizeType(t Type) Type {
	return Type(strings.TrimSpace(string(t)))
}

func normalizeActor(cmd *Command, def Definition) error {
	cmd.ActorType = ActorType(strings.TrimSpace(string(cmd.ActorType)))
	if cmd.ActorType == "" {
		cmd.ActorType = ActorTypeSystem
	}
	switch cmd.ActorType {
	case ActorTypeSystem, ActorTypePlayer:
	default:
		return fmt.Errorf("%w: %s", ErrActorTypeInvalid, cmd.ActorType)
	}
	if !def.allows(cmd.ActorType) {
		return fmt.Errorf("%w: %s cannot issue %s", ErrActorNotAllowed, cmd.ActorType, def.Type)
	}
	cmd.ActorID = strings.TrimSpace(cmd.ActorID)
	if cmd.ActorType == ActorTypePlayer && cmd.ActorID == "" {
		return ErrActorIDRequired
	}
	return nil
}

func canonicalPayload(raw []byte, validate PayloadValidator) ([]byte, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if !json.Valid(raw) {
		return nil, ErrPayloadInvalid
	}
	canonical, err := coreencoding.CanonicalJSON(json.RawMessage(raw))
	if err != nil {
		return nil, fmt.Errorf("canonical payload json: %w", err)
	}
	if validate != nil {
		if err := validate(json.RawMessage(canonical)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPayloadInvalid, err)
		}
	}
	return canonical, nil
}

func invalid(err error) error {
	return apperrors.Wrap(apperrors.CodeGamePayloadInvalid, "", err)
}

// Definition returns the definition registered for cmdType.
func (r *Registry) Definition(cmdType Type) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	def, ok := r.definitions[normalizeType(cmdType)]
	return def, ok
}

// ListDefinitions returns the registered definitions sorted by type.
func (r *Registry) ListDefinitions() []Definition {
	if r == nil {
		return nil
	}
	return slices.SortedFunc(maps.Values(r.definitions), func(a, b Definition) int {
		return cmp.Compare(a.Type, b.Type)
	})
}
