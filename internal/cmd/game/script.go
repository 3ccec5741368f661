package game

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/louisbranch/kickback/internal/services/game/domain/card"
	"github.com/louisbranch/kickback/internal/services/game/domain/command"
	domain "github.com/louisbranch/kickback/internal/services/game/domain/game"
)

// Script is an ordered list of commands to play.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one scripted command. Card accepts "3 red" shorthand or a mapping
// with kind, digit and color.
type Step struct {
	GameID      int64      `yaml:"game_id"`
	Command     string     `yaml:"command"`
	PlayerCount int        `yaml:"player_count"`
	PlayerID    int        `yaml:"player_id"`
	Card        ScriptCard `yaml:"card"`
	RequestID   string     `yaml:"request_id"`
}

// ScriptCard is a card read from a script.
type ScriptCard struct {
	card.Card
}

type scriptCardFields struct {
	Kind  string `yaml:"kind"`
	Digit *int   `yaml:"digit"`
	Color string `yaml:"color"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *ScriptCard) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parsed, err := card.Parse(node.Value)
		if err != nil {
			return err
		}
		c.Card = parsed
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: card must be text or a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		switch key.Value {
		case "kind", "digit", "color":
		default:
			return fmt.Errorf("line %d: field %s not found in card", key.Line, key.Value)
		}
	}
	var fields scriptCardFields
	if err := node.Decode(&fields); err != nil {
		return err
	}
	color, err := card.ParseColor(fields.Color)
	if err != nil {
		return err
	}
	var parsed card.Card
	switch strings.ToLower(strings.TrimSpace(fields.Kind)) {
	case "digit":
		if fields.Digit == nil {
			return fmt.Errorf("line %d: digit card requires a digit", node.Line)
		}
		parsed = card.NewDigit(*fields.Digit, color)
	case "kickback":
		if fields.Digit != nil {
			return fmt.Errorf("line %d: kickback cards carry no digit", node.Line)
		}
		parsed = card.NewKickBack(color)
	default:
		return fmt.Errorf("line %d: unknown card kind %q", node.Line, fields.Kind)
	}
	c.Card = parsed
	return nil
}

// LoadScript reads a YAML or JSON script from path.
func LoadScript(path string) (Script, error) {
	file, err := os.Open(path)
	if err != nil {
		return Script{}, fmt.Errorf("open script: %w", err)
	}
	defer file.Close()
	return ParseScript(file)
}

// ParseScript decodes a script. JSON documents are read as YAML flow syntax.
func ParseScript(r io.Reader) (Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	var script Script
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&script); err != nil {
		if err == io.EOF {
			return Script{}, fmt.Errorf("script is empty")
		}
		return Script{}, fmt.Errorf("decode script: %w", err)
	}
	if len(script.Steps) == 0 {
		return Script{}, fmt.Errorf("script has no steps")
	}
	return script, nil
}

// Typed converts the step to a game command.
func (s Step) Typed() (domain.Command, error) {
	gameID := domain.GameID(s.GameID)
	switch strings.ToLower(strings.TrimSpace(s.Command)) {
	case "start":
		return domain.StartGame{GameID: gameID, PlayerCount: s.PlayerCount, FirstCard: s.Card.Card}, nil
	case "play":
		return domain.PlayCard{GameID: gameID, PlayerID: domain.PlayerID(s.PlayerID), Card: s.Card.Card}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", s.Command)
	}
}

// Envelope converts the step to a command envelope.
func (s Step) Envelope() (command.Command, error) {
	typed, err := s.Typed()
	if err != nil {
		return command.Command{}, err
	}
	envelope, err := domain.EncodeCommand(typed)
	if err != nil {
		return command.Command{}, err
	}
	envelope.RequestID = strings.TrimSpace(s.RequestID)
	return envelope, nil
}
