// Package game parses game driver flags and plays command scripts through the
// game engine.
package game

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	entrypoint "github.com/louisbranch/kickback/internal/platform/cmd"
)

// Config holds game command configuration.
type Config struct {
	DBPath    string `env:"GAME_DB_PATH"`
	Script    string `env:"GAME_SCRIPT"`
	Snapshots bool   `env:"GAME_SNAPSHOTS" envDefault:"true"`
	Locale    string `env:"GAME_LOCALE" envDefault:"en-US"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite event journal path (empty keeps events in memory)")
	fs.StringVar(&cfg.Script, "script", cfg.Script, "YAML or JSON command script to play")
	fs.BoolVar(&cfg.Snapshots, "snapshots", cfg.Snapshots, "Save state snapshots after each accepted command")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for rejection messages")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.Script) == "" {
		return Config{}, fmt.Errorf("script is required")
	}
	return cfg, nil
}

// Run plays the configured script and writes one line per step to stdout.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, func(ctx context.Context) error {
		return Play(ctx, cfg, os.Stdout)
	})
}

// Play loads the script, executes every step and verifies each touched game's
// journal.
func Play(ctx context.Context, cfg Config, out io.Writer) error {
	script, err := LoadScript(cfg.Script)
	if err != nil {
		return err
	}
	rt, err := openRuntime(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			log.Printf("close journal: %v", err)
		}
	}()

	printer := newPrinter(out, cfg.Locale)
	touched := make(map[string]struct{})
	var order []string
	for i, step := range script.Steps {
		cmd, err := step.Envelope()
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if _, ok := touched[cmd.GameID]; !ok {
			touched[cmd.GameID] = struct{}{}
			order = append(order, cmd.GameID)
		}
		result, err := rt.handler.Execute(ctx, cmd)
		if err != nil {
			if fatal(err) {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			printer.failure(cmd.GameID, err)
			continue
		}
		if err := printer.result(cmd.GameID, result); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	for _, gameID := range order {
		if err := rt.verify(ctx, gameID); err != nil {
			return fmt.Errorf("verify game %s: %w", gameID, err)
		}
	}
	log.Printf("played %d steps across %d games", len(script.Steps), len(order))
	return nil
}
