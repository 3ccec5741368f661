// Package cmd holds the startup plumbing shared by kickback binaries.
package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/louisbranch/kickback/internal/platform/config"
	"github.com/louisbranch/kickback/internal/platform/otel"
)

// ServiceGame names the game driver in telemetry and log prefixes.
const ServiceGame = "game"

// TelemetryShutdownTimeout bounds the final span flush.
var TelemetryShutdownTimeout = 5 * time.Second

var (
	errServiceRequired = errors.New("service name is required")
	errRunRequired     = errors.New("run function is required")
)

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags after env defaults are bound.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// Main runs a binary: it sets the log prefix, parses configuration from the
// process arguments and calls run until it returns or the process is
// signalled. Failures exit the process.
func Main[T any](service string, parse func(*flag.FlagSet, []string) (T, error), run func(context.Context, T) error) {
	log.SetPrefix(LogPrefix(service))
	cfg, err := parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf(config.ExitUsage, "parse flags: %v", err)
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		config.Exitf(config.ExitFailure, "%s: %v", service, err)
	}
}

// LogPrefix returns the bracketed log prefix for a service, "[GAME] ".
func LogPrefix(service string) string {
	return "[" + strings.ToUpper(strings.TrimSpace(service)) + "] "
}

// RunWithTelemetry installs the tracer provider for service, calls run and
// flushes spans before returning run's error.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return errServiceRequired
	}
	if run == nil {
		return errRunRequired
	}
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), TelemetryShutdownTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()
	return run(ctx)
}
