package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/kickback/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/kickback/internal/services/game/domain/event"
	"github.com/louisbranch/kickback/internal/services/game/storage/integrity"
	"github.com/louisbranch/kickback/internal/services/game/storage/sqlite/migrations"
)

var errNotOpen = errors.New("sqlite store is not open")

// pragmas are applied to every connection of the pool.
var pragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
}

// Store keeps a game event journal with its replay checkpoints and state
// snapshots in one SQLite file.
type Store struct {
	sqlDB    *sql.DB
	registry *event.Registry
	keyring  *integrity.Keyring
	now      func() time.Time
}

// OpenEventsOption configures a Store at open time.
type OpenEventsOption func(*Store)

// WithKeyring signs appended events and checks signatures in VerifyEvents.
func WithKeyring(keyring *integrity.Keyring) OpenEventsOption {
	return func(s *Store) { s.keyring = keyring }
}

// WithClock replaces the clock used to stamp checkpoints and snapshots.
func WithClock(now func() time.Time) OpenEventsOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// OpenEvents opens or creates the journal at path and migrates its schema.
// Appended events must be known to registry.
func OpenEvents(path string, registry *event.Registry, opts ...OpenEventsOption) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("storage path is required")
	}
	if registry == nil {
		return nil, errors.New("event registry is required")
	}

	sqlDB, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := migrate(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	s := &Store{sqlDB: sqlDB, registry: registry, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func dsn(path string) string {
	var b strings.Builder
	b.WriteString(filepath.Clean(path))
	for i, p := range pragmas {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString("_pragma=")
		b.WriteString(p)
	}
	return b.String()
}

func migrate(sqlDB *sql.DB) error {
	ctx := context.Background()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if _, err := sqlitemigrate.Apply(ctx, sqlDB, migrations.EventsFS, "events"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases the database. Closing a nil Store is a no-op.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return errNotOpen
	}
	return nil
}

// Timestamps are stored as UTC unix milliseconds.
func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }
