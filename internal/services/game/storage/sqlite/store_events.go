package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/louisbranch/kickback/internal/services/game/domain/event"
)

const eventColumns = `game_id, seq, event_hash, prev_event_hash, chain_hash, timestamp, event_type,
	actor_type, actor_id, request_id, correlation_id, causation_id, payload_json,
	signature, signature_key_id`

// Append implements the engine journal contract.
func (s *Store) Append(ctx context.Context, evt event.Event) (event.Event, error) {
	return s.AppendEvent(ctx, evt)
}

// AppendEvent atomically appends an event and returns it with sequence and
// hashes set.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	if err := s.ready(ctx); err != nil {
		return event.Event{}, err
	}
	validated, err := s.registry.ValidateForAppend(evt)
	if err != nil {
		return event.Event{}, err
	}
	evt = validated
	evt.Timestamp = evt.Timestamp.UTC().Truncate(time.Millisecond)

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return event.Event{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var (
		lastSeq   int64
		lastChain string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT seq, chain_hash FROM events WHERE game_id = ? ORDER BY seq DESC LIMIT 1`,
		evt.GameID,
	).Scan(&lastSeq, &lastChain)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return event.Event{}, fmt.Errorf("load previous event: %w", err)
	}

	sealed, err := event.Seal(evt, uint64(lastSeq)+1, lastChain)
	if err != nil {
		return event.Event{}, fmt.Errorf("seal event: %w", err)
	}
	sealed, err = s.keyring.Sign(sealed)
	if err != nil {
		return event.Event{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sealed.GameID,
		int64(sealed.Seq),
		sealed.Hash,
		sealed.PrevHash,
		sealed.ChainHash,
		toMillis(sealed.Timestamp),
		string(sealed.Type),
		string(sealed.ActorType),
		sealed.ActorID,
		sealed.RequestID,
		sealed.CorrelationID,
		sealed.CausationID,
		sealed.PayloadJSON,
		sealed.Signature,
		sealed.SignatureKeyID,
	); err != nil {
		if isConstraintError(err) {
			return event.Event{}, fmt.Errorf("append event seq %d: concurrent append: %w", sealed.Seq, err)
		}
		return event.Event{}, fmt.Errorf("append event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return event.Event{}, fmt.Errorf("commit: %w", err)
	}
	return sealed, nil
}

// ListEvents returns up to limit events for a game with Seq greater than
// afterSeq, in sequence order. A non-positive limit returns all of them.
func (s *Store) ListEvents(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("game id is required")
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE game_id = ? AND seq > ? ORDER BY seq`
	args := []any{gameID, int64(afterSeq)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		evt, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}

// ListGameIDs returns every game with at least one event.
func (s *Store) ListGameIDs(ctx context.Context) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT DISTINCT game_id FROM events ORDER BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read games: %w", err)
	}
	return ids, nil
}

// VerifyEvents checks the stored hash chain of a game, and its signatures
// when the store was opened with a keyring.
func (s *Store) VerifyEvents(ctx context.Context, gameID string) error {
	events, err := s.ListEvents(ctx, gameID, 0, 0)
	if err != nil {
		return err
	}
	return s.keyring.Verify(events)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (event.Event, error) {
	var (
		evt       event.Event
		seq       int64
		timestamp int64
		eventType string
		actorType string
	)
	if err := row.Scan(
		&evt.GameID,
		&seq,
		&evt.Hash,
		&evt.PrevHash,
		&evt.ChainHash,
		&timestamp,
		&eventType,
		&actorType,
		&evt.ActorID,
		&evt.RequestID,
		&evt.CorrelationID,
		&evt.CausationID,
		&evt.PayloadJSON,
		&evt.Signature,
		&evt.SignatureKeyID,
	); err != nil {
		return event.Event{}, fmt.Errorf("scan event: %w", err)
	}
	evt.Seq = uint64(seq)
	evt.Timestamp = fromMillis(timestamp)
	evt.Type = event.Type(eventType)
	evt.ActorType = event.ActorType(actorType)
	return evt, nil
}

func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
