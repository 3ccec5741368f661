// Package journal provides an append-only, hash-chained event journal.
package journal

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/louisbranch/kickback/internal/services/game/domain/event"
)

// ErrRegistryRequired indicates a journal built without an event registry.
var ErrRegistryRequired = errors.New("event registry is required")

// Signer signs sealed events and verifies a game's journal.
type Signer interface {
	Sign(evt event.Event) (event.Event, error)
	Verify(events []event.Event) error
}

// Option configures a Memory journal.
type Option func(*Memory)

// WithSigner signs every appended event with signer.
func WithSigner(signer Signer) Option {
	return func(m *Memory) {
		m.signer = signer
	}
}

// Memory keeps each game's events in memory in append order.
type Memory struct {
	registry *event.Registry
	signer   Signer

	mu     sync.Mutex
	events map[string][]event.Event
}

// NewMemory creates an in-memory journal that validates events with registry.
func NewMemory(registry *event.Registry, opts ...Option) *Memory {
	m := &Memory{
		registry: registry,
		events:   make(map[string][]event.Event),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Append validates evt, assigns the next sequence number and chain hashes,
// and stores it.
func (m *Memory) Append(ctx context.Context, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	if m == nil || m.registry == nil {
		return event.Event{}, ErrRegistryRequired
	}
	validated, err := m.registry.ValidateForAppend(evt)
	if err != nil {
		return event.Event{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	history := m.events[validated.GameID]
	prevChainHash := ""
	if len(history) > 0 {
		prevChainHash = history[len(history)-1].ChainHash
	}
	sealed, err := event.Seal(validated, uint64(len(history))+1, prevChainHash)
	if err != nil {
		return event.Event{}, err
	}
	if m.signer != nil {
		if sealed, err = m.signer.Sign(sealed); err != nil {
			return event.Event{}, err
		}
	}
	m.events[validated.GameID] = append(history, sealed)
	return sealed, nil
}

// ListEvents returns up to limit events with Seq greater than afterSeq.
// A non-positive limit returns every remaining event.
func (m *Memory) ListEvents(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrRegistryRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	history := m.events[strings.TrimSpace(gameID)]
	if afterSeq >= uint64(len(history)) {
		return nil, nil
	}
	remaining := history[afterSeq:]
	if limit > 0 && len(remaining) > limit {
		remaining = remaining[:limit]
	}
	return append([]event.Event(nil), remaining...), nil
}

// Verify checks the hash chain of a game's journal, and its signatures when
// the journal signs events.
func (m *Memory) Verify(ctx context.Context, gameID string) error {
	events, err := m.ListEvents(ctx, gameID, 0, 0)
	if err != nil {
		return err
	}
	if m.signer != nil {
		return m.signer.Verify(events)
	}
	return event.VerifyChain(events, "")
}
