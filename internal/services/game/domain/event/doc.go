// Package event defines the canonical event envelope and event-type registry used by
// the game write path.
//
// Events are immutable facts emitted by accepted decisions. The registry checks
// envelope metadata and payload validity before a journal assigns sequence and
// integrity fields.
package event
