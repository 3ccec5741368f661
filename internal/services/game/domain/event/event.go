package event

import "time"

// Type identifies the event type string.
type Type string

// ActorType identifies who caused the event.
type ActorType string

const (
	// ActorTypeSystem indicates a system-originated event.
	ActorTypeSystem ActorType = "system"
	// ActorTypePlayer indicates an event caused by a seated player.
	ActorTypePlayer ActorType = "player"
)

// Event captures the canonical event envelope.
//
// Seq, Hash, PrevHash and ChainHash are assigned by the journal on append and
// are empty on freshly decided events. Signature and SignatureKeyID are set
// only by journals configured with a signing keyring.
type Event struct {
	GameID        string
	Seq           uint64
	Type          Type
	Timestamp     time.Time
	ActorType     ActorType
	ActorID       string
	RequestID     string
	CorrelationID string
	CausationID   string
	PayloadJSON   []byte
	Hash          string
	PrevHash      string
	ChainHash     string

	Signature      string
	SignatureKeyID string
}
