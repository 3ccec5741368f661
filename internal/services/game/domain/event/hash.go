package event

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	coreencoding "github.com/louisbranch/kickback/internal/services/game/core/encoding"
)

// hashEnvelope is the field set covered by an event's content hash. Journal
// assigned fields (seq and hashes) are excluded.
type hashEnvelope struct {
	GameID        string          `json:"game_id"`
	Type          string          `json:"event_type"`
	Timestamp     string          `json:"timestamp"`
	ActorType     string          `json:"actor_type"`
	ActorID       string          `json:"actor_id,omitempty"`
	RequestID     string          `json:"request_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	CausationID   string          `json:"causation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// EventHash computes the content hash for a single event.
func EventHash(evt Event) (string, error) {
	if evt.GameID == "" || evt.Type == "" {
		return "", errors.New("event hash requires game id and type")
	}
	payload := evt.PayloadJSON
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	return coreencoding.ContentHash(hashEnvelope{
		GameID:        evt.GameID,
		Type:          string(evt.Type),
		Timestamp:     evt.Timestamp.UTC().Format(time.RFC3339Nano),
		ActorType:     string(evt.ActorType),
		ActorID:       evt.ActorID,
		RequestID:     evt.RequestID,
		CorrelationID: evt.CorrelationID,
		CausationID:   evt.CausationID,
		Payload:       json.RawMessage(payload),
	})
}

// ChainHash links an event to its predecessor's chain hash.
//
// The event's Hash and Seq must already be set.
func ChainHash(evt Event, prevChainHash string) (string, error) {
	if evt.Hash == "" {
		return "", errors.New("chain hash requires event hash")
	}
	if evt.Seq == 0 {
		return "", errors.New("chain hash requires event seq")
	}
	material := prevChainHash + ":" + evt.Hash + ":" + strconv.FormatUint(evt.Seq, 10)
	return coreencoding.SHA256Hex([]byte(material)), nil
}

// Seal assigns seq and the integrity hashes to an event about to be journaled.
func Seal(evt Event, seq uint64, prevChainHash string) (Event, error) {
	hash, err := EventHash(evt)
	if err != nil {
		return Event{}, err
	}
	evt.Seq = seq
	evt.Hash = hash
	evt.PrevHash = prevChainHash
	chain, err := ChainHash(evt, prevChainHash)
	if err != nil {
		return Event{}, err
	}
	evt.ChainHash = chain
	return evt, nil
}

// VerifyChain checks that events form a contiguous, untampered chain starting
// after prevChainHash.
func VerifyChain(events []Event, prevChainHash string) error {
	for _, evt := range events {
		if evt.PrevHash != prevChainHash {
			return errors.New("event chain broken at seq " + strconv.FormatUint(evt.Seq, 10))
		}
		hash, err := EventHash(evt)
		if err != nil {
			return err
		}
		if hash != evt.Hash {
			return errors.New("event hash mismatch at seq " + strconv.FormatUint(evt.Seq, 10))
		}
		chain, err := ChainHash(evt, prevChainHash)
		if err != nil {
			return err
		}
		if chain != evt.ChainHash {
			return errors.New("chain hash mismatch at seq " + strconv.FormatUint(evt.Seq, 10))
		}
		prevChainHash = evt.ChainHash
	}
	return nil
}
