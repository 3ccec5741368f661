// Package encoding provides content addressing utilities for event sourcing.
package encoding

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// CanonicalJSON produces deterministic JSON output: object keys sorted
// lexicographically, no insignificant whitespace, numbers kept in their
// original textual form, and no HTML escaping.
//
// Raw JSON input ([]byte or json.RawMessage) is canonicalized as a document;
// any other value is marshalled first.
func CanonicalJSON(v any) ([]byte, error) {
	var data []byte
	switch raw := v.(type) {
	case json.RawMessage:
		data = raw
	case []byte:
		data = raw
	default:
		marshalled, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		data = marshalled
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var tree any
	if err := decoder.Decode(&tree); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("unmarshal: trailing data after document")
	}

	// encoding/json writes map keys in sorted order, which is the only
	// ordering guarantee the canonical form needs.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("encode canonical: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ContentHash computes a SHA-256 hash of the canonical JSON representation,
// truncated to 128 bits (32 hex characters).
func ContentHash(v any) (string, error) {
	canonical, err := CanonicalJSON(v)
	if err != nil {
		return "", fmt.Errorf("canonical json: %w", err)
	}
	hash := sha256.Sum256(canonical)
	return hex.EncodeToString(hash[:16]), nil
}

// SHA256Hex returns the full hex SHA-256 digest of data.
func SHA256Hex(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
