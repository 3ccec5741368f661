package integrity

import (
	"crypto/hkdf"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"maps"
	"strings"
)

const keyInfoPrefix = "kickback/game-events:"

var (
	// ErrKeyIDUnknown marks a signature made under a key id the keyring lacks.
	ErrKeyIDUnknown = errors.New("signature key id is unknown")
	// ErrSignatureMismatch marks a signature that does not match its chain hash.
	ErrSignatureMismatch = errors.New("signature mismatch")
	errNoKeyring         = errors.New("hmac keyring is not configured")
)

// Keyring holds root HMAC keys by id. New signatures use the active key; any
// held key verifies.
type Keyring struct {
	roots  map[string][]byte
	active string
}

// NewKeyring copies roots and selects active for signing.
func NewKeyring(roots map[string][]byte, active string) (*Keyring, error) {
	if len(roots) == 0 {
		return nil, errors.New("hmac keys are required")
	}
	active = strings.TrimSpace(active)
	if active == "" {
		return nil, errors.New("active hmac key id is required")
	}
	if len(roots[active]) == 0 {
		return nil, fmt.Errorf("active hmac key id %q is not configured", active)
	}
	return &Keyring{roots: maps.Clone(roots), active: active}, nil
}

// ActiveKeyID is the id stamped on new signatures.
func (k *Keyring) ActiveKeyID() string {
	if k == nil {
		return ""
	}
	return k.active
}

// SignChainHash returns the signature of chainHash for gameID.
func (k *Keyring) SignChainHash(gameID, chainHash string) (signature, keyID string, err error) {
	if k == nil {
		return "", "", errNoKeyring
	}
	sum, err := k.mac(k.active, gameID, chainHash)
	if err != nil {
		return "", "", err
	}
	return base64.RawURLEncoding.EncodeToString(sum), k.active, nil
}

// VerifyChainHash checks signature against chainHash using the key named by
// keyID.
func (k *Keyring) VerifyChainHash(gameID, chainHash, signature, keyID string) error {
	if k == nil {
		return errNoKeyring
	}
	given, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: malformed signature", ErrSignatureMismatch)
	}
	want, err := k.mac(strings.TrimSpace(keyID), gameID, chainHash)
	if err != nil {
		return err
	}
	if !hmac.Equal(given, want) {
		return ErrSignatureMismatch
	}
	return nil
}

// mac derives the per-game key from root keyID and authenticates chainHash.
func (k *Keyring) mac(keyID, gameID, chainHash string) ([]byte, error) {
	root, ok := k.roots[keyID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyIDUnknown, keyID)
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, errors.New("game id is required")
	}
	key, err := hkdf.Key(sha256.New, root, nil, keyInfoPrefix+gameID, sha256.Size)
	if err != nil {
		return nil, fmt.Errorf("derive key for game %s: %w", gameID, err)
	}
	h := hmac.New(sha256.New, key)
	h.Write([]byte(chainHash))
	return h.Sum(nil), nil
}
