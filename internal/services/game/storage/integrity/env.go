package integrity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/kickback/internal/platform/config"
)

const defaultKeyID = "v1"

// ErrKeyringNotConfigured is returned by KeyringFromEnv when no key is set.
var ErrKeyringNotConfigured = errors.New("event hmac key is not configured")

// EnvConfig holds the HMAC key environment variables.
//
// Keys takes a comma-separated list of id=secret pairs for rotation; Key is a
// single secret stored under KeyID.
type EnvConfig struct {
	Keys  string `env:"GAME_EVENT_HMAC_KEYS"`
	Key   string `env:"GAME_EVENT_HMAC_KEY"`
	KeyID string `env:"GAME_EVENT_HMAC_KEY_ID"`
}

// KeyringFromEnv loads the HMAC keyring from KICKBACK_GAME_EVENT_HMAC_*
// variables.
func KeyringFromEnv() (*Keyring, error) {
	cfg, err := config.Load[EnvConfig]()
	if err != nil {
		return nil, err
	}
	return cfg.Keyring()
}

// Keyring builds a keyring from the configured keys.
func (c EnvConfig) Keyring() (*Keyring, error) {
	keyID := strings.TrimSpace(c.KeyID)
	if keyID == "" {
		keyID = defaultKeyID
	}

	keySpec := strings.TrimSpace(c.Keys)
	if keySpec == "" {
		raw := strings.TrimSpace(c.Key)
		if raw == "" {
			return nil, ErrKeyringNotConfigured
		}
		return NewKeyring(map[string][]byte{keyID: []byte(raw)}, keyID)
	}

	keys := make(map[string][]byte)
	for _, entry := range strings.Split(keySpec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, value, ok := strings.Cut(entry, "=")
		id, value = strings.TrimSpace(id), strings.TrimSpace(value)
		if !ok || id == "" || value == "" {
			return nil, fmt.Errorf("invalid hmac key entry %q", id)
		}
		keys[id] = []byte(value)
	}
	return NewKeyring(keys, keyID)
}
