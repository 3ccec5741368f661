// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every variable read by kickback services; a field
// tagged `env:"GAME_DB_PATH"` reads KICKBACK_GAME_DB_PATH.
const EnvPrefix = "KICKBACK_"

// ParseEnv fills target, a pointer to a tagged struct, from the environment.
// Untagged fields and fields without a default keep their current value when
// the variable is unset.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns a T populated from the environment.
func Load[T any]() (T, error) {
	var cfg T
	if err := ParseEnv(&cfg); err != nil {
		var zero T
		return zero, err
	}
	return cfg, nil
}
