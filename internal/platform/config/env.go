package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name read by ParseEnv, so a field
// tagged `env:"GAPS_MIN"` reads NUMS_GAPS_MIN.
const EnvPrefix = "NUMS_"

// ParseEnv loads configuration from prefixed environment variables.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
