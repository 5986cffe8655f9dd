package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces the variables, e.g. WORKOUT_SECRET_KEY.
const envPrefix = "WORKOUT"

// parseEnv overlays WORKOUT_* variables. Unset variables leave the current
// value untouched.
func parseEnv(config *Config) error {
	if err := envconfig.Process(envPrefix, config); err != nil {
		return fmt.Errorf("config: env: %w", err)
	}
	return nil
}
