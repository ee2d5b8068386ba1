package bootstrap

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/boolean-maybe/boolq/config"
)

// LoadConfig loads the application configuration with flag overrides.
// Returns an error if configuration loading fails.
func LoadConfig(flagSet *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.LoadConfig(flagSet)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}
