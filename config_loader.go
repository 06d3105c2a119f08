package genabilitybridge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GENABILITY_APPLICATION_ID.
const EnvPrefix = "GENABILITY"

var configKeys = []string{
	"endpoint",
	"format",
	"application_id",
	"application_key",
	"user_agent",
	"proxy",
	"timeout",
	"debug_logging",
}

// LoadConfig reads configFile (YAML, optional), applies GENABILITY_*
// environment overrides and defaults, and validates the result.
func LoadConfig(configFile string) (*Config, error) {
	v := newViper(configFile)

	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func newViper(configFile string) *viper.Viper {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about; registering every key
	// makes env-only configuration work.
	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("debug_logging", false)
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}
	return v
}
