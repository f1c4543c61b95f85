// Package cfg loads the lifecycle's ConfigOptions from flags and environment
// variables, for the lightship CLI; no config file is read. This
// layer is a convenience on top of pkg/lifecycle, not a dependency of it
// -- library users can always build a Lifecycle with functional Options
// directly.
package cfg

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config mirrors the ConfigOptions enumerated in pkg/lifecycle: port,
// timeout, gracePeriod, plus the log format/level the CLI's logger is
// built from.
type Config struct {
	Port        int           `mapstructure:"port"`
	Timeout     time.Duration `mapstructure:"timeout"`
	GracePeriod time.Duration `mapstructure:"grace_period"`
	Log         Log           `mapstructure:"log"`
}

// Log configures the zap-backed logger collaborator.
type Log struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

func defaults() Config {
	return Config{
		Port:        9000,
		Timeout:     60 * time.Second,
		GracePeriod: 5 * time.Second,
		Log: Log{
			Format: "text",
			Level:  "info",
		},
	}
}

// Load unmarshals a Config from viper, which must already have its env
// prefix set (see cmd.NewRootCommand) and flags bound to it (see
// cmd/serve). Defaults are set first so an unconfigured field still
// resolves to a sane value instead of its zero value.
func Load(v *viper.Viper) (*Config, error) {
	cfg := defaults()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cfg: unmarshalling configuration: %w", err)
	}

	return &cfg, nil
}
