package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the dsl-lint project configuration.
type Config struct {
	ProtocolRoot string `mapstructure:"protocol_root"`
}

// Load resolves the protocol root in priority order: an explicit flag
// value, the DSLLINT_PROTOCOL_ROOT environment variable, .dsllint.yaml
// in the current directory, then the current directory itself.
func Load(flagValue string) (*Config, error) {
	v := viper.New()

	v.SetDefault("protocol_root", ".")
	v.SetConfigName(".dsllint")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("DSLLINT")
	v.AutomaticEnv()

	if err := v.BindEnv("protocol_root", "DSLLINT_PROTOCOL_ROOT"); err != nil {
		return nil, fmt.Errorf("binding DSLLINT_PROTOCOL_ROOT: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading .dsllint.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if flagValue != "" {
		cfg.ProtocolRoot = flagValue
	}

	abs, err := filepath.Abs(cfg.ProtocolRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving protocol root %q: %w", cfg.ProtocolRoot, err)
	}
	cfg.ProtocolRoot = abs
	return &cfg, nil
}

// InProtocolRoot reports whether dir looks like a protocol root: it
// contains either a .dsllint.yaml file or a transactions directory.
func InProtocolRoot(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, ".dsllint.yaml")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(dir, "transactions")); err == nil {
		return true
	}
	return false
}
