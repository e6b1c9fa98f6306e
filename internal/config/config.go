// Package config loads the depmode configuration.
//
// Every knob has a default chosen for the common crates/-style workspace,
// so configuration is optional. A .depmode.toml file at the workspace root
// and DEPMODE_* environment variables override the defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the optional per-workspace configuration file, without
// extension.
const FileName = ".depmode"

// Config holds the tool configuration.
type Config struct {
	// MembersDir is the workspace-relative directory containing member
	// crates.
	MembersDir string `mapstructure:"members_dir"`

	// InternalPrefix marks first-party crates by name. When empty, root
	// manifest entries are matched by path only and every member crate
	// counts as internal.
	InternalPrefix string `mapstructure:"internal_prefix"`

	// DirOverrides maps crate names to member directory names, for crates
	// whose directory does not match their name.
	DirOverrides map[string]string `mapstructure:"dir_overrides"`

	// AmbiguousMode is what a mixed or unknown state counts as when
	// toggling: "local" or "remote".
	AmbiguousMode string `mapstructure:"ambiguous_mode"`

	// Lock controls lock-file synchronization after manifests change.
	Lock LockConfig `mapstructure:"lock"`
}

// LockConfig configures the post-switch lock synchronization command.
type LockConfig struct {
	// Enabled runs the command whenever a switch rewrites manifests.
	Enabled bool `mapstructure:"enabled"`

	// Command is the argv executed in the workspace root.
	Command []string `mapstructure:"command"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MembersDir:     "crates",
		InternalPrefix: "",
		DirOverrides:   map[string]string{},
		AmbiguousMode:  "remote",
		Lock: LockConfig{
			Enabled: true,
			Command: []string{"cargo", "update"},
		},
	}
}

// Load reads the configuration for the workspace rooted at root. A missing
// config file is not an error; the defaults and environment apply. An
// empty root skips the file lookup entirely.
func Load(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("members_dir", "crates")
	v.SetDefault("internal_prefix", "")
	v.SetDefault("dir_overrides", map[string]string{})
	v.SetDefault("ambiguous_mode", "remote")
	v.SetDefault("lock.enabled", true)
	v.SetDefault("lock.command", []string{"cargo", "update"})

	v.SetEnvPrefix("DEPMODE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if root != "" {
		v.SetConfigName(FileName)
		v.SetConfigType("toml")
		v.AddConfigPath(root)

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.MembersDir == "" {
		return fmt.Errorf("members_dir must not be empty")
	}
	switch cfg.AmbiguousMode {
	case "local", "remote":
	default:
		return fmt.Errorf("ambiguous_mode must be local or remote, got %q", cfg.AmbiguousMode)
	}
	if cfg.Lock.Enabled && len(cfg.Lock.Command) == 0 {
		return fmt.Errorf("lock.command must not be empty when lock.enabled is set")
	}
	return nil
}
