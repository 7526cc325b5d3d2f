// Package config loads the optional awsctl configuration file.
package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// EnvPath names the environment variable that points at a config file.
const EnvPath = "AWSCTL_CONFIG"

const DefaultRecentStreamsLimit = 10

type Config struct {
	Region             string `koanf:"region"`
	Profile            string `koanf:"profile"`
	LogLevel           string `koanf:"log_level"`
	RecentStreamsLimit int64  `koanf:"recent_streams_limit"`
}

func Default() *Config {
	return &Config{
		LogLevel:           "warn",
		RecentStreamsLimit: DefaultRecentStreamsLimit,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/awsctl/config.yaml, falling back to
// ~/.config. It is empty when no home directory can be found.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "awsctl", "config.yaml")
}

// Resolve picks the config file to read. explicit reports whether the path
// came from the flag or the environment, in which case it must exist.
func Resolve(flagPath string) (path string, explicit bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p, true
	}
	return DefaultPath(), false
}

// Load reads path over the defaults. A missing file is an error only when
// required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode config %s", path)
	}
	return cfg, nil
}
