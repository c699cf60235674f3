// Package config loads zform settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

const appName = "zform"

// Config holds process-level settings.
type Config struct {
	DataDir    string `env:"ZFORM_DATA_DIR"`
	Passphrase string `env:"ZFORM_PASSPHRASE" envDefault:"zform"`
	LogLevel   string `env:"ZFORM_LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DataDir == "" {
		xdg := os.Getenv("XDG_DATA_HOME")
		if opts.Environment != nil {
			xdg = opts.Environment["XDG_DATA_HOME"]
		}
		cfg.DataDir = DataDir(xdg)
	}

	return cfg, nil
}

// DataDir returns the default data directory given an XDG_DATA_HOME value.
func DataDir(xdg string) string {
	if xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, ".local", "share", appName)
}

// LogFile returns the log file path inside the data directory.
func (c Config) LogFile() string {
	return filepath.Join(c.DataDir, appName+".log")
}
