// Package config loads pioauth settings from defaults, config.toml and the
// environment, in increasing order of precedence. A .env file fills in
// variables the environment does not already set.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/njyeung/pioauth/account"
	"github.com/njyeung/pioauth/logging"
)

const (
	// AppName names the config directory
	AppName = "pioauth"

	// FileName is the config file inside the config directory
	FileName = "config.toml"

	// LogFileName is where the dialog logs when debugging
	LogFileName = "pioauth.log"
)

// Environment variables overriding config.toml
const (
	EnvPIOPath   = "PIOAUTH_PIO_PATH"
	EnvStateFile = "PIOAUTH_STATE_FILE"
	EnvMode      = "PIOAUTH_MODE"
	EnvLogLevel  = "PIOAUTH_LOG_LEVEL"
)

// Config holds all configuration for the application
type Config struct {
	// PIOPath is the PlatformIO executable
	PIOPath string `toml:"pio_path"`
	// StateFile holds the remembered username and login flag
	StateFile string `toml:"state_file"`
	// Mode is the form the dialog opens in: login, register or forgot
	Mode string `toml:"mode"`
	// LogLevel is debug, info, warn or error
	LogLevel string `toml:"log_level"`

	// Dir is the config directory the other paths default into
	Dir string `toml:"-"`
}

// Dir returns the per-user config directory, ~/.config/pioauth on Linux
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not locate config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// Default returns the settings used when nothing overrides them
func Default(dir string) Config {
	return Config{
		PIOPath:   account.DefaultCLI,
		StateFile: filepath.Join(dir, account.StateFileName),
		Mode:      "login",
		LogLevel:  "info",
		Dir:       dir,
	}
}

// Load reads dir/config.toml from fs on top of the defaults, then applies
// environment overrides. A missing config file is not an error.
func Load(fs afero.Fs, dir string) (Config, error) {
	cfg := Default(dir)

	path := filepath.Join(dir, FileName)
	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("could not parse %s: %w", path, err)
		}
		for _, key := range md.Undecoded() {
			logging.L.Warn("ignoring unknown config key", "file", path, "key", key.String())
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("could not read %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil {
		logging.L.Debug("no .env file found, relying on environment variables")
	}
	applyEnv(&cfg, os.Getenv)

	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvPIOPath); v != "" {
		cfg.PIOPath = v
	}
	if v := getenv(EnvStateFile); v != "" {
		cfg.StateFile = v
	}
	if v := getenv(EnvMode); v != "" {
		cfg.Mode = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

// LogPath is where the interactive dialog writes its log
func (c Config) LogPath() string {
	return filepath.Join(c.Dir, LogFileName)
}
