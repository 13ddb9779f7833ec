// Package config loads compiler settings from an optional TOML file,
// falling back to built-in defaults when none is present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds every setting the compiler's behavior can be tuned by.
type Config struct {
	Codegen struct {
		Debug            bool   `toml:"debug"`             // emit an int3 at the top of every function
		Trace            bool   `toml:"trace"`             // populate the instruction trace log
		CommentVerbosity string `toml:"comment_verbosity"` // full, terse, none
	} `toml:"codegen"`

	Parser struct {
		MaxLocals int `toml:"max_locals"` // read from the file; the parser does not consult it, so no limit is enforced
	} `toml:"parser"`
}

// DefaultConfig returns a Config with the compiler's built-in defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Codegen.Debug = false
	cfg.Codegen.Trace = false
	cfg.Codegen.CommentVerbosity = "full"
	cfg.Parser.MaxLocals = 0
	return cfg
}

// GetConfigPath returns the platform-specific default config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "tinycc")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "tinycc.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "tinycc")

	default:
		return "tinycc.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "tinycc.toml"
	}
	return filepath.Join(configDir, "tinycc.toml")
}

// Load resolves the config file to read: $TINYCC_CONFIG if set, else
// ./tinycc.toml if present in the working directory, else the
// platform-specific default path from GetConfigPath. It returns
// defaults if the resolved path does not exist.
func Load() (*Config, error) {
	if path := os.Getenv("TINYCC_CONFIG"); path != "" {
		return LoadFrom(path)
	}
	if _, err := os.Stat("tinycc.toml"); err == nil {
		return LoadFrom("tinycc.toml")
	}
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, or returns defaults if path
// does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
