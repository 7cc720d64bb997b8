// Package config loads the ignoretree CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/Sriram-PR/go-ignoretree/internal/logging"
)

// LocalFileName is looked up in the working directory.
const LocalFileName = ".ignoretree.toml"

// UserFileName is looked up below the XDG config home.
var UserFileName = filepath.Join("ignoretree", "config.toml")

// Config is the contents of a config file.
type Config struct {
	// Sources lists the rule-source file names read in every folder.
	Sources []string `toml:"sources"`

	// Global attaches the user's global excludes file at the root.
	Global bool `toml:"global"`

	// CaseInsensitive makes glob matching ignore case.
	CaseInsensitive bool `toml:"case_insensitive"`

	// Skip lists entry names left out of the tree.
	Skip []string `toml:"skip"`

	// Rules are extra patterns attached at the root under RulesSourceName.
	Rules []string `toml:"rules"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// RulesSourceName is the rule-source name of Config.Rules.
const RulesSourceName = "config"

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Sources: []string{".gitignore"},
		Skip:    []string{".git"},
	}
}

// Load reads the config file at path. An empty path searches, in order,
// ./.ignoretree.toml and $XDG_CONFIG_HOME/ignoretree/config.toml, and falls
// back to Default when neither exists. An explicit path must exist.
func Load(path string) (Config, error) {
	if path != "" {
		return loadFile(path)
	}

	for _, candidate := range searchPaths() {
		cfg, err := loadFile(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}

	logger := logging.GetLogger("config")
	logger.Debug().Msg("no config file found, using defaults")
	return Default(), nil
}

func searchPaths() []string {
	return []string{
		LocalFileName,
		filepath.Join(xdg.ConfigHome, UserFileName),
	}
}

func loadFile(path string) (Config, error) {
	logger := logging.GetLogger("config").With().Str("configPath", path).Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = Default().Sources
	}
	cfg.Path = path

	logger.Debug().
		Strs("sources", cfg.Sources).
		Bool("global", cfg.Global).
		Int("rules", len(cfg.Rules)).
		Msg("config loaded")

	return cfg, nil
}
