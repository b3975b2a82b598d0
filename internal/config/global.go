package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// GlobalConfigDir is the name of the global config directory in home
	GlobalConfigDir = ".planner"

	// GlobalConfigFileName is the name of the global config file
	GlobalConfigFileName = "config.toml"

	// DataDirName is the directory under GlobalConfigDir holding planner data
	DataDirName = "data"
)

// GlobalConfig represents the user-level configuration from ~/.planner/config.toml.
// Zero values mean "not set".
type GlobalConfig struct {
	Backend          string
	DataDir          string
	ServerHost       string
	ServerPort       int
	RemindersEnabled *bool
	Notifier         string
}

// globalConfigFile represents the raw TOML structure for global config
type globalConfigFile struct {
	Storage   storageConfig   `toml:"storage"`
	Server    serverConfig    `toml:"server"`
	Reminders remindersConfig `toml:"reminders"`
}

// storageConfig represents the [storage] section in TOML
type storageConfig struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
}

// remindersConfig represents the [reminders] section in TOML
type remindersConfig struct {
	Enabled  *bool  `toml:"enabled"`
	Notifier string `toml:"notifier"`
}

// LoadGlobalConfig loads the global configuration from ~/.planner/config.toml.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return LoadGlobalConfigFromDir(homeDir)
}

// LoadGlobalConfigFromDir loads global config using the specified directory as home.
func LoadGlobalConfigFromDir(homeDir string) (*GlobalConfig, error) {
	configPath := filepath.Join(homeDir, GlobalConfigDir, GlobalConfigFileName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &GlobalConfig{}, nil
	}

	var raw globalConfigFile
	if _, err := toml.DecodeFile(configPath, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse global config TOML: %w", err)
	}

	if raw.Server.Port != nil {
		if err := validatePort(*raw.Server.Port); err != nil {
			return nil, err
		}
	}
	if err := validateBackend(raw.Storage.Backend); err != nil {
		return nil, err
	}
	if err := validateNotifier(raw.Reminders.Notifier); err != nil {
		return nil, err
	}

	cfg := &GlobalConfig{
		Backend:          raw.Storage.Backend,
		DataDir:          expandHome(raw.Storage.Dir, homeDir),
		ServerHost:       raw.Server.Host,
		RemindersEnabled: raw.Reminders.Enabled,
		Notifier:         raw.Reminders.Notifier,
	}
	if raw.Server.Port != nil {
		cfg.ServerPort = *raw.Server.Port
	}

	return cfg, nil
}

// expandHome resolves a leading ~ against homeDir.
func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
