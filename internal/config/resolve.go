package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
)

// Storage backends and notifier kinds accepted in configuration.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"

	NotifierDesktop  = "desktop"
	NotifierTerminal = "terminal"
	NotifierNone     = "none"
)

// Environment variables that override file configuration.
const (
	EnvDataDir = "PLANNER_DATA_DIR"
	EnvBind    = "PLANNER_BIND"
)

// ResolvedConfig represents the final merged configuration with all
// precedence rules applied. Precedence order (highest to lowest):
// 1. Environment (PLANNER_DATA_DIR, PLANNER_BIND)
// 2. Project config (planner.toml)
// 3. Global config (~/.planner/config.toml)
// 4. Built-in defaults
type ResolvedConfig struct {
	Planner          string
	ProjectDir       string
	Backend          string
	DataDir          string
	ServerHost       string
	ServerPort       int
	RemindersEnabled bool
	Notifier         string
}

// Addr returns the host:port the server listens on.
func (c *ResolvedConfig) Addr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

// ResolveConfig discovers the project config from the working directory,
// loads the global config and applies environment overrides.
func ResolveConfig() (*ResolvedConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return ResolveConfigWith(homeDir, cwd, os.Getenv)
}

// ResolveConfigWith resolves config from explicit home and start
// directories and an environment lookup.
func ResolveConfigWith(homeDir, startDir string, getenv func(string) string) (*ResolvedConfig, error) {
	// Project config is optional; without one the default planner is used.
	projectCfg, err := DiscoverProjectConfigFrom(startDir)
	if err != nil && !errors.Is(err, ErrNoProjectConfig) {
		return nil, err
	}

	globalCfg, err := LoadGlobalConfigFromDir(homeDir)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedConfig{
		Planner:          DefaultPlanner,
		Backend:          BackendSQLite,
		DataDir:          filepath.Join(homeDir, GlobalConfigDir, DataDirName),
		ServerHost:       DefaultServerHost,
		ServerPort:       DefaultServerPort,
		RemindersEnabled: true,
		Notifier:         NotifierDesktop,
	}

	// Apply global config (overrides defaults)
	if globalCfg.Backend != "" {
		resolved.Backend = globalCfg.Backend
	}
	if globalCfg.DataDir != "" {
		resolved.DataDir = globalCfg.DataDir
	}
	if globalCfg.ServerHost != "" {
		resolved.ServerHost = globalCfg.ServerHost
	}
	if globalCfg.ServerPort != 0 {
		resolved.ServerPort = globalCfg.ServerPort
	}
	if globalCfg.RemindersEnabled != nil {
		resolved.RemindersEnabled = *globalCfg.RemindersEnabled
	}
	if globalCfg.Notifier != "" {
		resolved.Notifier = globalCfg.Notifier
	}

	// Apply project config (only values explicitly set)
	if projectCfg != nil {
		resolved.Planner = projectCfg.Name
		resolved.ProjectDir = projectCfg.Dir
		if projectCfg.Backend != "" {
			resolved.Backend = projectCfg.Backend
		}
		if projectCfg.DataDir != "" {
			resolved.DataDir = projectCfg.DataDir
		}
		if projectCfg.HostExplicitlySet() {
			resolved.ServerHost = projectCfg.ServerHost
		}
		if projectCfg.PortExplicitlySet() {
			resolved.ServerPort = projectCfg.ServerPort
		}
	}

	// Apply environment
	if dir := getenv(EnvDataDir); dir != "" {
		resolved.DataDir = dir
	}
	if bind := getenv(EnvBind); bind != "" {
		host, port, err := ParseBind(bind)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvBind, err)
		}
		if host != "" {
			resolved.ServerHost = host
		}
		resolved.ServerPort = port
	}

	return resolved, nil
}

// ParseBind parses a host:port bind address. The host may be empty.
func ParseBind(bind string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(bind)
	if err != nil {
		return "", 0, fmt.Errorf("invalid bind address %q: %w", bind, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid bind address %q: port is not a number", bind)
	}
	if err := validatePort(port); err != nil {
		return "", 0, err
	}
	return host, port, nil
}
