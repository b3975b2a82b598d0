package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigFileName is the name of the project configuration file
	ConfigFileName = "planner.toml"

	// DefaultPlanner is the planner used when no planner.toml is found
	DefaultPlanner = "default"

	// DefaultServerHost is the default server host
	DefaultServerHost = "localhost"

	// DefaultServerPort is the default server port
	DefaultServerPort = 7480
)

// ErrNoProjectConfig is returned when no planner.toml exists in the
// directory tree.
var ErrNoProjectConfig = errors.New("no planner.toml found")

var validPlannerName = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ProjectConfig represents the project-level configuration from planner.toml
type ProjectConfig struct {
	Name       string
	Dir        string
	Backend    string
	DataDir    string
	ServerHost string
	ServerPort int

	// Track whether values were explicitly set in config file
	hostExplicitlySet bool
	portExplicitlySet bool
}

// projectConfigFile represents the raw TOML structure
type projectConfigFile struct {
	Name    string        `toml:"name"`
	Storage storageConfig `toml:"storage"`
	Server  serverConfig  `toml:"server"`
}

// serverConfig represents the [server] section in TOML
type serverConfig struct {
	Host string `toml:"host"`
	Port *int   `toml:"port"`
}

// DiscoverProjectConfig finds and parses the planner.toml file by traversing
// up the directory tree from the current working directory.
func DiscoverProjectConfig() (*ProjectConfig, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	return DiscoverProjectConfigFrom(cwd)
}

// DiscoverProjectConfigFrom searches for planner.toml starting from the
// given directory. It returns ErrNoProjectConfig when none is found.
func DiscoverProjectConfigFrom(startDir string) (*ProjectConfig, error) {
	dir := startDir

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return ParseProjectConfig(configPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNoProjectConfig
		}
		dir = parent
	}
}

// ParseProjectConfig parses the planner.toml file at the given path
func ParseProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw projectConfigFile
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if raw.Name == "" {
		return nil, errors.New("planner name cannot be empty")
	}
	if err := ValidatePlannerName(raw.Name); err != nil {
		return nil, err
	}
	if raw.Server.Port != nil {
		if err := validatePort(*raw.Server.Port); err != nil {
			return nil, err
		}
	}
	if err := validateBackend(raw.Storage.Backend); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	cfg := &ProjectConfig{
		Name:       raw.Name,
		Dir:        dir,
		Backend:    raw.Storage.Backend,
		ServerHost: DefaultServerHost,
		ServerPort: DefaultServerPort,
	}
	if raw.Storage.Dir != "" {
		cfg.DataDir = raw.Storage.Dir
		if !filepath.IsAbs(cfg.DataDir) {
			cfg.DataDir = filepath.Join(dir, cfg.DataDir)
		}
	}
	if raw.Server.Host != "" {
		cfg.ServerHost = raw.Server.Host
		cfg.hostExplicitlySet = true
	}
	if raw.Server.Port != nil {
		cfg.ServerPort = *raw.Server.Port
		cfg.portExplicitlySet = true
	}

	return cfg, nil
}

// WriteProjectConfig creates planner.toml in dir. It refuses to overwrite
// an existing file.
func WriteProjectConfig(dir, name, host string, port int) (string, error) {
	if err := ValidatePlannerName(name); err != nil {
		return "", err
	}
	if port != 0 {
		if err := validatePort(port); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists in this directory", ConfigFileName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "name = %q\n", name)
	if host != "" || port != 0 {
		b.WriteString("\n[server]\n")
		if host != "" {
			fmt.Fprintf(&b, "host = %q\n", host)
		}
		if port != 0 {
			fmt.Fprintf(&b, "port = %d\n", port)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// HostExplicitlySet returns true if the host was explicitly set in the config file
func (c *ProjectConfig) HostExplicitlySet() bool {
	return c.hostExplicitlySet
}

// PortExplicitlySet returns true if the port was explicitly set in the config file
func (c *ProjectConfig) PortExplicitlySet() bool {
	return c.portExplicitlySet
}

// validatePort checks if the port is in the valid range (1-65535)
// ValidatePlannerName checks that name is usable as a planner name.
func ValidatePlannerName(name string) error {
	if !validPlannerName.MatchString(name) {
		return fmt.Errorf("invalid planner name %q: use letters, digits, '-' or '_'", name)
	}
	return nil
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	return nil
}

func validateBackend(backend string) error {
	switch backend {
	case "", BackendSQLite, BackendFile:
		return nil
	default:
		return fmt.Errorf("invalid storage backend %q: must be %s or %s", backend, BackendSQLite, BackendFile)
	}
}

func validateNotifier(notifier string) error {
	switch notifier {
	case "", NotifierDesktop, NotifierTerminal, NotifierNone:
		return nil
	default:
		return fmt.Errorf("invalid notifier %q: must be %s, %s or %s", notifier, NotifierDesktop, NotifierTerminal, NotifierNone)
	}
}
