package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/pdxmph/tasks-tui/internal/task"
)

// Environment variables that override the config file
const (
	EnvLogLevel      = "TASKS_TUI_LOG_LEVEL"
	EnvLogPath       = "TASKS_TUI_LOG_PATH"
	EnvDefaultFilter = "TASKS_TUI_DEFAULT_FILTER"
	EnvDemo          = "TASKS_TUI_DEMO"
)

// Config holds the application configuration
type Config struct {
	UI  UIConfig  `toml:"ui"`
	Log LogConfig `toml:"log"`
}

// UIConfig holds presentation defaults
type UIConfig struct {
	DefaultPriority string `toml:"default_priority"`
	DefaultFilter   string `toml:"default_filter"`
	Demo            bool   `toml:"demo"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

// Default returns the default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		UI: UIConfig{
			DefaultPriority: string(task.PriorityHigh),
			DefaultFilter:   string(task.FilterAll),
		},
		Log: LogConfig{
			Path:  filepath.Join(homeDir, ".config", "tasks-tui", "tasks-tui.log"),
			Level: "info",
		},
	}
}

// DefaultPath returns the standard config file location
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(homeDir, ".config", "tasks-tui", "config.toml"), nil
}

// Load loads configuration from the standard location
func Load() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads configuration from a specific path, then applies
// environment overrides and validates the result
func LoadFrom(configPath string) (*Config, error) {
	// Start with defaults
	cfg := Default()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	// Expand home directory in paths
	if cfg.Log.Path != "" {
		cfg.Log.Path = expandPath(cfg.Log.Path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDotEnv loads a .env file into the process environment. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogPath); ok {
		c.Log.Path = v
	}
	if v, ok := os.LookupEnv(EnvDefaultFilter); ok {
		c.UI.DefaultFilter = v
	}
	if v, ok := os.LookupEnv(EnvDemo); ok {
		demo, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvDemo, err)
		}
		c.UI.Demo = demo
	}
	return nil
}

// Validate checks that every option names a known value
func (c *Config) Validate() error {
	if _, err := task.ParsePriority(c.UI.DefaultPriority); err != nil {
		return fmt.Errorf("ui.default_priority: %w", err)
	}
	if _, err := task.ParsePriorityFilter(c.UI.DefaultFilter); err != nil {
		return fmt.Errorf("ui.default_filter: %w", err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// DefaultPriority returns the priority preselected in the add form
func (c *Config) DefaultPriority() task.Priority {
	p, err := task.ParsePriority(c.UI.DefaultPriority)
	if err != nil {
		return task.PriorityHigh
	}
	return p
}

// DefaultFilter returns the priority filter applied at startup
func (c *Config) DefaultFilter() task.PriorityFilter {
	f, err := task.ParsePriorityFilter(c.UI.DefaultFilter)
	if err != nil {
		return task.FilterAll
	}
	return f
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Save saves the configuration to the standard location
func (c *Config) Save() error {
	configPath, err := DefaultPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return nil
}
