package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DefaultEndpoint       = "http://localhost:5000"
	DefaultChatPath       = "/chatbot"
	DefaultInitialMessage = "check alerts"

	// MaxQuickActions matches the number of alt+N / fN bindings.
	MaxQuickActions = 9
)

// Environment variables that override values from the config file.
const (
	EnvEndpoint       = "OPSCHAT_ENDPOINT"
	EnvLogLevel       = "OPSCHAT_LOG_LEVEL"
	EnvLogFile        = "OPSCHAT_LOG_FILE"
	EnvTimeoutSeconds = "OPSCHAT_TIMEOUT_SECONDS"
)

// Config represents the application configuration
type Config struct {
	Endpoint              string          `json:"endpoint"`
	ChatPath              string          `json:"chat_path"`
	RequestTimeoutSeconds int             `json:"request_timeout_seconds"` // 0 disables the timeout
	InitialMessage        string          `json:"initial_message"`         // empty skips the startup alerts check
	QuickActions          []string        `json:"quick_actions"`
	ChartDir              string          `json:"chart_dir"`
	StatusBar             StatusBarConfig `json:"status_bar"`
	LogLevel              string          `json:"log_level"`
	LogFormat             string          `json:"log_format"`
	LogFile               string          `json:"log_file"`
}

// StatusBarConfig holds status bar UI configuration
type StatusBarConfig struct {
	Theme string `json:"theme"` // "default", "cyan" or "dark"
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		Endpoint:              DefaultEndpoint,
		ChatPath:              DefaultChatPath,
		RequestTimeoutSeconds: 0,
		InitialMessage:        DefaultInitialMessage,
		QuickActions: []string{
			"Show today's production",
			"List machines under maintenance",
			"Show downtime report for Line 1",
			"Machine status",
			"Help",
		},
		StatusBar: StatusBarConfig{
			Theme: "default",
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load loads configuration from the specified path
// If the file doesn't exist, creates one with default values.
// Keys missing from the file keep their defaults.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from environment variables. lookup is normally
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvEndpoint); ok && strings.TrimSpace(v) != "" {
		c.Endpoint = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogFile); ok && strings.TrimSpace(v) != "" {
		c.LogFile = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTimeoutSeconds); ok && strings.TrimSpace(v) != "" {
		seconds, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", EnvTimeoutSeconds, err)
		}
		c.RequestTimeoutSeconds = seconds
	}
	return nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	endpoint := strings.TrimSpace(c.Endpoint)
	if endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("endpoint is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must use http or https, got: %q", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint must include a host, got: %q", endpoint)
	}

	if !strings.HasPrefix(c.ChatPath, "/") {
		return fmt.Errorf("chat_path must start with '/', got: %q", c.ChatPath)
	}

	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request_timeout_seconds must not be negative, got: %d", c.RequestTimeoutSeconds)
	}

	if len(c.QuickActions) > MaxQuickActions {
		return fmt.Errorf("at most %d quick_actions are supported, got: %d", MaxQuickActions, len(c.QuickActions))
	}
	for i, action := range c.QuickActions {
		if strings.TrimSpace(action) == "" {
			return fmt.Errorf("quick_actions[%d] is empty", i)
		}
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log_level: %s", c.LogLevel)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "json", "text":
	default:
		return fmt.Errorf("unsupported log_format: %s", c.LogFormat)
	}

	switch c.StatusBar.Theme {
	case "", "default", "cyan", "dark":
	default:
		return fmt.Errorf("unsupported status_bar.theme: %s", c.StatusBar.Theme)
	}

	return nil
}

// ChartDirOrDefault returns where saved charts are written.
func (c Config) ChartDirOrDefault() string {
	if dir := strings.TrimSpace(c.ChartDir); dir != "" {
		return dir
	}
	return filepath.Join(baseDir(), "charts")
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	return filepath.Join(baseDir(), "config.json")
}

func baseDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(homeDir) == "" {
		return ".opschat"
	}
	return filepath.Join(homeDir, ".opschat")
}
