package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// IntakeConfig holds the optional IMAP mailbox used to import marketing
// requests that arrive by email. Intake is disabled unless Host is set.
type IntakeConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	TLS      bool   `mapstructure:"tls" yaml:"tls"`

	// FetchLimit caps how many recent messages one import pulls in.
	FetchLimit int `mapstructure:"fetch_limit" yaml:"fetch_limit"`
}

// AIConfig holds settings for the caption/idea generation integration.
type AIConfig struct {
	Model     string `mapstructure:"model" yaml:"model"`
	MaxTokens int    `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// TimerConfig holds the time-tracking knobs.
type TimerConfig struct {
	// SweepIntervalSec is how often the background sweep checks running
	// timers against the session ceiling.
	SweepIntervalSec int `mapstructure:"sweep_interval_sec" yaml:"sweep_interval_sec"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DatabasePath is where the session snapshot is persisted. Empty means
	// session-only: every launch starts from seed data.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	// LogPath is where structured logs are written. The TUI owns the
	// terminal, so logs never go to stderr while it runs.
	LogPath string `mapstructure:"log_path" yaml:"log_path"`

	Timer   TimerConfig   `mapstructure:"timer" yaml:"timer"`
	AI      AIConfig      `mapstructure:"ai" yaml:"ai"`
	Intake  IntakeConfig  `mapstructure:"intake" yaml:"intake"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/mktboard/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "mktboard", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Timer: TimerConfig{
			SweepIntervalSec: 60,
		},
		AI: AIConfig{
			Model:     "gemini-2.5-flash",
			MaxTokens: 1024,
		},
		Intake: IntakeConfig{
			Port:       "993",
			TLS:        true,
			FetchLimit: 20,
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("timer.sweep_interval_sec", 60)
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.max_tokens", 1024)
	v.SetDefault("intake.port", "993")
	v.SetDefault("intake.tls", true)
	v.SetDefault("intake.fetch_limit", 20)
	v.SetDefault("display.theme", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database_path", cfg.DatabasePath)
	v.Set("log_path", cfg.LogPath)
	v.Set("timer", cfg.Timer)
	v.Set("ai", cfg.AI)
	v.Set("intake", cfg.Intake)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
