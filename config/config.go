// Package config loads the emulator defaults from a TOML file. Command-line
// flags override anything set here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the emulator configuration.
type Config struct {
	// Machine settings
	Machine struct {
		Upgrade     bool `toml:"upgrade"`      // Minsk-22 mode: second memory bank
		SetPassword bool `toml:"set_password"` // plant the hidden password
	} `toml:"machine"`

	// Execution settings
	Execution struct {
		CPUQuota   int  `toml:"cpu_quota"`   // instructions; <= 0 unlimited
		PrintQuota int  `toml:"print_quota"` // printed lines; <= 0 unlimited
		TraceLevel int  `toml:"trace_level"` // 0..3
		English    bool `toml:"english"`     // English console messages
	} `toml:"execution"`

	// Daemon settings
	Daemon struct {
		HTTPPort       int `toml:"http_port"`
		TCPPort        int `toml:"tcp_port"`
		SessionCPU     int `toml:"session_cpu_quota"`
		SessionPrint   int `toml:"session_print_quota"`
		SessionSeconds int `toml:"session_seconds"`
	} `toml:"daemon"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Execution.CPUQuota = -1
	cfg.Execution.PrintQuota = -1

	// The historical daemon listened on 1969; per-session limits match it.
	cfg.Daemon.HTTPPort = 8080
	cfg.Daemon.TCPPort = 1969
	cfg.Daemon.SessionCPU = 100000
	cfg.Daemon.SessionPrint = 100
	cfg.Daemon.SessionSeconds = 60

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "minsk-emu")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "minsk-emu")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file is
// not an error; it yields the defaults.
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

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return err
}
