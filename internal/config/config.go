// Package config loads habitchain settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitchain/internal/constants"
	"github.com/julianstephens/habitchain/internal/utils"
)

// Config is the complete habitchain configuration.
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Storage  StorageConfig `yaml:"storage"`
	Timezone string        `yaml:"timezone"`
	Log      LogConfig     `yaml:"log"`
	Client   ClientConfig  `yaml:"client"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":4000")
	Addr string `yaml:"addr"`
	// BasePath prefixes every API route (default "/api")
	BasePath       string        `yaml:"base_path"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	// ShutdownTimeout bounds graceful shutdown after a signal
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// LoginRate is requests per second per client IP on POST /login; 0 disables
	LoginRate  float64 `yaml:"login_rate"`
	LoginBurst int     `yaml:"login_burst"`
	// TrustProxy honors X-Forwarded-For / X-Real-IP for client addresses
	TrustProxy bool `yaml:"trust_proxy"`
}

type StorageConfig struct {
	Path          string `yaml:"path"`
	BackupOnStart bool   `yaml:"backup_on_start"`
}

type LogConfig struct {
	Debug bool   `yaml:"debug"`
	Dir   string `yaml:"dir"`
}

// ClientConfig configures the terminal client's connection to the API.
type ClientConfig struct {
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config with the stock settings.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            constants.DefaultAddr,
			BasePath:        constants.DefaultBasePath,
			AllowedOrigins:  []string{"*"},
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			LoginRate:       5,
			LoginBurst:      10,
		},
		Storage: StorageConfig{
			Path:          constants.DefaultDataPath,
			BackupOnStart: true,
		},
		Timezone: constants.DefaultTimezone,
		Log: LogConfig{
			Dir: constants.DefaultConfigDir,
		},
		Client: ClientConfig{
			APIURL:  constants.DefaultAPIURL,
			Timeout: 10 * time.Second,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("server.base_path must start with /")
	}
	if c.Server.LoginRate < 0 {
		return fmt.Errorf("server.login_rate must not be negative")
	}
	if c.Server.LoginRate > 0 && c.Server.LoginBurst < 1 {
		return fmt.Errorf("server.login_burst must be at least 1 when rate limiting is enabled")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	if _, err := utils.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	if c.Client.APIURL == "" {
		return fmt.Errorf("client.api_url is required")
	}
	return nil
}

// Location returns the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

// LoadFromFile loads configuration from a YAML file over the defaults.
// A missing file yields the defaults when allowMissing is set.
func LoadFromFile(path string, allowMissing bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
