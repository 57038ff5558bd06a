package server

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config configures the HTTP boundary.
type Config struct {
	// Addr is the listen address (default ":8089").
	Addr string `json:"addr" yaml:"addr"`

	// MaxBodyBytes caps request bodies. Buffers travel uncompressed as JSON
	// integer arrays, so the default is generous (256 MB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes"`

	// JPEGQuality is used when a save request targets a .jpg/.jpeg path.
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality"`

	// Logger for request/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.Addr == "" {
		c.Addr = ":8089"
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 256 * 1024 * 1024
	}
	if c.JPEGQuality <= 0 {
		c.JPEGQuality = 85
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// LoadConfig reads a yaml config file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
