package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort    = 5000
	DefaultRoot    = "."
	DefaultEnvFile = ".env"

	// IndexFile is served for the root path.
	IndexFile = "index.html"
)

// Config holds the server settings resolved from the environment.
type Config struct {
	Port     int
	Root     string
	LogLevel slog.Level
}

// LoadEnv loads variables from a .env file into the process environment.
// Variables that are already set win over the file. A missing file is not
// an error.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from the process environment.
func Load() *Config {
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config using getenv for lookups. Unset or malformed
// values fall back to their defaults.
func FromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		Port:     DefaultPort,
		Root:     DefaultRoot,
		LogLevel: slog.LevelInfo,
	}

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		port, err := ParsePort(v)
		if err != nil {
			slog.Warn("ignoring PORT", "value", v, "error", err, "default", DefaultPort)
		} else {
			cfg.Port = port
		}
	}

	if v := strings.TrimSpace(getenv("STATIC_ROOT")); v != "" {
		cfg.Root = v
	}

	if v := strings.TrimSpace(getenv("LOG_LEVEL")); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			slog.Warn("ignoring LOG_LEVEL", "value", v, "error", err)
			cfg.LogLevel = slog.LevelInfo
		}
	}

	return cfg
}

// ParsePort parses a TCP port number in the range 1-65535.
func ParsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}

// Addr returns the listen address, bound on all interfaces.
func (c *Config) Addr() string {
	return net.JoinHostPort("0.0.0.0", strconv.Itoa(c.Port))
}

// Validate resolves Root to an absolute path and checks that it is a
// directory holding the index file. A missing index file is reported but
// does not stop the server from serving other assets.
func (c *Config) Validate() error {
	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("resolving root %s: %w", c.Root, err)
	}
	c.Root = abs

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("root directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", abs)
	}
	if _, err := os.Stat(filepath.Join(abs, IndexFile)); err != nil {
		return fmt.Errorf("entry file: %w", err)
	}
	return nil
}
