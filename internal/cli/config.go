package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = "skillbridge"
	configFileName = "config.yaml"
	defaultServer  = "http://localhost:8080"
	serverEnv      = "SKILLBRIDGE_SERVER"
)

// ClientConfig is the user's local configuration stored in
// ~/.config/skillbridge/config.yaml.
type ClientConfig struct {
	Server  string        `yaml:"server"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// DefaultConfigPath returns the path to the user config file.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", configDirName, configFileName), nil
}

// LoadConfig reads the config file at path. A missing file yields an empty
// config.
func LoadConfig(path string) (*ClientConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &ClientConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg ClientConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveConfig writes cfg to path, creating the directory if needed.
func SaveConfig(path string, cfg *ClientConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// resolveServer picks the API URL: --server, then SKILLBRIDGE_SERVER, then the
// config file, then the local default.
func resolveServer(flag string, cfg *ClientConfig) string {
	candidates := []string{flag, os.Getenv(serverEnv)}
	if cfg != nil {
		candidates = append(candidates, cfg.Server)
	}
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return strings.TrimRight(c, "/")
		}
	}
	return defaultServer
}
