package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultListLimit caps list_tasks results when the caller passes no limit.
const DefaultListLimit = 20

// Config represents the flat backlog configuration
type Config struct {
	Version   string `json:"version,omitempty"`
	DBPath    string `json:"db_path,omitempty"`    // override for the database file
	ListLimit int    `json:"list_limit,omitempty"` // default cap for list operations
}

// Load reads config.json from the backlog home directory. A missing file is
// not an error: defaults apply.
func Load() (*Config, error) {
	home, err := HomeDir()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(home, "config.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Save writes config.json to the backlog home directory.
func Save(cfg *Config) error {
	home, err := HomeDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(home, 0755); err != nil {
		return fmt.Errorf("failed to create backlog dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(home, "config.json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// HomeDir returns the backlog home directory ($BACKLOG_HOME or ~/.backlog).
func HomeDir() (string, error) {
	if dir := os.Getenv("BACKLOG_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".backlog"), nil
}

// DBPath resolves the database file path. Resolution order: BACKLOG_DB
// environment variable, config file db_path, then <home>/backlog.db.
func DBPath() (string, error) {
	if path := os.Getenv("BACKLOG_DB"); path != "" {
		return path, nil
	}

	cfg, err := Load()
	if err != nil {
		return "", err
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}

	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "backlog.db"), nil
}

// DefaultLimit returns the configured default list cap.
func (c *Config) DefaultLimit() int {
	if c.ListLimit > 0 {
		return c.ListLimit
	}
	return DefaultListLimit
}
