// Package config loads the application configuration from a TOML file.
// Missing files are fine; every field has a sensible default.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration.
type Config struct {
	Drive  DriveConfig  `toml:"drive"`
	Index  IndexConfig  `toml:"index"`
	Server ServerConfig `toml:"server"`
	Search SearchConfig `toml:"search"`
	Sync   SyncConfig   `toml:"sync"`
}

// DriveConfig locates the source folder and the OAuth material.
type DriveConfig struct {
	// FolderName is the Drive folder scanned for PDF files.
	FolderName string `toml:"folder_name"`

	// CredentialsPath points at the OAuth client credentials JSON.
	CredentialsPath string `toml:"credentials_path"`

	// TokenPath points at the saved OAuth token JSON.
	TokenPath string `toml:"token_path"`
}

// IndexConfig locates the local state files.
type IndexConfig struct {
	// Path is the search index directory. Empty means in-memory.
	Path string `toml:"path"`

	// HistoryPath is the sync history database file.
	HistoryPath string `toml:"history_path"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// SearchConfig bounds result sizes.
type SearchConfig struct {
	DefaultSize int `toml:"default_size"`
	MaxSize     int `toml:"max_size"`
}

// SyncConfig tunes batch execution.
type SyncConfig struct {
	// Workers is the number of files processed concurrently per batch.
	Workers int `toml:"workers"`
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".docfind", "config.toml")
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".docfind", "data")

	return &Config{
		Drive: DriveConfig{
			FolderName:      "Documents",
			CredentialsPath: filepath.Join(home, ".docfind", "credentials.json"),
			TokenPath:       filepath.Join(home, ".docfind", "token.json"),
		},
		Index: IndexConfig{
			Path:        filepath.Join(dataDir, "index.bleve"),
			HistoryPath: filepath.Join(dataDir, "history.db"),
		},
		Server: ServerConfig{Addr: ":8080"},
		Search: SearchConfig{DefaultSize: 10, MaxSize: 100},
		Sync:   SyncConfig{Workers: 4},
	}
}

// Load reads the config file at path, overlaying it on the defaults.
// A missing file returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
