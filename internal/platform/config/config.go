package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir       string `yaml:"-"`
	DBPath        string `yaml:"-"`
	AttestorsPath string `yaml:"-"`
	Actor         string `yaml:"actor"`
	HTTPAddr      string `yaml:"http_addr"`
}

// New resolves the data directory and applies overrides from config.yaml
// inside it, when present.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data directory is required")
	}
	cfg := Config{
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, "focuslock.db"),
		AttestorsPath: filepath.Join(dataDir, "attestors.yaml"),
		HTTPAddr:      "127.0.0.1:7845",
	}
	b, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config file: %w", err)
	}
	return cfg, nil
}

// DefaultDataDir is the fallback when --data-dir is not given.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".focuslock"
	}
	return filepath.Join(home, ".focuslock")
}
