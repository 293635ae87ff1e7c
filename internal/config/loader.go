package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	dirName  = ".pulse"
	fileName = "config.yaml"

	EnvDBPath = "PULSE_DB_PATH"
	EnvAPIKey = "GEMINI_API_KEY"
)

// Load merges the global config, then the project config, then environment
// overrides over the defaults. Missing files are skipped; an unreadable file
// is logged and skipped.
func Load() (*Config, error) {
	var paths []string
	if p := GlobalConfigPath(); p != "" {
		paths = append(paths, p)
	}
	if p := ProjectConfigPath(); p != "" {
		paths = append(paths, p)
	}
	return LoadFrom(paths...)
}

// LoadFrom is Load with explicit file paths, applied in order.
func LoadFrom(paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	for _, p := range paths {
		if err := loadFile(p, cfg); err != nil && !os.IsNotExist(err) {
			log.Printf("WARNING: config %s: %v", p, err)
		}
	}
	applyEnv(cfg)
	if err := cfg.expand(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		cfg.AI.APIKey = v
	}
}

func (c *Config) expand() error {
	if c.DBPath == "" {
		return nil
	}
	if c.DBPath == "~" || strings.HasPrefix(c.DBPath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("expand db path: %w", err)
		}
		c.DBPath = filepath.Join(home, strings.TrimPrefix(c.DBPath, "~"))
	}
	return nil
}

// GlobalConfigPath returns ~/.pulse/config.yaml, or "" without a home directory.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, dirName, fileName)
}

// ProjectConfigPath returns ./.pulse/config.yaml.
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, dirName, fileName)
}
