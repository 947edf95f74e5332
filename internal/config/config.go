// Package config loads the toolkit configuration from the environment,
// optionally seeded by a .env file, plus an optional YAML file for the CLI.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	SessionPath string        `yaml:"session_path"`
	LogMode     string        `yaml:"log_mode"` // "dev" or "prod"
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		BaseURL:     getEnv("FSR_API_URL", "http://localhost:8000/api/v1"),
		Timeout:     time.Duration(getEnvInt("FSR_TIMEOUT_SECONDS", 30)) * time.Second,
		SessionPath: getEnv("FSR_SESSION_PATH", defaultSessionPath()),
		LogMode:     getEnv("FSR_LOG_MODE", "prod"),
	}
}

// LoadFile layers a YAML config file over the environment defaults. Unset
// file fields keep their Load values.
func LoadFile(path string) (*Config, error) {
	cfg := Load()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "fsr-session.json"
	}
	return filepath.Join(home, ".fsr", "session.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
