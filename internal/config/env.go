// Package config loads process settings from TOML and gameplay tuning from YAML.
package config

import (
	"os"
	"strconv"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Environment variables that override values from the config file.
const (
	EnvConfigPath = "NOVA_CONFIG"
	EnvSSHHost    = "NOVA_SSH_HOST"
	EnvSSHPort    = "NOVA_SSH_PORT"
	EnvSSHHostKey = "NOVA_SSH_HOST_KEY"
	EnvLogLevel   = "NOVA_LOG_LEVEL"
)

// ApplyEnv overlays environment overrides onto cfg.
func ApplyEnv(cfg *Config) {
	cfg.Server.Host = GetEnv(EnvSSHHost, cfg.Server.Host)
	if port, err := strconv.Atoi(GetEnv(EnvSSHPort, "")); err == nil {
		cfg.Server.Port = port
	}
	cfg.Server.HostKeyPath = GetEnv(EnvSSHHostKey, cfg.Server.HostKeyPath)
	cfg.Logging.Level = GetEnv(EnvLogLevel, cfg.Logging.Level)
}
