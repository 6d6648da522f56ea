package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. It may be absent.
const DefaultPath = "momo.yaml"

// Environment variables that override file values.
const (
	EnvDBPath     = "MOMO_DB_PATH"
	EnvXMLPath    = "MOMO_XML_PATH"
	EnvListenAddr = "MOMO_LISTEN_ADDR"
	EnvLogLevel   = "MOMO_LOG_LEVEL"
	EnvSender     = "MOMO_SENDER"
)

// Config represents momo.yaml.
type Config struct {
	DBPath     string `yaml:"db_path"`
	XMLPath    string `yaml:"xml_path"`
	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"`
	// Sender limits imports to one SMS address, e.g. "M-Money".
	Sender string `yaml:"sender,omitempty"`
}

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	return &Config{
		DBPath:     "momo_transactions.db",
		XMLPath:    "modified_sms_v2.xml",
		ListenAddr: ":5000",
		LogLevel:   "info",
	}
}

// Load reads a config file from disk. Fields the file leaves empty keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Resolve loads the config at path and applies environment overrides.
// An empty path means DefaultPath, which is allowed to be missing; an
// explicit path must exist.
func Resolve(path string) (*Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath
	}

	cfg, err := Load(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// ApplyEnv overrides fields from non-empty environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&c.DBPath, EnvDBPath)
	set(&c.XMLPath, EnvXMLPath)
	set(&c.ListenAddr, EnvListenAddr)
	set(&c.LogLevel, EnvLogLevel)
	set(&c.Sender, EnvSender)
}
