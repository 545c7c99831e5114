package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath    = "subtools.yaml"
	EnvConfigPath  = "SUBTOOLS_CONFIG"
	EnvAutoBackup  = "SUBTOOLS_AUTO_CREATE_BACKUP"
	EnvLogLevel    = "SUBTOOLS_LOG_LEVEL"
	defaultCPS     = 17
	defaultSuffix  = ".bak"
	defaultLogging = "info"
)

type Config struct {
	AutoCreateBackup           bool          `yaml:"auto_create_backup"`
	OptimalCharactersPerSecond int           `yaml:"optimal_characters_per_second"`
	BackupSuffix               string        `yaml:"backup_suffix"`
	Logging                    LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		AutoCreateBackup:           true,
		OptimalCharactersPerSecond: defaultCPS,
		BackupSuffix:               defaultSuffix,
		Logging:                    LoggingConfig{Level: defaultLogging},
	}
}

// Load reads settings from path, SUBTOOLS_CONFIG, or subtools.yaml in
// that order. A missing file yields defaults. Environment variables,
// including ones from a .env file, override the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // best-effort: load .env if present

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvAutoBackup); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAutoBackup, err)
		}
		c.AutoCreateBackup = b
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate fills empty fields with defaults and rejects values that
// cannot be used.
func (c *Config) Validate() error {
	if c.OptimalCharactersPerSecond == 0 {
		c.OptimalCharactersPerSecond = defaultCPS
	}
	if c.OptimalCharactersPerSecond < 0 {
		return fmt.Errorf(
			"optimal_characters_per_second must be positive, got %d",
			c.OptimalCharactersPerSecond,
		)
	}
	if c.BackupSuffix == "" {
		c.BackupSuffix = defaultSuffix
	}
	if strings.ContainsAny(c.BackupSuffix, `/\`) {
		return fmt.Errorf("backup_suffix %q must not contain path separators", c.BackupSuffix)
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "":
		c.Logging.Level = defaultLogging
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}
