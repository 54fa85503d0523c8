// Package config loads EduCycle settings from a YAML file, a .env file and
// the environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config is the full server configuration.
type Config struct {
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Storage struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
	} `yaml:"storage"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`

	Gemini struct {
		APIKey   string `yaml:"api_key"`
		Model    string `yaml:"model"`
		Endpoint string `yaml:"endpoint"`
	} `yaml:"gemini"`

	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Addr = "localhost:8080"
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Storage.Backend = BackendSQLite
	cfg.Storage.Path = "educycle.db"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.Prefix = "educycle:"
	cfg.Logging.Level = "info"
	return cfg
}

// Load builds the configuration. An empty path skips the YAML file, and a
// missing envFile is ignored.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := []struct {
		keys []string
		dest *string
	}{
		{[]string{"EDUCYCLE_ADDR"}, &c.Server.Addr},
		{[]string{"EDUCYCLE_BACKEND"}, &c.Storage.Backend},
		{[]string{"EDUCYCLE_DB"}, &c.Storage.Path},
		{[]string{"REDIS_ADDR"}, &c.Redis.Addr},
		{[]string{"REDIS_PASSWORD"}, &c.Redis.Password},
		{[]string{"REDIS_PREFIX"}, &c.Redis.Prefix},
		{[]string{"GEMINI_API_KEY", "API_KEY"}, &c.Gemini.APIKey},
		{[]string{"GEMINI_MODEL"}, &c.Gemini.Model},
		{[]string{"GEMINI_ENDPOINT"}, &c.Gemini.Endpoint},
		{[]string{"LOG_LEVEL"}, &c.Logging.Level},
		{[]string{"LOG_FILE"}, &c.Logging.File},
	}
	for _, s := range strs {
		if v, ok := lookup(s.keys...); ok {
			*s.dest = v
		}
	}

	if v, ok := lookup("EDUCYCLE_ALLOWED_ORIGINS"); ok {
		c.Server.AllowedOrigins = splitList(v)
	}

	if v, ok := lookup("REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		c.Redis.DB = n
	}
	return nil
}

// lookup returns the first of keys set in the environment.
func lookup(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server address is required")
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.Path == "" {
			return errors.New("storage path is required for the sqlite backend")
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis address is required for the redis backend")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("invalid redis db %d", c.Redis.DB)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	level, _ := ParseLevel(c.Logging.Level)
	return level
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
