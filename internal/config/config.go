package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type Config struct {
	App   AppConfig   `yaml:"app"`
	Redis RedisConfig `yaml:"redis"`
	Log   LogConfig   `yaml:"log"`
}

type AppConfig struct {
	Addr           string `yaml:"addr"`
	CorpusPath     string `yaml:"corpus_path"`
	WatchCorpus    bool   `yaml:"watch_corpus"`
	TopK           int    `yaml:"top_k"`
	MaxWordLength  int    `yaml:"max_word_length"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// RedisConfig configures the suggestion cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level       string   `yaml:"level"`
	Development bool     `yaml:"development"`
	OutputPaths []string `yaml:"output_paths"`
}

func Default() *Config {
	return &Config{
		App: AppConfig{
			Addr:           ":8080",
			TopK:           3,
			MaxUploadBytes: 32 << 20,
		},
		Redis: RedisConfig{
			TTL: 10 * time.Minute,
		},
		Log: LogConfig{
			Level:       "info",
			OutputPaths: []string{"stdout"},
		},
	}
}

// LoadConfig reads the YAML file at path over the defaults and then applies
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
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
	c.App.Addr = getenv("HTTP_ADDR", c.App.Addr)
	c.App.CorpusPath = getenv("CORPUS_PATH", c.App.CorpusPath)
	c.Redis.Addr = getenv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getenv("REDIS_PASSWORD", c.Redis.Password)

	db, err := getEnvInt("REDIS_DB", c.Redis.DB)
	if err != nil {
		return err
	}
	c.Redis.DB = db
	return nil
}

func (c *Config) Validate() error {
	if c.App.Addr == "" {
		return fmt.Errorf("app.addr is required")
	}
	if c.App.TopK <= 0 {
		return fmt.Errorf("app.top_k must be positive, got %d", c.App.TopK)
	}
	if c.App.MaxWordLength < 0 {
		return fmt.Errorf("app.max_word_length must not be negative, got %d", c.App.MaxWordLength)
	}
	if c.App.MaxUploadBytes <= 0 {
		return fmt.Errorf("app.max_upload_bytes must be positive, got %d", c.App.MaxUploadBytes)
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must not be negative, got %s", c.Redis.TTL)
	}
	return nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return i, nil
}
