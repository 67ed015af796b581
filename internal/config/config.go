package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config gom cấu hình cho CLI và classifier.
type Config struct {
	// Thư mục chứa rule set (.yml/.yaml)
	RulesPath string `yaml:"rules_path"`

	// Số worker cho classify theo lô
	Workers int `yaml:"workers"`

	// Bật prefilter Aho-Corasick
	Prefilter bool `yaml:"prefilter"`

	// debug | info | warn | error
	LogLevel string `yaml:"log_level"`

	// Theo dõi thư mục rules và nạp lại khi có thay đổi
	Watch bool `yaml:"watch"`
}

func Default() Config {
	return Config{
		RulesPath: "./rules",
		Workers:   4,
		Prefilter: true,
		LogLevel:  "info",
		Watch:     false,
	}
}

func (c Config) WithRulesPath(p string) Config {
	c.RulesPath = p
	return c
}

func (c Config) WithWorkers(n int) Config {
	c.Workers = n
	return c
}

func (c Config) WithPrefilter(enable bool) Config {
	c.Prefilter = enable
	return c
}

func (c Config) WithLogLevel(level string) Config {
	c.LogLevel = level
	return c
}

func (c Config) WithWatch(enable bool) Config {
	c.Watch = enable
	return c
}

// LoadFile đọc YAML đè lên Default(); field vắng mặt giữ giá trị mặc định.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ANSWERCLASS_* variables. Malformed values
// are reported and leave the field untouched.
func (c *Config) ApplyEnv() error {
	var errs []error
	if v := os.Getenv("ANSWERCLASS_RULES_PATH"); v != "" {
		c.RulesPath = v
	}
	if v := os.Getenv("ANSWERCLASS_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ANSWERCLASS_WORKERS: %w", err))
		} else {
			c.Workers = n
		}
	}
	if v := os.Getenv("ANSWERCLASS_PREFILTER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ANSWERCLASS_PREFILTER: %w", err))
		} else {
			c.Prefilter = b
		}
	}
	if v := os.Getenv("ANSWERCLASS_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("ANSWERCLASS_WATCH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ANSWERCLASS_WATCH: %w", err))
		} else {
			c.Watch = b
		}
	}
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
