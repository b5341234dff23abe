package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/arnavsurve/climb/internal/logger"
)

// EnvVar names the environment variable LoadFromEnv consults first.
const EnvVar = "CLIMB_CONFIG"

// Output formats accepted by [output] format.
const (
	FormatInfix = "infix"
	FormatSexpr = "sexpr"
	FormatYAML  = "yaml"
)

// Config holds the complete climb configuration
type Config struct {
	Log    LogConfig          `toml:"log"`
	Output OutputConfig       `toml:"output"`
	Emit   EmitConfig         `toml:"emit"`
	Vars   map[string]float64 `toml:"vars"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
	JSON       bool   `toml:"json"`
}

// OutputConfig controls how parsed trees are printed
type OutputConfig struct {
	Format string `toml:"format"`
}

// EmitConfig holds COBOL emitter settings
type EmitConfig struct {
	FoldConstants *bool  `toml:"fold_constants"`
	OutDir        string `toml:"out_dir"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a TOML configuration file and applies defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Errorf("config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by CLIMB_CONFIG, falling back to
// ./climb.toml and then ~/.config/climb/climb.toml. With no file anywhere it
// returns Default().
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}

	defaultPaths := []string{"./climb.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		defaultPaths = append(defaultPaths, filepath.Join(home, ".config", "climb", "climb.toml"))
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 5
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 30
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatInfix
	}
	if c.Emit.FoldConstants == nil {
		fold := true
		c.Emit.FoldConstants = &fold
	}
	if c.Emit.OutDir == "" {
		c.Emit.OutDir = "out"
	}
	if c.Vars == nil {
		c.Vars = map[string]float64{}
	}
}

// Validate checks values that have a fixed set of choices.
func (c *Config) Validate() error {
	c.Log.Level = strings.ToLower(c.Log.Level)
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Output.Format {
	case FormatInfix, FormatSexpr, FormatYAML:
	default:
		return errors.Errorf("output.format must be %s, %s or %s, got %q", FormatInfix, FormatSexpr, FormatYAML, c.Output.Format)
	}
	return nil
}

// Logger converts the [log] section for logger.InitLogger.
func (c *Config) Logger() *logger.Config {
	return &logger.Config{
		Level:      c.Log.Level,
		FileName:   c.Log.File,
		MaxSize:    c.Log.MaxSizeMB,
		MaxAge:     c.Log.MaxAgeDays,
		MaxBackups: c.Log.MaxBackups,
		Compress:   c.Log.Compress,
		JSON:       c.Log.JSON,
	}
}

// FoldConstants reports the effective emit.fold_constants setting.
func (c *Config) FoldConstants() bool {
	return c.Emit.FoldConstants == nil || *c.Emit.FoldConstants
}
