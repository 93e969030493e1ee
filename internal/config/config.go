package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

const (
	DefaultAlgorithm = "bubble"
	DefaultSize      = session.DefaultSize
	DefaultSpeedMs   = 100
	DefaultTheme     = "cyberpunk"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	EnvPrefix = "SORTVIZ"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Algorithm string        `yaml:"algorithm" toml:"algorithm" mapstructure:"algorithm"`
	Size      int           `yaml:"size" toml:"size" mapstructure:"size"`
	SpeedMs   int           `yaml:"speed_ms" toml:"speed_ms" mapstructure:"speed_ms"`
	Seed      int64         `yaml:"seed" toml:"seed" mapstructure:"seed"`
	Theme     string        `yaml:"theme" toml:"theme" mapstructure:"theme"`
	Log       LogConfig     `yaml:"log" toml:"log" mapstructure:"log"`
	Metrics   MetricsConfig `yaml:"metrics" toml:"metrics" mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level" mapstructure:"level"`
	Format string `yaml:"format" toml:"format" mapstructure:"format"`
}

type MetricsConfig struct {
	// Addr is the listen address for /metrics; empty disables it.
	Addr string `yaml:"addr" toml:"addr" mapstructure:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Size:      DefaultSize,
		SpeedMs:   DefaultSpeedMs,
		Theme:     DefaultTheme,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("algorithm", d.Algorithm)
	v.SetDefault("size", d.Size)
	v.SetDefault("speed_ms", d.SpeedMs)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("theme", d.Theme)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
}

// Load reads path over the defaults, then applies SORTVIZ_* environment
// overrides such as SORTVIZ_SIZE or SORTVIZ_LOG_LEVEL. The format follows
// the extension (.toml, otherwise yaml). An empty path loads defaults and
// environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(formatOf(path))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg in the format implied by the path's extension.
func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if formatOf(path) == "toml" {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// Normalize clamps size and speed into the session bounds.
func (c *Config) Normalize() {
	c.Size = min(max(c.Size, session.MinSize), session.MaxSize)
	c.SpeedMs = min(max(c.SpeedMs, int(session.MinSpeed/time.Millisecond)), int(session.MaxSpeed/time.Millisecond))
}

// Validate rejects values that cannot be clamped.
func (c *Config) Validate() error {
	if _, err := sorting.ParseKind(c.Algorithm); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}
	switch strings.ToUpper(c.Log.Level) {
	case "", logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

func (c *Config) Speed() time.Duration {
	return time.Duration(c.SpeedMs) * time.Millisecond
}

// Session converts the file settings into a session configuration.
func (c *Config) Session() session.Config {
	cfg := session.DefaultConfig()
	if kind, err := sorting.ParseKind(c.Algorithm); err == nil {
		cfg.Algorithm = kind
	}
	cfg.Size = c.Size
	cfg.Speed = c.Speed()
	cfg.Seed = c.Seed
	return cfg
}
