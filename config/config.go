// Package config loads the application configuration for the demo game and
// the headless runner.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Sim     SimConfig     `mapstructure:"sim"`
	Prefabs PrefabsConfig `mapstructure:"prefabs"`
	Level   LevelConfig   `mapstructure:"level"`
	Window  WindowConfig  `mapstructure:"window"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SimConfig controls the fixed-step simulation.
type SimConfig struct {
	TickRate int     `mapstructure:"tick_rate"`
	Seed     int64   `mapstructure:"seed"`
	Gravity  float64 `mapstructure:"gravity"`
	// MaxTicks bounds a headless run. Zero runs until every enemy is gone.
	MaxTicks int `mapstructure:"max_ticks"`
}

// Dt returns the fixed tick delta in seconds.
func (s SimConfig) Dt() float64 {
	if s.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(s.TickRate)
}

// PrefabsConfig points at the on-disk prefab override directory.
type PrefabsConfig struct {
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

type LevelConfig struct {
	Name string `mapstructure:"name"`
}

// WindowConfig sizes the demo window. Scale is pixels per world unit.
type WindowConfig struct {
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	Scale  float64 `mapstructure:"scale"`
}

// Validate checks that all configuration values are acceptable.
//
// Postcondition: Returns nil if valid, or an error listing every violation.
func (c Config) Validate() error {
	var errs []string

	errs = append(errs, validateLogging(c.Logging)...)
	errs = append(errs, validateSim(c.Sim)...)
	errs = append(errs, validateWindow(c.Window)...)

	if c.Prefabs.Watch && c.Prefabs.Dir == "" {
		errs = append(errs, "prefabs.watch requires prefabs.dir")
	}
	if strings.TrimSpace(c.Level.Name) == "" {
		errs = append(errs, "level.name must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) []string {
	var errs []string
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level must be one of debug/info/warn/error, got %q", l.Level))
	}
	switch l.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("logging.format must be json or console, got %q", l.Format))
	}
	return errs
}

func validateSim(s SimConfig) []string {
	var errs []string
	if s.TickRate < 1 || s.TickRate > 1000 {
		errs = append(errs, fmt.Sprintf("sim.tick_rate must be 1-1000, got %d", s.TickRate))
	}
	if s.Gravity > 0 {
		errs = append(errs, fmt.Sprintf("sim.gravity must point down (<= 0), got %g", s.Gravity))
	}
	if s.MaxTicks < 0 {
		errs = append(errs, fmt.Sprintf("sim.max_ticks must be >= 0, got %d", s.MaxTicks))
	}
	return errs
}

func validateWindow(w WindowConfig) []string {
	var errs []string
	if w.Width < 1 {
		errs = append(errs, fmt.Sprintf("window.width must be positive, got %d", w.Width))
	}
	if w.Height < 1 {
		errs = append(errs, fmt.Sprintf("window.height must be positive, got %d", w.Height))
	}
	if w.Scale <= 0 {
		errs = append(errs, fmt.Sprintf("window.scale must be positive, got %g", w.Scale))
	}
	return errs
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path uses the
// defaults and the environment only.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with BERSERK_ prefix
	v.SetEnvPrefix("BERSERK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration Load produces with no file and no
// environment overrides.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("sim.tick_rate", 60)
	v.SetDefault("sim.seed", 1)
	v.SetDefault("sim.gravity", -20)
	v.SetDefault("sim.max_ticks", 0)

	v.SetDefault("prefabs.dir", "")
	v.SetDefault("prefabs.watch", false)

	v.SetDefault("level.name", "arena")

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.scale", 32)
}
