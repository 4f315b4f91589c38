// Package config provides Viper-based configuration loading for the dice bot.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// BotConfig holds command-recognition and flood-control settings.
type BotConfig struct {
	// Prefix marks a line as a command, e.g. "!" in "!roll 2d6".
	Prefix string `mapstructure:"prefix"`
	// Delimiters split a command line into tokens. Longer delimiters win.
	Delimiters []string `mapstructure:"delimiters"`
	// RatePerSecond is the sustained command rate allowed per session.
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	// Burst is the number of commands a session may issue at once.
	Burst int `mapstructure:"burst"`
}

// DiceConfig selects the randomness source and evaluation limits.
type DiceConfig struct {
	// Source is "crypto" or "seeded".
	Source string `mapstructure:"source"`
	// Seed seeds the generator when Source is "seeded".
	Seed int64 `mapstructure:"seed"`
	// MaxDice caps the count of a single dice term; 0 disables the cap.
	MaxDice int `mapstructure:"max_dice"`
}

// TelnetConfig holds Telnet acceptor settings.
type TelnetConfig struct {
	// Host is the bind address for the Telnet listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the Telnet listener.
	Port int `mapstructure:"port"`
	// ReadTimeout is the per-read timeout for Telnet connections.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the per-write timeout for Telnet connections.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (t TelnetConfig) Addr() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// MetricsConfig holds Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

// Addr returns the "host:port" metrics listen address.
func (m MetricsConfig) Addr() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Bot     BotConfig     `mapstructure:"bot"`
	Dice    DiceConfig    `mapstructure:"dice"`
	Telnet  TelnetConfig  `mapstructure:"telnet"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	for _, check := range []func() error{
		func() error { return validateBot(c.Bot) },
		func() error { return validateDice(c.Dice) },
		func() error { return validateTelnet(c.Telnet) },
		func() error { return validateMetrics(c.Metrics) },
		func() error { return validateLogging(c.Logging) },
	} {
		if err := check(); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateBot(b BotConfig) error {
	var errs []string
	if b.Prefix == "" {
		errs = append(errs, "bot.prefix must not be empty")
	}
	if len(b.Delimiters) == 0 {
		errs = append(errs, "bot.delimiters must not be empty")
	}
	for _, d := range b.Delimiters {
		if d == "" {
			errs = append(errs, "bot.delimiters must not contain an empty delimiter")
			break
		}
	}
	if b.RatePerSecond <= 0 {
		errs = append(errs, fmt.Sprintf("bot.rate_per_second must be > 0, got %v", b.RatePerSecond))
	}
	if b.Burst < 1 {
		errs = append(errs, fmt.Sprintf("bot.burst must be >= 1, got %d", b.Burst))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateDice(d DiceConfig) error {
	validSources := map[string]bool{"crypto": true, "seeded": true}
	if !validSources[d.Source] {
		return fmt.Errorf("dice.source must be one of [crypto, seeded], got %q", d.Source)
	}
	if d.MaxDice < 0 {
		return fmt.Errorf("dice.max_dice must be >= 0, got %d", d.MaxDice)
	}
	return nil
}

func validateTelnet(t TelnetConfig) error {
	var errs []string
	if t.Port < 1 || t.Port > 65535 {
		errs = append(errs, fmt.Sprintf("telnet.port must be 1-65535, got %d", t.Port))
	}
	if t.ReadTimeout < 0 {
		errs = append(errs, "telnet.read_timeout must not be negative")
	}
	if t.WriteTimeout < 0 {
		errs = append(errs, "telnet.write_timeout must not be negative")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateMetrics(m MetricsConfig) error {
	if !m.Enabled {
		return nil
	}
	if m.Port < 1 || m.Port > 65535 {
		return fmt.Errorf("metrics.port must be 1-65535, got %d", m.Port)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with DICEBOT_ prefix
	v.SetEnvPrefix("DICEBOT")
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
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
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

// Defaults returns a Viper instance holding only the default settings.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.prefix", "!")
	v.SetDefault("bot.delimiters", []string{", ", ",", " "})
	v.SetDefault("bot.rate_per_second", 2.0)
	v.SetDefault("bot.burst", 5)

	v.SetDefault("dice.source", "crypto")
	v.SetDefault("dice.seed", 0)
	v.SetDefault("dice.max_dice", 1000)

	v.SetDefault("telnet.host", "0.0.0.0")
	v.SetDefault("telnet.port", 4000)
	v.SetDefault("telnet.read_timeout", "5m")
	v.SetDefault("telnet.write_timeout", "30s")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.host", "127.0.0.1")
	v.SetDefault("metrics.port", 9090)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
