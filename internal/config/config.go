package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/username/market-calendar/internal/export"
	"github.com/username/market-calendar/internal/marketclock"
)

// EnvPrefix is prepended to every environment override, e.g. MARKET_CALENDAR_MARKET_TIMEZONE
const EnvPrefix = "MARKET_CALENDAR"

// Config represents application configuration
type Config struct {
	Market   MarketConfig   `mapstructure:"market"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Log      LogConfig      `mapstructure:"log"`
	Export   ExportConfig   `mapstructure:"export"`
}

// MarketConfig represents exchange time zone settings
type MarketConfig struct {
	Timezone        string `mapstructure:"timezone"`         // Zone the exchange runs in
	DisplayTimezone string `mapstructure:"display_timezone"` // Zone used when printing times
}

// CalendarConfig represents holiday cache settings
type CalendarConfig struct {
	PrewarmFrom  int `mapstructure:"prewarm_from"` // 0 disables prewarming
	PrewarmYears int `mapstructure:"prewarm_years"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`  // Empty logs to stderr
	Level string `mapstructure:"level"` // Applies to both the file and the console logger
}

// ExportConfig represents export defaults
type ExportConfig struct {
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("market.timezone", marketclock.DefaultTimezone)
	v.SetDefault("market.display_timezone", "Local")
	v.SetDefault("calendar.prewarm_from", 0)
	v.SetDefault("calendar.prewarm_years", 10)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("export.format", export.FormatText)
}

// Load loads configuration from file, environment and defaults.
// A missing config file is not an error unless configPath names it explicitly.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.market-calendar")
		v.AddConfigPath("/etc/market-calendar")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Market.Timezone); err != nil {
		return fmt.Errorf("market.timezone %q is not a known zone: %w", c.Market.Timezone, err)
	}
	if _, err := c.Market.DisplayLocation(); err != nil {
		return err
	}

	if c.Calendar.PrewarmFrom < 0 {
		return fmt.Errorf("calendar.prewarm_from must not be negative")
	}
	if c.Calendar.PrewarmYears < 0 {
		return fmt.Errorf("calendar.prewarm_years must not be negative")
	}

	if _, err := c.Log.ZapLevel(); err != nil {
		return err
	}

	if !isKnownFormat(c.Export.Format) {
		return fmt.Errorf("export.format must be one of %s, got '%s'",
			strings.Join(export.Formats, ", "), c.Export.Format)
	}

	return nil
}

// DisplayLocation returns the zone used to print times. "Local" and the empty
// string both mean the host zone.
func (c *MarketConfig) DisplayLocation() (*time.Location, error) {
	if c.DisplayTimezone == "" || c.DisplayTimezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("market.display_timezone %q is not a known zone: %w", c.DisplayTimezone, err)
	}
	return loc, nil
}

// ZapLevel parses the configured log level
func (c *LogConfig) ZapLevel() (zapcore.Level, error) {
	if c.Level == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return level, fmt.Errorf("log.level %q is invalid: %w", c.Level, err)
	}
	return level, nil
}

// PrewarmEnabled reports whether holiday sets should be computed at startup
func (c *CalendarConfig) PrewarmEnabled() bool {
	return c.PrewarmFrom > 0 && c.PrewarmYears > 0
}

func isKnownFormat(format string) bool {
	for _, f := range export.Formats {
		if f == format {
			return true
		}
	}
	return false
}
