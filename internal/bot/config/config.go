package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"golang-stock-bot/pkg/common"
	"golang-stock-bot/pkg/config"
	"golang-stock-bot/pkg/utils"

	"github.com/spf13/viper"
)

// Telegram holds configuration for the Telegram chat the bot posts to.
type Telegram struct {
	BotToken  string `mapstructure:"bot_token"`
	ChatID    int64  `mapstructure:"chat_id"`
	SendChart bool   `mapstructure:"send_chart"`
}

// Provider selects the market-data backend.
type Provider struct {
	Name     string        `mapstructure:"name"`
	Options  string        `mapstructure:"options"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Retry holds the backoff settings used around provider calls.
type Retry struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	BaseBackoff time.Duration `mapstructure:"base_backoff"`
	Multiplier  float64       `mapstructure:"multiplier"`
	MaxBackoff  time.Duration `mapstructure:"max_backoff"`
}

// Schedule holds the weekday run time and the loop intervals.
type Schedule struct {
	Time            string        `mapstructure:"time"`
	PollingInterval time.Duration `mapstructure:"polling_interval"`
	TestInterval    time.Duration `mapstructure:"test_interval"`
}

// Update holds options of one update cycle.
type Update struct {
	Workers         int  `mapstructure:"workers"`
	ValidateSymbols bool `mapstructure:"validate_symbols"`
}

// Config holds the full configuration for the stock bot.
type Config struct {
	App      config.App    `mapstructure:"app"`
	Logger   config.Logger `mapstructure:"logger"`
	Redis    config.Redis  `mapstructure:"redis"`
	API      config.API    `mapstructure:"api"`
	Telegram Telegram      `mapstructure:"telegram"`
	Provider Provider      `mapstructure:"provider"`
	Retry    Retry         `mapstructure:"retry"`
	Schedule Schedule      `mapstructure:"schedule"`
	Update   Update        `mapstructure:"update"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "stock-bot")
	v.SetDefault("app.time_zone", "America/New_York")
	v.SetDefault("app.test_mode", false)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("telegram.send_chart", false)
	v.SetDefault("provider.name", "yahoo")
	v.SetDefault("provider.options", "")
	v.SetDefault("provider.cache_ttl", time.Minute)
	v.SetDefault("retry.max_attempts", 5)
	v.SetDefault("retry.base_backoff", 2*time.Second)
	v.SetDefault("retry.multiplier", 2.0)
	v.SetDefault("retry.max_backoff", 15*time.Second)
	v.SetDefault("schedule.time", "16:30")
	v.SetDefault("schedule.polling_interval", time.Minute)
	v.SetDefault("schedule.test_interval", 10*time.Second)
	v.SetDefault("update.workers", 1)
	v.SetDefault("update.validate_symbols", true)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 2)
	v.SetDefault("redis.lock_ttl", time.Hour)
	v.SetDefault("api.host", "")
	v.SetDefault("api.port", 0)
}

// Load loads the bot configuration from the given path and validates it.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := config.Load(v, path, &cfg); err != nil {
		return nil, err
	}
	if _, ok := os.LookupEnv(common.TestModeEnv); ok {
		cfg.App.TestMode = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values the bot cannot run without.
func (c *Config) Validate() error {
	var errs []error

	if _, err := utils.LoadLocation(c.App.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("app.time_zone: %w", err))
	}
	if _, _, err := ParseClock(c.Schedule.Time); err != nil {
		errs = append(errs, fmt.Errorf("schedule.time: %w", err))
	}
	if c.Schedule.PollingInterval <= 0 || c.Schedule.PollingInterval > time.Minute {
		errs = append(errs, fmt.Errorf("schedule.polling_interval must be within (0, 1m], got %s", c.Schedule.PollingInterval))
	}
	if c.Schedule.TestInterval <= 0 {
		errs = append(errs, fmt.Errorf("schedule.test_interval must be positive, got %s", c.Schedule.TestInterval))
	}
	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts))
	}
	if c.Retry.BaseBackoff <= 0 || c.Retry.MaxBackoff < c.Retry.BaseBackoff {
		errs = append(errs, fmt.Errorf("retry backoff must satisfy 0 < base_backoff <= max_backoff, got %s and %s", c.Retry.BaseBackoff, c.Retry.MaxBackoff))
	}
	if c.Retry.Multiplier < 1 {
		errs = append(errs, fmt.Errorf("retry.multiplier must be at least 1, got %v", c.Retry.Multiplier))
	}
	if c.Update.Workers < 1 {
		errs = append(errs, fmt.Errorf("update.workers must be at least 1, got %d", c.Update.Workers))
	}
	if !c.App.TestMode {
		if c.Telegram.BotToken == "" {
			errs = append(errs, errors.New("telegram.bot_token is required outside test mode"))
		}
		if c.Telegram.ChatID == 0 {
			errs = append(errs, errors.New("telegram.chat_id is required outside test mode"))
		}
	}

	return errors.Join(errs...)
}

// Location returns the bot's operating time zone.
func (c *Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.App.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseClock parses an "HH:MM" time of day.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}
