package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mikey/id-bot/internal/durations"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/id-bot/")
	v.AddConfigPath("$HOME/.id-bot")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromFile creates a new configuration instance reading the given file instead of
// searching the default locations
func NewFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// bindEnv maps ID_BOT_* environment variables onto configuration keys
func bindEnv(v *viper.Viper) error {
	v.AutomaticEnv()
	v.SetEnvPrefix("ID_BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return bindLegacyEnv(v)
}

// bindLegacyEnv keeps the lower-case variable names earlier deployments were started with
func bindLegacyEnv(v *viper.Viper) error {
	legacy := map[string]string{
		"discord.client_id": "id_bot_client_id",
		"discord.token":     "id_bot_token",
	}
	for key, env := range legacy {
		if err := v.BindEnv(key, "ID_BOT_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	return nil
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Discord defaults
	v.SetDefault("discord.token", "")
	v.SetDefault("discord.client_id", "")
	v.SetDefault("discord.channels", []string{})

	// Cache defaults
	v.SetDefault("cache.tick_interval_ms", 100)
	v.SetDefault("cache.max_stale_lifetime_ms", 0)

	// Reminder defaults, empty uses the built-in texts
	v.SetDefault("reminders.under_identified", "")
	v.SetDefault("reminders.over_identified", "")

	// Classifier defaults, empty uses the built-in patterns
	v.SetDefault("classifier.identifier_pattern", "")
	v.SetDefault("classifier.custom_emoji_pattern", "")

	// Metrics defaults
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.listen_address", ":9090")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetInt64 gets an int64 value from the configuration
func (c *Config) GetInt64(key string) int64 {
	return c.v.GetInt64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetMilliseconds gets a millisecond count from the configuration as a duration
func (c *Config) GetMilliseconds(key string) time.Duration {
	return durations.Milliseconds(c.GetInt64(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
