package config

import (
	"errors"
	"time"
)

// ErrMissingToken is returned when no bot token is configured
var ErrMissingToken = errors.New("discord bot token is not configured")

// DiscordConfig represents the chat platform connection settings
type DiscordConfig struct {
	Token    string
	ClientID string
	Channels []string
}

// Validate checks that the bot can log in
func (c DiscordConfig) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	return nil
}

// CacheConfig represents the reply cache expiry settings. A zero MaxStaleLifetime keeps
// entries until they are removed explicitly.
type CacheConfig struct {
	TickInterval     time.Duration
	MaxStaleLifetime time.Duration
}

// RemindersConfig represents the reply texts posted for badly identified messages
type RemindersConfig struct {
	UnderIdentified string
	OverIdentified  string
}

// ClassifierConfig represents the patterns used to find ID tags and custom emoji
type ClassifierConfig struct {
	IdentifierPattern  string
	CustomEmojiPattern string
}

// MetricsConfig represents the Prometheus endpoint settings
type MetricsConfig struct {
	Enabled       bool
	ListenAddress string
}

// GetDiscord returns the Discord configuration
func (c *Config) GetDiscord() DiscordConfig {
	return DiscordConfig{
		Token:    c.GetString("discord.token"),
		ClientID: c.GetString("discord.client_id"),
		Channels: c.GetStringSlice("discord.channels"),
	}
}

// GetCache returns the cache configuration
func (c *Config) GetCache() CacheConfig {
	return CacheConfig{
		TickInterval:     c.GetMilliseconds("cache.tick_interval_ms"),
		MaxStaleLifetime: c.GetMilliseconds("cache.max_stale_lifetime_ms"),
	}
}

// GetReminders returns the reminder texts
func (c *Config) GetReminders() RemindersConfig {
	return RemindersConfig{
		UnderIdentified: c.GetString("reminders.under_identified"),
		OverIdentified:  c.GetString("reminders.over_identified"),
	}
}

// GetClassifier returns the classifier configuration
func (c *Config) GetClassifier() ClassifierConfig {
	return ClassifierConfig{
		IdentifierPattern:  c.GetString("classifier.identifier_pattern"),
		CustomEmojiPattern: c.GetString("classifier.custom_emoji_pattern"),
	}
}

// GetMetrics returns the metrics configuration
func (c *Config) GetMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:       c.GetBool("metrics.enabled"),
		ListenAddress: c.GetString("metrics.listen_address"),
	}
}
