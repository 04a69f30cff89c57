package allowlist

import (
	"strings"

	"go.uber.org/zap"
)

// Checker decides which channels the bot watches. An empty list watches every channel.
type Checker struct {
	channels map[string]struct{}
	logger   *zap.Logger
}

// NewChecker creates a new channel allowlist checker
func NewChecker(channels []string, logger *zap.Logger) *Checker {
	normalized := make(map[string]struct{}, len(channels))
	for _, channel := range channels {
		channel = strings.TrimSpace(channel)
		if channel != "" {
			normalized[channel] = struct{}{}
		}
	}

	if logger != nil {
		if len(normalized) > 0 {
			logger.Info("Initialized channel allowlist", zap.Strings("channels", channels))
		} else {
			logger.Info("No channel allowlist configured, watching every channel")
		}
	}

	return &Checker{
		channels: normalized,
		logger:   logger,
	}
}

// IsAllowed checks if messages from the channel should be inspected
func (c *Checker) IsAllowed(channelID string) bool {
	if c == nil || len(c.channels) == 0 {
		return true
	}

	_, ok := c.channels[channelID]
	if !ok && c.logger != nil {
		c.logger.Debug("Channel is not allowlisted", zap.String("channel_id", channelID))
	}
	return ok
}

// Len returns the number of allowlisted channels
func (c *Checker) Len() int {
	if c == nil {
		return 0
	}
	return len(c.channels)
}
