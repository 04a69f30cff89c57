package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/id-bot/internal/adapters/discord"
	"github.com/mikey/id-bot/internal/allowlist"
	"github.com/mikey/id-bot/internal/config"
	"github.com/mikey/id-bot/internal/core"
)

// ChatFactory creates the chat platform client based on configuration
type ChatFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewChatFactory creates a new chat factory
func NewChatFactory(cfg *config.Config, logger *zap.Logger) *ChatFactory {
	return &ChatFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateDiscordClient creates a Discord client that classifies messages with c
func (f *ChatFactory) CreateDiscordClient(c core.Classifier) (*discord.Client, error) {
	discordCfg := f.cfg.GetDiscord()
	if err := discordCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid discord configuration: %w", err)
	}

	logger := f.logger.Named("discord")
	discord.RouteLibraryLogs(logger)
	return discord.NewClient(discordCfg.Token, discord.NewMapper(c), logger)
}

// CreateChannelFilter creates the channel allowlist
func (f *ChatFactory) CreateChannelFilter() *allowlist.Checker {
	return allowlist.NewChecker(f.cfg.GetDiscord().Channels, f.logger)
}

// CreateReminders returns the configured reminder texts
func (f *ChatFactory) CreateReminders() core.Reminders {
	reminders := f.cfg.GetReminders()
	return core.Reminders{
		UnderIdentified: reminders.UnderIdentified,
		OverIdentified:  reminders.OverIdentified,
	}
}
