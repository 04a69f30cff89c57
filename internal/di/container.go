package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/id-bot/internal/adapters/cache"
	"github.com/mikey/id-bot/internal/adapters/discord"
	"github.com/mikey/id-bot/internal/allowlist"
	"github.com/mikey/id-bot/internal/classifier"
	"github.com/mikey/id-bot/internal/config"
	"github.com/mikey/id-bot/internal/core"
	"github.com/mikey/id-bot/internal/factory"
	"github.com/mikey/id-bot/internal/logging"
	"github.com/mikey/id-bot/internal/metrics"
	"github.com/mikey/id-bot/internal/utils"
)

// BuildContainer creates and configures a dependency injection container for the bot
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideBot(container); err != nil {
		return nil, err
	}

	return container, nil
}

// provideBot registers everything below configuration and logging
func provideBot(container *dig.Container) error {
	// Register factories
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewChatFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return err
	}

	// Register classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (*classifier.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return err
	}

	// Register metrics
	if err := container.Provide(metrics.NewRecorder); err != nil {
		return err
	}
	if err := container.Provide(func(cfg *config.Config, recorder *metrics.Recorder, logger *zap.Logger) *metrics.Server {
		metricsCfg := cfg.GetMetrics()
		if !metricsCfg.Enabled {
			return nil
		}
		return metrics.NewServer(metricsCfg.ListenAddress, recorder.Registry(), logger.Named("metrics"))
	}); err != nil {
		return err
	}

	// Register reply cache and its expirator
	if err := container.Provide(func(f *factory.CacheFactory, recorder *metrics.Recorder) *factory.ReplyCache {
		replies := f.CreateReplyCache()
		recorder.TrackCacheSize(replies.Len)
		return replies
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.CacheFactory, replies *factory.ReplyCache, recorder *metrics.Recorder) *cache.Expirator[string] {
		return f.CreateExpirator(replies, recorder.CacheEntriesExpired)
	}); err != nil {
		return err
	}

	// Register chat client and channel allowlist
	if err := container.Provide(func(f *factory.ChatFactory, c *classifier.Classifier) (*discord.Client, error) {
		return f.CreateDiscordClient(c)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.ChatFactory) *allowlist.Checker {
		return f.CreateChannelFilter()
	}); err != nil {
		return err
	}

	// Register reminder service
	if err := container.Provide(func(
		cfg *config.Config,
		f *factory.ChatFactory,
		client *discord.Client,
		replies *factory.ReplyCache,
		channels *allowlist.Checker,
		recorder *metrics.Recorder,
		logger *zap.Logger,
	) *core.ReminderService {
		return core.NewReminderService(
			client,
			replies,
			logger.Named("bot"),
			f.CreateReminders(),
			channels,
			recorder,
			cfg.GetDiscord().ClientID,
		)
	}); err != nil {
		return err
	}

	return nil
}
