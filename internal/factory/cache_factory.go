package factory

import (
	"go.uber.org/zap"

	"github.com/mikey/id-bot/internal/adapters/cache"
	"github.com/mikey/id-bot/internal/config"
)

// ReplyCache maps original message IDs to the IDs of the reminders posted for them
type ReplyCache = cache.MemoryCache[string, string]

// CacheFactory creates the reply cache and its expirator based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReplyCache creates the in-memory reply cache
func (f *CacheFactory) CreateReplyCache() *ReplyCache {
	return cache.NewMemoryCache[string, string](f.logger.Named("cache"), nil)
}

// CreateExpirator creates a stopped expirator for the reply cache. observer may be nil.
func (f *CacheFactory) CreateExpirator(replies *ReplyCache, observer cache.ExpiryObserver) *cache.Expirator[string] {
	cacheCfg := f.cfg.GetCache()
	expirator := cache.NewExpirator[string](
		replies,
		f.logger.Named("expirator"),
		cacheCfg.TickInterval,
		cacheCfg.MaxStaleLifetime,
		observer,
	)

	if expirator.IsEternal() {
		f.logger.Info("Reply cache entries never expire")
	} else {
		f.logger.Info("Reply cache expiry configured",
			zap.Duration("tick_interval", cacheCfg.TickInterval),
			zap.Duration("max_stale_lifetime", cacheCfg.MaxStaleLifetime))
	}
	return expirator
}
