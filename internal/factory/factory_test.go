package factory

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/mikey/id-bot/internal/config"
	"github.com/mikey/id-bot/internal/core"
	"github.com/mikey/id-bot/internal/utils"
)

func TestCreateExpiratorDefaultsToEternal(t *testing.T) {
	t.Parallel()

	f := NewCacheFactory(config.NewFromViper(config.NewEmptyViper()), zaptest.NewLogger(t))
	expirator := f.CreateExpirator(f.CreateReplyCache(), nil)
	if !expirator.IsEternal() {
		t.Fatal("expected the default expirator to be eternal")
	}

	expirator.Start()
	defer expirator.Stop()
	if !expirator.Running() {
		t.Fatal("expected Start() to mark the expirator running")
	}
}

func TestCreateExpiratorWithMaxStaleLifetime(t *testing.T) {
	t.Parallel()

	v := config.NewEmptyViper()
	v.Set("cache.max_stale_lifetime_ms", 60_000)
	f := NewCacheFactory(config.NewFromViper(v), zaptest.NewLogger(t))

	replies := f.CreateReplyCache()
	replies.Set("message", "reply")
	expirator := f.CreateExpirator(replies, nil)
	if expirator.IsEternal() {
		t.Fatal("expected a bounded expirator")
	}
	if got := expirator.ExpireStaleEntries(); got != 0 {
		t.Fatalf("ExpireStaleEntries() = %d, want 0 for a fresh entry", got)
	}
}

func TestCreateClassifierRejectsBadPattern(t *testing.T) {
	t.Parallel()

	v := config.NewEmptyViper()
	v.Set("classifier.identifier_pattern", "(")
	logger := zaptest.NewLogger(t)
	f := NewClassifierFactory(config.NewFromViper(v), logger, utils.NewTextProcessor(logger))

	if _, err := f.CreateClassifier(); err == nil {
		t.Fatal("expected an error for an invalid pattern")
	}
}

func TestCreateClassifier(t *testing.T) {
	t.Parallel()

	logger := zaptest.NewLogger(t)
	f := NewClassifierFactory(config.NewFromViper(config.NewEmptyViper()), logger, NewTextProcessorFactory(logger).CreateTextProcessor())
	c, err := f.CreateClassifier()
	if err != nil {
		t.Fatalf("CreateClassifier() error = %v", err)
	}
	if got := c.Classify("ID: a", []string{"image/jpeg"}); !got.IsCorrectlyIdentified() {
		t.Fatalf("Classify() = %s, want correctly identified", got)
	}
}

func TestCreateDiscordClientRequiresToken(t *testing.T) {
	t.Parallel()

	f := NewChatFactory(config.NewFromViper(config.NewEmptyViper()), zaptest.NewLogger(t))
	if _, err := f.CreateDiscordClient(nil); !errors.Is(err, config.ErrMissingToken) {
		t.Fatalf("CreateDiscordClient() error = %v, want ErrMissingToken", err)
	}
}

func TestCreateReminders(t *testing.T) {
	t.Parallel()

	v := config.NewEmptyViper()
	v.Set("reminders.over_identified", "too many")
	v.Set("discord.channels", []string{"1"})
	f := NewChatFactory(config.NewFromViper(v), zaptest.NewLogger(t))

	if got := f.CreateReminders(); got != (core.Reminders{OverIdentified: "too many"}) {
		t.Fatalf("CreateReminders() = %+v", got)
	}
	if f.CreateChannelFilter().IsAllowed("2") {
		t.Fatal("expected channel 2 to be filtered out")
	}
}

func TestTickIntervalFromConfig(t *testing.T) {
	t.Parallel()

	v := config.NewEmptyViper()
	v.Set("cache.tick_interval_ms", 5)
	if got := config.NewFromViper(v).GetCache().TickInterval; got != 5*time.Millisecond {
		t.Fatalf("TickInterval = %s, want 5ms", got)
	}
}
