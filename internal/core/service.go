package core

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Reminders holds the reply texts sent for badly identified messages
type Reminders struct {
	UnderIdentified string
	OverIdentified  string
}

// DefaultReminders are used when no reminder texts are configured
var DefaultReminders = Reminders{
	UnderIdentified: "Please describe every image and emoji in your message with an `ID:` tag, one tag per image or emoji.",
	OverIdentified:  "Your message has more `ID:` tags than images and emoji. Please check that each tag describes exactly one image or emoji.",
}

// ReminderService posts and retracts ID reminders in response to chat events
type ReminderService struct {
	chat      ChatClient
	cache     ReplyCache
	logger    *zap.Logger
	reminders Reminders
	channels  ChannelFilter
	metrics   Metrics

	mu     sync.RWMutex
	selfID string
}

// NewReminderService creates a new reminder service. selfID may be empty, in which case it
// is learned from the ready event.
func NewReminderService(
	chat ChatClient,
	cache ReplyCache,
	logger *zap.Logger,
	reminders Reminders,
	channels ChannelFilter,
	metrics Metrics,
	selfID string,
) *ReminderService {
	if reminders.UnderIdentified == "" {
		reminders.UnderIdentified = DefaultReminders.UnderIdentified
	}
	if reminders.OverIdentified == "" {
		reminders.OverIdentified = DefaultReminders.OverIdentified
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}

	return &ReminderService{
		chat:      chat,
		cache:     cache,
		logger:    logger,
		reminders: reminders,
		channels:  channels,
		metrics:   metrics,
		selfID:    selfID,
	}
}

// SelfID returns the bot's own user ID, empty until known
func (s *ReminderService) SelfID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selfID
}

// ReminderFor returns the reminder text matching the message's verdict
func (s *ReminderService) ReminderFor(stats ImageIDStats) string {
	if stats.IsUnderIdentified() {
		return s.reminders.UnderIdentified
	}
	return s.reminders.OverIdentified
}

// OnReady records the bot's identity
func (s *ReminderService) OnReady(ctx context.Context, self Author) {
	s.mu.Lock()
	if s.selfID == "" {
		s.selfID = self.ID
	} else if s.selfID != self.ID {
		s.logger.Warn("Configured client ID differs from session user",
			zap.String("configured", s.selfID),
			zap.String("session", self.ID))
	}
	s.mu.Unlock()

	s.logger.Info("Ready", zap.String("user", self.Name), zap.String("user_id", self.ID))
}

// OnMessageCreate reminds the author of a new message that is not correctly identified
func (s *ReminderService) OnMessageCreate(ctx context.Context, msg *Message) {
	s.logger.Debug("New message", zap.Stringer("message", msg))

	if !s.watches(msg) {
		return
	}

	if msg.IsAuthorHuman() {
		s.metrics.MessageClassified(msg.Stats.Verdict())
		if !msg.Stats.IsCorrectlyIdentified() {
			s.remind(ctx, msg)
		}
		return
	}

	if selfID := s.SelfID(); selfID != "" && msg.IsReplyBy(selfID) {
		s.logger.Debug("Observed our reminder reply",
			zap.String("reply_id", msg.ID),
			zap.String("message_id", msg.ReferencedMessageID))
	}
}

// OnMessageUpdate retracts the reminder of an edited message and reminds again if the
// edit still leaves it badly identified
func (s *ReminderService) OnMessageUpdate(ctx context.Context, before, after *Message) {
	s.logger.Debug("Updated message", zap.Stringer("message", after))

	if !s.watches(after) || !after.IsAuthorHuman() {
		return
	}

	s.metrics.MessageClassified(after.Stats.Verdict())
	s.retract(ctx, after)
	if !after.Stats.IsCorrectlyIdentified() {
		s.remind(ctx, after)
	}
}

// OnMessageDelete retracts the reminder of a deleted message
func (s *ReminderService) OnMessageDelete(ctx context.Context, msg *Message) {
	s.logger.Debug("Deleted message", zap.String("message", msg.IDString()))

	if !s.watches(msg) || msg.IsAuthorBot() {
		return
	}

	s.retract(ctx, msg)
}

func (s *ReminderService) watches(msg *Message) bool {
	if s.channels == nil || s.channels.IsAllowed(msg.ChannelID) {
		return true
	}
	s.logger.Debug("Ignoring message from unwatched channel",
		zap.String("message_id", msg.ID),
		zap.String("channel_id", msg.ChannelID))
	return false
}

func (s *ReminderService) remind(ctx context.Context, msg *Message) {
	content := s.ReminderFor(msg.Stats)
	s.logger.Debug("Message is not correctly identified, replying",
		zap.String("message", msg.IDString()),
		zap.Stringer("stats", msg.Stats),
		zap.String("reply", content))

	replyID, err := s.chat.Reply(ctx, msg, content)
	if err != nil {
		s.logger.Error("Failed to send reminder", zap.String("message_id", msg.ID), zap.Error(err))
		return
	}

	s.cache.Set(msg.ID, replyID)
	s.metrics.ReminderSent(msg.Stats.Verdict())
}

func (s *ReminderService) retract(ctx context.Context, msg *Message) {
	replyID, ok := s.cache.Get(msg.ID)
	if !ok {
		s.logger.Debug("Message has no known reminder", zap.String("message", msg.IDString()))
		return
	}

	s.logger.Info("Deleting our reminder", zap.String("message", msg.IDString()), zap.String("reply_id", replyID))
	if err := s.chat.DeleteMessage(ctx, msg.ChannelID, replyID); err != nil {
		s.logger.Error("Could not delete reminder", zap.String("reply_id", replyID), zap.Error(err))
	} else {
		s.metrics.ReminderRetracted()
	}
	s.cache.Remove(msg.ID)
}
