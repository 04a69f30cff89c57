package core

import (
	"context"
)

// Classifier computes the identification stats of a message's content
type Classifier interface {
	// Classify counts images, emoji, custom emoji and ID tags
	Classify(text string, attachmentMediaTypes []string) ImageIDStats
}

// ChatClient defines the actions the bot takes on the chat platform
type ChatClient interface {
	// Reply posts content as a reply to msg and returns the reply's message ID
	Reply(ctx context.Context, msg *Message, content string) (string, error)

	// DeleteMessage removes a message from a channel
	DeleteMessage(ctx context.Context, channelID, messageID string) error
}

// ReplyCache maps an original message ID to the ID of the bot's reminder reply
type ReplyCache interface {
	// Set stores or replaces the reply ID for a message
	Set(messageID, replyID string)

	// Get returns the reply ID for a message
	Get(messageID string) (string, bool)

	// Remove forgets the reply for a message
	Remove(messageID string) bool
}

// ChannelFilter decides whether the bot watches a channel
type ChannelFilter interface {
	IsAllowed(channelID string) bool
}

// Metrics receives reminder lifecycle events
type Metrics interface {
	MessageClassified(verdict Verdict)
	ReminderSent(verdict Verdict)
	ReminderRetracted()
}

// NoopMetrics discards every event
type NoopMetrics struct{}

func (NoopMetrics) MessageClassified(Verdict) {}
func (NoopMetrics) ReminderSent(Verdict)      {}
func (NoopMetrics) ReminderRetracted()        {}

// EventHandler receives the chat platform events the bot reacts to
type EventHandler interface {
	// OnReady is called once the chat session is established as self
	OnReady(ctx context.Context, self Author)

	// OnMessageCreate is called for every new message
	OnMessageCreate(ctx context.Context, msg *Message)

	// OnMessageUpdate is called when a message is edited. before is nil when the
	// platform did not keep the previous version.
	OnMessageUpdate(ctx context.Context, before, after *Message)

	// OnMessageDelete is called when a message is removed
	OnMessageDelete(ctx context.Context, msg *Message)
}
