package core

import (
	"fmt"
)

// Author identifies who wrote a message
type Author struct {
	ID    string
	Name  string
	IsBot bool
}

// Message is a chat message as seen by the bot. Author is nil when the platform did not
// deliver author details, e.g. for partial update or delete events.
type Message struct {
	ID                   string
	ChannelID            string
	GuildID              string
	Content              string
	AttachmentMediaTypes []string
	Author               *Author
	IsReply              bool
	ReferencedMessageID  string
	Stats                ImageIDStats
}

// IsAuthoredBy reports whether authorID wrote the message
func (m *Message) IsAuthoredBy(authorID string) bool {
	return m.Author != nil && m.Author.ID == authorID
}

// IsAuthorHuman reports whether the message is known to be written by a person
func (m *Message) IsAuthorHuman() bool {
	return m.Author != nil && !m.Author.IsBot
}

// IsAuthorBot reports whether the message is known to be written by a bot
func (m *Message) IsAuthorBot() bool {
	return m.Author != nil && m.Author.IsBot
}

// IsReplyBy reports whether the message is a reply written by authorID
func (m *Message) IsReplyBy(authorID string) bool {
	return m.IsAuthoredBy(authorID) && m.IsReply
}

func (m *Message) String() string {
	return fmt.Sprintf(
		"message(id=%s, content=%q, channel=%s, isReply=%t, isAuthorHuman=%t, referencedMessageId=%s, imageIdStats=%s)",
		m.ID,
		m.Content,
		m.ChannelID,
		m.IsReply,
		m.IsAuthorHuman(),
		m.ReferencedMessageID,
		m.Stats,
	)
}

// IDString is a short rendering for log lines that only need the identity
func (m *Message) IDString() string {
	return fmt.Sprintf("message(id=%s, ...)", m.ID)
}
