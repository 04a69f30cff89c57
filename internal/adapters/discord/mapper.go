package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/mikey/id-bot/internal/core"
)

// Mapper turns discordgo messages into classified core messages
type Mapper struct {
	classifier core.Classifier
}

// NewMapper creates a new message mapper
func NewMapper(classifier core.Classifier) *Mapper {
	return &Mapper{classifier: classifier}
}

// ToAuthor maps a discordgo user, nil when the event carried none
func (m *Mapper) ToAuthor(user *discordgo.User) *core.Author {
	if user == nil {
		return nil
	}
	return &core.Author{
		ID:    user.ID,
		Name:  user.Username,
		IsBot: user.Bot,
	}
}

// ToMessage maps and classifies a discordgo message. It returns nil for a nil message.
func (m *Mapper) ToMessage(msg *discordgo.Message) *core.Message {
	if msg == nil {
		return nil
	}

	mediaTypes := make([]string, 0, len(msg.Attachments))
	for _, attachment := range msg.Attachments {
		if attachment != nil {
			mediaTypes = append(mediaTypes, attachment.ContentType)
		}
	}

	result := &core.Message{
		ID:                   msg.ID,
		ChannelID:            msg.ChannelID,
		GuildID:              msg.GuildID,
		Content:              msg.Content,
		AttachmentMediaTypes: mediaTypes,
		Author:               m.ToAuthor(msg.Author),
		IsReply:              msg.Type == discordgo.MessageTypeReply,
		Stats:                m.classifier.Classify(msg.Content, mediaTypes),
	}
	if msg.MessageReference != nil {
		result.ReferencedMessageID = msg.MessageReference.MessageID
	}

	return result
}

// ToDeletedMessage maps a delete event, preferring the cached copy of the message when
// the session state kept one
func (m *Mapper) ToDeletedMessage(event *discordgo.MessageDelete) *core.Message {
	if event.BeforeDelete != nil {
		return m.ToMessage(event.BeforeDelete)
	}
	return m.ToMessage(event.Message)
}
