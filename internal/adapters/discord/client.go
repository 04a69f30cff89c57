package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/mikey/id-bot/internal/core"
)

const (
	// Intents requests guild and message events including message content
	Intents = discordgo.IntentGuilds | discordgo.IntentGuildMessages | discordgo.IntentMessageContent

	// messageStateLimit is how many messages per channel the session remembers, so that
	// delete events can report who wrote the deleted message
	messageStateLimit = 200
)

// messageAPI is the part of *discordgo.Session the client sends requests through
type messageAPI interface {
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// Client connects the reminder service to a Discord gateway session
type Client struct {
	session *discordgo.Session
	api     messageAPI
	mapper  *Mapper
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	handler  core.EventHandler
	removers []func()
}

// NewClient creates a new Discord client for the given bot token
func NewClient(token string, mapper *Mapper, logger *zap.Logger) (*Client, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = Intents
	session.State.MaxMessageCount = messageStateLimit

	c := newClient(session, mapper, logger)
	c.session = session
	return c, nil
}

func newClient(api messageAPI, mapper *Mapper, logger *zap.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		api:    api,
		mapper: mapper,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register routes gateway events to handler. It must be called before Start.
func (c *Client) Register(handler core.EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler = handler
	if c.session == nil {
		return
	}
	c.removers = append(c.removers,
		c.session.AddHandler(c.onReady),
		c.session.AddHandler(c.onMessageCreate),
		c.session.AddHandler(c.onMessageUpdate),
		c.session.AddHandler(c.onMessageDelete),
	)
}

// Start opens the gateway connection
func (c *Client) Start() error {
	c.logger.Info("Connecting to Discord")
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	return nil
}

// Stop cancels in-flight requests and closes the gateway connection
func (c *Client) Stop() error {
	c.cancel()

	c.mu.Lock()
	for _, remove := range c.removers {
		remove()
	}
	c.removers = nil
	c.mu.Unlock()

	if c.session == nil {
		return nil
	}
	if err := c.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}
	c.logger.Info("Disconnected from Discord")
	return nil
}

// Reply posts content as a reply to msg
func (c *Client) Reply(ctx context.Context, msg *core.Message, content string) (string, error) {
	reference := &discordgo.MessageReference{
		MessageID: msg.ID,
		ChannelID: msg.ChannelID,
		GuildID:   msg.GuildID,
	}
	reply, err := c.api.ChannelMessageSendReply(msg.ChannelID, content, reference, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to reply to message %s: %w", msg.ID, err)
	}
	return reply.ID, nil
}

// DeleteMessage removes a message from a channel
func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	if err := c.api.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete message %s: %w", messageID, err)
	}
	return nil
}

func (c *Client) eventHandler() core.EventHandler {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler
}

func (c *Client) onReady(_ *discordgo.Session, event *discordgo.Ready) {
	handler := c.eventHandler()
	if handler == nil || event.User == nil {
		return
	}
	handler.OnReady(c.ctx, *c.mapper.ToAuthor(event.User))
}

func (c *Client) onMessageCreate(_ *discordgo.Session, event *discordgo.MessageCreate) {
	handler := c.eventHandler()
	if handler == nil || event.Message == nil {
		return
	}
	handler.OnMessageCreate(c.ctx, c.mapper.ToMessage(event.Message))
}

func (c *Client) onMessageUpdate(_ *discordgo.Session, event *discordgo.MessageUpdate) {
	handler := c.eventHandler()
	if handler == nil || event.Message == nil {
		return
	}
	handler.OnMessageUpdate(c.ctx, c.mapper.ToMessage(event.BeforeUpdate), c.mapper.ToMessage(event.Message))
}

func (c *Client) onMessageDelete(_ *discordgo.Session, event *discordgo.MessageDelete) {
	handler := c.eventHandler()
	if handler == nil || (event.Message == nil && event.BeforeDelete == nil) {
		return
	}
	handler.OnMessageDelete(c.ctx, c.mapper.ToDeletedMessage(event))
}

var _ core.ChatClient = (*Client)(nil)
