package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/id-bot/internal/classifier"
	"github.com/mikey/id-bot/internal/core"
	"github.com/mikey/id-bot/internal/utils"
)

const previewRunes = 500

// Classifier prints the classification of a single message to a writer
type Classifier struct {
	classifier    *classifier.Classifier
	textProcessor *utils.TextProcessor
	reminders     core.Reminders
	logger        *zap.Logger
	out           io.Writer
	verbose       bool
}

// NewClassifier creates a new console classifier
func NewClassifier(
	c *classifier.Classifier,
	textProcessor *utils.TextProcessor,
	reminders core.Reminders,
	logger *zap.Logger,
	out io.Writer,
	verbose bool,
) *Classifier {
	if reminders.UnderIdentified == "" {
		reminders.UnderIdentified = core.DefaultReminders.UnderIdentified
	}
	if reminders.OverIdentified == "" {
		reminders.OverIdentified = core.DefaultReminders.OverIdentified
	}
	return &Classifier{
		classifier:    c,
		textProcessor: textProcessor,
		reminders:     reminders,
		logger:        logger,
		out:           out,
		verbose:       verbose,
	}
}

// ProcessMessage classifies content and prints a summary with the verdict
func (c *Classifier) ProcessMessage(content string, attachmentMediaTypes []string) core.ImageIDStats {
	c.logger.Debug("Classifying message",
		zap.Int("content_size", len(content)),
		zap.Strings("attachments", attachmentMediaTypes))

	fmt.Fprintf(c.out, "\n=== Message Summary ===\n")
	fmt.Fprintf(c.out, "Content length: %d bytes\n", len(content))
	fmt.Fprintf(c.out, "Attachments: %s\n", strings.Join(attachmentMediaTypes, ", "))

	if c.verbose {
		fmt.Fprintf(c.out, "\nContent preview:\n%s\n", c.textProcessor.Preview(content, previewRunes))
	}

	startTime := time.Now()
	stats := c.classifier.Classify(content, attachmentMediaTypes)
	duration := time.Since(startTime)

	fmt.Fprintf(c.out, "\n=== Results ===\n")
	fmt.Fprintf(c.out, "Verdict: %s\n", stats.Verdict())
	fmt.Fprintf(c.out, "Image attachments: %d\n", stats.ImageAttachmentCount)
	fmt.Fprintf(c.out, "Emoji: %d\n", stats.EmojiCount)
	fmt.Fprintf(c.out, "Custom emoji: %d\n", stats.CustomEmojiCount)
	fmt.Fprintf(c.out, "ID tags: %d\n", stats.ImageIdentifierCount)

	if c.verbose {
		for _, id := range c.classifier.FindIdentifiers(content) {
			fmt.Fprintf(c.out, "  ID: %s\n", id)
		}
		for _, ref := range c.classifier.FindCustomEmoji(content) {
			fmt.Fprintf(c.out, "  custom emoji %s (%s, animated=%t)\n", ref.Name, ref.ID, ref.Animated)
		}
	}

	if !stats.IsCorrectlyIdentified() {
		reminder := c.reminders.OverIdentified
		if stats.IsUnderIdentified() {
			reminder = c.reminders.UnderIdentified
		}
		fmt.Fprintf(c.out, "Reminder: %s\n", reminder)
	}
	fmt.Fprintf(c.out, "Processing time: %v\n", duration)

	return stats
}
