// Package classifier counts how many images and emoji a message carries and how many of
// them its author described with ID tags.
package classifier

import (
	"fmt"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"

	"github.com/mikey/id-bot/internal/core"
	"github.com/mikey/id-bot/internal/emoji"
	"github.com/mikey/id-bot/internal/mediatype"
	"github.com/mikey/id-bot/internal/utils"
)

const (
	// DefaultIdentifierPattern matches the word following a case-sensitive "ID:" marker. The
	// marker must start the text or follow a non-word character, and a word run straight
	// into another marker is not a tag of its own.
	DefaultIdentifierPattern = `(?<=(^|\s|[^A-Za-z0-9_])ID:\s*)([A-Za-z0-9_]+)(?![^A-Za-z0-9_]ID:)`

	// DefaultCustomEmojiPattern matches platform custom emoji references such as <:name:123>
	// and the animated form <a:name:123>
	DefaultCustomEmojiPattern = `<(a)?:(?<name>[A-Za-z0-9_]+):(?<id>[0-9]+)>`
)

// CustomEmoji is a custom emoji reference found in message text
type CustomEmoji struct {
	Name     string
	ID       string
	Animated bool
}

// Classifier turns message text and attachment media types into core.ImageIDStats
type Classifier struct {
	identifier    *regexp2.Regexp
	customEmoji   *regexp2.Regexp
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
}

// New creates a classifier from the given patterns. Empty patterns use the defaults.
func New(logger *zap.Logger, textProcessor *utils.TextProcessor, identifierPattern, customEmojiPattern string) (*Classifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if textProcessor == nil {
		textProcessor = utils.NewTextProcessor(logger)
	}
	if identifierPattern == "" {
		identifierPattern = DefaultIdentifierPattern
	}
	if customEmojiPattern == "" {
		customEmojiPattern = DefaultCustomEmojiPattern
	}

	identifier, err := regexp2.Compile(identifierPattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("invalid identifier pattern: %w", err)
	}
	customEmoji, err := regexp2.Compile(customEmojiPattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("invalid custom emoji pattern: %w", err)
	}

	return &Classifier{
		identifier:    identifier,
		customEmoji:   customEmoji,
		textProcessor: textProcessor,
		logger:        logger,
	}, nil
}

// NewDefault creates a classifier using the default patterns
func NewDefault(logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		identifier:    regexp2.MustCompile(DefaultIdentifierPattern, regexp2.None),
		customEmoji:   regexp2.MustCompile(DefaultCustomEmojiPattern, regexp2.None),
		textProcessor: utils.NewTextProcessor(logger),
		logger:        logger,
	}
}

// Classify counts image attachments, emoji, custom emoji and ID tags. Plain emoji are
// counted after custom emoji references are removed from the text.
func (c *Classifier) Classify(text string, attachmentMediaTypes []string) core.ImageIDStats {
	text = c.textProcessor.Normalize(text)

	customEmoji := c.FindCustomEmoji(text)
	stripped, err := c.customEmoji.Replace(text, "", -1, -1)
	if err != nil {
		c.logger.Warn("Failed to strip custom emoji", zap.Error(err))
		stripped = text
	}

	return core.NewImageIDStats(
		mediatype.CountImages(attachmentMediaTypes),
		emoji.Count(stripped),
		len(customEmoji),
		len(c.FindIdentifiers(text)),
	)
}

// FindIdentifiers returns the described word of every ID tag in text
func (c *Classifier) FindIdentifiers(text string) []string {
	var identifiers []string
	c.each(c.identifier, text, func(m *regexp2.Match) {
		identifiers = append(identifiers, m.String())
	})
	return identifiers
}

// FindCustomEmoji returns every custom emoji reference in text
func (c *Classifier) FindCustomEmoji(text string) []CustomEmoji {
	var found []CustomEmoji
	c.each(c.customEmoji, text, func(m *regexp2.Match) {
		ref := CustomEmoji{}
		if g := m.GroupByName("name"); g != nil {
			ref.Name = g.String()
		}
		if g := m.GroupByName("id"); g != nil {
			ref.ID = g.String()
		}
		if g := m.GroupByNumber(1); g != nil {
			ref.Animated = len(g.Captures) > 0
		}
		found = append(found, ref)
	})
	return found
}

func (c *Classifier) each(re *regexp2.Regexp, text string, fn func(*regexp2.Match)) {
	m, err := re.FindStringMatch(text)
	for err == nil && m != nil {
		fn(m)
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		c.logger.Warn("Pattern matching stopped early", zap.String("pattern", re.String()), zap.Error(err))
	}
}
