package core

import "fmt"

// Verdict names how well a message's images and emoji are described by ID tags
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictUnder   Verdict = "under"
	VerdictOver    Verdict = "over"
)

// ImageIDStats is the immutable classification of a single message
type ImageIDStats struct {
	ImageAttachmentCount int
	EmojiCount           int
	CustomEmojiCount     int
	ImageIdentifierCount int
}

// NewImageIDStats creates a classification snapshot
func NewImageIDStats(imageAttachmentCount, emojiCount, customEmojiCount, imageIdentifierCount int) ImageIDStats {
	return ImageIDStats{
		ImageAttachmentCount: imageAttachmentCount,
		EmojiCount:           emojiCount,
		CustomEmojiCount:     customEmojiCount,
		ImageIdentifierCount: imageIdentifierCount,
	}
}

// EntitiesRequiringIdentification is the number of ID tags the message should carry
func (s ImageIDStats) EntitiesRequiringIdentification() int {
	return s.ImageAttachmentCount + s.EmojiCount + s.CustomEmojiCount
}

// IsUnderIdentified reports whether there are fewer ID tags than images and emoji
func (s ImageIDStats) IsUnderIdentified() bool {
	return s.ImageIdentifierCount < s.EntitiesRequiringIdentification()
}

// IsCorrectlyIdentified reports whether every image and emoji has exactly one ID tag
func (s ImageIDStats) IsCorrectlyIdentified() bool {
	return s.ImageIdentifierCount == s.EntitiesRequiringIdentification()
}

// IsOverIdentified reports whether there are more ID tags than images and emoji
func (s ImageIDStats) IsOverIdentified() bool {
	return s.ImageIdentifierCount > s.EntitiesRequiringIdentification()
}

// Verdict returns the identification balance as a label
func (s ImageIDStats) Verdict() Verdict {
	switch {
	case s.IsCorrectlyIdentified():
		return VerdictCorrect
	case s.IsUnderIdentified():
		return VerdictUnder
	default:
		return VerdictOver
	}
}

func (s ImageIDStats) String() string {
	state := "FO"
	switch s.Verdict() {
	case VerdictCorrect:
		state = "Pass"
	case VerdictUnder:
		state = "FU"
	}

	return fmt.Sprintf(
		"{state: %s, counts: {attached: %d, emoji: %d, customEmoji: %d, ids: %d}}",
		state,
		s.ImageAttachmentCount,
		s.EmojiCount,
		s.CustomEmojiCount,
		s.ImageIdentifierCount,
	)
}
