// Package emoji counts Unicode emoji in free-form text.
//
// Text is segmented into extended grapheme clusters so that modifier, keycap, flag and
// zero-width-joiner sequences are counted once. A cluster is an emoji when its base
// character has emoji presentation by default, or when a text-presentation pictograph is
// promoted to emoji presentation by a variation selector, a skin tone modifier or a joiner.
package emoji

import (
	"unicode"

	"github.com/rivo/uniseg"
)

const (
	zeroWidthJoiner          = '\u200D'
	textVariationSelector    = '\uFE0E'
	emojiVariationSelector   = '\uFE0F'
	combiningEnclosingKeycap = '\u20E3'
	regionalIndicatorFirst   = '\U0001F1E6'
	regionalIndicatorLast    = '\U0001F1FF'
	modifierFirst            = '\U0001F3FB'
	modifierLast             = '\U0001F3FF'
)

// Count returns the number of emoji grapheme clusters in text
func Count(text string) int {
	count := 0
	graphemes := uniseg.NewGraphemes(text)
	for graphemes.Next() {
		if isEmojiCluster(graphemes.Runes()) {
			count++
		}
	}
	return count
}

// IsEmoji reports whether cluster is exactly one emoji grapheme cluster
func IsEmoji(cluster string) bool {
	graphemes := uniseg.NewGraphemes(cluster)
	if !graphemes.Next() {
		return false
	}
	if !isEmojiCluster(graphemes.Runes()) {
		return false
	}
	return !graphemes.Next()
}

func isEmojiCluster(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}

	base := runes[0]
	switch {
	case isRegionalIndicator(base):
		// a lone regional indicator renders as a letter, only pairs are flags
		return len(runes) >= 2 && isRegionalIndicator(runes[1])
	case isKeycapBase(base):
		return containsRune(runes[1:], combiningEnclosingKeycap)
	case unicode.Is(presentation, base):
		return !containsRune(runes[1:], textVariationSelector)
	case unicode.Is(pictographic, base):
		for _, r := range runes[1:] {
			if r == emojiVariationSelector || r == zeroWidthJoiner || isModifier(r) {
				return true
			}
		}
	}
	return false
}

func isRegionalIndicator(r rune) bool {
	return r >= regionalIndicatorFirst && r <= regionalIndicatorLast
}

func isModifier(r rune) bool {
	return r >= modifierFirst && r <= modifierLast
}

func isKeycapBase(r rune) bool {
	return r == '#' || r == '*' || (r >= '0' && r <= '9')
}

func containsRune(runes []rune, want rune) bool {
	for _, r := range runes {
		if r == want {
			return true
		}
	}
	return false
}
