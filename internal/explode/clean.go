package explode

import (
	"strings"

	"github.com/forPelevin/gomoji"
	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer(
	"\u2019", "'", // right single quotation mark
	"\u2018", "'", // left single quotation mark
	"\u201b", "'", // single high-reversed-9 quotation mark
	"\u02bc", "'", // modifier letter apostrophe
	"\u2032", "'", // prime
)

// CleanSentence normalizes one sentence: NFC, ASCII apostrophes, optional
// emoji removal, single spaces, and a terminal period when the sentence
// does not already end in . ! or ?. Empty input stays empty.
func CleanSentence(text string, stripEmoji bool) string {
	if text == "" {
		return ""
	}

	s := norm.NFC.String(text)
	s = apostrophes.Replace(s)

	if stripEmoji {
		s = gomoji.RemoveEmojis(s)
		// Orphaned joiners and presentation selectors
		s = strings.Map(func(r rune) rune {
			if r == '\u200d' || r == '\ufe0f' || r == '\ufe0e' {
				return -1
			}
			return r
		}, s)
	}

	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}

	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}
