package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/harrison/treegen/internal/models"
)

const (
	sentenceMinWords  = 12 // more words than this may be prose
	sentenceLeadWords = 5  // how many leading words are inspected
	sentenceLongWord  = 20 // runes; a longer leading word marks prose
)

// CheckName decides whether a cleaned name is a plausible path segment.
// It returns the skip reason and false when the name should be rejected.
func CheckName(name string, maxLen int) (string, bool) {
	if utf8.RuneCountInString(name) > maxLen {
		return models.ReasonTooLong, false
	}
	if LooksLikeSentence(name) {
		return models.ReasonSentence, false
	}
	return "", true
}

// LooksLikeSentence reports whether name reads like descriptive text that
// slipped into the diagram: many words with a long word near the start.
func LooksLikeSentence(name string) bool {
	words := strings.Fields(name)
	if len(words) <= sentenceMinWords {
		return false
	}

	lead := words
	if len(lead) > sentenceLeadWords {
		lead = lead[:sentenceLeadWords]
	}
	for _, w := range lead {
		if utf8.RuneCountInString(w) > sentenceLongWord {
			return true
		}
	}
	return false
}
