// Package stats derives reading statistics from a text buffer.
//
// Every value is a pure function of the input text; callers recompute on
// each read instead of caching, which keeps the numbers in lockstep with
// the buffer they describe.
package stats

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/rivo/uniseg"
)

// DefaultWordsPerMinute is the reading speed used for ReadingTime.
const DefaultWordsPerMinute = 200

var (
	sentenceTerminators = regexp.MustCompile(`[.!?]+`)
	paragraphBreak      = regexp.MustCompile(`\n\s*\n`)
)

// Statistics summarizes a buffer.
type Statistics struct {
	Words              int
	Characters         int // grapheme clusters
	CharactersNoSpaces int // grapheme clusters that are not whitespace
	Sentences          int
	Paragraphs         int
	ReadingSeconds     int
	ReadingMinutes     float64
	ReadingTime        time.Duration
}

// Compute returns the statistics for text. A non-positive wpm selects
// DefaultWordsPerMinute.
func Compute(text string, wpm int) Statistics {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	trimmed := strings.TrimSpace(text)

	s := Statistics{Words: len(strings.Fields(trimmed))}
	s.Characters, s.CharactersNoSpaces = countCharacters(text)
	if trimmed != "" {
		s.Sentences = len(sentenceTerminators.FindAllStringIndex(trimmed, -1))
		s.Paragraphs = countParagraphs(trimmed)
	}

	s.ReadingMinutes = float64(s.Words) / float64(wpm)
	s.ReadingSeconds = int(math.Ceil(float64(s.Words*60) / float64(wpm)))
	s.ReadingTime = time.Duration(s.ReadingSeconds) * time.Second
	return s
}

func countCharacters(text string) (all, visible int) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		all++
		if !isSpaceCluster(g.Runes()) {
			visible++
		}
	}
	return all, visible
}

// isSpaceCluster reports whether every rune of a grapheme cluster is white
// space. "\r\n" is a single cluster and counts as space.
func isSpaceCluster(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return len(runes) > 0
}

func countParagraphs(trimmed string) int {
	n := 0
	for _, p := range paragraphBreak.Split(trimmed, -1) {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}
