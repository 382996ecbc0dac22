// Package transform holds the text transformations offered by the editor.
//
// Total transformations have type Func and cannot fail. Decoders and parsers
// have type FallibleFunc and report malformed input as a *DecodeError, which
// callers use to leave the buffer untouched.
package transform

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Func is a total text transformation.
type Func func(string) string

// FallibleFunc is a text transformation that may reject its input.
type FallibleFunc func(string) (string, error)

// Upper converts text to upper case.
func Upper(s string) string { return strings.ToUpper(s) }

// Lower converts text to lower case.
func Lower(s string) string { return strings.ToLower(s) }

// Title capitalizes the first letter of every word and lowercases the rest.
func Title(s string) string {
	return cases.Title(language.Und).String(s)
}

// Sentence lowercases text and capitalizes the first letter of the text and
// the first letter following each run of sentence terminators (. ! ?).
func Sentence(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	capitalize := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r == '.' || r == '!' || r == '?':
			capitalize = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if capitalize {
				r = unicode.ToUpper(r)
				capitalize = false
			}
		case !unicode.IsSpace(r):
			capitalize = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CollapseWhitespace replaces every run of white space with a single space
// and trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Reverse reverses text by grapheme cluster, so combining marks, emoji
// modifiers and CRLF pairs stay attached to their base characters.
func Reverse(s string) string {
	if s == "" {
		return s
	}
	clusters := make([]string, 0, utf8.RuneCountInString(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := len(clusters) - 1; i >= 0; i-- {
		b.WriteString(clusters[i])
	}
	return b.String()
}

// Clear discards the text.
func Clear(string) string { return "" }

// Must adapts a total Func to the FallibleFunc signature.
func Must(f Func) FallibleFunc {
	return func(s string) (string, error) { return f(s), nil }
}
